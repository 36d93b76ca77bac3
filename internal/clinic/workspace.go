package clinic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clinic-admin/internal/gateway"
	"clinic-admin/internal/models"
	"clinic-admin/internal/reconcile"
	"clinic-admin/internal/session"

	"golang.org/x/sync/errgroup"
)

var ErrReferenceNotFound = errors.New("referenced record is not in the loaded list")

// Appointment reference fields, by wire name.
const (
	RefPatient = "paciente"
	RefDoctor  = "medico"
	RefRoom    = "consultorio"
)

// Gateways bundles the remote side of the four sessions.
type Gateways struct {
	Patients     session.Gateway[models.Patient]
	Doctors      session.Gateway[models.Doctor]
	Rooms        session.Gateway[models.Room]
	Appointments session.Gateway[models.Appointment]
}

// NewGateways binds every collection to the API behind c.
func NewGateways(c *gateway.Client) Gateways {
	return Gateways{
		Patients:     newResource(c, PatientSchema()),
		Doctors:      newResource(c, DoctorSchema()),
		Rooms:        newResource(c, RoomSchema()),
		Appointments: newResource(c, AppointmentSchema()),
	}
}

func newResource[T any](c *gateway.Client, s session.Schema[T]) *gateway.Resource[T] {
	return gateway.NewResource(c, s.Path, s.Encode)
}

// Workspace owns one edit session per kind. Appointments read the other
// three lists as reference data.
type Workspace struct {
	Patients     *session.Session[models.Patient]
	Doctors      *session.Session[models.Doctor]
	Rooms        *session.Session[models.Room]
	Appointments *session.Session[models.Appointment]
}

func NewWorkspace(gw Gateways, policy *reconcile.Policy) *Workspace {
	return &Workspace{
		Patients:     session.New(PatientSchema(), gw.Patients, policy),
		Doctors:      session.New(DoctorSchema(), gw.Doctors, policy),
		Rooms:        session.New(RoomSchema(), gw.Rooms, policy),
		Appointments: session.New(AppointmentSchema(), gw.Appointments, policy),
	}
}

// Load fetches the four lists concurrently. It is all or nothing: if any
// fetch fails no list is replaced and the first error is returned.
func (w *Workspace) Load(ctx context.Context) error {
	var (
		patients     []models.Patient
		doctors      []models.Doctor
		rooms        []models.Room
		appointments []models.Appointment
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		patients, err = w.Patients.Fetch(ctx)
		return err
	})
	g.Go(func() (err error) {
		doctors, err = w.Doctors.Fetch(ctx)
		return err
	})
	g.Go(func() (err error) {
		rooms, err = w.Rooms.Fetch(ctx)
		return err
	})
	g.Go(func() (err error) {
		appointments, err = w.Appointments.Fetch(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	w.Patients.Replace(patients)
	w.Doctors.Replace(doctors)
	w.Rooms.Replace(rooms)
	w.Appointments.Replace(appointments)
	return nil
}

// LoadEach reloads every list independently, the way the read-only overview
// does: a failing kind keeps its previous list and is reported in the map
// while the others are still replaced.
func (w *Workspace) LoadEach(ctx context.Context) map[string]error {
	loaders := map[string]func(context.Context) error{
		KindPatients:     w.Patients.Reload,
		KindDoctors:      w.Doctors.Reload,
		KindRooms:        w.Rooms.Reload,
		KindAppointments: w.Appointments.Reload,
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs = map[string]error{}
	)
	for kind, load := range loaders {
		wg.Add(1)
		go func(kind string, load func(context.Context) error) {
			defer wg.Done()
			if err := load(ctx); err != nil {
				mu.Lock()
				errs[kind] = err
				mu.Unlock()
			}
		}(kind, load)
	}
	wg.Wait()
	return errs
}

// SelectReference points the appointment draft's field (paciente, medico or
// consultorio) at the loaded record with the given id. Id 0 clears it.
func (w *Workspace) SelectReference(field string, id uint) error {
	switch field {
	case RefPatient:
		return selectRef(w.Appointments, w.Patients, id, func(a *models.Appointment, p *models.Patient) { a.Patient = p })
	case RefDoctor:
		return selectRef(w.Appointments, w.Doctors, id, func(a *models.Appointment, d *models.Doctor) { a.Doctor = d })
	case RefRoom:
		return selectRef(w.Appointments, w.Rooms, id, func(a *models.Appointment, r *models.Room) { a.Room = r })
	}
	return fmt.Errorf("%s: %w %q", KindAppointments, session.ErrUnknownField, field)
}

func selectRef[R any](
	appointments *session.Session[models.Appointment],
	refs *session.Session[R],
	id uint,
	assign func(*models.Appointment, *R),
) error {
	if id == 0 {
		return appointments.Mutate(func(a *models.Appointment) { assign(a, nil) })
	}
	ref, ok := refs.Find(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", refs.Kind(), id, ErrReferenceNotFound)
	}
	return appointments.Mutate(func(a *models.Appointment) { assign(a, &ref) })
}
