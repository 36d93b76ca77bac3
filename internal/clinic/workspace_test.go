package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-admin/internal/models"
	"clinic-admin/internal/reconcile"
	"clinic-admin/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listGateway serves a fixed list or a fixed error.
type listGateway[T any] struct {
	records []T
	err     error
	created []T
}

func (g *listGateway[T]) List(context.Context) ([]T, error) {
	if g.err != nil {
		return nil, g.err
	}
	return append([]T(nil), g.records...), nil
}

func (g *listGateway[T]) Create(_ context.Context, record T) (T, error) {
	g.created = append(g.created, record)
	return record, nil
}

func (g *listGateway[T]) Update(_ context.Context, _ uint, record T) (T, error) {
	return record, nil
}

func (g *listGateway[T]) Delete(context.Context, uint) error {
	return nil
}

type fixture struct {
	patients     *listGateway[models.Patient]
	doctors      *listGateway[models.Doctor]
	rooms        *listGateway[models.Room]
	appointments *listGateway[models.Appointment]
	notes        []reconcile.Notification
}

func newFixture() *fixture {
	return &fixture{
		patients:     &listGateway[models.Patient]{records: []models.Patient{{ID: 1, FirstName: "Ana", LastName: "Ruiz"}}},
		doctors:      &listGateway[models.Doctor]{records: []models.Doctor{{ID: 2, FirstName: "Luis", LastName: "Paz", Specialty: "Cardiología"}}},
		rooms:        &listGateway[models.Room]{records: []models.Room{{ID: 3, Number: "101", Floor: 1}}},
		appointments: &listGateway[models.Appointment]{records: []models.Appointment{{ID: 4}}},
	}
}

func (f *fixture) workspace() *Workspace {
	notifier := reconcile.NotifierFunc(func(n reconcile.Notification) { f.notes = append(f.notes, n) })
	confirmer := reconcile.ConfirmerFunc(func(context.Context, string) bool { return true })
	return NewWorkspace(Gateways{
		Patients:     f.patients,
		Doctors:      f.doctors,
		Rooms:        f.rooms,
		Appointments: f.appointments,
	}, reconcile.NewPolicy(notifier, confirmer, zerolog.Nop()))
}

func TestLoadReplacesAllLists(t *testing.T) {
	f := newFixture()
	ws := f.workspace()

	require.NoError(t, ws.Load(context.Background()))
	assert.Len(t, ws.Patients.List(), 1)
	assert.Len(t, ws.Doctors.List(), 1)
	assert.Len(t, ws.Rooms.List(), 1)
	assert.Len(t, ws.Appointments.List(), 1)
}

func TestLoadIsAllOrNothing(t *testing.T) {
	f := newFixture()
	f.patients.err = errors.New("503")
	ws := f.workspace()

	err := ws.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), KindPatients)
	assert.Empty(t, ws.Patients.List())
	assert.Empty(t, ws.Doctors.List())
	assert.Empty(t, ws.Rooms.List())
	assert.Empty(t, ws.Appointments.List())
}

func TestLoadEachReportsPerKind(t *testing.T) {
	f := newFixture()
	ws := f.workspace()
	ws.Rooms.Replace([]models.Room{{ID: 9, Number: "900"}})
	f.rooms.err = errors.New("timeout")

	errs := ws.LoadEach(context.Background())

	require.Len(t, errs, 1)
	assert.Error(t, errs[KindRooms])
	assert.Len(t, ws.Patients.List(), 1)
	assert.Len(t, ws.Doctors.List(), 1)
	assert.Len(t, ws.Appointments.List(), 1)
	assert.Equal(t, []models.Room{{ID: 9, Number: "900"}}, ws.Rooms.List())
}

func TestSelectReference(t *testing.T) {
	f := newFixture()
	ws := f.workspace()
	require.NoError(t, ws.Load(context.Background()))
	ws.Appointments.Open(nil)

	require.NoError(t, ws.SelectReference(RefPatient, 1))
	require.NoError(t, ws.SelectReference(RefDoctor, 2))
	require.NoError(t, ws.SelectReference(RefRoom, 3))

	draft, ok := ws.Appointments.Draft()
	require.True(t, ok)
	require.NotNil(t, draft.Patient)
	assert.Equal(t, "Ana Ruiz", draft.Patient.FullName())
	assert.Equal(t, "Cardiología", draft.Doctor.Specialty)
	assert.Equal(t, "101 - Piso 1", draft.Room.Label())

	require.NoError(t, ws.SelectReference(RefRoom, 0))
	draft, _ = ws.Appointments.Draft()
	assert.Nil(t, draft.Room)
	assert.NotNil(t, draft.Patient)
}

func TestSelectReferenceErrors(t *testing.T) {
	f := newFixture()
	ws := f.workspace()
	require.NoError(t, ws.Load(context.Background()))

	assert.ErrorIs(t, ws.SelectReference(RefPatient, 1), session.ErrNoDraft)

	ws.Appointments.Open(nil)
	assert.ErrorIs(t, ws.SelectReference(RefPatient, 99), ErrReferenceNotFound)
	assert.ErrorIs(t, ws.SelectReference("sala", 1), session.ErrUnknownField)

	draft, _ := ws.Appointments.Draft()
	assert.Nil(t, draft.Patient)
}

func TestSaveAppointmentSendsSelection(t *testing.T) {
	f := newFixture()
	ws := f.workspace()
	require.NoError(t, ws.Load(context.Background()))

	ws.Appointments.Open(nil)
	require.NoError(t, ws.Appointments.Set("fecha", "2024-03-01"))
	require.NoError(t, ws.Appointments.Set("hora", "09:30"))
	require.NoError(t, ws.SelectReference(RefPatient, 1))
	require.NoError(t, ws.Appointments.Save(context.Background()))

	require.Len(t, f.appointments.created, 1)
	got := f.appointments.created[0]
	assert.Equal(t, "2024-03-01", got.Date.String())
	assert.Equal(t, "09:30:00", got.Time.String())
	assert.Equal(t, uint(1), got.Patient.ID)
	assert.Nil(t, got.Doctor)
	require.Len(t, f.notes, 1)
	assert.Equal(t, "Cita creada", f.notes[0].Detail)
}

func TestRoomFloorFromText(t *testing.T) {
	s := RoomSchema()
	f, ok := s.Field("piso")
	require.True(t, ok)

	var r models.Room
	require.NoError(t, f.Set(&r, " 3 "))
	assert.Equal(t, 3, r.Floor)
	assert.Equal(t, "3", f.Get(r))

	require.NoError(t, f.Set(&r, ""))
	assert.Zero(t, r.Floor)

	assert.Error(t, f.Set(&r, "tercero"))
}

func TestPatientBirthDateField(t *testing.T) {
	s := PatientSchema()
	f, ok := s.Field("fechaNacimiento")
	require.True(t, ok)

	var p models.Patient
	require.NoError(t, f.Set(&p, "1990-05-12"))
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC), p.BirthDate.Time())
	assert.Equal(t, "1990-05-12", f.Get(p))

	require.NoError(t, f.Set(&p, ""))
	assert.Nil(t, p.BirthDate)
	assert.Equal(t, "", f.Get(p))
}

func TestSchemasCoverEveryKind(t *testing.T) {
	assert.Equal(t, []string{"pacientes", "medicos", "consultorios", "citas"}, Kinds)
	assert.Equal(t, "/api/citas", AppointmentSchema().Path)
	assert.NotNil(t, AppointmentSchema().Encode)
	assert.Nil(t, PatientSchema().Encode)
}
