package session

import (
	"context"
	"sync/atomic"

	"clinic-admin/internal/models"
	"clinic-admin/internal/reconcile"
)

var _ Gateway[models.Patient] = (*fakeGateway[models.Patient])(nil)

// fakeGateway is a func-field Gateway with call counters.
type fakeGateway[T any] struct {
	ListFunc   func(ctx context.Context) ([]T, error)
	CreateFunc func(ctx context.Context, record T) (T, error)
	UpdateFunc func(ctx context.Context, id uint, record T) (T, error)
	DeleteFunc func(ctx context.Context, id uint) error

	ListCalls   int32
	CreateCalls int32
	UpdateCalls int32
	DeleteCalls int32
}

func (f *fakeGateway[T]) List(ctx context.Context) ([]T, error) {
	atomic.AddInt32(&f.ListCalls, 1)
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return []T{}, nil
}

func (f *fakeGateway[T]) Create(ctx context.Context, record T) (T, error) {
	atomic.AddInt32(&f.CreateCalls, 1)
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, record)
	}
	return record, nil
}

func (f *fakeGateway[T]) Update(ctx context.Context, id uint, record T) (T, error) {
	atomic.AddInt32(&f.UpdateCalls, 1)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, record)
	}
	return record, nil
}

func (f *fakeGateway[T]) Delete(ctx context.Context, id uint) error {
	atomic.AddInt32(&f.DeleteCalls, 1)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

// recorder collects notifications.
type recorder struct {
	got []reconcile.Notification
}

func (r *recorder) Notify(n reconcile.Notification) {
	r.got = append(r.got, n)
}

func patientSchema() Schema[models.Patient] {
	return Schema[models.Patient]{
		Kind: "pacientes",
		Path: "/api/pacientes",
		Messages: reconcile.Messages{
			Created: "Paciente creado",
			Updated: "Paciente actualizado",
			Deleted: "Paciente eliminado",
			Confirm: "¿Eliminar este paciente?",
		},
		ID:    models.Patient.RecordID,
		Blank: func() models.Patient { return models.Patient{} },
		Clone: models.Patient.Clone,
		Fields: []Field[models.Patient]{
			{
				Name: "nombre",
				Set:  func(p *models.Patient, v string) error { p.FirstName = v; return nil },
				Get:  func(p models.Patient) string { return p.FirstName },
			},
			{
				Name: "fechaNacimiento",
				Set: func(p *models.Patient, v string) error {
					d, err := models.ParseDate(v)
					if err != nil {
						return err
					}
					p.BirthDate = &d
					return nil
				},
			},
		},
	}
}

func roomSchema() Schema[models.Room] {
	return Schema[models.Room]{
		Kind:  "consultorios",
		Path:  "/api/consultorios",
		ID:    models.Room.RecordID,
		Blank: func() models.Room { return models.Room{} },
		Clone: models.Room.Clone,
		Fields: []Field[models.Room]{
			{
				Name: "numero",
				Set:  func(r *models.Room, v string) error { r.Number = v; return nil },
			},
		},
	}
}

func appointmentSchema() Schema[models.Appointment] {
	return Schema[models.Appointment]{
		Kind:   "citas",
		Path:   "/api/citas",
		ID:     models.Appointment.RecordID,
		Blank:  func() models.Appointment { return models.Appointment{} },
		Clone:  models.Appointment.Clone,
		Encode: func(a models.Appointment) interface{} { return a.Request() },
		Fields: []Field[models.Appointment]{
			{
				Name: "hora",
				Set: func(a *models.Appointment, v string) error {
					t, err := models.ParseTime(v)
					if err != nil {
						return err
					}
					a.Time = &t
					return nil
				},
			},
		},
	}
}
