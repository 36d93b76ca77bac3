package service

import (
	"context"
	"fmt"

	"clinic-admin/internal/models"

	"github.com/rs/zerolog"
)

// Checker reports whether a referenced record exists.
type Checker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

func NewPatientService(repo Repository[models.Patient], audit AuditRecorder, logger zerolog.Logger) *RecordService[models.Patient] {
	return NewRecordService("pacientes", repo, audit, logger, func(p *models.Patient, id uint) { p.ID = id })
}

func NewDoctorService(repo Repository[models.Doctor], audit AuditRecorder, logger zerolog.Logger) *RecordService[models.Doctor] {
	return NewRecordService("medicos", repo, audit, logger, func(d *models.Doctor, id uint) { d.ID = id })
}

func NewRoomService(repo Repository[models.Room], audit AuditRecorder, logger zerolog.Logger) *RecordService[models.Room] {
	return NewRecordService("consultorios", repo, audit, logger, func(r *models.Room, id uint) { r.ID = id })
}

// NewAppointmentService rejects appointments pointing at patients, doctors
// or rooms that do not exist.
func NewAppointmentService(
	repo Repository[models.Appointment],
	patients, doctors, rooms Checker,
	audit AuditRecorder,
	logger zerolog.Logger,
) *RecordService[models.Appointment] {
	s := NewRecordService("citas", repo, audit, logger, func(a *models.Appointment, id uint) { a.ID = id })
	s.validate = func(ctx context.Context, a *models.Appointment) error {
		refs := []struct {
			name    string
			id      *uint
			checker Checker
		}{
			{"paciente", a.PatientID, patients},
			{"medico", a.DoctorID, doctors},
			{"consultorio", a.RoomID, rooms},
		}
		for _, ref := range refs {
			if ref.id == nil {
				continue
			}
			ok, err := ref.checker.Exists(ctx, *ref.id)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", ref.name, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s %d does not exist", ErrInvalidReference, ref.name, *ref.id)
			}
		}
		return nil
	}
	return s
}
