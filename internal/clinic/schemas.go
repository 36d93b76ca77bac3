// Package clinic wires the four clinic collections (patients, doctors,
// consultation rooms and appointments) into edit sessions.
package clinic

import (
	"fmt"
	"strconv"
	"strings"

	"clinic-admin/internal/models"
	"clinic-admin/internal/reconcile"
	"clinic-admin/internal/session"
)

const (
	KindPatients     = "pacientes"
	KindDoctors      = "medicos"
	KindRooms        = "consultorios"
	KindAppointments = "citas"
)

// Kinds lists every collection in display order.
var Kinds = []string{KindPatients, KindDoctors, KindRooms, KindAppointments}

func apiPath(kind string) string {
	return "/api/" + kind
}

func PatientSchema() session.Schema[models.Patient] {
	return session.Schema[models.Patient]{
		Kind: KindPatients,
		Path: apiPath(KindPatients),
		Messages: reconcile.Messages{
			Created:    "Paciente creado",
			Updated:    "Paciente actualizado",
			Deleted:    "Paciente eliminado",
			Confirm:    "¿Eliminar este paciente?",
			LoadFailed: "No se pudieron cargar los pacientes",
		},
		ID:    models.Patient.RecordID,
		Blank: func() models.Patient { return models.Patient{} },
		Clone: models.Patient.Clone,
		Fields: []session.Field[models.Patient]{
			textField("nombre", "Nombre", func(p *models.Patient) *string { return &p.FirstName }),
			textField("apellido", "Apellido", func(p *models.Patient) *string { return &p.LastName }),
			{
				Name:  "fechaNacimiento",
				Label: "Fecha Nacimiento",
				Set: func(p *models.Patient, v string) error {
					d, err := parseOptionalDate(v)
					if err != nil {
						return err
					}
					p.BirthDate = d
					return nil
				},
				Get: func(p models.Patient) string { return formatDate(p.BirthDate) },
			},
			textField("email", "Email", func(p *models.Patient) *string { return &p.Email }),
		},
	}
}

func DoctorSchema() session.Schema[models.Doctor] {
	return session.Schema[models.Doctor]{
		Kind: KindDoctors,
		Path: apiPath(KindDoctors),
		Messages: reconcile.Messages{
			Created:    "Médico creado",
			Updated:    "Médico actualizado",
			Deleted:    "Médico eliminado",
			Confirm:    "¿Eliminar este médico?",
			LoadFailed: "No se pudieron cargar los médicos",
		},
		ID:    models.Doctor.RecordID,
		Blank: func() models.Doctor { return models.Doctor{} },
		Clone: models.Doctor.Clone,
		Fields: []session.Field[models.Doctor]{
			textField("nombre", "Nombre", func(d *models.Doctor) *string { return &d.FirstName }),
			textField("apellido", "Apellido", func(d *models.Doctor) *string { return &d.LastName }),
			textField("especialidad", "Especialidad", func(d *models.Doctor) *string { return &d.Specialty }),
		},
	}
}

func RoomSchema() session.Schema[models.Room] {
	return session.Schema[models.Room]{
		Kind: KindRooms,
		Path: apiPath(KindRooms),
		Messages: reconcile.Messages{
			Created:    "Consultorio creado",
			Updated:    "Consultorio actualizado",
			Deleted:    "Consultorio eliminado",
			Confirm:    "¿Eliminar este consultorio?",
			LoadFailed: "No se pudieron cargar los consultorios",
		},
		ID:    models.Room.RecordID,
		Blank: func() models.Room { return models.Room{} },
		Clone: models.Room.Clone,
		Fields: []session.Field[models.Room]{
			textField("numero", "Número", func(r *models.Room) *string { return &r.Number }),
			{
				Name:  "piso",
				Label: "Piso",
				// the dialog hands the floor over as text
				Set: func(r *models.Room, v string) error {
					v = strings.TrimSpace(v)
					if v == "" {
						r.Floor = 0
						return nil
					}
					n, err := strconv.Atoi(v)
					if err != nil {
						return fmt.Errorf("piso must be an integer: %w", err)
					}
					r.Floor = n
					return nil
				},
				Get: func(r models.Room) string { return strconv.Itoa(r.Floor) },
			},
		},
	}
}

// AppointmentSchema covers the scalar fields only. Patient, doctor and room
// are chosen through Workspace so they always come from the loaded lists.
func AppointmentSchema() session.Schema[models.Appointment] {
	return session.Schema[models.Appointment]{
		Kind: KindAppointments,
		Path: apiPath(KindAppointments),
		Messages: reconcile.Messages{
			Created:    "Cita creada",
			Updated:    "Cita actualizada",
			Deleted:    "Cita eliminada",
			Confirm:    "¿Eliminar esta cita?",
			LoadFailed: "No se pudieron cargar las citas",
		},
		ID:     models.Appointment.RecordID,
		Blank:  func() models.Appointment { return models.Appointment{} },
		Clone:  models.Appointment.Clone,
		Encode: func(a models.Appointment) interface{} { return a.Request() },
		Fields: []session.Field[models.Appointment]{
			{
				Name:  "fecha",
				Label: "Fecha",
				Set: func(a *models.Appointment, v string) error {
					d, err := parseOptionalDate(v)
					if err != nil {
						return err
					}
					a.Date = d
					return nil
				},
				Get: func(a models.Appointment) string { return formatDate(a.Date) },
			},
			{
				Name:  "hora",
				Label: "Hora",
				Set: func(a *models.Appointment, v string) error {
					if strings.TrimSpace(v) == "" {
						a.Time = nil
						return nil
					}
					t, err := models.ParseTime(v)
					if err != nil {
						return err
					}
					a.Time = &t
					return nil
				},
				Get: func(a models.Appointment) string {
					if a.Time == nil {
						return ""
					}
					return a.Time.String()
				},
			},
		},
	}
}

func textField[T any](name, label string, ref func(*T) *string) session.Field[T] {
	return session.Field[T]{
		Name:  name,
		Label: label,
		Set: func(r *T, v string) error {
			*ref(r) = v
			return nil
		},
		Get: func(r T) string { return *ref(&r) },
	}
}

func parseOptionalDate(v string) (*models.Date, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
