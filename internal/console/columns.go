// Package console renders the clinic lists and dialogs on a terminal.
package console

import (
	"strconv"

	"clinic-admin/internal/models"
)

// Column is one table column: a header and how to render a row's cell.
// Key is the field's wire name, used to pick the column to sort by. Less
// orders rows for that column; nil compares the rendered cells.
type Column[T any] struct {
	Key    string
	Header string
	Value  func(T) string
	Less   func(a, b T) bool
}

func idColumn[T models.Record]() Column[T] {
	return Column[T]{
		Key:    "id",
		Header: "ID",
		Value:  func(r T) string { return strconv.FormatUint(uint64(r.RecordID()), 10) },
		Less:   func(a, b T) bool { return a.RecordID() < b.RecordID() },
	}
}

func PatientColumns() []Column[models.Patient] {
	return []Column[models.Patient]{
		idColumn[models.Patient](),
		{Key: "nombre", Header: "Nombre", Value: func(p models.Patient) string { return p.FirstName }},
		{Key: "apellido", Header: "Apellido", Value: func(p models.Patient) string { return p.LastName }},
		{Key: "fechaNacimiento", Header: "Fecha Nacimiento", Value: func(p models.Patient) string { return DateCell(p.BirthDate) }},
		{Key: "email", Header: "Email", Value: func(p models.Patient) string { return p.Email }},
	}
}

func DoctorColumns() []Column[models.Doctor] {
	return []Column[models.Doctor]{
		idColumn[models.Doctor](),
		{Key: "nombre", Header: "Nombre", Value: func(d models.Doctor) string { return d.FirstName }},
		{Key: "apellido", Header: "Apellido", Value: func(d models.Doctor) string { return d.LastName }},
		{Key: "especialidad", Header: "Especialidad", Value: func(d models.Doctor) string { return d.Specialty }},
	}
}

func RoomColumns() []Column[models.Room] {
	return []Column[models.Room]{
		idColumn[models.Room](),
		{Key: "numero", Header: "Número", Value: func(r models.Room) string { return r.Number }},
		{
			Key:    "piso",
			Header: "Piso",
			Value:  func(r models.Room) string { return strconv.Itoa(r.Floor) },
			Less:   func(a, b models.Room) bool { return a.Floor < b.Floor },
		},
	}
}

// AppointmentColumns renders a missing reference as an empty cell, which
// sorts before any name.
func AppointmentColumns() []Column[models.Appointment] {
	return []Column[models.Appointment]{
		idColumn[models.Appointment](),
		{Key: "paciente", Header: "Paciente", Value: func(a models.Appointment) string {
			if a.Patient == nil {
				return ""
			}
			return a.Patient.FullName()
		}},
		{Key: "medico", Header: "Médico", Value: func(a models.Appointment) string {
			if a.Doctor == nil {
				return ""
			}
			return a.Doctor.FullName()
		}},
		{Key: "consultorio", Header: "Consultorio", Value: func(a models.Appointment) string {
			if a.Room == nil {
				return ""
			}
			return a.Room.Label()
		}},
		{Key: "fecha", Header: "Fecha", Value: func(a models.Appointment) string { return DateCell(a.Date) }},
		{Key: "hora", Header: "Hora", Value: func(a models.Appointment) string {
			if a.Time == nil {
				return ""
			}
			return a.Time.Short()
		}},
	}
}

func DateCell(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
