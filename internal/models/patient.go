package models

// Patient is a person registered at the clinic
type Patient struct {
	ID        uint   `gorm:"primaryKey" json:"id,omitempty"`
	FirstName string `gorm:"column:nombre;size:100;not null" json:"nombre" binding:"required"`
	LastName  string `gorm:"column:apellido;size:100;not null" json:"apellido" binding:"required"`
	BirthDate *Date  `gorm:"column:fecha_nacimiento" json:"fechaNacimiento"`
	Email     string `gorm:"size:255" json:"email"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "pacientes"
}

func (p Patient) RecordID() uint {
	return p.ID
}

// FullName is the "nombre apellido" label used in tables and pickers.
func (p Patient) FullName() string {
	return joinName(p.FirstName, p.LastName)
}

// Clone returns a copy of p that shares no pointers with it.
func (p Patient) Clone() Patient {
	c := p
	if p.BirthDate != nil {
		d := *p.BirthDate
		c.BirthDate = &d
	}
	return c
}
