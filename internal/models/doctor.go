package models

// Doctor is a physician who attends appointments
type Doctor struct {
	ID        uint   `gorm:"primaryKey" json:"id,omitempty"`
	FirstName string `gorm:"column:nombre;size:100;not null" json:"nombre" binding:"required"`
	LastName  string `gorm:"column:apellido;size:100;not null" json:"apellido" binding:"required"`
	Specialty string `gorm:"column:especialidad;size:100" json:"especialidad"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "medicos"
}

func (d Doctor) RecordID() uint {
	return d.ID
}

func (d Doctor) FullName() string {
	return joinName(d.FirstName, d.LastName)
}

func (d Doctor) Clone() Doctor {
	return d
}
