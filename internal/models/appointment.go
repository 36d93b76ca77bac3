package models

// Appointment books a patient with a doctor in a room at a date and time.
// References are nullable; the server keeps them consistent.
type Appointment struct {
	ID        uint     `gorm:"primaryKey" json:"id,omitempty"`
	Date      *Date    `gorm:"column:fecha" json:"fecha"`
	Time      *Time    `gorm:"column:hora" json:"hora"`
	PatientID *uint    `gorm:"column:paciente_id;index" json:"-"`
	Patient   *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:SET NULL" json:"paciente"`
	DoctorID  *uint    `gorm:"column:medico_id;index" json:"-"`
	Doctor    *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"medico"`
	RoomID    *uint    `gorm:"column:consultorio_id;index" json:"-"`
	Room      *Room    `gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL" json:"consultorio"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "citas"
}

func (a Appointment) RecordID() uint {
	return a.ID
}

func (a Appointment) Clone() Appointment {
	c := a
	if a.Date != nil {
		d := *a.Date
		c.Date = &d
	}
	if a.Time != nil {
		t := *a.Time
		c.Time = &t
	}
	c.PatientID = cloneID(a.PatientID)
	c.DoctorID = cloneID(a.DoctorID)
	c.RoomID = cloneID(a.RoomID)
	if a.Patient != nil {
		p := a.Patient.Clone()
		c.Patient = &p
	}
	if a.Doctor != nil {
		d := a.Doctor.Clone()
		c.Doctor = &d
	}
	if a.Room != nil {
		r := a.Room.Clone()
		c.Room = &r
	}
	return c
}

// Request builds the body the API expects on create and update: references
// are sent by id only.
func (a Appointment) Request() AppointmentRequest {
	req := AppointmentRequest{Date: a.Date, Time: a.Time}
	if a.Patient != nil {
		req.Patient = &Ref{ID: a.Patient.ID}
	}
	if a.Doctor != nil {
		req.Doctor = &Ref{ID: a.Doctor.ID}
	}
	if a.Room != nil {
		req.Room = &Ref{ID: a.Room.ID}
	}
	return req
}

// AppointmentRequest is the write shape of an appointment
type AppointmentRequest struct {
	Patient *Ref  `json:"paciente"`
	Doctor  *Ref  `json:"medico"`
	Room    *Ref  `json:"consultorio"`
	Date    *Date `json:"fecha"`
	Time    *Time `json:"hora"`
}

// Apply copies the request onto a, replacing its references by id.
func (r AppointmentRequest) Apply(a *Appointment) {
	a.Date = r.Date
	a.Time = r.Time
	a.PatientID = refID(r.Patient)
	a.DoctorID = refID(r.Doctor)
	a.RoomID = refID(r.Room)
	a.Patient, a.Doctor, a.Room = nil, nil, nil
}

func refID(r *Ref) *uint {
	if r == nil || r.ID == 0 {
		return nil
	}
	id := r.ID
	return &id
}

func cloneID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
