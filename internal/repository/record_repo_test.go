package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"clinic-admin/internal/database"
	"clinic-admin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), "test", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPatientRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepo(newTestDB(t))

	birth := models.NewDate(1990, time.May, 12)
	p := &models.Patient{FirstName: "Ana", LastName: "Ruiz", BirthDate: &birth, Email: "ana@example.com"}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "1990-05-12", got.BirthDate.String())

	got.Email = "ana@clinica.test"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@clinica.test", list[0].Email)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestListIsOrderedAndNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepo(newTestDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, n := range []string{"101", "102", "201"} {
		require.NoError(t, repo.Create(ctx, &models.Room{Number: n, Floor: int(n[0] - '0')}))
	}
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "101", list[0].Number)
	assert.Equal(t, 2, list[2].Floor)
}

func TestAppointmentRepoPreloadsReferences(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	patients := NewPatientRepo(db)
	rooms := NewRoomRepo(db)
	appointments := NewAppointmentRepo(db)

	p := &models.Patient{FirstName: "Ana", LastName: "Ruiz"}
	require.NoError(t, patients.Create(ctx, p))
	r := &models.Room{Number: "101", Floor: 1}
	require.NoError(t, rooms.Create(ctx, r))

	date := models.NewDate(2024, time.March, 1)
	clock := models.NewTime(9, 30, 0)
	a := &models.Appointment{Date: &date, Time: &clock}
	models.AppointmentRequest{
		Patient: &models.Ref{ID: p.ID},
		Room:    &models.Ref{ID: r.ID},
		Date:    &date,
		Time:    &clock,
	}.Apply(a)
	require.NoError(t, appointments.Create(ctx, a))

	got, err := appointments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Patient)
	assert.Equal(t, "Ana Ruiz", got.Patient.FullName())
	require.NotNil(t, got.Room)
	assert.Equal(t, "101 - Piso 1", got.Room.Label())
	assert.Nil(t, got.Doctor)
	assert.Equal(t, "2024-03-01", got.Date.String())
	assert.Equal(t, "09:30:00", got.Time.String())
}

func TestCreateDoesNotWriteAssociations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	appointments := NewAppointmentRepo(db)

	a := &models.Appointment{Patient: &models.Patient{FirstName: "Ana", LastName: "Ruiz"}}
	require.NoError(t, appointments.Create(ctx, a))

	list, err := NewPatientRepo(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepo(newTestDB(t))

	d := &models.Doctor{FirstName: "Luis", LastName: "Paz", Specialty: "Cardiología"}
	require.NoError(t, repo.Create(ctx, d))

	ok, err := repo.Exists(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, d.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuditRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepo(newTestDB(t))

	require.NoError(t, repo.CreateAuditLog(ctx, "admin", "pacientes_create", "create pacientes id=1"))
	require.NoError(t, repo.CreateAuditLog(ctx, "admin", "pacientes_delete", "delete pacientes id=1"))

	logs, err := repo.ListAuditLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "pacientes_delete", logs[0].Action)
	assert.Equal(t, "admin", logs[1].Subject)
}

func TestPruneAuditLogs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAuditRepo(db)

	old := &models.AuditLog{Subject: "admin", Action: "citas_delete", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, repo.CreateAuditLog(ctx, "admin", "citas_create", "create citas id=2"))

	n, err := repo.PruneAuditLogs(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	logs, err := repo.ListAuditLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "citas_create", logs[0].Action)
}

func TestDeletingReferencedRecordNullsAppointmentReference(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	patients := NewPatientRepo(db)
	doctors := NewDoctorRepo(db)
	appointments := NewAppointmentRepo(db)

	p := &models.Patient{FirstName: "Ana", LastName: "Ruiz"}
	require.NoError(t, patients.Create(ctx, p))
	d := &models.Doctor{FirstName: "Luis", LastName: "Paz"}
	require.NoError(t, doctors.Create(ctx, d))

	a := &models.Appointment{}
	models.AppointmentRequest{Patient: &models.Ref{ID: p.ID}, Doctor: &models.Ref{ID: d.ID}}.Apply(a)
	require.NoError(t, appointments.Create(ctx, a))

	require.NoError(t, patients.Delete(ctx, p.ID))

	var patientID sql.NullInt64
	require.NoError(t, db.Raw("SELECT paciente_id FROM citas WHERE id = ?", a.ID).Row().Scan(&patientID))
	assert.False(t, patientID.Valid)

	got, err := appointments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Patient)
	require.NotNil(t, got.Doctor)
	assert.Equal(t, d.ID, got.Doctor.ID)
}

func TestAppointmentWithUnknownReferenceIsRejected(t *testing.T) {
	ctx := context.Background()
	appointments := NewAppointmentRepo(newTestDB(t))

	a := &models.Appointment{}
	models.AppointmentRequest{Room: &models.Ref{ID: 42}}.Apply(a)
	assert.Error(t, appointments.Create(ctx, a))
}
