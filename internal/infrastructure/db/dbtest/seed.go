package dbtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/models"
)

// SeedDoctor inserts a User and an active Doctor profile and returns the doctor id.
func SeedDoctor(t *testing.T, d *db.Database, name, email, crm, role string) string {
	t.Helper()

	u := models.User{Email: email, Name: name, Password: "x", UserType: "DOCTOR"}
	require.NoError(t, d.Create(&u).Error)

	doc := models.Doctor{UserID: u.ID, CRM: crm, Speciality: "Cardiologia", Role: role, Active: true}
	require.NoError(t, d.Omit(clause.Associations).Create(&doc).Error)

	return doc.ID
}

// SeedPatient inserts a User and an active Patient owned by doctorID and returns the patient id.
func SeedPatient(t *testing.T, d *db.Database, doctorID, name, email, cpf string) string {
	t.Helper()

	u := models.User{Email: email, Name: name, Password: "x", UserType: "PATIENT"}
	require.NoError(t, d.Create(&u).Error)

	p := models.Patient{
		UserID:    u.ID,
		CPF:       cpf,
		BirthDate: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Active:    true,
		DoctorID:  doctorID,
	}
	require.NoError(t, d.Omit(clause.Associations).Create(&p).Error)

	return p.ID
}
