// Package models maps the four persisted entities. Table and column names
// match the exported backup files, so they are camelCase and must be quoted
// in raw SQL fragments.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	User struct {
		ID        string    `gorm:"column:id;primaryKey"`
		Email     string    `gorm:"column:email;not null;uniqueIndex:User_email_key"`
		Name      string    `gorm:"column:name;not null"`
		Password  string    `gorm:"column:password;not null"`
		UserType  string    `gorm:"column:userType;not null"`
		CreatedAt time.Time `gorm:"column:createdAt"`
		UpdatedAt time.Time `gorm:"column:updatedAt"`
	}

	Doctor struct {
		ID         string    `gorm:"column:id;primaryKey"`
		UserID     string    `gorm:"column:userId;not null;uniqueIndex:Doctor_userId_key"`
		CRM        string    `gorm:"column:crm;not null;uniqueIndex:Doctor_crm_key"`
		Speciality string    `gorm:"column:speciality;not null"`
		Role       string    `gorm:"column:role;not null;default:DOCTOR"`
		Active     bool      `gorm:"column:active;not null;default:true"`
		CreatedAt  time.Time `gorm:"column:createdAt"`
		UpdatedAt  time.Time `gorm:"column:updatedAt"`

		User User `gorm:"foreignKey:UserID;references:ID"`

		PatientCount int64 `gorm:"column:patientCount;->;-:migration"`
	}

	Patient struct {
		ID        string    `gorm:"column:id;primaryKey"`
		UserID    string    `gorm:"column:userId;not null;uniqueIndex:Patient_userId_key"`
		CPF       string    `gorm:"column:cpf;not null;uniqueIndex:Patient_cpf_key"`
		BirthDate time.Time `gorm:"column:birthDate;not null"`
		Phone     *string   `gorm:"column:phone"`
		Address   *string   `gorm:"column:address"`
		Active    bool      `gorm:"column:active;not null;default:true"`
		DoctorID  string    `gorm:"column:doctorId;not null;index"`
		CreatedAt time.Time `gorm:"column:createdAt"`
		UpdatedAt time.Time `gorm:"column:updatedAt"`

		User   User   `gorm:"foreignKey:UserID;references:ID"`
		Doctor Doctor `gorm:"foreignKey:DoctorID;references:ID"`

		LaudoCount int64 `gorm:"column:laudoCount;->;-:migration"`
	}

	Laudo struct {
		ID          string    `gorm:"column:id;primaryKey"`
		Title       string    `gorm:"column:title;not null"`
		Description string    `gorm:"column:description;not null"`
		Diagnosis   string    `gorm:"column:diagnosis;not null"`
		ExamDate    time.Time `gorm:"column:examDate;not null"`
		Attachments []string  `gorm:"column:attachments;type:text;serializer:json"`
		PatientID   string    `gorm:"column:patientId;not null;index"`
		CreatedAt   time.Time `gorm:"column:createdAt"`
		UpdatedAt   time.Time `gorm:"column:updatedAt"`

		Patient Patient `gorm:"foreignKey:PatientID;references:ID"`
	}
)

func (User) TableName() string    { return "User" }
func (Doctor) TableName() string  { return "Doctor" }
func (Patient) TableName() string { return "Patient" }
func (Laudo) TableName() string   { return "Laudo" }

func (m *User) BeforeCreate(*gorm.DB) error    { m.ID = newID(m.ID); return nil }
func (m *Doctor) BeforeCreate(*gorm.DB) error  { m.ID = newID(m.ID); return nil }
func (m *Patient) BeforeCreate(*gorm.DB) error { m.ID = newID(m.ID); return nil }

func (m *Laudo) BeforeCreate(*gorm.DB) error {
	m.ID = newID(m.ID)
	// stored as "[]" rather than "null" so older readers can parse it
	if m.Attachments == nil {
		m.Attachments = []string{}
	}
	return nil
}

// All lists the models in dependency order for migrations.
func All() []any {
	return []any{&User{}, &Doctor{}, &Patient{}, &Laudo{}}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
