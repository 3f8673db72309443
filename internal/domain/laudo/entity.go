package laudo

import (
	"time"
)

type (
	Laudo struct {
		ID          string
		Title       string
		Description string
		Diagnosis   string
		ExamDate    time.Time
		Attachments []string
		PatientID   string

		PatientName  string
		PatientEmail string
		DoctorID     string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Laudos []*Laudo

	New struct {
		Title       string
		Description string
		Diagnosis   string
		ExamDate    time.Time
		Attachments []string
		PatientID   string
	}

	// Filter combines the caller scope with the optional patient filter.
	// Empty fields do not constrain the result.
	Filter struct {
		DoctorID  string
		PatientID string
	}
)
