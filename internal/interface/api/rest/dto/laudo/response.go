package laudo

import (
	"time"
)

type (
	PatientSummary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	Laudo struct {
		ID             string         `json:"id"`
		Title          string         `json:"title"`
		Description    string         `json:"description"`
		Diagnosis      string         `json:"diagnosis"`
		ExamDate       time.Time      `json:"examDate"`
		Attachments    []string       `json:"attachments"`
		AttachmentURLs []string       `json:"attachmentUrls,omitempty"`
		PatientID      string         `json:"patientId"`
		Patient        PatientSummary `json:"patient"`
		CreatedAt      time.Time      `json:"createdAt"`
		UpdatedAt      time.Time      `json:"updatedAt"`
	}
	Laudos []Laudo
)
