package laudo

import (
	domain "laudos-api/internal/domain/laudo"
	"laudos-api/internal/infrastructure/db/models"
)

func fromDBModel(m *models.Laudo) *domain.Laudo {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return &domain.Laudo{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Diagnosis:   m.Diagnosis,
		ExamDate:    m.ExamDate,
		Attachments: attachments,
		PatientID:   m.PatientID,

		PatientName:  m.Patient.User.Name,
		PatientEmail: m.Patient.User.Email,
		DoctorID:     m.Patient.DoctorID,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDBModels(ms []models.Laudo) domain.Laudos {
	ls := make(domain.Laudos, len(ms))
	for idx := range ms {
		ls[idx] = fromDBModel(&ms[idx])
	}

	return ls
}
