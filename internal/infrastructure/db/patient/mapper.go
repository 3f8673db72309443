package patient

import (
	domain "laudos-api/internal/domain/patient"
	"laudos-api/internal/infrastructure/db/models"
)

func fromDBModel(m *models.Patient) *domain.Patient {
	return &domain.Patient{
		ID:        m.ID,
		UserID:    m.UserID,
		CPF:       m.CPF,
		BirthDate: m.BirthDate,
		Phone:     m.Phone,
		Address:   m.Address,
		Active:    m.Active,
		DoctorID:  m.DoctorID,

		Name:       m.User.Name,
		Email:      m.User.Email,
		DoctorName: m.Doctor.User.Name,

		LaudoCount: m.LaudoCount,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDBModels(ms []models.Patient) domain.Patients {
	ps := make(domain.Patients, len(ms))
	for idx := range ms {
		ps[idx] = fromDBModel(&ms[idx])
	}

	return ps
}

func userUpdates(p domain.Patch) map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	return m
}

func patientUpdates(p domain.Patch) map[string]any {
	m := map[string]any{}
	if p.CPF != nil {
		m["cpf"] = *p.CPF
	}
	if p.BirthDate != nil {
		m["birthDate"] = *p.BirthDate
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Address != nil {
		m["address"] = *p.Address
	}
	return m
}
