package doctor

import (
	domain "laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db/models"
)

func fromDBModel(m *models.Doctor) *domain.Doctor {
	return &domain.Doctor{
		ID:         m.ID,
		UserID:     m.UserID,
		CRM:        m.CRM,
		Speciality: m.Speciality,
		Role:       user.Role(m.Role),
		Active:     m.Active,

		Name:  m.User.Name,
		Email: m.User.Email,

		PatientCount: m.PatientCount,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDBModels(ms []models.Doctor) domain.Doctors {
	ds := make(domain.Doctors, len(ms))
	for idx := range ms {
		ds[idx] = fromDBModel(&ms[idx])
	}

	return ds
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

func doctorUpdates(p domain.Patch) map[string]any {
	m := map[string]any{}
	if p.CRM != nil {
		m["crm"] = *p.CRM
	}
	if p.Speciality != nil {
		m["speciality"] = *p.Speciality
	}
	if p.Role != nil {
		m["role"] = string(*p.Role)
	}
	return m
}
