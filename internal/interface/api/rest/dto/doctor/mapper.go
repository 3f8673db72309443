package doctor

import (
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/user"
)

func ToResponseDoctor(d doctor.Doctor) Doctor {
	return Doctor{
		ID:           d.ID,
		UserID:       d.UserID,
		CRM:          d.CRM,
		Speciality:   d.Speciality,
		Role:         string(d.Role),
		Active:       d.Active,
		User:         UserSummary{Name: d.Name, Email: d.Email},
		PatientCount: d.PatientCount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ToResponseDoctors(ds doctor.Doctors) Doctors {
	out := make(Doctors, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseDoctor(*d)
	}

	return out
}

func ToDomainInput(r CreateRequest) ports.DoctorInput {
	return ports.DoctorInput{
		Name:       r.Name,
		Email:      r.Email,
		Password:   r.Password,
		CRM:        r.CRM,
		Speciality: r.Speciality,
		Role:       r.Role,
	}
}

func ToDomainPatch(r UpdateRequest) doctor.Patch {
	p := doctor.Patch{
		Name:       r.Name,
		Email:      r.Email,
		CRM:        r.CRM,
		Speciality: r.Speciality,
	}
	if r.Role != nil {
		role := user.Role(*r.Role)
		p.Role = &role
	}

	return p
}
