package patient

import (
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/patient"
	"laudos-api/internal/interface/api/rest/validator"
)

func ToResponsePatient(p patient.Patient) Patient {
	return Patient{
		ID:         p.ID,
		UserID:     p.UserID,
		CPF:        p.CPF,
		BirthDate:  p.BirthDate,
		Phone:      p.Phone,
		Address:    p.Address,
		Active:     p.Active,
		DoctorID:   p.DoctorID,
		User:       UserSummary{Name: p.Name, Email: p.Email},
		Doctor:     DoctorSummary{ID: p.DoctorID, Name: p.DoctorName},
		LaudoCount: p.LaudoCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func ToResponsePatients(ps patient.Patients) Patients {
	out := make(Patients, len(ps))
	for idx, p := range ps {
		out[idx] = ToResponsePatient(*p)
	}

	return out
}

// ToDomainInput expects a request that already passed validation.
func ToDomainInput(r CreateRequest) (ports.PatientInput, error) {
	d, err := validator.ParseDate(r.BirthDate)
	if err != nil {
		return ports.PatientInput{}, err
	}

	return ports.PatientInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		CPF:       r.CPF,
		BirthDate: d,
		Phone:     r.Phone,
		Address:   r.Address,
	}, nil
}

func ToDomainPatch(r UpdateRequest) (patient.Patch, error) {
	p := patient.Patch{
		Name:    r.Name,
		Email:   r.Email,
		CPF:     r.CPF,
		Phone:   r.Phone,
		Address: r.Address,
	}
	if r.BirthDate != nil {
		d, err := validator.ParseDate(*r.BirthDate)
		if err != nil {
			return patient.Patch{}, err
		}
		p.BirthDate = &d
	}

	return p, nil
}
