package doctor

type (
	CreateRequest struct {
		Name       string `json:"name" validate:"required,min=2"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,password"`
		CRM        string `json:"crm" validate:"required,min=5"`
		Speciality string `json:"speciality" validate:"required,min=3"`
		Role       string `json:"role" validate:"omitempty,oneof=DOCTOR DOCTOR_ADMIN"`
	}

	UpdateRequest struct {
		Name       *string `json:"name" validate:"omitempty,min=2"`
		Email      *string `json:"email" validate:"omitempty,email"`
		CRM        *string `json:"crm" validate:"omitempty,min=5"`
		Speciality *string `json:"speciality" validate:"omitempty,min=3"`
		Role       *string `json:"role" validate:"omitempty,oneof=DOCTOR DOCTOR_ADMIN"`
	}
)
