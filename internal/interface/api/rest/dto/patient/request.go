package patient

type (
	CreateRequest struct {
		Name      string  `json:"name" validate:"required,min=2"`
		Email     string  `json:"email" validate:"required,email"`
		Password  string  `json:"password" validate:"required,password"`
		CPF       string  `json:"cpf" validate:"required,len=11,numeric"`
		BirthDate string  `json:"birthDate" validate:"required,date"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
	}

	UpdateRequest struct {
		Name      *string `json:"name" validate:"omitempty,min=2"`
		Email     *string `json:"email" validate:"omitempty,email"`
		CPF       *string `json:"cpf" validate:"omitempty,len=11,numeric"`
		BirthDate *string `json:"birthDate" validate:"omitempty,date"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
	}
)
