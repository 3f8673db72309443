package laudo

type CreateRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=10"`
	Diagnosis   string   `json:"diagnosis" validate:"required,min=10"`
	ExamDate    string   `json:"examDate" validate:"required,date"`
	PatientID   string   `json:"patientId" validate:"required"`
	Attachments []string `json:"attachments" validate:"omitempty,dive,required"`
}
