package laudo

import (
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/interface/api/rest/validator"
)

// ToResponseLaudo resolves attachment URLs when urls is not nil.
func ToResponseLaudo(l laudo.Laudo, urls ports.AttachmentURLs) Laudo {
	attachments := l.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	out := Laudo{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Diagnosis:   l.Diagnosis,
		ExamDate:    l.ExamDate,
		Attachments: attachments,
		PatientID:   l.PatientID,
		Patient:     PatientSummary{ID: l.PatientID, Name: l.PatientName, Email: l.PatientEmail},
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if urls != nil && len(attachments) > 0 {
		out.AttachmentURLs = urls.GetPublicURLs(attachments)
	}

	return out
}

func ToResponseLaudos(ls laudo.Laudos, urls ports.AttachmentURLs) Laudos {
	out := make(Laudos, len(ls))
	for idx, l := range ls {
		out[idx] = ToResponseLaudo(*l, urls)
	}

	return out
}

func ToDomainNew(r CreateRequest) (laudo.New, error) {
	d, err := validator.ParseDate(r.ExamDate)
	if err != nil {
		return laudo.New{}, err
	}

	return laudo.New{
		Title:       r.Title,
		Description: r.Description,
		Diagnosis:   r.Diagnosis,
		ExamDate:    d,
		Attachments: r.Attachments,
		PatientID:   r.PatientID,
	}, nil
}
