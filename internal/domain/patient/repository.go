package patient

import (
	"context"
)

type Repository interface {
	FetchPatients(ctx context.Context, f Filter) (Patients, error)
	CountPatients(ctx context.Context, f Filter) (int64, error)
	FetchPatientByID(ctx context.Context, id string) (*Patient, error)
	CreatePatient(ctx context.Context, req New) (*Patient, error)
	UpdatePatient(ctx context.Context, id string, p Patch) (*Patient, error)
	SetPatientActive(ctx context.Context, id string, active bool) (*Patient, error)
}
