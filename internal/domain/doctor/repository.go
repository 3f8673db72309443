package doctor

import (
	"context"
)

type Repository interface {
	FetchDoctors(ctx context.Context, f Filter) (Doctors, error)
	FetchDoctorByID(ctx context.Context, id string) (*Doctor, error)
	FetchDoctorByEmail(ctx context.Context, email string) (*Doctor, error)
	CreateDoctor(ctx context.Context, req New) (*Doctor, error)
	UpdateDoctor(ctx context.Context, id string, p Patch) (*Doctor, error)
	SetDoctorActive(ctx context.Context, id string, active bool) (*Doctor, error)
}
