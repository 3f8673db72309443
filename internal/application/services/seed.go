package services

import (
	"context"

	"go.uber.org/zap"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/user"
)

// Bootstrap administrator created by SeedAdmin.
const (
	SeedAdminEmail      = "admin@medical.com"
	SeedAdminPassword   = "123456"
	SeedAdminName       = "Dr. Admin"
	SeedAdminCRM        = "12345-SP"
	SeedAdminSpeciality = "Cardiologia"
)

type SeedService struct {
	doctorRepository doctor.Repository
	logger           *zap.Logger
}

func NewSeedService(doctorRepository doctor.Repository, logger *zap.Logger) ports.SeedService {
	return &SeedService{
		doctorRepository: doctorRepository,
		logger:           logger,
	}
}

// SeedAdmin creates the bootstrap admin once. Later calls return the
// existing record with created=false.
func (ss *SeedService) SeedAdmin(ctx context.Context) (bool, *doctor.Doctor, error) {
	existing, err := ss.doctorRepository.FetchDoctorByEmail(ctx, SeedAdminEmail)
	if err != nil {
		return false, nil, err
	}
	if existing != nil {
		return false, existing, nil
	}

	hash, err := hashPassword(SeedAdminPassword)
	if err != nil {
		return false, nil, err
	}

	d, err := ss.doctorRepository.CreateDoctor(ctx, doctor.New{
		Name:         SeedAdminName,
		Email:        SeedAdminEmail,
		PasswordHash: hash,
		CRM:          SeedAdminCRM,
		Speciality:   SeedAdminSpeciality,
		Role:         user.RoleDoctorAdmin,
	})
	if err != nil {
		return false, nil, err
	}

	ss.logger.Info("seed admin created", zap.String("doctor_id", d.ID))

	return true, d, nil
}
