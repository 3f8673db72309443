package ports

import (
	"context"
	"time"

	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/doctor"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/domain/patient"
)

type (
	AuthService interface {
		Login(ctx context.Context, email, password string) (*access.Session, error)
		Current(ctx context.Context, c access.Claims) (*access.Session, error)
	}

	DoctorService interface {
		FindDoctors(ctx context.Context, c access.Claims, f doctor.Filter, q string) (doctor.Doctors, error)
		CreateDoctor(ctx context.Context, c access.Claims, in DoctorInput) (*doctor.Doctor, error)
		UpdateDoctor(ctx context.Context, c access.Claims, id string, p doctor.Patch) (*doctor.Doctor, error)
		DeactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error)
		ReactivateDoctor(ctx context.Context, c access.Claims, id string) (*doctor.Doctor, error)
	}

	PatientService interface {
		FindPatients(ctx context.Context, c access.Claims, includeInactive bool, q string) (patient.Patients, error)
		FindPatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
		CreatePatient(ctx context.Context, c access.Claims, in PatientInput) (*patient.Patient, error)
		UpdatePatient(ctx context.Context, c access.Claims, id string, p patient.Patch) (*patient.Patient, error)
		DeactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
		ReactivatePatient(ctx context.Context, c access.Claims, id string) (*patient.Patient, error)
	}

	LaudoService interface {
		FindLaudos(ctx context.Context, c access.Claims, patientID string) (laudo.Laudos, error)
		CreateLaudo(ctx context.Context, c access.Claims, in laudo.New) (*laudo.Laudo, error)
	}

	BackupService interface {
		OpenBackup(ctx context.Context, c access.Claims) (*Backup, error)
	}

	SeedService interface {
		SeedAdmin(ctx context.Context) (created bool, d *doctor.Doctor, err error)
	}

	DashboardService interface {
		Overview(ctx context.Context, c access.Claims) (*Dashboard, error)
	}
)

type (
	// DoctorInput carries the plain password; services hash it.
	DoctorInput struct {
		Name       string
		Email      string
		Password   string
		CRM        string
		Speciality string
		Role       string
	}

	PatientInput struct {
		Name      string
		Email     string
		Password  string
		CPF       string
		BirthDate time.Time
		Phone     *string
		Address   *string
	}

	Backup struct {
		Path     string
		Filename string
		Size     int64
		// Cleanup releases a temporary snapshot; never nil.
		Cleanup func()
	}

	MenuItem struct {
		Key     string
		Label   string
		Path    string
		Section string
	}

	Dashboard struct {
		Menu         []MenuItem
		PatientCount *int64
		LaudoCount   int64
	}
)
