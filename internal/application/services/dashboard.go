package services

import (
	"context"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/domain/access"
	"laudos-api/internal/domain/laudo"
	"laudos-api/internal/domain/patient"
)

const (
	SectionMain = "main"
	SectionUser = "user"
)

type DashboardService struct {
	patientRepository patient.Repository
	laudoRepository   laudo.Repository
}

func NewDashboardService(patientRepository patient.Repository, laudoRepository laudo.Repository) ports.DashboardService {
	return &DashboardService{
		patientRepository: patientRepository,
		laudoRepository:   laudoRepository,
	}
}

func (ds *DashboardService) Overview(ctx context.Context, c access.Claims) (*ports.Dashboard, error) {
	laudoScope, ok := access.ListScope(c, access.ResourceLaudo)
	if !ok {
		return nil, apperr.ErrForbidden
	}

	out := &ports.Dashboard{Menu: menuFor(c)}

	if scope, ok := access.ListScope(c, access.ResourcePatient); ok {
		f := patient.Filter{}
		if !scope.All {
			f.DoctorID = scope.DoctorID
		}
		n, err := ds.patientRepository.CountPatients(ctx, f)
		if err != nil {
			return nil, err
		}
		out.PatientCount = &n
	}

	var lf laudo.Filter
	if !laudoScope.All {
		lf.DoctorID = laudoScope.DoctorID
		lf.PatientID = laudoScope.PatientID
	}
	n, err := ds.laudoRepository.CountLaudos(ctx, lf)
	if err != nil {
		return nil, err
	}
	out.LaudoCount = n

	return out, nil
}

func menuFor(c access.Claims) []ports.MenuItem {
	menu := []ports.MenuItem{
		{Key: "dashboard", Label: "Dashboard", Path: "/dashboard", Section: SectionMain},
	}
	if c.IsDoctor() {
		menu = append(menu, ports.MenuItem{Key: "patients", Label: "Pacientes", Path: "/dashboard/patients", Section: SectionMain})
	}
	menu = append(menu, ports.MenuItem{Key: "laudos", Label: "Laudos", Path: "/dashboard/laudos", Section: SectionMain})

	if c.IsDoctor() {
		menu = append(menu, ports.MenuItem{Key: "manage-patients", Label: "Gerenciar Pacientes", Path: "/dashboard/patients", Section: SectionUser})
	}
	if c.IsAdmin() {
		menu = append(menu,
			ports.MenuItem{Key: "manage-doctors", Label: "Gerenciar Médicos", Path: "/dashboard/doctors", Section: SectionUser},
			ports.MenuItem{Key: "admin-backup", Label: "Backup", Path: "/dashboard/admin", Section: SectionUser},
		)
	}
	menu = append(menu, ports.MenuItem{Key: "logout", Label: "Sair", Section: SectionUser})

	return menu
}
