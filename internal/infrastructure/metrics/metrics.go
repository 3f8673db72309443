package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter labels. Keep the set closed so cardinality stays fixed.
const (
	RequestsTotal      = "app_requests_total"
	LoginSuccess       = "login_success_total"
	LoginFailed        = "login_failed_total"
	LoginDisabled      = "login_disabled_total"
	LoginRateLimited   = "login_rate_limited_total"
	DoctorCreated      = "doctor_created_total"
	DoctorUpdated      = "doctor_updated_total"
	DoctorDeactivated  = "doctor_deactivated_total"
	DoctorReactivated  = "doctor_reactivated_total"
	PatientCreated     = "patient_created_total"
	PatientUpdated     = "patient_updated_total"
	PatientDeactivated = "patient_deactivated_total"
	PatientReactivated = "patient_reactivated_total"
	LaudoCreated       = "laudo_created_total"
	BackupDownloaded   = "backup_downloaded_total"
	EventsDropped      = "events_dropped_total"
)

// NewCounter registers on reg; a nil reg yields an unregistered counter for tests.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laudos",
			Name:      "general_counters",
		},
		[]string{"result"})
}
