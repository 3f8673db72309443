package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth    = RouteApi + "/auth"
	RouteLogin   = RouteAuth + "/login"
	RouteSession = RouteAuth + "/session"

	RouteDoctors = RouteApi + "/doctors"
	RouteDoctor  = RouteDoctors + "/:id"

	RoutePatients = RouteApi + "/patients"
	RoutePatient  = RoutePatients + "/:id"

	RouteLaudos = RouteApi + "/laudos"

	RouteAdmin      = RouteApi + "/admin"
	RouteDownloadDB = RouteAdmin + "/download-db"

	RouteSeed      = RouteApi + "/seed"
	RouteDashboard = RouteApi + "/dashboard"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
