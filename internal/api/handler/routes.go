package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/insighting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clients/:id/insights/generate",
			Method:  http.MethodPost,
			Handler: GenerateClientInsights(service),
		},
		{
			Path:    "/v1/clients/:id/insights",
			Method:  http.MethodGet,
			Handler: GetClientInsights(service),
		},
		{
			Path:    "/v1/insights/:id/status",
			Method:  http.MethodPatch,
			Handler: UpdateInsightStatus(service),
		},
	}
}

func Clients(repo repository.ClientRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clients",
			Method:  http.MethodGet,
			Handler: ListClients(repo),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
