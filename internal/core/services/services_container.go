package services

import (
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Chart = NewChartService(repos.ChartRepo)
	container.Importer = NewChartImporterService(repos.ChartRepo)
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo)
	// Tiers validation needs chart access to resolve the linked account.
	container.Tiers = NewTiersService(repos.TiersRepo, repos.ChartRepo)

	return container
}
