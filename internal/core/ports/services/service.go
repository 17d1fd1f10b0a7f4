package services

// ServiceContainer holds all service interfaces needed by the handlers.
type ServiceContainer struct {
	Chart      ChartSvcFacade
	Importer   ChartImporterSvc
	FiscalYear FiscalYearSvcFacade
	Tiers      TiersSvcFacade
}
