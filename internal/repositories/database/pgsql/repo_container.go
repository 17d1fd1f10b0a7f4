package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	chartRepo := newPgxChartRepository(dbPool)
	fiscalYearRepo := newPgxFiscalYearRepository(dbPool)
	tiersRepo := newPgxTiersRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ChartRepo:      chartRepo,
		FiscalYearRepo: fiscalYearRepo,
		TiersRepo:      tiersRepo,
	}
}
