package services

import (
	"context"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	"github.com/plancompta/ohada_chart_app/internal/dto"
)

// ChartReaderSvc defines read operations over the chart of accounts.
type ChartReaderSvc interface {
	ListClasses(ctx context.Context, tenantID string) ([]domain.AccountClass, error)
	GetClassByNumber(ctx context.Context, tenantID string, number int) (*domain.AccountClass, error)
	ListCategories(ctx context.Context, tenantID string, classID string) ([]domain.AccountCategory, error)
	GetCategoryByCode(ctx context.Context, tenantID string, code string) (*domain.AccountCategory, error)
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)
	// ClassifyCode previews the engine output for one code without persisting anything.
	ClassifyCode(ctx context.Context, code string) (dto.ClassificationResponse, error)
}

// ChartWriterSvc defines single-account write operations.
type ChartWriterSvc interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, tenantID string, accountID string) error
}

// ChartSvcFacade combines chart read and write service operations.
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
