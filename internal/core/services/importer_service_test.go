package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/core/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testTenantID = "0f8fad5b-d9cb-469f-a165-70867728950e"

type ImporterServiceTestSuite struct {
	suite.Suite
	mockRepo *MockChartRepository
	service  portssvc.ChartImporterSvc
	ctx      context.Context
}

func (suite *ImporterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockChartRepository)
	suite.service = services.NewChartImporterService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestImporterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImporterServiceTestSuite))
}

// expectTx wires the happy-path transaction lifecycle.
func (suite *ImporterServiceTestSuite) expectTx() {
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
}

func (suite *ImporterServiceTestSuite) TestImportChart_CreatesAndLinksParents() {
	// The child comes before its parent, and the parent code "401000" only
	// matches the child's padded ancestor "40100000".
	records := []dto.ImportRecord{
		{Code: "40100001", Label: "Fournisseur Alpha"},
		{Code: "401000", Label: "Fournisseurs"},
	}

	class4 := &domain.AccountClass{ClassID: uuid.NewString(), TenantID: testTenantID, Number: 4, Name: "Comptes de tiers"}
	cat40 := &domain.AccountCategory{CategoryID: uuid.NewString(), TenantID: testTenantID, ClassID: class4.ClassID, Code: "40"}

	suite.expectTx()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountClass) bool {
		return c.TenantID == testTenantID && c.Number == 4 && c.Name == "Comptes de tiers"
	})).Return(class4, true, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountCategory) bool {
		// No record carries the bare code "40", so the name is synthesized.
		return c.Code == "40" && c.ClassID == class4.ClassID && c.Name == "Catégorie 40"
	})).Return(cat40, true, nil).Once()

	saved := make(map[string]domain.Account)
	for _, code := range []string{"40100001", "401000"} {
		suite.mockRepo.On("FindAccountByCodeTx", suite.ctx, mock.Anything, testTenantID, code).
			Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(2).(domain.Account)
			saved[acc.Code] = acc
		}).Return(nil).Twice()

	var linkedChild, linkedParent string
	suite.mockRepo.On("SetAccountParentTx", suite.ctx, mock.Anything, testTenantID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			linkedChild = args.String(3)
			linkedParent = args.String(4)
		}).Return(nil).Once()

	summary, err := suite.service.ImportChart(suite.ctx, testTenantID, records, dto.ImportOptions{})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, summary.Processed)
	assert.Equal(suite.T(), 1, summary.ClassesCreated)
	assert.Equal(suite.T(), 1, summary.CategoriesCreated)
	assert.Equal(suite.T(), 2, summary.AccountsCreated)
	assert.Equal(suite.T(), 0, summary.AccountsUpdated)
	assert.Equal(suite.T(), 1, summary.ParentsLinked)

	child, parent := saved["40100001"], saved["401000"]
	assert.Equal(suite.T(), child.AccountID, linkedChild)
	assert.Equal(suite.T(), parent.AccountID, linkedParent)

	// Classification and hierarchy are derived from the code.
	assert.Equal(suite.T(), domain.Liability, child.AccountType)
	assert.Equal(suite.T(), domain.Credit, child.NormalBalance)
	assert.Equal(suite.T(), "DJ", child.RefFinancialStatement)
	assert.Equal(suite.T(), 4, child.Level)
	assert.Equal(suite.T(), 2, parent.Level)
	assert.True(suite.T(), child.IsActive)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestImportChart_ReimportUpdatesInPlace() {
	records := []dto.ImportRecord{{Code: "601", Label: "Achats de marchandises"}}

	class6 := &domain.AccountClass{ClassID: uuid.NewString(), TenantID: testTenantID, Number: 6}
	cat60 := &domain.AccountCategory{CategoryID: uuid.NewString(), TenantID: testTenantID, Code: "60"}
	existing := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "601", Name: "Achats"}

	suite.expectTx()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.Anything).Return(class6, false, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.Anything).Return(cat60, false, nil).Once()
	suite.mockRepo.On("FindAccountByCodeTx", suite.ctx, mock.Anything, testTenantID, "601").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccountTx", suite.ctx, mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == existing.AccountID && acc.Name == "Achats de marchandises" && acc.AccountType == domain.Expense
	})).Return(nil).Once()

	summary, err := suite.service.ImportChart(suite.ctx, testTenantID, records, dto.ImportOptions{})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, summary.Processed)
	assert.Equal(suite.T(), 0, summary.ClassesCreated)
	assert.Equal(suite.T(), 0, summary.AccountsCreated)
	assert.Equal(suite.T(), 1, summary.AccountsUpdated)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestImportChart_PurgeReportsCounts() {
	records := []dto.ImportRecord{{Code: "52", Label: "Banques"}}

	class5 := &domain.AccountClass{ClassID: uuid.NewString(), Number: 5}
	cat52 := &domain.AccountCategory{CategoryID: uuid.NewString(), Code: "52"}

	suite.expectTx()
	suite.mockRepo.On("PurgeChartTx", suite.ctx, mock.Anything, testTenantID).
		Return(portsrepo.PurgeCounts{Accounts: 120, Categories: 30, Classes: 8}, nil).Once()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.Anything).Return(class5, true, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.Anything).Return(cat52, true, nil).Once()
	suite.mockRepo.On("FindAccountByCodeTx", suite.ctx, mock.Anything, testTenantID, "52").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	summary, err := suite.service.ImportChart(suite.ctx, testTenantID, records, dto.ImportOptions{Purge: true})

	suite.Require().NoError(err)
	suite.Require().NotNil(summary.Purged)
	assert.Equal(suite.T(), int64(120), summary.Purged.Accounts)
	assert.Equal(suite.T(), int64(30), summary.Purged.Categories)
	assert.Equal(suite.T(), int64(8), summary.Purged.Classes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestImportChart_InvalidTenantRejectedBeforeAnyWrite() {
	records := []dto.ImportRecord{{Code: "601", Label: "Achats"}}

	_, err := suite.service.ImportChart(suite.ctx, "not-a-uuid", records, dto.ImportOptions{})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTenant)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ImporterServiceTestSuite) TestImportChart_BadRecordFailsWholeBatch() {
	records := []dto.ImportRecord{
		{Code: "601", Label: "Achats"},
		{Code: "602", Label: ""}, // missing label
	}

	_, err := suite.service.ImportChart(suite.ctx, testTenantID, records, dto.ImportOptions{})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidRecord)
	assert.Contains(suite.T(), err.Error(), "record 1")
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ImporterServiceTestSuite) TestImportChart_SaveFailureRollsBack() {
	records := []dto.ImportRecord{{Code: "701", Label: "Ventes de marchandises"}}

	class7 := &domain.AccountClass{ClassID: uuid.NewString(), Number: 7}
	cat70 := &domain.AccountCategory{CategoryID: uuid.NewString(), Code: "70"}

	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.Anything).Return(class7, true, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.Anything).Return(cat70, true, nil).Once()
	suite.mockRepo.On("FindAccountByCodeTx", suite.ctx, mock.Anything, testTenantID, "701").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.ImportChart(suite.ctx, testTenantID, records, dto.ImportOptions{})

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestImportNestedChart_NestingDrivesParents() {
	chart := map[string]any{
		"4 - Comptes de tiers": map[string]any{
			"40 Fournisseurs et comptes rattachés": map[string]any{
				"401": "Fournisseurs, dettes en compte",
			},
		},
	}

	class4 := &domain.AccountClass{ClassID: uuid.NewString(), TenantID: testTenantID, Number: 4}
	cat40 := &domain.AccountCategory{CategoryID: uuid.NewString(), ClassID: class4.ClassID, Code: "40"}

	suite.expectTx()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountClass) bool {
		return c.Number == 4 && c.Name == "Comptes de tiers"
	})).Return(class4, true, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountCategory) bool {
		return c.Code == "40" && c.Name == "Fournisseurs et comptes rattachés"
	})).Return(cat40, true, nil).Once()

	saved := make(map[string]domain.Account)
	for _, code := range []string{"40", "401"} {
		suite.mockRepo.On("FindAccountByCodeTx", suite.ctx, mock.Anything, testTenantID, code).
			Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(2).(domain.Account)
			saved[acc.Code] = acc
		}).Return(nil).Twice()

	summary, err := suite.service.ImportNestedChart(suite.ctx, testTenantID, chart, dto.ImportOptions{})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, summary.AccountsCreated)
	assert.Equal(suite.T(), 1, summary.ParentsLinked)

	root, sub := saved["40"], saved["401"]
	assert.Equal(suite.T(), 1, root.Level)
	assert.Empty(suite.T(), root.ParentAccountID)
	assert.Equal(suite.T(), 2, sub.Level)
	assert.Equal(suite.T(), root.AccountID, sub.ParentAccountID)
	assert.Equal(suite.T(), "Fournisseurs, dettes en compte", sub.Name)
	// Nested imports take the coarse per-class type.
	assert.Equal(suite.T(), domain.Liability, sub.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestImportNestedChart_RejectsMalformedClassKey() {
	chart := map[string]any{
		"Comptes de tiers": map[string]any{},
	}

	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.ImportNestedChart(suite.ctx, testTenantID, chart, dto.ImportOptions{})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidRecord)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestPurgeChart_CommitsAndReportsCounts() {
	suite.expectTx()
	suite.mockRepo.On("PurgeChartTx", suite.ctx, mock.Anything, testTenantID).
		Return(portsrepo.PurgeCounts{Accounts: 7, Categories: 3, Classes: 2}, nil).Once()

	result, err := suite.service.PurgeChart(suite.ctx, testTenantID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.PurgeResult{Accounts: 7, Categories: 3, Classes: 2}, result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImporterServiceTestSuite) TestPurgeChart_FailureRollsBack() {
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("PurgeChartTx", suite.ctx, mock.Anything, testTenantID).
		Return(portsrepo.PurgeCounts{}, assert.AnError).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.PurgeChart(suite.ctx, testTenantID)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}
