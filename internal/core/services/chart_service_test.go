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

type ChartServiceTestSuite struct {
	suite.Suite
	mockRepo *MockChartRepository
	service  portssvc.ChartSvcFacade
	ctx      context.Context
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockChartRepository)
	suite.service = services.NewChartService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}

func (suite *ChartServiceTestSuite) TestGetClassByNumber_OutOfRange() {
	_, err := suite.service.GetClassByNumber(suite.ctx, testTenantID, 0)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.GetClassByNumber(suite.ctx, testTenantID, 10)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "FindClassByNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestClassifyCode_PreviewsEngineOutput() {
	resp, err := suite.service.ClassifyCode(suite.ctx, "21311234")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.Asset, resp.AccountType)
	assert.Equal(suite.T(), domain.Gross, resp.Category)
	assert.Equal(suite.T(), domain.Debit, resp.NormalBalance)
	assert.Equal(suite.T(), 4, resp.Level)
	assert.Equal(suite.T(), "21311200", resp.ParentCode)
}

func (suite *ChartServiceTestSuite) TestClassifyCode_InvalidCode() {
	_, err := suite.service.ClassifyCode(suite.ctx, "not-a-code")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ChartServiceTestSuite) TestCreateAccount_LinksExistingParent() {
	req := dto.CreateAccountRequest{Code: "40100001", Name: "Fournisseur Alpha"}

	class4 := &domain.AccountClass{ClassID: uuid.NewString(), TenantID: testTenantID, Number: 4}
	cat40 := &domain.AccountCategory{CategoryID: uuid.NewString(), ClassID: class4.ClassID, Code: "40"}
	parent := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "401000"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, testTenantID, "40100001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountClass) bool {
		return c.Number == 4
	})).Return(class4, false, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.MatchedBy(func(c domain.AccountCategory) bool {
		return c.Code == "40"
	})).Return(cat40, false, nil).Once()
	// The parent is looked up by its padded ancestor code, so an account
	// stored as "401000" still matches "40100000".
	suite.mockRepo.On("FindAccountByNormalizedCodeTx", suite.ctx, mock.Anything, testTenantID, "40100000").Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == "40100001" &&
			acc.ParentAccountID == parent.AccountID &&
			acc.Level == 4 &&
			acc.AccountType == domain.Liability &&
			acc.RefFinancialStatement == "DJ"
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testTenantID, req)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), parent.AccountID, account.ParentAccountID)
	assert.Equal(suite.T(), domain.Credit, account.NormalBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_NoAncestorStaysRoot() {
	req := dto.CreateAccountRequest{Code: "2131", Name: "Bâtiments industriels"}

	class2 := &domain.AccountClass{ClassID: uuid.NewString(), Number: 2}
	cat21 := &domain.AccountCategory{CategoryID: uuid.NewString(), Code: "21"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, testTenantID, "2131").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("GetOrCreateClassTx", suite.ctx, mock.Anything, mock.Anything).Return(class2, true, nil).Once()
	suite.mockRepo.On("GetOrCreateCategoryTx", suite.ctx, mock.Anything, mock.Anything).Return(cat21, true, nil).Once()
	suite.mockRepo.On("FindAccountByNormalizedCodeTx", suite.ctx, mock.Anything, testTenantID, "21000000").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccountTx", suite.ctx, mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.ParentAccountID == "" && acc.Level == 2
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, testTenantID, req)

	suite.Require().NoError(err)
	assert.Empty(suite.T(), account.ParentAccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_Duplicate() {
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "601"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, testTenantID, "601").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, testTenantID, dto.CreateAccountRequest{Code: "601", Name: "Achats"})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ChartServiceTestSuite) TestListAccounts_ClampsPagination() {
	suite.mockRepo.On("ListAccounts", suite.ctx, testTenantID, mock.AnythingOfType("repositories.AccountFilter"), 50, 0).
		Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(suite.ctx, testTenantID, dto.ListAccountsParams{Limit: 10000, Offset: -5})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestListAccounts_PassesFilter() {
	isActive := true
	params := dto.ListAccountsParams{
		AccountType: "ASSET",
		Parent:      "null",
		IsActive:    &isActive,
		Search:      "banque",
		Limit:       20,
	}

	suite.mockRepo.On("ListAccounts", suite.ctx, testTenantID, mock.MatchedBy(func(f portsrepo.AccountFilter) bool {
		return f.AccountType == domain.Asset && f.ParentID == "null" && f.Search == "banque" && f.IsActive != nil && *f.IsActive
	}), 20, 0).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(suite.ctx, testTenantID, params)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestUpdateAccount_PartialFields() {
	account := &domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  testTenantID,
		Code:      "601",
		Name:      "Achats",
		IsActive:  true,
	}
	newName := "Achats de marchandises"

	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenantID, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(suite.ctx, testTenantID, account.AccountID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestDeactivateAccount_UnknownAccount() {
	accountID := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", suite.ctx, testTenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(suite.ctx, testTenantID, accountID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
