package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/core/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FiscalYearServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFiscalYearRepository
	service  portssvc.FiscalYearSvcFacade
	ctx      context.Context
}

func (suite *FiscalYearServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFiscalYearRepository)
	suite.service = services.NewFiscalYearService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestFiscalYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalYearServiceTestSuite))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func calendarYear2023() *domain.FiscalYear {
	return &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		TenantID:     testTenantID,
		Name:         "Exercice 2023",
		Code:         "FY2023",
		StartDate:    date(2023, time.January, 1),
		EndDate:      date(2023, time.December, 31),
		IsActive:     true,
	}
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_Success() {
	req := dto.CreateFiscalYearRequest{
		Name:      "Exercice 2023",
		Code:      "FY2023",
		StartDate: date(2023, time.January, 1),
		EndDate:   date(2023, time.December, 31),
	}

	suite.mockRepo.On("CountOverlappingYears", suite.ctx, testTenantID, req.StartDate, req.EndDate, "").Return(0, nil).Once()
	suite.mockRepo.On("SaveFiscalYear", suite.ctx, mock.MatchedBy(func(y domain.FiscalYear) bool {
		return y.TenantID == testTenantID && y.Code == "FY2023" && y.IsActive && !y.IsClosed
	})).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(suite.ctx, testTenantID, req)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "FY2023", year.Code)
	assert.NotEmpty(suite.T(), year.FiscalYearID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_RejectsOverlap() {
	req := dto.CreateFiscalYearRequest{
		Name:      "Exercice 2023 bis",
		Code:      "FY2023B",
		StartDate: date(2023, time.July, 1),
		EndDate:   date(2024, time.June, 30),
	}

	suite.mockRepo.On("CountOverlappingYears", suite.ctx, testTenantID, req.StartDate, req.EndDate, "").Return(1, nil).Once()

	_, err := suite.service.CreateFiscalYear(suite.ctx, testTenantID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_RejectsInvertedDates() {
	req := dto.CreateFiscalYearRequest{
		Name:      "Exercice",
		Code:      "FY2023",
		StartDate: date(2023, time.December, 31),
		EndDate:   date(2023, time.January, 1),
	}

	_, err := suite.service.CreateFiscalYear(suite.ctx, testTenantID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountOverlappingYears", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestCloseFiscalYear_LocksAndStamps() {
	year := calendarYear2023()

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockRepo.On("UpdateFiscalYear", suite.ctx, mock.MatchedBy(func(y domain.FiscalYear) bool {
		return y.IsClosed && y.IsLocked && y.ClosedAt != nil
	})).Return(nil).Once()

	closed, err := suite.service.CloseFiscalYear(suite.ctx, testTenantID, year.FiscalYearID)

	suite.Require().NoError(err)
	assert.True(suite.T(), closed.IsClosed)
	assert.True(suite.T(), closed.IsLocked)
	assert.NotNil(suite.T(), closed.ClosedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestCloseFiscalYear_AlreadyClosed() {
	year := calendarYear2023()
	year.IsClosed = true

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.CloseFiscalYear(suite.ctx, testTenantID, year.FiscalYearID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestUpdateFiscalYear_ClosedYearIsImmutable() {
	year := calendarYear2023()
	year.IsClosed = true
	name := "Nouveau nom"

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.UpdateFiscalYear(suite.ctx, testTenantID, year.FiscalYearID, dto.UpdateFiscalYearRequest{Name: &name})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestGeneratePeriods_MonthlyCalendarYear() {
	year := calendarYear2023()

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockRepo.On("DeletePeriods", suite.ctx, testTenantID, year.FiscalYearID).Return(nil).Once()
	suite.mockRepo.On("SavePeriods", suite.ctx, mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	periods, err := suite.service.GeneratePeriods(suite.ctx, testTenantID, year.FiscalYearID, domain.PeriodMonthly)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 12)

	assert.Equal(suite.T(), "FY2023-M01", periods[0].Code)
	assert.Equal(suite.T(), "Mois 1", periods[0].Name)
	assert.Equal(suite.T(), date(2023, time.January, 1), periods[0].StartDate)
	assert.Equal(suite.T(), date(2023, time.January, 31), periods[0].EndDate)

	// February does not have 31 days; AddDate still lands on the right end.
	assert.Equal(suite.T(), date(2023, time.February, 1), periods[1].StartDate)
	assert.Equal(suite.T(), date(2023, time.February, 28), periods[1].EndDate)

	assert.Equal(suite.T(), "FY2023-M12", periods[11].Code)
	assert.Equal(suite.T(), 12, periods[11].Number)
	assert.Equal(suite.T(), date(2023, time.December, 31), periods[11].EndDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestGeneratePeriods_QuarterlyClipsFinalPeriod() {
	year := calendarYear2023()
	year.Code = "FY2324"
	year.StartDate = date(2023, time.July, 1)
	year.EndDate = date(2024, time.June, 15)

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockRepo.On("DeletePeriods", suite.ctx, testTenantID, year.FiscalYearID).Return(nil).Once()
	suite.mockRepo.On("SavePeriods", suite.ctx, mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	periods, err := suite.service.GeneratePeriods(suite.ctx, testTenantID, year.FiscalYearID, domain.PeriodQuarterly)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 4)

	assert.Equal(suite.T(), "Premier trimestre", periods[0].Name)
	assert.Equal(suite.T(), "FY2324-Q1", periods[0].Code)
	assert.Equal(suite.T(), date(2023, time.September, 30), periods[0].EndDate)
	assert.Equal(suite.T(), date(2023, time.October, 1), periods[1].StartDate)

	// The last quarter is clipped to the year's end date.
	assert.Equal(suite.T(), "Quatrième trimestre", periods[3].Name)
	assert.Equal(suite.T(), date(2024, time.April, 1), periods[3].StartDate)
	assert.Equal(suite.T(), date(2024, time.June, 15), periods[3].EndDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestGeneratePeriods_DefaultsToMonthly() {
	year := calendarYear2023()

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockRepo.On("DeletePeriods", suite.ctx, testTenantID, year.FiscalYearID).Return(nil).Once()
	suite.mockRepo.On("SavePeriods", suite.ctx, mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	periods, err := suite.service.GeneratePeriods(suite.ctx, testTenantID, year.FiscalYearID, "")

	suite.Require().NoError(err)
	assert.Len(suite.T(), periods, 12)
}

func (suite *FiscalYearServiceTestSuite) TestGeneratePeriods_RejectsClosedOrLockedYear() {
	year := calendarYear2023()
	year.IsLocked = true

	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.GeneratePeriods(suite.ctx, testTenantID, year.FiscalYearID, domain.PeriodMonthly)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePeriods", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestGeneratePeriods_RejectsUnknownType() {
	_, err := suite.service.GeneratePeriods(suite.ctx, testTenantID, uuid.NewString(), "weekly")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindFiscalYearByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestListPeriods_UnknownYear() {
	fiscalYearID := uuid.NewString()
	suite.mockRepo.On("FindFiscalYearByID", suite.ctx, testTenantID, fiscalYearID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPeriods(suite.ctx, testTenantID, fiscalYearID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPeriods", mock.Anything, mock.Anything, mock.Anything)
}
