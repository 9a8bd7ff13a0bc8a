package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/centuition/backend/internal/controllers/v1"
	"github.com/shopspring/decimal"
)

// seedReportData books one income and two expenses in April 2024.
func (suite *TestSuiteStandard) seedReportData(session v1.Session) {
	account := suite.createTestAccount(session, v1.AccountEditable{InitialBalance: decimal.NewFromInt(1000)})
	expense := suite.expenseCategory()
	income := suite.incomeCategory()

	for _, editable := range []v1.TransactionEditable{
		{Amount: decimal.NewFromInt(2000), Type: "INCOME", AccountID: account.ID, CategoryID: &income.ID, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(300), Type: "EXPENSE", AccountID: account.ID, CategoryID: &expense.ID, Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(200), Type: "EXPENSE", AccountID: account.ID, CategoryID: &expense.ID, Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
	} {
		recorder := suite.request(http.MethodPost, "/v1/transactions", editable, session.Token)
		suite.assertHTTPStatus(recorder, http.StatusCreated)
	}
}

func (suite *TestSuiteStandard) TestSummaryReport() {
	session := suite.createTestSession()
	suite.seedReportData(session)

	// Without a window the whole history is summed
	recorder := suite.request(http.MethodGet, "/v1/reports/summary", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.SummaryReportResponse
	suite.decode(recorder, &response)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(response.Data.Income))
	suite.Assert().True(decimal.NewFromInt(500).Equal(response.Data.Expenses))
	suite.Assert().True(decimal.NewFromInt(1500).Equal(response.Data.Net))

	// With a window only April counts
	recorder = suite.request(http.MethodGet, "/v1/reports/summary?from=2024-04-01&until=2024-04-30", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.decode(recorder, &response)
	suite.Assert().True(decimal.NewFromInt(300).Equal(response.Data.Expenses))
	suite.Assert().True(decimal.NewFromInt(1700).Equal(response.Data.Net))
}

func (suite *TestSuiteStandard) TestMonthlyTrendsReport() {
	session := suite.createTestSession()
	suite.seedReportData(session)

	recorder := suite.request(http.MethodGet, "/v1/reports/monthly-trends?months=999", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.MonthlyTrendsResponse
	suite.decode(recorder, &response)
	if suite.Assert().Len(response.Data, 2) {
		suite.Assert().True(decimal.NewFromInt(200).Equal(response.Data[0].Expenses))
		suite.Assert().True(decimal.NewFromInt(2000).Equal(response.Data[1].Income))
	}

	// The parameter must be a positive number
	recorder = suite.request(http.MethodGet, "/v1/reports/monthly-trends?months=soon", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	recorder = suite.request(http.MethodGet, "/v1/reports/monthly-trends?months=0", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryReports() {
	session := suite.createTestSession()
	suite.seedReportData(session)

	recorder := suite.request(http.MethodGet, "/v1/reports/category-spending", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.CategorySumListResponse
	suite.decode(recorder, &response)
	if suite.Assert().Len(response.Data, 1) {
		suite.Assert().True(decimal.NewFromInt(500).Equal(response.Data[0].Total))
		suite.Assert().Equal(2, response.Data[0].Count)
		suite.Assert().Equal(float64(100), response.Data[0].Percentage)
	}

	recorder = suite.request(http.MethodGet, "/v1/reports/income-by-category", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.decode(recorder, &response)
	if suite.Assert().Len(response.Data, 1) {
		suite.Assert().True(decimal.NewFromInt(2000).Equal(response.Data[0].Total))
	}

	// Windowed to March, only the older expense remains
	recorder = suite.request(http.MethodGet, "/v1/reports/category-spending?from=2024-03-01&until=2024-03-31", nil, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.decode(recorder, &response)
	if suite.Assert().Len(response.Data, 1) {
		suite.Assert().True(decimal.NewFromInt(200).Equal(response.Data[0].Total))
	}
}
