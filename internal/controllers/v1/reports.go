package v1

import (
	"net/http"
	"strconv"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetSummaryReport)

	r.OPTIONS("/monthly-trends", httputil.OptionsGet)
	r.GET("/monthly-trends", GetMonthlyTrends)

	r.OPTIONS("/category-spending", httputil.OptionsGet)
	r.GET("/category-spending", GetCategorySpending)

	r.OPTIONS("/income-by-category", httputil.OptionsGet)
	r.GET("/income-by-category", GetIncomeByCategory)
}

// SummaryReport is the income and expense volume of a date window.
type SummaryReport struct {
	Income   decimal.Decimal `json:"income" example:"2317.34"`   // Sum of all income in the window
	Expenses decimal.Decimal `json:"expenses" example:"1833.21"` // Sum of all expenses in the window
	Net      decimal.Decimal `json:"net" example:"484.13"`       // Income minus expenses
}

type SummaryReportResponse struct {
	Data  *SummaryReport `json:"data"`  // The summary
	Error *string        `json:"error"` // The error, if any occurred
}

type MonthlyTrendsResponse struct {
	Data  []models.MonthlySummary `json:"data"`  // Income and expenses per month
	Error *string                 `json:"error"` // The error, if any occurred
}

type CategorySumListResponse struct {
	Data  []models.CategorySum `json:"data"`  // Per category totals with their share of the overall sum
	Error *string              `json:"error"` // The error, if any occurred
}

// GetSummaryReport returns income, expenses and net for a date window.
// Without a window it covers the full history.
func GetSummaryReport(c *gin.Context) {
	var query QueryDateRange
	_ = c.Bind(&query)

	userID := auth.UserID(c)

	income, err := models.TotalIncome(models.DB, userID, query.From, query.Until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryReportResponse{Error: &s})
		return
	}

	expenses, err := models.TotalExpenses(models.DB, userID, query.From, query.Until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryReportResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, SummaryReportResponse{Data: &SummaryReport{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}})
}

// GetMonthlyTrends returns the per month income and expense volumes of
// the last months. Defaults to six months.
func GetMonthlyTrends(c *gin.Context) {
	months := 6
	if m := c.Query("months"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 {
			s := "the months query parameter must be a positive number"
			c.JSON(http.StatusBadRequest, MonthlyTrendsResponse{Error: &s})
			return
		}
		months = parsed
	}

	trend, err := models.MonthlyTrend(models.DB, auth.UserID(c), months, timeNow())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyTrendsResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, MonthlyTrendsResponse{Data: trend})
}

// GetCategorySpending returns the expense totals grouped by category
// for a date window.
func GetCategorySpending(c *gin.Context) {
	categorySums(c, models.TransactionTypeExpense)
}

// GetIncomeByCategory returns the income totals grouped by category
// for a date window.
func GetIncomeByCategory(c *gin.Context) {
	categorySums(c, models.TransactionTypeIncome)
}

func categorySums(c *gin.Context, transactionType models.TransactionType) {
	var query QueryDateRange
	_ = c.Bind(&query)

	sums, err := models.CategorySums(models.DB, auth.UserID(c), transactionType, query.From, query.Until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorySumListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategorySumListResponse{Data: sums})
}
