package v1

import (
	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"` // The category the budget limits
	Month      types.Month     `json:"month" example:"2024-04-01T00:00:00.000000Z"`               // Only year and month are used
	Name       string          `json:"name" example:"Groceries April" default:""`                 // Name of the budget
	Amount     decimal.Decimal `json:"amount" example:"400" minimum:"0.00000001"`                 // Budgeted amount
	Active     bool            `json:"active" example:"true" default:"true"`                      // Is the budget in use?
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Name:       editable.Name,
		Amount:     editable.Amount,
		Active:     editable.Active,
	}
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`  // Data for the Budget
	Error *string        `json:"error"` // The error, if any occurred
}

type BudgetListResponse struct {
	Data  []models.Budget `json:"data"`  // List of Budgets
	Error *string         `json:"error"` // The error, if any occurred
}

// BudgetProgress is one budget with its derived usage numbers.
type BudgetProgress struct {
	models.Budget
	Remaining      decimal.Decimal `json:"remaining" example:"266.30"`   // Amount minus spent, negative when exceeded
	PercentageUsed float64         `json:"percentageUsed" example:"33.4"` // Spent share of the budget in percent
	OverBudget     bool            `json:"overBudget" example:"false"`    // Was more than the budgeted amount spent?
}

type BudgetProgressListResponse struct {
	Data  []BudgetProgress `json:"data"`  // Budgets with usage calculations
	Error *string          `json:"error"` // The error, if any occurred
}
