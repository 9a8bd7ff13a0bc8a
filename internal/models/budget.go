package models

import (
	"strings"

	"github.com/centuition/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for one category in one calendar month.
//
// The spent amount is not stored. It is recomputed from the journal at
// read time so that it can never drift from the transactions.
type Budget struct {
	DefaultModel
	User       User            `json:"-"`
	UserID     uuid.UUID       `json:"userId" gorm:"uniqueIndex:budget_category_month_user" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_category_month_user" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	Category   *Category       `json:"-"`
	Month      types.Month     `json:"month" gorm:"uniqueIndex:budget_category_month_user" example:"2024-04-01T00:00:00.000000Z"` // Only year and month are used, the day is always the first
	Name       string          `json:"name" example:"Groceries April" default:""`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400" minimum:"0.00000001"`
	Spent      decimal.Decimal `json:"spent" gorm:"-" example:"133.70"` // Sum of the matching expenses, calculated at read time
	Active     bool            `json:"active" example:"true" default:"true"`
}

// BeforeSave trims whitespace.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	return nil
}

// Remaining returns the budgeted amount minus the spent amount. It is
// negative when the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// PercentageUsed returns the spent share of the budget in percent,
// rounded to one decimal. A zero budget counts as fully used as soon
// as anything is spent.
func (b Budget) PercentageUsed() float64 {
	if !b.Amount.IsPositive() {
		if b.Spent.IsPositive() {
			return 100
		}
		return 0
	}

	share, _ := b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return share
}

// OverBudget reports whether more than the budgeted amount was spent.
func (b Budget) OverBudget() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// CalculateSpent sums the expenses of the budget's category within its
// calendar month and stores the result on the budget.
func (b *Budget) CalculateSpent(db *gorm.DB) error {
	var sum decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ?", b.UserID, b.CategoryID, TransactionTypeExpense).
		Where("date >= date(?) AND date < date(?)", b.Month.FirstDay(), b.Month.AddDate(0, 1).FirstDay()).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return err
	}

	b.Spent = sum.Decimal
	return nil
}

// Budgets returns the budgets of one month with their spent amounts
// calculated. The active flag is a marker for the client, deactivated
// budgets stay visible in their month.
func Budgets(db *gorm.DB, userID uuid.UUID, month types.Month) ([]Budget, error) {
	budgets := make([]Budget, 0)

	err := db.
		Where(&Budget{UserID: userID, Month: month}).
		Order("name ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		err = budgets[i].CalculateSpent(db)
		if err != nil {
			return nil, err
		}
	}

	return budgets, nil
}

// CopyBudgetsToNextMonth copies all budgets of a month to the
// following month. Categories that already have a budget in the target
// month are skipped. It returns the copied budgets.
func CopyBudgetsToNextMonth(db *gorm.DB, userID uuid.UUID, month types.Month) ([]Budget, error) {
	next := month.AddDate(0, 1)

	var budgets []Budget
	err := db.
		Where(&Budget{UserID: userID, Month: month}).
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	copied := make([]Budget, 0)
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, budget := range budgets {
			var count int64
			err := tx.Model(&Budget{}).
				Where(&Budget{UserID: userID, CategoryID: budget.CategoryID, Month: next}).
				Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				continue
			}

			budget.ID = uuid.Nil
			budget.Month = next
			budget.Timestamps = Timestamps{}

			err = tx.Create(&budget).Error
			if err != nil {
				return err
			}

			copied = append(copied, budget)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return copied, nil
}
