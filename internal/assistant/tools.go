// Package assistant answers natural-language questions about a user's
// finances. A tool layer exposes read-only queries to the language
// model, which calls them until it can produce a final text answer.
package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errUnknownTool = errors.New("the requested tool does not exist")

// Tools is the read-only query surface the model can call. All
// operations are scoped to one user.
type Tools struct {
	db        *gorm.DB
	userID    uuid.UUID
	formatter *Formatter
	now       func() time.Time
}

// NewTools creates the tool layer for one user.
func NewTools(db *gorm.DB, userID uuid.UUID, formatter *Formatter, now func() time.Time) *Tools {
	if now == nil {
		now = time.Now
	}

	return &Tools{
		db:        db,
		userID:    userID,
		formatter: formatter,
		now:       now,
	}
}

// ToolDefinition describes one tool in the wire format of the
// Anthropic Messages API.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// noInput is the schema for tools without parameters.
var noInput = map[string]any{"type": "object", "properties": map[string]any{}}

// Definitions lists all tools the model may call.
func Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_accounts",
			Description: "Gets all financial accounts for the user with their names, types, and current balances. Use this to answer questions about the user's accounts or where their money is held.",
			InputSchema: noInput,
		},
		{
			Name:        "get_total_balance",
			Description: "Gets the total balance across all the user's accounts. Use this to answer questions about total net worth or overall financial position.",
			InputSchema: noInput,
		},
		{
			Name:        "get_balances_by_type",
			Description: "Gets balances grouped by account type (checking, savings, credit card, investment, and so on). Use this to understand the distribution of funds across account types.",
			InputSchema: noInput,
		},
		{
			Name:        "get_recent_transactions",
			Description: "Gets recent transactions. Use this to show the user their latest financial activity. 'count' specifies how many transactions to retrieve (default 10, max 50).",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"count": map[string]any{"type": "integer", "description": "Number of transactions to return"},
				},
			},
		},
		{
			Name:        "get_category_spending",
			Description: "Gets the spending breakdown by category for the current month. Use this to answer questions about where money is being spent, top expense categories, or spending patterns.",
			InputSchema: noInput,
		},
		{
			Name:        "get_budget_status",
			Description: "Gets budget status and progress for the current month. Shows each budget, the amount budgeted, the amount spent, and whether the user is on track or over budget.",
			InputSchema: noInput,
		},
		{
			Name:        "get_monthly_trends",
			Description: "Gets monthly income and expense trends over the past months. Use this to compare months or analyze patterns over time. 'months' specifies how many months of history to include (default 6, max 12).",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"months": map[string]any{"type": "integer", "description": "Number of months of history"},
				},
			},
		},
		{
			Name:        "get_income_expense_totals",
			Description: "Gets total income, total expenses, and the net amount for the current month. Use this to answer questions about earnings, spending, savings, or monthly cash flow.",
			InputSchema: noInput,
		},
	}
}

// Call executes one tool and returns its natural-language summary.
func (t *Tools) Call(name string, input json.RawMessage) (string, error) {
	switch name {
	case "get_accounts":
		return t.accounts()
	case "get_total_balance":
		return t.totalBalance()
	case "get_balances_by_type":
		return t.balancesByType()
	case "get_recent_transactions":
		var args struct {
			Count int `json:"count"`
		}
		_ = json.Unmarshal(input, &args)
		return t.recentTransactions(args.Count)
	case "get_category_spending":
		return t.categorySpending()
	case "get_budget_status":
		return t.budgetStatus()
	case "get_monthly_trends":
		var args struct {
			Months int `json:"months"`
		}
		_ = json.Unmarshal(input, &args)
		return t.monthlyTrends(args.Months)
	case "get_income_expense_totals":
		return t.incomeExpenseTotals()
	}

	return "", fmt.Errorf("%w: %s", errUnknownTool, name)
}

func (t *Tools) accounts() (string, error) {
	var accounts []models.Account
	err := t.db.
		Where(&models.Account{UserID: t.userID, Active: true}).
		Order("name ASC").
		Find(&accounts).Error
	if err != nil {
		return "", err
	}

	if len(accounts) == 0 {
		return "No accounts found.", nil
	}

	var b strings.Builder
	b.WriteString("User's accounts:\n")
	for _, account := range accounts {
		fmt.Fprintf(&b, "- %s (%s): %s\n", account.Name, account.Type, t.formatter.Amount(account.CurrentBalance))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Tools) totalBalance() (string, error) {
	balance, err := models.TotalBalance(t.db, t.userID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Total balance across all accounts: %s", t.formatter.Amount(balance)), nil
}

func (t *Tools) balancesByType() (string, error) {
	balances, err := models.BalancesByType(t.db, t.userID)
	if err != nil {
		return "", err
	}

	if len(balances) == 0 {
		return "No account balances found.", nil
	}

	var b strings.Builder
	b.WriteString("Balances by account type:\n")
	for _, balance := range balances {
		fmt.Fprintf(&b, "- %s: %s\n", balance.Type, t.formatter.Amount(balance.Balance))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Tools) recentTransactions(count int) (string, error) {
	if count < 1 {
		count = 10
	}
	if count > 50 {
		count = 50
	}

	transactions, err := models.RecentTransactions(t.db, t.userID, count)
	if err != nil {
		return "", err
	}

	if len(transactions) == 0 {
		return "No recent transactions found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d transactions:\n", len(transactions))
	for _, transaction := range transactions {
		sign := "<->"
		switch transaction.Type {
		case models.TransactionTypeIncome:
			sign = "+"
		case models.TransactionTypeExpense:
			sign = "-"
		}

		fmt.Fprintf(&b, "- %s: %s%s - %s\n",
			transaction.Date.Format("Jan 02, 2006"), sign,
			t.formatter.Amount(transaction.Amount), transaction.Description)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Tools) categorySpending() (string, error) {
	today := t.now()
	from := types.MonthOf(today).FirstDay()

	sums, err := models.CategorySums(t.db, t.userID, models.TransactionTypeExpense, from, today)
	if err != nil {
		return "", err
	}

	if len(sums) == 0 {
		return "No spending data found for this month.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Spending by category for %s:\n", today.Format("January 2006"))

	total := decimal.Zero
	for _, sum := range sums {
		total = total.Add(sum.Total)
		fmt.Fprintf(&b, "- %s: %s (%d transactions, %.1f%%)\n",
			sum.Name, t.formatter.Amount(sum.Total), sum.Count, sum.Percentage)
	}

	fmt.Fprintf(&b, "\nTotal spent: %s", t.formatter.Amount(total))
	return b.String(), nil
}

func (t *Tools) budgetStatus() (string, error) {
	today := t.now()

	budgets, err := models.Budgets(t.db, t.userID, types.MonthOf(today))
	if err != nil {
		return "", err
	}

	if len(budgets) == 0 {
		return "No budgets set up for this month.", nil
	}

	var over, warning int
	var b strings.Builder
	fmt.Fprintf(&b, "Budget status for %s:\n", today.Format("January 2006"))

	for _, budget := range budgets {
		var name string
		var category models.Category
		if err := t.db.First(&category, "id = ?", budget.CategoryID).Error; err == nil {
			name = category.Name
		}

		state := "on track"
		switch {
		case budget.OverBudget():
			state = "over budget"
			over++
		case budget.PercentageUsed() >= 80:
			state = "approaching limit"
			warning++
		}

		fmt.Fprintf(&b, "- %s: %s of %s (%.0f%% used) - %s\n",
			name, t.formatter.Amount(budget.Spent), t.formatter.Amount(budget.Amount),
			budget.PercentageUsed(), state)
	}

	fmt.Fprintf(&b, "\nSummary: %d over budget, %d approaching limit, %d on track.",
		over, warning, len(budgets)-over-warning)

	return b.String(), nil
}

func (t *Tools) monthlyTrends(months int) (string, error) {
	if months < 1 {
		months = 6
	}
	if months > 12 {
		months = 12
	}

	trend, err := models.MonthlyTrend(t.db, t.userID, months, t.now())
	if err != nil {
		return "", err
	}

	if len(trend) == 0 {
		return "No transaction history found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly trends (last %d months):\n", len(trend))
	for _, summary := range trend {
		fmt.Fprintf(&b, "- %s: Income %s, Expenses %s, Net %s\n",
			summary.Month.String(), t.formatter.Amount(summary.Income),
			t.formatter.Amount(summary.Expenses), t.formatter.Amount(summary.Net()))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Tools) incomeExpenseTotals() (string, error) {
	today := t.now()
	from := types.MonthOf(today).FirstDay()

	income, err := models.TotalIncome(t.db, t.userID, from, today)
	if err != nil {
		return "", err
	}

	expenses, err := models.TotalExpenses(t.db, t.userID, from, today)
	if err != nil {
		return "", err
	}

	net := income.Sub(expenses)
	state := "saved"
	if net.IsNegative() {
		state = "overspent"
	}

	return fmt.Sprintf("For %s:\n- Income: %s\n- Expenses: %s\n- Net: %s (%s)",
		today.Format("January 2006"), t.formatter.Amount(income),
		t.formatter.Amount(expenses), t.formatter.Amount(net), state), nil
}
