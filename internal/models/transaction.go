package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/centuition/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a transaction. The amount is always a
// non-negative magnitude, the direction of the money flow follows from
// the type.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction represents a single monetary event in the journal.
//
// The journal is the sole mutator of account balances: every
// transaction credits or debits exactly one or two accounts, and edits
// and deletes reverse the stored effect before applying a new one.
type Transaction struct {
	DefaultModel
	User                   User            `json:"-"`
	UserID                 uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Amount                 decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03" minimum:"0.00000000"`
	Type                   TransactionType `json:"type" example:"EXPENSE"`
	Description            string          `json:"description" example:"Weekly groceries" default:""`
	Notes                  string          `json:"notes" example:"Bought with the gift card" default:""`
	Tags                   string          `json:"tags" example:"food,weekly" default:""`
	Date                   time.Time       `json:"date" example:"2024-04-02T00:00:00Z"`
	AccountID              uuid.UUID       `json:"accountId" gorm:"check:source_destination_different,account_id != destination_account_id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	Account                Account         `json:"-"`
	DestinationAccountID   *uuid.UUID      `json:"destinationAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // Only set for transfers
	DestinationAccount     *Account        `json:"-"`
	CategoryID             *uuid.UUID      `json:"categoryId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"` // Required for expenses and income, forbidden for transfers
	Category               *Category       `json:"-"`
	Reconciled             bool            `json:"reconciled" example:"false" default:"false"`
	RecurringTransactionID *uuid.UUID      `json:"recurringTransactionId" example:"c1292680-52b0-4e6f-ae43-b1c3ee9d1afe"` // Set when the transaction was spawned by a schedule
}

// BeforeSave sets the timezone for the date to UTC, trims whitespace
// and normalizes optional references.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)
	t.Tags = strings.TrimSpace(t.Tags)

	// Ensure optional references are nil and not pointers to a nil UUID
	if t.DestinationAccountID != nil && *t.DestinationAccountID == uuid.Nil {
		t.DestinationAccountID = nil
	}

	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// Validate checks the per-type field rules before any balance is
// touched. A failing transaction never reaches an account.
func (t Transaction) Validate(db *gorm.DB) error {
	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	switch t.Type {
	case TransactionTypeTransfer:
		if t.DestinationAccountID == nil {
			return ErrTransactionNoDestination
		}
		if *t.DestinationAccountID == t.AccountID {
			return ErrTransactionSameAccount
		}
		if t.CategoryID != nil {
			return ErrTransactionCategoryForbidden
		}
	case TransactionTypeExpense, TransactionTypeIncome:
		if t.DestinationAccountID != nil {
			return ErrTransactionDestinationForbidden
		}
		if t.CategoryID == nil {
			return ErrTransactionNoCategory
		}

		var category Category
		err := db.First(&category, "id = ?", *t.CategoryID).Error
		if err != nil {
			return err
		}

		if (t.Type == TransactionTypeExpense && category.Type != CategoryTypeExpense) ||
			(t.Type == TransactionTypeIncome && category.Type != CategoryTypeIncome) {
			return ErrTransactionCategoryTypeMismatch
		}
	default:
		return ErrTransactionTypeInvalid
	}

	// The source account has to exist and belong to the same user
	var account Account
	err := db.First(&account, "id = ? AND user_id = ?", t.AccountID, t.UserID).Error
	if err != nil {
		return err
	}

	return nil
}

// applyEffect books the transaction against the account balances.
//
// Income credits the source account, an expense debits it. A transfer
// debits the source and credits the destination.
func (t Transaction) applyEffect(db *gorm.DB) error {
	switch t.Type {
	case TransactionTypeIncome:
		return adjustBalance(db, t.AccountID, t.Amount, true)
	case TransactionTypeExpense:
		return adjustBalance(db, t.AccountID, t.Amount, false)
	case TransactionTypeTransfer:
		err := adjustBalance(db, t.AccountID, t.Amount, false)
		if err != nil {
			return err
		}

		if t.DestinationAccountID != nil {
			return adjustBalance(db, *t.DestinationAccountID, t.Amount, true)
		}

		return nil
	}

	return ErrTransactionTypeInvalid
}

// reverseEffect is the exact inverse of applyEffect, using the stored
// amount, type and accounts.
func (t Transaction) reverseEffect(db *gorm.DB) error {
	switch t.Type {
	case TransactionTypeIncome:
		return adjustBalance(db, t.AccountID, t.Amount, false)
	case TransactionTypeExpense:
		return adjustBalance(db, t.AccountID, t.Amount, true)
	case TransactionTypeTransfer:
		err := adjustBalance(db, t.AccountID, t.Amount, true)
		if err != nil {
			return err
		}

		if t.DestinationAccountID != nil {
			return adjustBalance(db, *t.DestinationAccountID, t.Amount, false)
		}

		return nil
	}

	return ErrTransactionTypeInvalid
}

// CreateTransaction validates the transaction, applies its balance
// effect and persists it, all in a single database transaction.
func CreateTransaction(db *gorm.DB, transaction *Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := transaction.Validate(tx)
		if err != nil {
			return err
		}

		err = transaction.applyEffect(tx)
		if err != nil {
			return err
		}

		return tx.Create(transaction).Error
	})
}

// UpdateTransaction replaces the journaled values of an existing
// transaction.
//
// The stored effect is reversed before the new effect is applied. The
// order is mandatory: with it, editing only the amount still keeps the
// balance invariant exact. Reverse, apply and persist run in one
// database transaction, a failure rolls back all of it.
func UpdateTransaction(db *gorm.DB, transaction *Transaction, update Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		update.UserID = transaction.UserID
		err := update.Validate(tx)
		if err != nil {
			return err
		}

		err = transaction.reverseEffect(tx)
		if err != nil {
			return err
		}

		transaction.Amount = update.Amount
		transaction.Type = update.Type
		transaction.Description = update.Description
		transaction.Notes = update.Notes
		transaction.Tags = update.Tags
		transaction.Date = update.Date
		transaction.AccountID = update.AccountID
		transaction.DestinationAccountID = update.DestinationAccountID
		transaction.CategoryID = update.CategoryID
		transaction.Reconciled = update.Reconciled

		err = transaction.applyEffect(tx)
		if err != nil {
			return err
		}

		return tx.Save(transaction).Error
	})
}

// DeleteTransaction reverses the stored effect and removes the
// transaction from the journal.
func DeleteTransaction(db *gorm.DB, transaction *Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := transaction.reverseEffect(tx)
		if err != nil {
			return err
		}

		return tx.Delete(transaction).Error
	})
}

// TransactionFilter narrows down the transaction list.
type TransactionFilter struct {
	From       time.Time
	Until      time.Time
	CategoryID uuid.UUID
	AccountID  uuid.UUID
	Type       TransactionType
	Limit      int
	Offset     int
}

// Transactions returns the matching transactions of a user, ordered by
// date and creation time, newest first. The account filter matches the
// source as well as the destination side.
func Transactions(db *gorm.DB, userID uuid.UUID, filter TransactionFilter) ([]Transaction, error) {
	transactions := make([]Transaction, 0)

	q := db.
		Where("transactions.user_id = ?", userID).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	if !filter.From.IsZero() {
		q = q.Where("transactions.date >= date(?)", filter.From)
	}

	if !filter.Until.IsZero() {
		q = q.Where("transactions.date < date(?)", filter.Until.AddDate(0, 0, 1))
	}

	if filter.CategoryID != uuid.Nil {
		q = q.Where("transactions.category_id = ?", filter.CategoryID)
	}

	if filter.AccountID != uuid.Nil {
		q = q.Where(db.Where(&Transaction{AccountID: filter.AccountID}).Or("destination_account_id = ?", filter.AccountID))
	}

	if filter.Type != "" {
		q = q.Where("transactions.type = ?", filter.Type)
	}

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	err := q.Find(&transactions).Error
	return transactions, err
}

// RecentTransactions returns the latest transactions of a user.
func RecentTransactions(db *gorm.DB, userID uuid.UUID, count int) ([]Transaction, error) {
	return Transactions(db, userID, TransactionFilter{Limit: count})
}

// sumByType sums the amounts of one transaction type within an
// inclusive date window.
func sumByType(db *gorm.DB, userID uuid.UUID, transactionType TransactionType, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	q := db.Model(&Transaction{}).
		Where("user_id = ? AND type = ?", userID, transactionType).
		Select("SUM(amount)")

	if !from.IsZero() {
		q = q.Where("date >= date(?)", from)
	}

	if !until.IsZero() {
		q = q.Where("date < date(?)", until.AddDate(0, 0, 1))
	}

	err := q.Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions failed: %w", err)
	}

	return sum.Decimal, nil
}

// TotalIncome sums all income within an inclusive date window.
func TotalIncome(db *gorm.DB, userID uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	return sumByType(db, userID, TransactionTypeIncome, from, until)
}

// TotalExpenses sums all expenses within an inclusive date window.
func TotalExpenses(db *gorm.DB, userID uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	return sumByType(db, userID, TransactionTypeExpense, from, until)
}

// MonthlySummary is the income and expense volume of one calendar
// month.
type MonthlySummary struct {
	Month    types.Month     `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Net returns the income minus the expenses of the month.
func (s MonthlySummary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expenses)
}

// MonthlyTrend groups the non-transfer transactions of the last
// monthCount calendar months, including the current partial one, by
// month. Months without transactions are omitted.
func MonthlyTrend(db *gorm.DB, userID uuid.UUID, monthCount int, today time.Time) ([]MonthlySummary, error) {
	start := types.MonthOf(today).AddDate(0, -monthCount+1)

	var transactions []Transaction
	err := db.
		Where("user_id = ? AND type != ? AND date >= date(?)", userID, TransactionTypeTransfer, start.FirstDay()).
		Order("datetime(date) ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]MonthlySummary, 0)
	for _, t := range transactions {
		month := types.MonthOf(t.Date)

		if len(summaries) == 0 || !summaries[len(summaries)-1].Month.Equal(month) {
			summaries = append(summaries, MonthlySummary{Month: month})
		}

		s := &summaries[len(summaries)-1]
		switch t.Type {
		case TransactionTypeIncome:
			s.Income = s.Income.Add(t.Amount)
		case TransactionTypeExpense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}

	return summaries, nil
}
