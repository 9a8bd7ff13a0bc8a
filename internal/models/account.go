package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeLoan       AccountType = "LOAN"
	AccountTypeOther      AccountType = "OTHER"
)

// AccountTypes lists all valid account types.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeChecking,
		AccountTypeSavings,
		AccountTypeCreditCard,
		AccountTypeCash,
		AccountTypeInvestment,
		AccountTypeLoan,
		AccountTypeOther,
	}
}

// Account represents an asset account, e.g. a bank account.
//
// CurrentBalance is maintained incrementally by the transaction
// journal: it always equals InitialBalance plus the signed sum of all
// existing transactions that reference the account.
type Account struct {
	DefaultModel
	User           User            `json:"-"`
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex:account_name_user_id" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Name           string          `json:"name" gorm:"uniqueIndex:account_name_user_id" example:"Checking" default:""`
	Type           AccountType     `json:"type" example:"CHECKING" default:"OTHER"`
	Note           string          `json:"note" example:"Main household account" default:""`
	Currency       string          `json:"currency" example:"USD" default:"USD"`
	Color          string          `json:"color" example:"#2ECC71" default:""`
	Icon           string          `json:"icon" example:"wallet" default:""`
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:DECIMAL(20,8)" example:"173.12" default:"0"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)" example:"2735.17"` // Maintained by the journal, not editable
	Active         bool            `json:"active" example:"true" default:"true"`
	IncludeInTotal bool            `json:"includeInTotal" example:"true" default:"true"`
}

// BeforeSave trims whitespace from all strings, defaults the type and
// validates it.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	if a.Type == "" {
		a.Type = AccountTypeOther
	}

	if !slices.Contains(AccountTypes(), a.Type) {
		return ErrAccountTypeInvalid
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	return nil
}

// CreateAccount persists a new account. The current balance starts at
// the initial balance; from then on only the transaction journal
// mutates it.
func CreateAccount(db *gorm.DB, account *Account) error {
	account.CurrentBalance = account.InitialBalance
	return db.Create(account).Error
}

// UpdateAccount updates the editable fields of an existing account.
// The balances are not editable, they belong to the journal.
func UpdateAccount(db *gorm.DB, account *Account, update Account) error {
	return db.Model(account).Select(
		"Name", "Type", "Note", "Currency", "Color", "Icon", "Active", "IncludeInTotal",
	).Updates(update).Error
}

// DeleteAccount removes an account.
//
// An account that is referenced by transactions, as source or as
// destination, is deactivated instead of deleted so that the journal
// history stays intact.
func DeleteAccount(db *gorm.DB, account *Account) error {
	var count int64
	err := db.Model(&Transaction{}).
		Where(db.Where(&Transaction{AccountID: account.ID}).Or("destination_account_id = ?", account.ID)).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return db.Model(account).Update("Active", false).Error
	}

	return db.Delete(account).Error
}

// Transactions returns all transactions referencing the account as
// source or destination.
func (a Account) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where(db.Where(&Transaction{AccountID: a.ID}).Or("destination_account_id = ?", a.ID)).
		Find(&transactions).Error

	return transactions, err
}

// TotalBalance sums the current balance of all active accounts that are
// flagged to be included in the total.
func TotalBalance(db *gorm.DB, userID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Model(&Account{}).
		Where(&Account{UserID: userID, Active: true, IncludeInTotal: true}).
		Select("SUM(current_balance)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// AccountTypeBalance is the summed balance for one account type.
type AccountTypeBalance struct {
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// BalancesByType groups the active accounts of a user by type and sums
// their current balances.
func BalancesByType(db *gorm.DB, userID uuid.UUID) ([]AccountTypeBalance, error) {
	var balances []AccountTypeBalance

	err := db.Model(&Account{}).
		Where(&Account{UserID: userID, Active: true}).
		Select("type, SUM(current_balance) as balance").
		Group("type").
		Order("type ASC").
		Find(&balances).Error
	if err != nil {
		return nil, err
	}

	return balances, nil
}

// adjustBalance applies a single balance delta to an account. The
// update is a single atomic statement, callers are responsible for
// exactly-once application.
func adjustBalance(db *gorm.DB, accountID uuid.UUID, amount decimal.Decimal, credit bool) error {
	expr := gorm.Expr("current_balance - ?", amount)
	if credit {
		expr = gorm.Expr("current_balance + ?", amount)
	}

	res := db.Model(&Account{}).Where("id = ?", accountID).Update("current_balance", expr)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w account matching your query", ErrResourceNotFound)
	}

	return nil
}
