package v1

import (
	"github.com/centuition/backend/internal/models"
	"github.com/shopspring/decimal"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name           string             `json:"name" example:"Checking" default:""`                   // Name of the account
	Type           models.AccountType `json:"type" example:"CHECKING" default:"OTHER"`              // Type of the account
	Note           string             `json:"note" example:"Main household account" default:""`     // Notes about the account
	Currency       string             `json:"currency" example:"USD" default:"USD"`                 // ISO 4217 currency code
	Color          string             `json:"color" example:"#2ECC71" default:""`                   // Display color
	Icon           string             `json:"icon" example:"wallet" default:""`                     // Display icon
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"173.12" default:"0"`          // Balance before the first transaction
	Active         bool               `json:"active" example:"true" default:"true"`                 // Is the account in use?
	IncludeInTotal bool               `json:"includeInTotal" example:"true" default:"true"`         // Does the account count towards the total balance?
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		Type:           editable.Type,
		Note:           editable.Note,
		Currency:       editable.Currency,
		Color:          editable.Color,
		Icon:           editable.Icon,
		InitialBalance: editable.InitialBalance,
		Active:         editable.Active,
		IncludeInTotal: editable.IncludeInTotal,
	}
}

type AccountResponse struct {
	Data  *models.Account `json:"data"`  // Data for the Account
	Error *string         `json:"error"` // The error, if any occurred
}

type AccountListResponse struct {
	Data  []models.Account `json:"data"`  // List of Accounts
	Error *string          `json:"error"` // The error, if any occurred
}

type AccountSummary struct {
	TotalBalance decimal.Decimal             `json:"totalBalance" example:"2735.17"` // Sum over all active accounts included in the total
	ByType       []models.AccountTypeBalance `json:"byType"`                         // Balances grouped by account type
}

type AccountSummaryResponse struct {
	Data  *AccountSummary `json:"data"`  // The summary
	Error *string         `json:"error"` // The error, if any occurred
}
