package v1

import (
	"time"

	"github.com/centuition/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	Description          string                     `json:"description" example:"Rent" default:""`                               // Description for the spawned transactions
	Notes                string                     `json:"notes" example:"Due on the first of the month" default:""`            // Notes for the spawned transactions
	Amount               decimal.Decimal            `json:"amount" example:"1200" minimum:"0.00000000"`                          // Amount of each spawned transaction
	Type                 models.TransactionType     `json:"type" example:"EXPENSE"`                                              // EXPENSE, INCOME or TRANSFER
	AccountID            uuid.UUID                  `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`            // Source account
	DestinationAccountID *uuid.UUID                 `json:"destinationAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // Destination account, only for transfers
	CategoryID           *uuid.UUID                 `json:"categoryId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`           // Category for the spawned transactions
	Frequency            models.RecurrenceFrequency `json:"frequency" example:"MONTHLY"`                                         // How often the schedule fires
	StartDate            time.Time                  `json:"startDate" example:"2024-01-01T00:00:00Z"`                            // First due date
	EndDate              *time.Time                 `json:"endDate" example:"2024-12-31T00:00:00Z"`                              // Optional last day the schedule is active
	AutoCreate           bool                       `json:"autoCreate" example:"true" default:"true"`                            // Spawn transactions when due, or only track the dates?
	Active               bool                       `json:"active" example:"true" default:"true"`                                // Is the schedule in use?
}

func (editable RecurringTransactionEditable) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		Description:          editable.Description,
		Notes:                editable.Notes,
		Amount:               editable.Amount,
		Type:                 editable.Type,
		AccountID:            editable.AccountID,
		DestinationAccountID: editable.DestinationAccountID,
		CategoryID:           editable.CategoryID,
		Frequency:            editable.Frequency,
		StartDate:            editable.StartDate,
		EndDate:              editable.EndDate,
		AutoCreate:           editable.AutoCreate,
		Active:               editable.Active,
	}
}

type RecurringTransactionResponse struct {
	Data  *models.RecurringTransaction `json:"data"`  // Data for the RecurringTransaction
	Error *string                      `json:"error"` // The error, if any occurred
}

type RecurringTransactionListResponse struct {
	Data  []models.RecurringTransaction `json:"data"`  // List of RecurringTransactions
	Error *string                       `json:"error"` // The error, if any occurred
}
