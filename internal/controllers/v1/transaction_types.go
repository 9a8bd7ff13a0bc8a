package v1

import (
	"time"

	"github.com/centuition/backend/internal/models"
	ct_uuid "github.com/centuition/backend/internal/uuid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Amount               decimal.Decimal        `json:"amount" example:"14.03" minimum:"0.00000000"`                          // Amount as a non-negative magnitude
	Type                 models.TransactionType `json:"type" example:"EXPENSE"`                                               // EXPENSE, INCOME or TRANSFER
	Description          string                 `json:"description" example:"Weekly groceries" default:""`                    // Description of the transaction
	Notes                string                 `json:"notes" example:"Bought with the gift card" default:""`                 // Free form notes
	Tags                 string                 `json:"tags" example:"food,weekly" default:""`                                // Comma separated tags
	Date                 time.Time              `json:"date" example:"2024-04-02T00:00:00Z"`                                  // Date of the transaction
	AccountID            uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`             // Source account
	DestinationAccountID *uuid.UUID             `json:"destinationAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`  // Destination account, only for transfers
	CategoryID           *uuid.UUID             `json:"categoryId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`            // Category, required for expenses and income
	Reconciled           bool                   `json:"reconciled" example:"false" default:"false"`                           // Has the transaction been reconciled?
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Amount:               editable.Amount,
		Type:                 editable.Type,
		Description:          editable.Description,
		Notes:                editable.Notes,
		Tags:                 editable.Tags,
		Date:                 editable.Date,
		AccountID:            editable.AccountID,
		DestinationAccountID: editable.DestinationAccountID,
		CategoryID:           editable.CategoryID,
		Reconciled:           editable.Reconciled,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`  // Data for the Transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`  // List of Transactions
	Error *string              `json:"error"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	From       time.Time              `form:"from" time_format:"2006-01-02" time_utc:"1"`  // First day, inclusive
	Until      time.Time              `form:"until" time_format:"2006-01-02" time_utc:"1"` // Last day, inclusive
	Account    ct_uuid.UUID           `form:"account"`                                     // By account, source or destination
	Category   ct_uuid.UUID           `form:"category"`                                    // By category
	Type       models.TransactionType `form:"type"`                                        // By transaction type
	Offset     int                    `form:"offset"`                                      // The offset of the first Transaction returned. Defaults to 0.
	Limit      int                    `form:"limit"`                                       // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.TransactionFilter {
	return models.TransactionFilter{
		From:       f.From,
		Until:      f.Until,
		AccountID:  f.Account.UUID,
		CategoryID: f.Category.UUID,
		Type:       f.Type,
		Offset:     f.Offset,
		Limit:      f.Limit,
	}
}
