package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurrenceFrequency is the interval of a recurring transaction.
type RecurrenceFrequency string

const (
	FrequencyDaily     RecurrenceFrequency = "DAILY"
	FrequencyWeekly    RecurrenceFrequency = "WEEKLY"
	FrequencyBiweekly  RecurrenceFrequency = "BIWEEKLY"
	FrequencyMonthly   RecurrenceFrequency = "MONTHLY"
	FrequencyQuarterly RecurrenceFrequency = "QUARTERLY"
	FrequencyYearly    RecurrenceFrequency = "YEARLY"
)

// RecurrenceFrequencies lists all valid frequencies.
func RecurrenceFrequencies() []RecurrenceFrequency {
	return []RecurrenceFrequency{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyBiweekly,
		FrequencyMonthly,
		FrequencyQuarterly,
		FrequencyYearly,
	}
}

// addTo returns the date one interval after the given date.
func (f RecurrenceFrequency) addTo(date time.Time) (time.Time, error) {
	switch f {
	case FrequencyDaily:
		return date.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return date.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return date.AddDate(0, 1, 0), nil
	case FrequencyQuarterly:
		return date.AddDate(0, 3, 0), nil
	case FrequencyYearly:
		return date.AddDate(1, 0, 0), nil
	}

	return time.Time{}, ErrFrequencyInvalid
}

// RecurringTransaction is a template that spawns journal transactions
// on a schedule.
type RecurringTransaction struct {
	DefaultModel
	User                 User                `json:"-"`
	UserID               uuid.UUID           `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Description          string              `json:"description" example:"Rent" default:""`
	Notes                string              `json:"notes" example:"Due on the first of the month" default:""`
	Amount               decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1200" minimum:"0.00000000"`
	Type                 TransactionType     `json:"type" example:"EXPENSE"`
	AccountID            uuid.UUID           `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	Account              Account             `json:"-"`
	DestinationAccountID *uuid.UUID          `json:"destinationAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // Only set for transfers
	DestinationAccount   *Account            `json:"-"`
	CategoryID           *uuid.UUID          `json:"categoryId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	Category             *Category           `json:"-"`
	Frequency            RecurrenceFrequency `json:"frequency" example:"MONTHLY"`
	StartDate            time.Time           `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate              *time.Time          `json:"endDate" example:"2024-12-31T00:00:00Z"` // nil for open ended schedules
	NextDueDate          time.Time           `json:"nextDueDate" example:"2024-05-01T00:00:00Z"`
	LastProcessedDate    *time.Time          `json:"lastProcessedDate" example:"2024-04-01T00:00:00Z"`
	AutoCreate           bool                `json:"autoCreate" example:"true" default:"true"` // When false, due dates are only marked as processed
	Active               bool                `json:"active" example:"true" default:"true"`
}

// BeforeSave normalizes dates to UTC, validates the frequency and
// initializes the next due date.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)
	r.Notes = strings.TrimSpace(r.Notes)

	_, err := r.Frequency.addTo(r.StartDate)
	if err != nil {
		return err
	}

	r.StartDate = r.StartDate.In(time.UTC)

	if r.EndDate != nil {
		end := r.EndDate.In(time.UTC)
		r.EndDate = &end
	}

	if r.NextDueDate.IsZero() {
		r.NextDueDate = r.StartDate
	} else {
		r.NextDueDate = r.NextDueDate.In(time.UTC)
	}

	return nil
}

// advance moves the schedule past its current due date.
//
// The new due date is one interval after the last processed date and
// is then advanced in whole intervals until it no longer lies in the
// past. A schedule whose end date is exceeded is deactivated.
func (r *RecurringTransaction) advance(today time.Time) error {
	processed := r.NextDueDate
	r.LastProcessedDate = &processed

	next, err := r.Frequency.addTo(processed)
	if err != nil {
		return err
	}

	for next.Before(today.Truncate(24 * time.Hour)) {
		next, err = r.Frequency.addTo(next)
		if err != nil {
			return err
		}
	}

	r.NextDueDate = next

	if r.EndDate != nil && r.NextDueDate.After(*r.EndDate) {
		r.Active = false
	}

	return nil
}

// spawn builds the journal transaction for the current due date.
func (r RecurringTransaction) spawn() Transaction {
	id := r.ID

	return Transaction{
		UserID:                 r.UserID,
		Amount:                 r.Amount,
		Type:                   r.Type,
		Description:            r.Description,
		Notes:                  r.Notes,
		Date:                   r.NextDueDate,
		AccountID:              r.AccountID,
		DestinationAccountID:   r.DestinationAccountID,
		CategoryID:             r.CategoryID,
		RecurringTransactionID: &id,
	}
}

// DueRecurringTransactions returns the active schedules that are due
// on or before the given day. Schedules whose end date already passed
// are never due, even when they have not been deactivated yet.
func DueRecurringTransactions(db *gorm.DB, userID uuid.UUID, today time.Time) ([]RecurringTransaction, error) {
	due := make([]RecurringTransaction, 0)

	err := db.
		Where("user_id = ? AND active = ? AND date(next_due_date) <= date(?)", userID, true, today).
		Where("end_date IS NULL OR date(end_date) >= date(?)", today).
		Order("datetime(next_due_date) ASC").
		Find(&due).Error

	return due, err
}

// ProcessDueRecurringTransactions materializes all due schedules.
//
// A due schedule with auto-create enabled spawns exactly one
// transaction dated at its due date. The schedule is advanced in
// either case, so a single occurrence is never materialized twice and
// schedules without auto-create only track their processed dates.
// Spawning and advancing happen in one database transaction per
// schedule.
func ProcessDueRecurringTransactions(db *gorm.DB, userID uuid.UUID, today time.Time) ([]Transaction, error) {
	due, err := DueRecurringTransactions(db, userID, today)
	if err != nil {
		return nil, err
	}

	created := make([]Transaction, 0, len(due))
	for i := range due {
		recurring := &due[i]

		err = db.Transaction(func(tx *gorm.DB) error {
			var spawned *Transaction
			if recurring.AutoCreate {
				transaction := recurring.spawn()
				err := CreateTransaction(tx, &transaction)
				if err != nil {
					return err
				}

				spawned = &transaction
			}

			err := recurring.advance(today)
			if err != nil {
				return err
			}

			err = tx.Model(recurring).
				Select("NextDueDate", "LastProcessedDate", "Active").
				Updates(*recurring).Error
			if err != nil {
				return err
			}

			if spawned != nil {
				created = append(created, *spawned)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return created, nil
}
