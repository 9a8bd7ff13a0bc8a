package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// User errors
var (
	ErrUserEmailNotUnique = errors.New("a user with this email address already exists")
)

// Account errors
var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique for the user")
	ErrAccountTypeInvalid   = errors.New("the account type is invalid")
)

// Category errors
var (
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique for the user")
	ErrCategoryTypeInvalid    = errors.New("the category type is invalid")
	ErrCategoryParentType     = errors.New("the parent category must have the same type")
	ErrCategoryParentNested   = errors.New("a parent category cannot have a parent itself")
	ErrCategorySystemReadOnly = errors.New("system categories can only be changed cosmetically")
)

// Transaction validation errors. These are checked before any balance
// is touched, so a failing transaction never mutates an account.
var (
	ErrTransactionAmountNegative       = errors.New("the transaction amount must not be negative")
	ErrTransactionNoDestination        = errors.New("a transfer requires a destination account")
	ErrTransactionSameAccount          = errors.New("source and destination account must be different")
	ErrTransactionDestinationForbidden = errors.New("only transfers can have a destination account")
	ErrTransactionNoCategory           = errors.New("income and expense transactions require a category")
	ErrTransactionCategoryForbidden    = errors.New("transfers cannot have a category")
	ErrTransactionCategoryTypeMismatch = errors.New("the category type must match the transaction type")
	ErrTransactionTypeInvalid          = errors.New("the transaction type is invalid")
)

// Budget errors
var (
	ErrBudgetExists = errors.New("a budget for this category and month already exists")
)

// Recurring transaction errors
var (
	ErrFrequencyInvalid = errors.New("the recurrence frequency is invalid")
)
