package models_test

import (
	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpenseDebitsAccount() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(1000)})
	category := suite.expenseCategory()

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromInt(50),
		Type:       models.TransactionTypeExpense,
		AccountID:  account.ID,
		CategoryID: &category.ID,
	})

	assert.True(suite.T(), decimal.NewFromInt(950).Equal(suite.balanceOf(account.ID)),
		"Balance is %s, expected 950", suite.balanceOf(account.ID))

	// Editing the amount reverses the old effect before applying the new one
	update := transaction
	update.Amount = decimal.NewFromInt(80)
	err := models.UpdateTransaction(models.DB, &transaction, update)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), decimal.NewFromInt(920).Equal(suite.balanceOf(account.ID)),
		"Balance is %s, expected 920", suite.balanceOf(account.ID))

	// Deleting restores the balance completely
	err = models.DeleteTransaction(models.DB, &transaction)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(suite.balanceOf(account.ID)),
		"Balance is %s, expected 1000", suite.balanceOf(account.ID))
}

func (suite *TestSuiteStandard) TestIncomeCreditsAccount() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(100)})
	category := suite.incomeCategory()

	suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromFloat(2317.34),
		Type:       models.TransactionTypeIncome,
		AccountID:  account.ID,
		CategoryID: &category.ID,
	})

	assert.True(suite.T(), decimal.NewFromFloat(2417.34).Equal(suite.balanceOf(account.ID)))
}

func (suite *TestSuiteStandard) TestTransferMovesMoney() {
	user := suite.createTestUser()
	source := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(500)})
	destination := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(200)})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:               user.ID,
		Amount:               decimal.NewFromInt(100),
		Type:                 models.TransactionTypeTransfer,
		AccountID:            source.ID,
		DestinationAccountID: &destination.ID,
	})

	assert.True(suite.T(), decimal.NewFromInt(400).Equal(suite.balanceOf(source.ID)))
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(suite.balanceOf(destination.ID)))

	// Deleting the transfer restores both balances
	err := models.DeleteTransaction(models.DB, &transaction)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), decimal.NewFromInt(500).Equal(suite.balanceOf(source.ID)))
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(suite.balanceOf(destination.ID)))
}

func (suite *TestSuiteStandard) TestUpdateMovesBetweenAccounts() {
	user := suite.createTestUser()
	first := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(100)})
	second := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(100)})
	category := suite.expenseCategory()

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromInt(30),
		Type:       models.TransactionTypeExpense,
		AccountID:  first.ID,
		CategoryID: &category.ID,
	})

	update := transaction
	update.AccountID = second.ID
	err := models.UpdateTransaction(models.DB, &transaction, update)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), decimal.NewFromInt(100).Equal(suite.balanceOf(first.ID)),
		"First account was not restored")
	assert.True(suite.T(), decimal.NewFromInt(70).Equal(suite.balanceOf(second.ID)),
		"Second account was not debited")
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: decimal.NewFromInt(1000)})
	other := suite.createTestAccount(models.Account{UserID: user.ID})
	expense := suite.expenseCategory()
	income := suite.incomeCategory()

	tests := []struct {
		name        string
		transaction models.Transaction
		expected    error
	}{
		{
			"negative amount",
			models.Transaction{Amount: decimal.NewFromInt(-1), Type: models.TransactionTypeExpense, AccountID: account.ID, CategoryID: &expense.ID},
			models.ErrTransactionAmountNegative,
		},
		{
			"transfer without destination",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeTransfer, AccountID: account.ID},
			models.ErrTransactionNoDestination,
		},
		{
			"transfer to the same account",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeTransfer, AccountID: account.ID, DestinationAccountID: &account.ID},
			models.ErrTransactionSameAccount,
		},
		{
			"transfer with category",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeTransfer, AccountID: account.ID, DestinationAccountID: &other.ID, CategoryID: &expense.ID},
			models.ErrTransactionCategoryForbidden,
		},
		{
			"expense with destination",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeExpense, AccountID: account.ID, DestinationAccountID: &other.ID, CategoryID: &expense.ID},
			models.ErrTransactionDestinationForbidden,
		},
		{
			"expense without category",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeExpense, AccountID: account.ID},
			models.ErrTransactionNoCategory,
		},
		{
			"expense with income category",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeExpense, AccountID: account.ID, CategoryID: &income.ID},
			models.ErrTransactionCategoryTypeMismatch,
		},
		{
			"income with expense category",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome, AccountID: account.ID, CategoryID: &expense.ID},
			models.ErrTransactionCategoryTypeMismatch,
		},
		{
			"invalid type",
			models.Transaction{Amount: decimal.NewFromInt(1), Type: "WIRE", AccountID: account.ID},
			models.ErrTransactionTypeInvalid,
		},
	}

	for _, tt := range tests {
		tt.transaction.UserID = user.ID

		err := models.CreateTransaction(models.DB, &tt.transaction)
		assert.ErrorIs(suite.T(), err, tt.expected, "Test %q", tt.name)
	}

	// None of the failed transactions touched the balance
	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(suite.balanceOf(account.ID)),
		"A rejected transaction changed the balance")
}

func (suite *TestSuiteStandard) TestTransactionForeignUserAccount() {
	user := suite.createTestUser()
	stranger := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: stranger.ID})
	category := suite.expenseCategory()

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromInt(1),
		Type:       models.TransactionTypeExpense,
		AccountID:  account.ID,
		CategoryID: &category.ID,
	})

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsFilter() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	other := suite.createTestAccount(models.Account{UserID: user.ID})
	expense := suite.expenseCategory()
	income := suite.incomeCategory()

	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(10), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &expense.ID, Date: date(2024, 4, 2),
	})
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(20), Type: models.TransactionTypeIncome,
		AccountID: other.ID, CategoryID: &income.ID, Date: date(2024, 4, 10),
	})
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(30), Type: models.TransactionTypeTransfer,
		AccountID: other.ID, DestinationAccountID: &account.ID, Date: date(2024, 5, 1),
	})

	// No filter returns everything, newest first
	all, err := models.Transactions(models.DB, user.ID, models.TransactionFilter{})
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), all, 3) {
		assert.Equal(suite.T(), date(2024, 5, 1), all[0].Date)
	}

	// The account filter matches source and destination
	forAccount, err := models.Transactions(models.DB, user.ID, models.TransactionFilter{AccountID: account.ID})
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), forAccount, 2)

	// Date window is inclusive on both ends
	april, err := models.Transactions(models.DB, user.ID, models.TransactionFilter{
		From:  date(2024, 4, 2),
		Until: date(2024, 4, 10),
	})
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), april, 2)

	// Type filter
	expenses, err := models.Transactions(models.DB, user.ID, models.TransactionFilter{Type: models.TransactionTypeExpense})
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)

	// Other users see nothing
	stranger := suite.createTestUser()
	foreign, err := models.Transactions(models.DB, stranger.ID, models.TransactionFilter{})
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), foreign, 0)
}

func (suite *TestSuiteStandard) TestTotalsAndTrend() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	other := suite.createTestAccount(models.Account{UserID: user.ID})
	expense := suite.expenseCategory()
	income := suite.incomeCategory()

	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(100), Type: models.TransactionTypeIncome,
		AccountID: account.ID, CategoryID: &income.ID, Date: date(2024, 2, 15),
	})
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(40), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &expense.ID, Date: date(2024, 4, 3),
	})

	// Transfers never show up in totals or trends
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(500), Type: models.TransactionTypeTransfer,
		AccountID: account.ID, DestinationAccountID: &other.ID, Date: date(2024, 4, 4),
	})

	totalIncome, err := models.TotalIncome(models.DB, user.ID, date(2024, 2, 1), date(2024, 4, 30))
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(totalIncome))

	totalExpenses, err := models.TotalExpenses(models.DB, user.ID, date(2024, 4, 3), date(2024, 4, 3))
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(40).Equal(totalExpenses), "An inclusive one-day window missed the transaction")

	// Months without transactions are omitted from the trend
	trend, err := models.MonthlyTrend(models.DB, user.ID, 6, date(2024, 4, 10))
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), trend, 2) {
		assert.True(suite.T(), types.NewMonth(2024, 2).Equal(trend[0].Month))
		assert.True(suite.T(), decimal.NewFromInt(100).Equal(trend[0].Income))
		assert.True(suite.T(), types.NewMonth(2024, 4).Equal(trend[1].Month))
		assert.True(suite.T(), decimal.NewFromInt(40).Equal(trend[1].Expenses))
		assert.True(suite.T(), decimal.NewFromInt(-40).Equal(trend[1].Net()))
	}
}
