package models_test

import (
	"errors"

	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSystemCategoriesSeeded() {
	var count int64
	err := models.DB.Model(&models.Category{}).Where("system = ?", true).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(21), count)

	// Connecting to the same database again does not duplicate the seeds
	suite.CloseDB()
	dsn := test.TmpFile(suite.T())
	assert.Nil(suite.T(), models.Connect(dsn))
	assert.Nil(suite.T(), models.Connect(dsn))

	err = models.DB.Model(&models.Category{}).Where("system = ?", true).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(21), count)

	var category models.Category
	err = models.DB.First(&category, "name = ? AND system = ?", "Food & Dining", true).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.CategoryTypeExpense, category.Type)
	assert.Nil(suite.T(), category.UserID)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	user := suite.createTestUser()
	suite.createTestCategory(models.Category{UserID: &user.ID, Name: "Groceries", Type: models.CategoryTypeExpense})

	err := models.DB.Create(&models.Category{UserID: &user.ID, Name: "Groceries", Type: models.CategoryTypeExpense}).Error
	assert.True(suite.T(), errors.Is(err, models.ErrCategoryNameNotUnique), "Error is: %s", err)
}

func (suite *TestSuiteStandard) TestCategoryInvalidType() {
	user := suite.createTestUser()

	err := models.DB.Create(&models.Category{UserID: &user.ID, Name: "Mixed", Type: "BOTH"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryParentValidation() {
	user := suite.createTestUser()
	parent := suite.createTestCategory(models.Category{UserID: &user.ID, Type: models.CategoryTypeExpense})
	child := suite.createTestCategory(models.Category{UserID: &user.ID, Type: models.CategoryTypeExpense, ParentID: &parent.ID})

	// The parent must have the same type
	err := models.DB.Create(&models.Category{UserID: &user.ID, Name: "Wrong type", Type: models.CategoryTypeIncome, ParentID: &parent.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryParentType)

	// Only one level of hierarchy is allowed
	err = models.DB.Create(&models.Category{UserID: &user.ID, Name: "Too deep", Type: models.CategoryTypeExpense, ParentID: &child.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryParentNested)
}

func (suite *TestSuiteStandard) TestUpdateSystemCategory() {
	category := suite.expenseCategory()
	name := category.Name

	update := category
	update.Name = "Renamed"
	update.Color = "#000000"

	err := models.UpdateCategory(models.DB, &category, update)
	assert.Nil(suite.T(), err)

	var reloaded models.Category
	assert.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", category.ID).Error)
	assert.Equal(suite.T(), name, reloaded.Name, "The name of a system category was changed")
	assert.Equal(suite.T(), "#000000", reloaded.Color)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	user := suite.createTestUser()

	// System categories are never deleted
	system := suite.expenseCategory()
	assert.ErrorIs(suite.T(), models.DeleteCategory(models.DB, &system), models.ErrCategorySystemReadOnly)

	// An unused user category is removed
	unused := suite.createTestCategory(models.Category{UserID: &user.ID, Type: models.CategoryTypeExpense})
	assert.Nil(suite.T(), models.DeleteCategory(models.DB, &unused))

	err := models.DB.First(&models.Category{}, "id = ?", unused.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// A referenced one is deactivated
	used := suite.createTestCategory(models.Category{UserID: &user.ID, Type: models.CategoryTypeExpense})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromInt(10),
		Type:       models.TransactionTypeExpense,
		AccountID:  account.ID,
		CategoryID: &used.ID,
	})

	assert.Nil(suite.T(), models.DeleteCategory(models.DB, &used))

	var reloaded models.Category
	assert.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", used.ID).Error)
	assert.False(suite.T(), reloaded.Active)
}

func (suite *TestSuiteStandard) TestCategoriesVisibility() {
	user := suite.createTestUser()
	stranger := suite.createTestUser()

	mine := suite.createTestCategory(models.Category{UserID: &user.ID, Type: models.CategoryTypeExpense})
	suite.createTestCategory(models.Category{UserID: &stranger.ID, Type: models.CategoryTypeExpense})

	categories, err := models.Categories(models.DB, user.ID, "")
	assert.Nil(suite.T(), err)

	// 21 system categories plus the own one, nothing from other users
	assert.Len(suite.T(), categories, 22)

	expenses, err := models.Categories(models.DB, user.ID, models.CategoryTypeExpense)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 15)

	for _, c := range expenses {
		if c.UserID != nil {
			assert.Equal(suite.T(), mine.ID, c.ID)
		}
	}
}

func (suite *TestSuiteStandard) TestCategorySums() {
	user := suite.createTestUser()
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	food := suite.expenseCategory()
	travel := suite.createTestCategory(models.Category{UserID: &user.ID, Name: "Weekend trips", Type: models.CategoryTypeExpense})

	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(75), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &food.ID, Date: date(2024, 4, 2),
	})
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(15), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &food.ID, Date: date(2024, 4, 9),
	})
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(30), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &travel.ID, Date: date(2024, 4, 20),
	})

	// Outside the window
	suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Amount: decimal.NewFromInt(1000), Type: models.TransactionTypeExpense,
		AccountID: account.ID, CategoryID: &food.ID, Date: date(2024, 5, 1),
	})

	sums, err := models.CategorySums(models.DB, user.ID, models.TransactionTypeExpense, date(2024, 4, 1), date(2024, 4, 30))
	assert.Nil(suite.T(), err)

	if assert.Len(suite.T(), sums, 2) {
		assert.Equal(suite.T(), food.ID, sums[0].CategoryID)
		assert.True(suite.T(), decimal.NewFromInt(90).Equal(sums[0].Total))
		assert.Equal(suite.T(), 2, sums[0].Count)
		assert.InDelta(suite.T(), 75.0, sums[0].Percentage, 0.01)

		assert.Equal(suite.T(), travel.ID, sums[1].CategoryID)
		assert.InDelta(suite.T(), 25.0, sums[1].Percentage, 0.01)
	}
}
