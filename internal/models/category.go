package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CategoryType classifies a category. A category is either for
// expenses or for income, never both.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Category is a label for expense or income transactions.
//
// System categories are shared between all users and are seeded once.
// Users can only change their cosmetic fields. User categories belong
// to exactly one user.
type Category struct {
	DefaultModel
	User      *User        `json:"-"`
	UserID    *uuid.UUID   `json:"userId" gorm:"uniqueIndex:category_name_user_id" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // nil for system categories
	Name      string       `json:"name" gorm:"uniqueIndex:category_name_user_id" example:"Groceries" default:""`
	Type      CategoryType `json:"type" example:"EXPENSE"`
	Color     string       `json:"color" example:"#FF6B6B" default:""`
	Icon      string       `json:"icon" example:"restaurant" default:""`
	System    bool         `json:"system" example:"false" default:"false"`
	Parent    *Category    `json:"-"`
	ParentID  *uuid.UUID   `json:"parentId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	SortOrder int          `json:"sortOrder" example:"1" default:"0"`
	Active    bool         `json:"active" example:"true" default:"true"`
}

// BeforeSave trims whitespace, validates the type and verifies the
// parent reference.
//
// Only a single level of hierarchy is allowed and a parent must have
// the same type as the category itself.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if !slices.Contains([]CategoryType{CategoryTypeExpense, CategoryTypeIncome}, c.Type) {
		return ErrCategoryTypeInvalid
	}

	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}

	if c.ParentID != nil {
		var parent Category
		err := tx.First(&parent, "id = ?", *c.ParentID).Error
		if err != nil {
			return fmt.Errorf("no existing category with specified ParentID: %w", err)
		}

		if parent.Type != c.Type {
			return ErrCategoryParentType
		}

		if parent.ParentID != nil {
			return ErrCategoryParentNested
		}
	}

	return nil
}

// UpdateCategory updates an existing category.
//
// For system categories only the cosmetic fields are written, the
// name, type and hierarchy stay as seeded.
func UpdateCategory(db *gorm.DB, category *Category, update Category) error {
	fields := []string{"Name", "Type", "Color", "Icon", "ParentID", "SortOrder", "Active"}
	if category.System {
		fields = []string{"Color", "Icon", "SortOrder"}
	}

	// An unset type keeps the current one
	if update.Type == "" {
		update.Type = category.Type
	}

	return db.Model(category).Select(fields).Updates(update).Error
}

// DeleteCategory removes a user category.
//
// A category that is referenced by transactions is deactivated instead
// of deleted so that the journal history stays intact. System
// categories are never deleted.
func DeleteCategory(db *gorm.DB, category *Category) error {
	if category.System {
		return ErrCategorySystemReadOnly
	}

	var count int64
	err := db.Model(&Transaction{}).Where("category_id = ?", category.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return db.Model(category).Update("Active", false).Error
	}

	return db.Delete(category).Error
}

// Categories returns the active categories visible to a user: the
// system categories plus their own. An empty categoryType matches both
// types.
func Categories(db *gorm.DB, userID uuid.UUID, categoryType CategoryType) ([]Category, error) {
	var categories []Category

	q := db.
		Where("(system = ? OR user_id = ?) AND active = ?", true, userID, true).
		Order("type ASC, sort_order ASC, name ASC")

	if categoryType != "" {
		q = q.Where("type = ?", categoryType)
	}

	err := q.Find(&categories).Error
	return categories, err
}

// CategorySum is the aggregated transaction volume for one category.
type CategorySum struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// CategorySums groups the categorized transactions of one type within
// a date window by category and sums their amounts. Each entry carries
// its share of the overall total in percent, rounded to one decimal.
func CategorySums(db *gorm.DB, userID uuid.UUID, transactionType TransactionType, from, until time.Time) ([]CategorySum, error) {
	sums := make([]CategorySum, 0)

	q := db.Model(&Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.category_id IS NOT NULL", userID, transactionType).
		Select("transactions.category_id, categories.name, categories.color, SUM(transactions.amount) as total, COUNT(*) as count").
		Group("transactions.category_id").
		Order("total DESC")

	if !from.IsZero() {
		q = q.Where("transactions.date >= date(?)", from)
	}

	if !until.IsZero() {
		q = q.Where("transactions.date < date(?)", until.AddDate(0, 0, 1))
	}

	err := q.Find(&sums).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, s := range sums {
		total = total.Add(s.Total)
	}

	for i := range sums {
		if total.IsPositive() {
			share, _ := sums[i].Total.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
			sums[i].Percentage = share
		}
	}

	return sums, nil
}

var systemCategories = []Category{
	{Name: "Food & Dining", Type: CategoryTypeExpense, Color: "#FF6B6B", Icon: "restaurant", SortOrder: 1},
	{Name: "Transportation", Type: CategoryTypeExpense, Color: "#4ECDC4", Icon: "car", SortOrder: 2},
	{Name: "Housing", Type: CategoryTypeExpense, Color: "#45B7D1", Icon: "home", SortOrder: 3},
	{Name: "Utilities", Type: CategoryTypeExpense, Color: "#96CEB4", Icon: "bolt", SortOrder: 4},
	{Name: "Healthcare", Type: CategoryTypeExpense, Color: "#FFEAA7", Icon: "medical", SortOrder: 5},
	{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#DDA0DD", Icon: "movie", SortOrder: 6},
	{Name: "Shopping", Type: CategoryTypeExpense, Color: "#98D8C8", Icon: "shopping-cart", SortOrder: 7},
	{Name: "Education", Type: CategoryTypeExpense, Color: "#F7DC6F", Icon: "school", SortOrder: 8},
	{Name: "Personal Care", Type: CategoryTypeExpense, Color: "#BB8FCE", Icon: "spa", SortOrder: 9},
	{Name: "Insurance", Type: CategoryTypeExpense, Color: "#85C1E9", Icon: "shield", SortOrder: 10},
	{Name: "Subscriptions", Type: CategoryTypeExpense, Color: "#F1948A", Icon: "repeat", SortOrder: 11},
	{Name: "Travel", Type: CategoryTypeExpense, Color: "#82E0AA", Icon: "airplane", SortOrder: 12},
	{Name: "Gifts & Donations", Type: CategoryTypeExpense, Color: "#F5B7B1", Icon: "gift", SortOrder: 13},
	{Name: "Other Expense", Type: CategoryTypeExpense, Color: "#AEB6BF", Icon: "more-horizontal", SortOrder: 99},
	{Name: "Salary", Type: CategoryTypeIncome, Color: "#27AE60", Icon: "briefcase", SortOrder: 1},
	{Name: "Freelance", Type: CategoryTypeIncome, Color: "#2ECC71", Icon: "laptop", SortOrder: 2},
	{Name: "Investments", Type: CategoryTypeIncome, Color: "#1ABC9C", Icon: "trending-up", SortOrder: 3},
	{Name: "Rental Income", Type: CategoryTypeIncome, Color: "#3498DB", Icon: "home", SortOrder: 4},
	{Name: "Business", Type: CategoryTypeIncome, Color: "#9B59B6", Icon: "building", SortOrder: 5},
	{Name: "Refunds", Type: CategoryTypeIncome, Color: "#E74C3C", Icon: "refresh", SortOrder: 6},
	{Name: "Other Income", Type: CategoryTypeIncome, Color: "#95A5A6", Icon: "plus-circle", SortOrder: 99},
}

// seedSystemCategories creates the shared categories once. Categories
// that already exist are left untouched.
func seedSystemCategories(db *gorm.DB) error {
	for _, category := range systemCategories {
		category.System = true
		category.Active = true

		err := db.Where(&Category{Name: category.Name, System: true}).FirstOrCreate(&category).Error
		if err != nil {
			return fmt.Errorf("error seeding category %q: %w", category.Name, err)
		}
	}

	return nil
}
