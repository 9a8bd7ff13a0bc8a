package v1

import (
	"github.com/centuition/backend/internal/models"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name      string              `json:"name" example:"Groceries" default:""`                      // Name of the category
	Type      models.CategoryType `json:"type" example:"EXPENSE"`                                   // Whether the category is for expenses or income
	Color     string              `json:"color" example:"#FF6B6B" default:""`                       // Display color
	Icon      string              `json:"icon" example:"restaurant" default:""`                     // Display icon
	ParentID  *uuid.UUID          `json:"parentId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`  // Optional parent category
	SortOrder int                 `json:"sortOrder" example:"1" default:"0"`                        // Position in lists
	Active    bool                `json:"active" example:"true" default:"true"`                     // Is the category in use?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:      editable.Name,
		Type:      editable.Type,
		Color:     editable.Color,
		Icon:      editable.Icon,
		ParentID:  editable.ParentID,
		SortOrder: editable.SortOrder,
		Active:    editable.Active,
	}
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`  // Data for the Category
	Error *string          `json:"error"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`  // List of Categories
	Error *string           `json:"error"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Type models.CategoryType `form:"type"` // By category type
}
