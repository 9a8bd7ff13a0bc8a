package v1

import (
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// getCategory loads a category that is visible to the user: their own
// or a system category.
func getCategory(c *gin.Context) (models.Category, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &s})
		return models.Category{}, false
	}

	var category models.Category
	err = models.DB.
		Where("id = ? AND (system = ? OR user_id = ?)", uri.ID.UUID, true, auth.UserID(c)).
		First(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return models.Category{}, false
	}

	return category, true
}

// GetCategories returns the categories visible to the user, optionally
// filtered by type.
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	_ = c.Bind(&filter)

	categories, err := models.Categories(models.DB, auth.UserID(c), filter.Type)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// CreateCategory creates a new user category.
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	userID := auth.UserID(c)
	category := editable.model()
	category.UserID = &userID

	err = models.DB.Create(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// GetCategory returns a specific category.
func GetCategory(c *gin.Context) {
	category, ok := getCategory(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// UpdateCategory updates a category. System categories only accept
// cosmetic changes.
func UpdateCategory(c *gin.Context) {
	category, ok := getCategory(c)
	if !ok {
		return
	}

	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	err = models.UpdateCategory(models.DB, &category, editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// DeleteCategory deletes a user category. Categories referenced by
// transactions are deactivated instead.
func DeleteCategory(c *gin.Context) {
	category, ok := getCategory(c)
	if !ok {
		return
	}

	err := models.DeleteCategory(models.DB, &category)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
