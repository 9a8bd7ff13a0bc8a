package v1

import (
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/centuition/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	r.OPTIONS("/progress", httputil.OptionsGet)
	r.GET("/progress", GetBudgetProgress)

	r.OPTIONS("/copy", httputil.OptionsPost)
	r.POST("/copy", CopyBudgets)

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// getBudget loads a budget owned by the user and calculates its spent
// amount.
func getBudget(c *gin.Context) (models.Budget, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return models.Budget{}, false
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return models.Budget{}, false
	}

	err = budget.CalculateSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return models.Budget{}, false
	}

	return budget, true
}

// queryMonth reads the month query parameter, defaulting to the
// current month.
func queryMonth(c *gin.Context) types.Month {
	var query QueryMonth
	_ = c.Bind(&query)

	if query.Month.IsZero() {
		return types.MonthOf(timeNow())
	}

	return types.MonthOf(query.Month)
}

// GetBudgets returns the budgets of one month with their spent
// amounts.
func GetBudgets(c *gin.Context) {
	budgets, err := models.Budgets(models.DB, auth.UserID(c), queryMonth(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// CreateBudget creates a new budget. Only one budget per category and
// month can exist.
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	budget := editable.model()
	budget.UserID = auth.UserID(c)

	// The category must be visible to the user
	err = models.DB.
		Where("id = ? AND (system = ? OR user_id = ?)", budget.CategoryID, true, budget.UserID).
		First(&models.Category{}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = models.DB.Create(&budget).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = budget.CalculateSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
}

// GetBudget returns a specific budget with its spent amount.
func GetBudget(c *gin.Context) {
	budget, ok := getBudget(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// UpdateBudget updates the name, amount and active flag of a budget.
// The category and month are fixed, delete and recreate to move a
// budget.
func UpdateBudget(c *gin.Context) {
	budget, ok := getBudget(c)
	if !ok {
		return
	}

	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = models.DB.Model(&budget).
		Select("Name", "Amount", "Active").
		Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = budget.CalculateSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// DeleteBudget deletes a budget. Budgets have no balance effect, so
// they are always deleted outright.
func DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetBudgetProgress returns the budgets of one month with their usage
// calculations.
func GetBudgetProgress(c *gin.Context) {
	budgets, err := models.Budgets(models.DB, auth.UserID(c), queryMonth(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressListResponse{Error: &s})
		return
	}

	data := make([]BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, BudgetProgress{
			Budget:         budget,
			Remaining:      budget.Remaining(),
			PercentageUsed: budget.PercentageUsed(),
			OverBudget:     budget.OverBudget(),
		})
	}

	c.JSON(http.StatusOK, BudgetProgressListResponse{Data: data})
}

// CopyBudgets copies the budgets of one month to the following month.
// Categories that already have a budget there are skipped.
func CopyBudgets(c *gin.Context) {
	copied, err := models.CopyBudgetsToNextMonth(models.DB, auth.UserID(c), queryMonth(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, BudgetListResponse{Data: copied})
}
