package v1

import (
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRecurringTransactionRoutes registers the routes for
// recurring transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransaction)
	}

	r.OPTIONS("/due", httputil.OptionsGet)
	r.GET("/due", GetDueRecurringTransactions)

	r.OPTIONS("/process", httputil.OptionsPost)
	r.POST("/process", ProcessRecurringTransactions)

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// getRecurringTransaction loads a schedule owned by the user.
func getRecurringTransaction(c *gin.Context) (models.RecurringTransaction, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionResponse{Error: &s})
		return models.RecurringTransaction{}, false
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return models.RecurringTransaction{}, false
	}

	return recurring, true
}

// GetRecurringTransactions returns all schedules of the user.
func GetRecurringTransactions(c *gin.Context) {
	recurring := make([]models.RecurringTransaction, 0)

	err := models.DB.
		Where(&models.RecurringTransaction{UserID: auth.UserID(c)}).
		Order("datetime(next_due_date) ASC").
		Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{Data: recurring})
}

// CreateRecurringTransaction creates a new schedule. The first due
// date is the start date.
func CreateRecurringTransaction(c *gin.Context) {
	var editable RecurringTransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	recurring := editable.model()
	recurring.UserID = auth.UserID(c)

	// The spawned transactions have to pass validation later, so reject
	// schedules that would produce invalid ones right away.
	transaction := models.Transaction{
		UserID:               recurring.UserID,
		Amount:               recurring.Amount,
		Type:                 recurring.Type,
		Date:                 recurring.StartDate,
		AccountID:            recurring.AccountID,
		DestinationAccountID: recurring.DestinationAccountID,
		CategoryID:           recurring.CategoryID,
	}
	err = transaction.Validate(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	err = models.DB.Create(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, RecurringTransactionResponse{Data: &recurring})
}

// GetRecurringTransaction returns a specific schedule.
func GetRecurringTransaction(c *gin.Context) {
	recurring, ok := getRecurringTransaction(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &recurring})
}

// UpdateRecurringTransaction updates a schedule. Processed history is
// not touched.
func UpdateRecurringTransaction(c *gin.Context) {
	recurring, ok := getRecurringTransaction(c)
	if !ok {
		return
	}

	var editable RecurringTransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	err = models.DB.Model(&recurring).
		Select("Description", "Notes", "Amount", "Type", "AccountID", "DestinationAccountID",
			"CategoryID", "Frequency", "StartDate", "EndDate", "AutoCreate", "Active").
		Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &recurring})
}

// DeleteRecurringTransaction deletes a schedule. Transactions it
// already spawned stay in the journal.
func DeleteRecurringTransaction(c *gin.Context) {
	recurring, ok := getRecurringTransaction(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetDueRecurringTransactions returns the schedules that are due today
// or earlier.
func GetDueRecurringTransactions(c *gin.Context) {
	due, err := models.DueRecurringTransactions(models.DB, auth.UserID(c), timeNow())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{Data: due})
}

// ProcessRecurringTransactions materializes all due schedules into
// journal transactions.
func ProcessRecurringTransactions(c *gin.Context) {
	created, err := models.ProcessDueRecurringTransactions(models.DB, auth.UserID(c), timeNow())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Data: created})
}
