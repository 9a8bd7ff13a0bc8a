package v1

import (
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// getTransaction loads a transaction owned by the user.
func getTransaction(c *gin.Context) (models.Transaction, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return models.Transaction{}, false
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return models.Transaction{}, false
	}

	return transaction, true
}

// GetTransactions returns the transactions of the authenticated user.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	_ = c.Bind(&filter)

	// Default to 50 transactions
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	transactions, err := models.Transactions(models.DB, auth.UserID(c), filter.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// CreateTransaction creates a new transaction and applies it to the
// account balances.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	transaction := editable.model()
	transaction.UserID = auth.UserID(c)

	err = models.CreateTransaction(models.DB, &transaction)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// UpdateTransaction updates a transaction. The old balance effect is
// reversed and the new one applied atomically.
func UpdateTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	err = models.UpdateTransaction(models.DB, &transaction, editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// DeleteTransaction deletes a transaction and reverses its balance
// effect.
func DeleteTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	err := models.DeleteTransaction(models.DB, &transaction)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
