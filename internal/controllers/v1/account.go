package v1

import (
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetAccountSummary)

	// Account with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// GetAccounts returns all accounts of the authenticated user.
func GetAccounts(c *gin.Context) {
	accounts := make([]models.Account, 0)

	err := models.DB.
		Where(&models.Account{UserID: auth.UserID(c)}).
		Order("name ASC").
		Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: accounts})
}

// CreateAccount creates a new account.
func CreateAccount(c *gin.Context) {
	var editable AccountEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	account := editable.model()
	account.UserID = auth.UserID(c)

	err = models.CreateAccount(models.DB, &account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &account})
}

// GetAccount returns a specific account.
func GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &s})
		return
	}

	var account models.Account
	err = models.DB.First(&account, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// UpdateAccount updates the editable fields of an account. The
// balances cannot be changed here, they belong to the journal.
func UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &s})
		return
	}

	var account models.Account
	err = models.DB.First(&account, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	var editable AccountEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	err = models.UpdateAccount(models.DB, &account, editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// DeleteAccount deletes an account. Accounts that are referenced by
// transactions are deactivated instead.
func DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var account models.Account
	err = models.DB.First(&account, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteAccount(models.DB, &account)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetAccountSummary returns the total balance and the balances grouped
// by account type.
func GetAccountSummary(c *gin.Context) {
	userID := auth.UserID(c)

	total, err := models.TotalBalance(models.DB, userID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountSummaryResponse{Error: &s})
		return
	}

	byType, err := models.BalancesByType(models.DB, userID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountSummaryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountSummaryResponse{Data: &AccountSummary{
		TotalBalance: total,
		ByType:       byType,
	}})
}
