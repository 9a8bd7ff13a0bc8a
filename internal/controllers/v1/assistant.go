package v1

import (
	"errors"
	"net/http"

	"github.com/centuition/backend/internal/assistant"
	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var errAssistantDisabled = errors.New("the assistant is not configured on this server")

// AssistantRequest is a question for the assistant.
type AssistantRequest struct {
	Message string `json:"message" example:"How much did I spend on groceries this month?"`
}

type AssistantResponse struct {
	Data  *AssistantAnswer `json:"data"`  // The answer, if one was produced
	Error *string          `json:"error"` // The error, if any occurred
}

type AssistantAnswer struct {
	Message string `json:"message" example:"You spent $ 133.70 on groceries this month."`
}

// RegisterAssistantRoutes registers the assistant route with the
// RouterGroup that is passed. A nil service disables the endpoint.
func RegisterAssistantRoutes(r *gin.RouterGroup, service *assistant.Service) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", Ask(service))
}

// Ask forwards a question to the assistant and returns its answer.
func Ask(service *assistant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if service == nil {
			s := errAssistantDisabled.Error()
			c.JSON(http.StatusServiceUnavailable, AssistantResponse{Error: &s})
			return
		}

		var request AssistantRequest
		err := httputil.BindData(c, &request)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AssistantResponse{Error: &s})
			return
		}

		if request.Message == "" {
			s := httputil.ErrRequestBodyEmpty.Error()
			c.JSON(http.StatusBadRequest, AssistantResponse{Error: &s})
			return
		}

		answer, err := service.Answer(c.Request.Context(), models.DB, auth.UserID(c), request.Message)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, AssistantResponse{Error: &s})
			return
		}

		c.JSON(http.StatusOK, AssistantResponse{Data: &AssistantAnswer{Message: answer}})
	}
}
