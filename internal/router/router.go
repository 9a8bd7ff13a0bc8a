// Package router wires the middlewares and the API routes.
package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/centuition/backend/internal/assistant"
	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/config"
	v1 "github.com/centuition/backend/internal/controllers/v1"
	"github.com/centuition/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router(cfg config.Config, service *assistant.Service) (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/healthz", GetHealth)
	r.OPTIONS("/healthz", OptionsHealth)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r, "debug/pprof")
	}

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterAuthRoutes(group.Group("/auth"), cfg.JWTSecret)

	// Everything else requires a valid session
	protected := group.Group("")
	protected.Use(auth.Middleware(cfg.JWTSecret))

	v1.RegisterAccountRoutes(protected.Group("/accounts"))
	v1.RegisterCategoryRoutes(protected.Group("/categories"))
	v1.RegisterTransactionRoutes(protected.Group("/transactions"))
	v1.RegisterBudgetRoutes(protected.Group("/budgets"))
	v1.RegisterRecurringTransactionRoutes(protected.Group("/recurring-transactions"))
	v1.RegisterReportRoutes(protected.Group("/reports"))
	v1.RegisterAssistantRoutes(protected.Group("/assistant"), service)

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version" example:"https://example.com/version"`
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// GetRoot returns the link list for the API root.
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: url + "/version",
			Healthz: url + "/healthz",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth returns a static OK as long as the server is able to
// answer requests.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsHealth(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Auth                  string `json:"auth" example:"https://example.com/v1/auth"`
	Accounts              string `json:"accounts" example:"https://example.com/v1/accounts"`
	Categories            string `json:"categories" example:"https://example.com/v1/categories"`
	Transactions          string `json:"transactions" example:"https://example.com/v1/transactions"`
	Budgets               string `json:"budgets" example:"https://example.com/v1/budgets"`
	RecurringTransactions string `json:"recurringTransactions" example:"https://example.com/v1/recurring-transactions"`
	Reports               string `json:"reports" example:"https://example.com/v1/reports"`
	Assistant             string `json:"assistant" example:"https://example.com/v1/assistant"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	base := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:                  base + "/auth",
			Accounts:              base + "/accounts",
			Categories:            base + "/categories",
			Transactions:          base + "/transactions",
			Budgets:               base + "/budgets",
			RecurringTransactions: base + "/recurring-transactions",
			Reports:               base + "/reports",
			Assistant:             base + "/assistant",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
