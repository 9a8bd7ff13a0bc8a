package v1_test

import (
	"net/http"

	v1 "github.com/centuition/backend/internal/controllers/v1"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestRegister() {
	email := uuid.New().String() + "@Example.com"

	recorder := suite.request(http.MethodPost, "/v1/auth/register", v1.Credentials{
		Email:    email,
		Password: "correct horse battery staple",
		Name:     "Jane",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.SessionResponse
	suite.decode(recorder, &response)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal("Jane", response.Data.User.Name)

	// Email addresses are stored lowercased
	suite.Assert().NotContains(response.Data.User.Email, "E")

	// The same email cannot register twice, case insensitively
	recorder = suite.request(http.MethodPost, "/v1/auth/register", v1.Credentials{
		Email:    email,
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestRegisterValidation() {
	recorder := suite.request(http.MethodPost, "/v1/auth/register", v1.Credentials{
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	recorder = suite.request(http.MethodPost, "/v1/auth/register", v1.Credentials{
		Email:    "jane@example.com",
		Password: "short",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	recorder = suite.request(http.MethodPost, "/v1/auth/register", `{ invalid json`, "")
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLogin() {
	session := suite.createTestSession()

	recorder := suite.request(http.MethodPost, "/v1/auth/login", v1.Credentials{
		Email:    session.User.Email,
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.SessionResponse
	suite.decode(recorder, &response)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal(session.User.ID, response.Data.User.ID)
}

func (suite *TestSuiteStandard) TestLoginInvalidCredentials() {
	session := suite.createTestSession()

	// Wrong password
	recorder := suite.request(http.MethodPost, "/v1/auth/login", v1.Credentials{
		Email:    session.User.Email,
		Password: "wrong password",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)

	// Unknown email, indistinguishable from a wrong password
	recorder = suite.request(http.MethodPost, "/v1/auth/login", v1.Credentials{
		Email:    "nobody@example.com",
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestProtectedRoutesRequireSession() {
	for _, url := range []string{
		"/v1/accounts",
		"/v1/categories",
		"/v1/transactions",
		"/v1/budgets",
		"/v1/recurring-transactions",
		"/v1/reports/summary",
	} {
		recorder := suite.request(http.MethodGet, url, nil, "")
		suite.Assert().Equal(http.StatusUnauthorized, recorder.Code, "URL: %s", url)
	}

	recorder := suite.request(http.MethodGet, "/v1/accounts", nil, "not-a-token")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestPublicRoutes() {
	for _, url := range []string{"/", "/version", "/healthz", "/v1"} {
		recorder := suite.request(http.MethodGet, url, nil, "")
		suite.Assert().Equal(http.StatusOK, recorder.Code, "URL: %s", url)
	}
}
