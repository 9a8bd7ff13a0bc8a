package v1_test

import "net/http"

func (suite *TestSuiteStandard) TestOptionsHeaders() {
	session := suite.createTestSession()

	tests := []struct {
		path    string
		allowed string
	}{
		{"/v1/auth/register", "POST"},
		{"/v1/auth/login", "POST"},
		{"/v1/accounts", "GET, POST"},
		{"/v1/accounts/summary", "GET"},
		{"/v1/categories", "GET, POST"},
		{"/v1/transactions", "GET, POST"},
		{"/v1/budgets", "GET, POST"},
		{"/v1/budgets/progress", "GET"},
		{"/v1/budgets/copy", "POST"},
		{"/v1/recurring-transactions", "GET, POST"},
		{"/v1/recurring-transactions/due", "GET"},
		{"/v1/recurring-transactions/process", "POST"},
		{"/v1/reports/summary", "GET"},
		{"/v1/assistant", "POST"},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodOptions, tt.path, nil, session.Token)
		suite.Assert().Equal(http.StatusNoContent, recorder.Code, "Path: %s", tt.path)
		suite.Assert().Equal(tt.allowed, recorder.Header().Get("allow"), "Path: %s", tt.path)
	}
}

func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	recorder := suite.request(http.MethodDelete, "/healthz", nil, "")
	suite.assertHTTPStatus(recorder, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestV1Links() {
	recorder := suite.request(http.MethodGet, "/v1", nil, "")
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.Assert().Contains(recorder.Body.String(), "/v1/accounts")
	suite.Assert().Contains(recorder.Body.String(), "/v1/recurring-transactions")
	suite.Assert().Contains(recorder.Body.String(), "/v1/assistant")
}
