package v1_test

import (
	"net/http"

	v1 "github.com/centuition/backend/internal/controllers/v1"
)

func (suite *TestSuiteStandard) TestAssistantDisabled() {
	session := suite.createTestSession()

	// The router was built without an assistant service
	recorder := suite.request(http.MethodPost, "/v1/assistant", v1.AssistantRequest{
		Message: "How much did I spend this month?",
	}, session.Token)
	suite.assertHTTPStatus(recorder, http.StatusServiceUnavailable)

	var response v1.AssistantResponse
	suite.decode(recorder, &response)
	suite.Assert().NotNil(response.Error)
}

func (suite *TestSuiteStandard) TestAssistantRequiresSession() {
	recorder := suite.request(http.MethodPost, "/v1/assistant", v1.AssistantRequest{
		Message: "How much did I spend this month?",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)
}
