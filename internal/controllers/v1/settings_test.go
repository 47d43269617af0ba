package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/cheqify/backend/internal/controllers/v1"
	"github.com/cheqify/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSettingsGetDefaults() {
	t := suite.T()
	headers := loginTestAdmin(t)

	r := test.Request(t, http.MethodGet, "http://example.com/v1/settings", "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(t, &r, &response)

	require.NotNil(t, response.Data)
	assert.Equal(t, "dark", response.Data.Theme)
	assert.Equal(t, "DOP", response.Data.Currency)
	assert.Equal(t, 10, response.Data.PageSize)
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	t := suite.T()
	headers := loginTestAdmin(t)

	r := test.Request(t, http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"currency": "USD",
		"pageSize": 25,
	}, headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, "USD", response.Data.Currency)
	assert.Equal(t, 25, response.Data.PageSize)
	// Untouched fields keep their defaults
	assert.Equal(t, "dark", response.Data.Theme)

	// The update is persisted
	r = test.Request(t, http.MethodGet, "http://example.com/v1/settings", "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, "USD", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestSettingsUpdateInvalid() {
	headers := loginTestAdmin(suite.T())

	tests := []struct {
		name string
		body any
	}{
		{"Invalid currency", map[string]any{"currency": "NOPE"}},
		{"Negative page size", map[string]any{"pageSize": -1}},
		{"Broken JSON", `{ "currency": `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, "http://example.com/v1/settings", tt.body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	// Rejected updates leave the stored settings untouched
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "DOP", response.Data.Currency)
	assert.Equal(suite.T(), 10, response.Data.PageSize)
}

func (suite *TestSuiteStandard) TestSettingsUpdateAdminOnly() {
	t := suite.T()
	_ = loginTestAdmin(t)
	employee := loginTestEmployee(t)

	// Reading is fine for every authenticated user
	r := test.Request(t, http.MethodGet, "http://example.com/v1/settings", "", employee)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, http.MethodPatch, "http://example.com/v1/settings", map[string]any{"theme": "light"}, employee)
	test.AssertHTTPStatus(t, &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestSettingsOptions() {
	headers := loginTestAdmin(suite.T())

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/settings", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", r.Header().Get("allow"))
}
