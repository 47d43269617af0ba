package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/cheqify/backend/internal/controllers/v1"
	"github.com/cheqify/backend/internal/models"
	"github.com/cheqify/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport verifies that the export works correctly
//
// Thorough checks are only executed for the non-data fields since
// the data fields are populated by the Export() methods of the models
func (suite *TestSuiteStandard) TestExport() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{Number: "7001"})

	// Deleted cheques are part of the export
	deleted := createTestCheque(t, headers, v1.ChequeEditable{Number: "7002"})
	recorder := test.Request(t, http.MethodDelete, deleted.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/export", "", headers)
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "0.0.0", response.Version)
	assert.Equal(t, "test-admin", response.ExportedBy)

	// Not sure if this is a good test, if it ever fails we'll re-evaluate
	now := time.Now()
	difference := response.CreationTime.Sub(now).Seconds()
	assert.Less(t, difference, float64(1))

	assert.Len(t, response.Data, len(models.Registry), "Number of models in export does not match registry")

	var cheques []models.Cheque
	require.Nil(t, json.Unmarshal(response.Data["Cheque"], &cheques))
	require.Len(t, cheques, 2, "Number of cheques in export must be 2, both partitions are exported")
	assert.Equal(t, cheque.Data.CreatedAt, cheques[0].CreatedAt)

	var users []models.User
	require.Nil(t, json.Unmarshal(response.Data["User"], &users))
	require.Len(t, users, 1)
	assert.Equal(t, "test-admin", users[0].Username)
}

// Exports carry everything on the instance, so they are admin only.
func (suite *TestSuiteStandard) TestExportAdminOnly() {
	t := suite.T()
	_ = loginTestAdmin(t)
	employee := loginTestEmployee(t)

	r := test.Request(t, http.MethodGet, "http://example.com/v1/export", "", employee)
	test.AssertHTTPStatus(t, &r, http.StatusForbidden)

	r = test.Request(t, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
}
