package v1_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/cheqify/backend/internal/controllers/v1"
	"github.com/cheqify/backend/internal/models"
	"github.com/cheqify/backend/internal/types"
	"github.com/cheqify/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCheque(t *testing.T, headers map[string]string, c v1.ChequeEditable, expectedStatus ...int) v1.ChequeResponse {
	if c.Number == "" {
		c.Number = uuid.NewString()
	}

	if c.ChequeDate.IsZero() {
		c.ChequeDate = types.NewDate(2024, 1, 15)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cheques", c, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var cheque v1.ChequeResponse
	test.DecodeResponse(t, &r, &cheque)

	return cheque
}

// TestChequesUnauthenticated verifies that the cheque endpoints require
// a bearer token.
func (suite *TestSuiteStandard) TestChequesUnauthenticated() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "http://example.com/v1/cheques"},
		{http.MethodPost, "http://example.com/v1/cheques"},
		{http.MethodGet, "http://example.com/v1/cheques/deleted/all"},
		{http.MethodGet, fmt.Sprintf("http://example.com/v1/cheques/%s", uuid.New())},
		{http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/%s", uuid.New())},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

// TestChequesAdminRequired verifies that destructive operations are
// rejected for employees.
func (suite *TestSuiteStandard) TestChequesAdminRequired() {
	admin := loginTestAdmin(suite.T())
	employee := loginTestEmployee(suite.T())

	cheque := createTestCheque(suite.T(), admin, v1.ChequeEditable{})
	deleted := createTestCheque(suite.T(), admin, v1.ChequeEditable{})
	r := test.Request(suite.T(), http.MethodDelete, deleted.Data.Links.Self, "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"Update", http.MethodPatch, cheque.Data.Links.Self, v1.ChequeEditable{Notes: "nope"}},
		{"Delete", http.MethodDelete, cheque.Data.Links.Self, ""},
		{"Restore", http.MethodPut, fmt.Sprintf("http://example.com/v1/cheques/restore/%s", deleted.Data.ID), ""},
		{"Permanent delete", http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", deleted.Data.ID), ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, tt.body, employee)
			test.AssertHTTPStatus(t, &r, http.StatusForbidden)
		})
	}
}

func (suite *TestSuiteStandard) TestChequesOptions() {
	headers := loginTestAdmin(suite.T())

	tests := []struct {
		name   string
		path   string
		allow  string
		status int
	}{
		{"Collection", "http://example.com/v1/cheques", "OPTIONS, GET, POST", http.StatusNoContent},
		{"Deleted collection", "http://example.com/v1/cheques/deleted/all", "OPTIONS, GET", http.StatusNoContent},
		{"Cash", fmt.Sprintf("http://example.com/v1/cheques/%s/cash", uuid.New()), "OPTIONS, POST", http.StatusNoContent},
		{"Restore", fmt.Sprintf("http://example.com/v1/cheques/restore/%s", uuid.New()), "OPTIONS, PUT", http.StatusNoContent},
		{"Permanent", fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", uuid.New()), "OPTIONS, DELETE", http.StatusNoContent},
		{"No cheque with this ID", fmt.Sprintf("http://example.com/v1/cheques/%s", uuid.New()), "", http.StatusNotFound},
		{"Not a valid UUID", "http://example.com/v1/cheques/NotParseableAsUUID", "", http.StatusBadRequest},
		{"Cheque exists", createTestCheque(suite.T(), headers, v1.ChequeEditable{}).Data.Links.Self, "OPTIONS, GET, PATCH, DELETE", http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.allow != "" {
				assert.Equal(t, tt.allow, r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestChequesCreate() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{
		Number:      "0042",
		Bank:        "Banco Popular",
		Beneficiary: "Juan Pérez",
		Amount:      decimal.NewFromFloat(1500.50),
		Corbata:     3,
		SignedBy:    "M. Reyes",
		ChequeDate:  types.NewDate(2024, 1, 10),
		DepositDate: types.NewDate(2024, 1, 13),
	})

	data := cheque.Data
	require.NotNil(t, data)
	assert.Equal(t, "0042", data.Number)
	assert.Equal(t, "Banco Popular", data.Bank)
	assert.Equal(t, models.StatusPending, data.Status)
	assert.True(t, data.Amount.Equal(decimal.NewFromFloat(1500.50)), "Amount is %s", data.Amount)
	assert.Equal(t, 3, data.Corbata)
	assert.NotEmpty(t, data.Links.Self)
	assert.NotEmpty(t, data.Links.Cash, "Pending cheques must link the cash endpoint")
	assert.Empty(t, data.Links.Image)
}

func (suite *TestSuiteStandard) TestChequesCreateMultipartImage() {
	t := suite.T()
	headers := loginTestAdmin(t)

	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.Nil(t, writer.WriteField("number", "9001"))
	require.Nil(t, writer.WriteField("bank", "BHD"))
	require.Nil(t, writer.WriteField("beneficiary", "Juan Pérez"))
	require.Nil(t, writer.WriteField("amount", "1500.00"))
	require.Nil(t, writer.WriteField("chequeDate", "2024-01-10"))

	part, err := writer.CreateFormFile("image", "cheque.png")
	require.Nil(t, err)
	_, err = part.Write([]byte("image bytes"))
	require.Nil(t, err)
	require.Nil(t, writer.Close())

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cheques", &body, headers, map[string]string{"Content-Type": writer.FormDataContentType()})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.ChequeResponse
	test.DecodeResponse(t, &r, &response)

	require.NotNil(t, response.Data)
	assert.Equal(t, "9001", response.Data.Number)
	assert.True(t, response.Data.Amount.Equal(decimal.NewFromFloat(1500.00)), "Amount is %s", response.Data.Amount)
	require.NotEmpty(t, response.Data.Links.Image)

	// The image is stored under the upload directory with a generated name
	files, err := os.ReadDir(uploadDir)
	require.Nil(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".png", filepath.Ext(files[0].Name()))
	assert.Contains(t, response.Data.Links.Image, files[0].Name())

	// Permanently deleting the cheque removes the stored image
	r = test.Request(t, http.MethodDelete, response.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", response.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	files, err = os.ReadDir(uploadDir)
	require.Nil(t, err)
	assert.Empty(t, files)
}

func (suite *TestSuiteStandard) TestChequesCreateInvalid() {
	headers := loginTestAdmin(suite.T())

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken JSON", `{ "number": "0001`, http.StatusBadRequest},
		{"Duplicate number", v1.ChequeEditable{Number: "dup", ChequeDate: types.NewDate(2024, 1, 1)}, http.StatusCreated},
		{"Duplicate number again", v1.ChequeEditable{Number: "dup", ChequeDate: types.NewDate(2024, 1, 1)}, http.StatusBadRequest},
		{"Negative amount", v1.ChequeEditable{Number: "neg", ChequeDate: types.NewDate(2024, 1, 1), Amount: decimal.NewFromInt(-1)}, http.StatusBadRequest},
		{"Invalid status", v1.ChequeEditable{Number: "inv", ChequeDate: types.NewDate(2024, 1, 1), Status: "bounced"}, http.StatusBadRequest},
		{"Missing date", v1.ChequeEditable{Number: "nodate"}, http.StatusBadRequest},
		{"Missing number", v1.ChequeEditable{ChequeDate: types.NewDate(2024, 1, 1)}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/cheques", tt.body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestChequesGetSingle() {
	headers := loginTestAdmin(suite.T())
	cheque := createTestCheque(suite.T(), headers, v1.ChequeEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing cheque", cheque.Data.ID.String(), http.StatusOK},
		{"Unknown UUID", uuid.New().String(), http.StatusNotFound},
		{"Invalid UUID", "definitely-not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/cheques/%s", tt.id), "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestChequesListFilters() {
	t := suite.T()
	headers := loginTestAdmin(t)

	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "1001", Bank: "Banco Popular", Beneficiary: "Juan Pérez", ChequeDate: types.NewDate(2024, 1, 5)})
	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "1002", Bank: "BHD", Beneficiary: "Ana Gómez", Status: models.StatusCashed, ChequeDate: types.NewDate(2024, 2, 5)})
	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "2001", Bank: "BHD", Beneficiary: "Pedro Santos", Status: models.StatusReturned, ChequeDate: types.NewDate(2024, 3, 5)})

	tests := []struct {
		name  string
		query string
		count int
		total int64 // Total matching the database filters. The glob match runs after pagination and does not affect it.
	}{
		{"No filter", "", 3, 3},
		{"Search by number substring", "search=100", 2, 2},
		{"Search by beneficiary", "search=ana", 1, 1},
		{"Search without results", "search=zzz", 0, 0},
		{"Status pending", "status=pending", 1, 1},
		{"Status cashed", "status=cashed", 1, 1},
		{"Status all", "status=all", 3, 3},
		{"Exact bank", "bank=BHD", 2, 2},
		{"Exact number", "number=1001", 1, 1},
		{"Glob match on number", "match=1*", 2, 3},
		{"Glob match on beneficiary", "match=*Santos", 1, 3},
		{"From date", "fromDate=2024-02-01", 2, 2},
		{"Until date", "untilDate=2024-01-31", 1, 1},
		{"Date range", "fromDate=2024-01-15&untilDate=2024-02-15", 1, 1},
		{"Offset", "offset=1", 2, 3},
		{"Limit", "limit=2", 2, 3},
		{"Limit zero", "limit=0", 0, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/cheques?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ChequeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
			require.NotNil(t, response.Pagination)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestChequesListInvalidStatus() {
	headers := loginTestAdmin(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cheques?status=bounced", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// The list is sorted by the cheque date, newest first.
func (suite *TestSuiteStandard) TestChequesListOrder() {
	t := suite.T()
	headers := loginTestAdmin(t)

	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "old", ChequeDate: types.NewDate(2023, 12, 1)})
	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "new", ChequeDate: types.NewDate(2024, 2, 1)})
	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "middle", ChequeDate: types.NewDate(2024, 1, 1)})

	r := test.Request(t, http.MethodGet, "http://example.com/v1/cheques", "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ChequeListResponse
	test.DecodeResponse(t, &r, &response)

	require.Len(t, response.Data, 3)
	assert.Equal(t, "new", response.Data[0].Number)
	assert.Equal(t, "middle", response.Data[1].Number)
	assert.Equal(t, "old", response.Data[2].Number)
}

func (suite *TestSuiteStandard) TestChequesUpdate() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{Number: "3001", Notes: "original"})

	r := test.Request(t, http.MethodPatch, cheque.Data.Links.Self, map[string]any{
		"notes": "updated",
	}, headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var updated v1.ChequeResponse
	test.DecodeResponse(t, &r, &updated)

	assert.Equal(t, "updated", updated.Data.Notes)
	// Fields not referenced in the body stay untouched
	assert.Equal(t, "3001", updated.Data.Number)
}

func (suite *TestSuiteStandard) TestChequesUpdateInvalid() {
	t := suite.T()
	headers := loginTestAdmin(t)

	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "4001"})
	cheque := createTestCheque(t, headers, v1.ChequeEditable{Number: "4002"})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Number collision", cheque.Data.Links.Self, map[string]any{"number": "4001"}, http.StatusBadRequest},
		{"Negative amount", cheque.Data.Links.Self, map[string]any{"amount": -10}, http.StatusBadRequest},
		{"Invalid status", cheque.Data.Links.Self, map[string]any{"status": "bounced"}, http.StatusBadRequest},
		{"Unknown cheque", fmt.Sprintf("http://example.com/v1/cheques/%s", uuid.New()), map[string]any{"notes": "x"}, http.StatusNotFound},
		{"Broken JSON", cheque.Data.Links.Self, `{ "notes": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.path, tt.body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestChequeCash() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{})
	require.NotEmpty(t, cheque.Data.Links.Cash)

	r := test.Request(t, http.MethodPost, cheque.Data.Links.Cash, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var cashed v1.ChequeResponse
	test.DecodeResponse(t, &r, &cashed)
	assert.Equal(t, models.StatusCashed, cashed.Data.Status)
	assert.Empty(t, cashed.Data.Links.Cash, "Cashed cheques must not link the cash endpoint")

	// Cashing again is a no-op, the cheque is returned unchanged
	r = test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/cheques/%s/cash", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var again v1.ChequeResponse
	test.DecodeResponse(t, &r, &again)
	assert.Equal(t, models.StatusCashed, again.Data.Status)
}

// A returned cheque stays returned when the cash endpoint is called.
func (suite *TestSuiteStandard) TestChequeCashNoopForReturned() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{Status: models.StatusReturned})

	r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/cheques/%s/cash", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ChequeResponse
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, models.StatusReturned, response.Data.Status)
}

// TestChequeLifecycle walks a cheque through soft delete, the deleted
// partition, restore and permanent delete.
func (suite *TestSuiteStandard) TestChequeLifecycle() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{Number: "5001"})

	// Soft delete
	r := test.Request(t, http.MethodDelete, cheque.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// Gone from the active list
	r = test.Request(t, http.MethodGet, "http://example.com/v1/cheques", "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	var active v1.ChequeListResponse
	test.DecodeResponse(t, &r, &active)
	assert.Len(t, active.Data, 0)

	// Visible in the deleted partition
	r = test.Request(t, http.MethodGet, "http://example.com/v1/cheques/deleted/all", "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	var deleted v1.ChequeListResponse
	test.DecodeResponse(t, &r, &deleted)
	require.Len(t, deleted.Data, 1)
	assert.Equal(t, "5001", deleted.Data[0].Number)
	assert.NotNil(t, deleted.Data[0].DeletedAt)

	// Single GET still finds it
	r = test.Request(t, http.MethodGet, cheque.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	// Restore moves it back unchanged
	r = test.Request(t, http.MethodPut, fmt.Sprintf("http://example.com/v1/cheques/restore/%s", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	var restored v1.ChequeResponse
	test.DecodeResponse(t, &r, &restored)
	assert.Equal(t, "5001", restored.Data.Number)
	assert.Nil(t, restored.Data.DeletedAt)

	// Permanent delete requires a prior soft delete
	r = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	// Soft delete again, then permanently delete
	r = test.Request(t, http.MethodDelete, cheque.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// Now the cheque is gone from both partitions
	r = test.Request(t, http.MethodGet, cheque.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)
}

// Restoring fails when an active cheque reuses the number in the
// meantime.
func (suite *TestSuiteStandard) TestChequeRestoreConflict() {
	t := suite.T()
	headers := loginTestAdmin(t)

	first := createTestCheque(t, headers, v1.ChequeEditable{Number: "6001"})

	r := test.Request(t, http.MethodDelete, first.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// The number is free again
	_ = createTestCheque(t, headers, v1.ChequeEditable{Number: "6001"})

	r = test.Request(t, http.MethodPut, fmt.Sprintf("http://example.com/v1/cheques/restore/%s", first.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	var response v1.ChequeResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Error)
	assert.Contains(t, *response.Error, models.ErrChequeNumberNotUnique.Error())
}

// Restore and permanent delete reject cheques that are not deleted.
func (suite *TestSuiteStandard) TestChequePartitionGuards() {
	t := suite.T()
	headers := loginTestAdmin(t)

	cheque := createTestCheque(t, headers, v1.ChequeEditable{})

	r := test.Request(t, http.MethodPut, fmt.Sprintf("http://example.com/v1/cheques/restore/%s", cheque.Data.ID), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	r = test.Request(t, http.MethodPut, fmt.Sprintf("http://example.com/v1/cheques/restore/%s", uuid.New()), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)

	r = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/cheques/permanent/%s", uuid.New()), "", headers)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)
}

// TestChequesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestChequesDBClosed() {
	headers := loginTestAdmin(suite.T())

	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/cheques", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.ChequeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
