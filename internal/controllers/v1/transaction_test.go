package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTransaction creates a test transaction via the v1 API.
func createTestTransaction(t *testing.T, headers map[string]string, transaction v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if transaction.Type == "" {
		transaction.Type = models.TypeExpense
	}

	if transaction.Date.IsZero() {
		transaction.Date = time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.TransactionEditable{transaction}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", reqBody, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var tr v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &tr)

	return tr.Data[0]
}

// TestTransactionsOptions verifies that the HTTP OPTIONS response for /transactions/{id} is correct.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	headers := registerTestUser(suite.T())

	tests := []struct {
		name     string        // Name for the test
		status   int           // Expected HTTP status
		id       string        // String to use as ID. Ignored when pathFunc is non-nil
		pathFunc func() string // Function returning the path
	}{
		{
			"Does not exist",
			http.StatusNotFound,
			uuid.New().String(),
			nil,
		},
		{
			"Invalid UUID",
			http.StatusBadRequest,
			"NotParseableAsUUID",
			nil,
		},
		{
			"Success",
			http.StatusNoContent,
			"",
			func() string {
				return createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Options test", Amount: decimal.NewFromFloat(31)}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	headers := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{
		Title:  "Weekly groceries",
		Amount: decimal.NewFromFloat(14.03),
		Type:   models.TypeExpense,
	})

	require.NotNil(suite.T(), transaction.Data)
	assert.Equal(suite.T(), "Weekly groceries", transaction.Data.Title)
	assert.True(suite.T(), transaction.Data.Amount.Equal(decimal.NewFromFloat(14.03)))

	// Without a category, the placeholder is resolved
	assert.Nil(suite.T(), transaction.Data.Category.ID)
	assert.Equal(suite.T(), "Uncategorized", transaction.Data.Category.Name)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalid() {
	headers := registerTestUser(suite.T())

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
	}{
		{"Zero amount", v1.TransactionEditable{Title: "No amount", Type: models.TypeExpense, Date: time.Now()}},
		{"Negative amount", v1.TransactionEditable{Title: "Negative", Amount: decimal.NewFromFloat(-3), Type: models.TypeExpense, Date: time.Now()}},
		{"Invalid type", v1.TransactionEditable{Title: "Bad type", Amount: decimal.NewFromFloat(3), Type: "TRANSFER", Date: time.Now()}},
		{"Invalid frequency", v1.TransactionEditable{Title: "Bad frequency", Amount: decimal.NewFromFloat(3), Type: models.TypeExpense, IsRecurring: true, RecurrenceFrequency: "FORTNIGHTLY", Date: time.Now()}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{tt.transaction}, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateResolvesCategory() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Color: "#22c55e", Type: models.TypeExpense})

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{
		Title:      "Supermarket",
		Amount:     decimal.NewFromFloat(27.91),
		CategoryID: &category.Data.ID,
	})

	require.NotNil(suite.T(), transaction.Data.Category.ID)
	assert.Equal(suite.T(), category.Data.ID, *transaction.Data.Category.ID)
	assert.Equal(suite.T(), "Groceries", transaction.Data.Category.Name)
	assert.Equal(suite.T(), "#22c55e", transaction.Data.Category.Color)
}

// TestTransactionsDeletedCategoryResolvesToPlaceholder verifies that
// deleting a category does not break the transactions referencing it.
func (suite *TestSuiteStandard) TestTransactionsDeletedCategoryResolvesToPlaceholder() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Ephemeral", Color: "#ff0000", Type: models.TypeExpense})
	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{
		Title:      "Orphaned",
		Amount:     decimal.NewFromFloat(5),
		CategoryID: &category.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// The reference is kept, the resolution falls back
	assert.Nil(suite.T(), response.Data.Category.ID)
	assert.Equal(suite.T(), "Uncategorized", response.Data.Category.Name)
	assert.Equal(suite.T(), "#9ca3af", response.Data.Category.Color)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	headers := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Single", Amount: decimal.NewFromFloat(3.14)})

	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Single", response.Data.Title)
	assert.Equal(suite.T(), time.UTC, response.Data.Date.Location())
}

// TestTransactionsUserIsolation verifies that users cannot read each
// other's transactions.
func (suite *TestSuiteStandard) TestTransactionsUserIsolation() {
	first := registerTestUser(suite.T())
	second := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), first, v1.TransactionEditable{Title: "Private", Amount: decimal.NewFromFloat(9)})

	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", second)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", second)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 0)
}

func (suite *TestSuiteStandard) TestTransactionsGetFiltered() {
	headers := registerTestUser(suite.T())

	groceries := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Color: "#22c55e", Type: models.TypeExpense})

	for _, editable := range []v1.TransactionEditable{
		{Title: "Supermarket", Amount: decimal.NewFromFloat(12.00), Type: models.TypeExpense, CategoryID: &groceries.Data.ID, Date: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
		{Title: "Salary March", Amount: decimal.NewFromFloat(2800), Type: models.TypeIncome, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Bakery", Amount: decimal.NewFromFloat(4.50), Type: models.TypeExpense, CategoryID: &groceries.Data.ID, Date: time.Date(2024, 3, 12, 8, 30, 0, 0, time.UTC)},
		{Title: "Cinema", Amount: decimal.NewFromFloat(11.00), Type: models.TypeExpense, Date: time.Date(2024, 4, 2, 20, 0, 0, 0, time.UTC)},
	} {
		createTestTransaction(suite.T(), headers, editable)
	}

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Type expense", "type=EXPENSE", 3},
		{"Type income", "type=INCOME", 1},
		{"Category", fmt.Sprintf("categoryId=%s", groceries.Data.ID), 2},
		{"Search title", "query=market", 1},
		{"Search is case-insensitive", "query=salary", 1},
		{"From date", "fromDate=2024-03-10T00:00:00Z", 2},
		{"Until date", "toDate=2024-03-05T23:00:00Z", 2},
		{"Date range", "fromDate=2024-03-01T00:00:00Z&toDate=2024-03-31T00:00:00Z", 3},
		{"Type and category", fmt.Sprintf("type=EXPENSE&categoryId=%s", groceries.Data.ID), 2},
		{"No match", "query=doesnotexist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len, "Wrong number of transactions for query %q", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidQuery() {
	headers := registerTestUser(suite.T())

	tests := []string{
		"type=TRANSFER",
		"sort=favoriteColor",
		"order=sideways",
		"categoryId=NotAUUID",
		"fromDate=2024-03-31T00:00:00Z&toDate=2024-03-01T00:00:00Z",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsSorting() {
	headers := registerTestUser(suite.T())

	for _, editable := range []v1.TransactionEditable{
		{Title: "Middle", Amount: decimal.NewFromFloat(20), Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Title: "Oldest", Amount: decimal.NewFromFloat(30), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Newest", Amount: decimal.NewFromFloat(10), Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	} {
		createTestTransaction(suite.T(), headers, editable)
	}

	tests := []struct {
		name  string
		query string
		first string
	}{
		{"Date descending", "sort=date&order=desc", "Newest"},
		{"Date ascending", "sort=date&order=asc", "Oldest"},
		{"Amount descending", "sort=amount&order=desc", "Oldest"},
		{"Amount ascending", "sort=amount&order=asc", "Newest"},
		{"Title ascending", "sort=title&order=asc", "Middle"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			require.NotEmpty(t, response.Data)
			assert.Equal(t, tt.first, response.Data[0].Title)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsPagination() {
	headers := registerTestUser(suite.T())

	for i := 0; i < 25; i++ {
		createTestTransaction(suite.T(), headers, v1.TransactionEditable{
			Title:  fmt.Sprintf("Transaction %02d", i),
			Amount: decimal.NewFromFloat(float64(i) + 1),
			Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		})
	}

	tests := []struct {
		name   string
		query  string
		len    int
		total  int64
		offset uint
		limit  int
	}{
		{"Defaults", "", 25, 25, 0, 50},
		{"First page", "limit=10", 10, 25, 0, 10},
		{"Middle page", "limit=10&offset=10", 10, 25, 10, 10},
		{"Last page", "limit=10&offset=20", 5, 25, 20, 10},
		{"Offset beyond end", "limit=10&offset=30", 0, 25, 30, 10},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			require.NotNil(t, response.Pagination)
			assert.Equal(t, tt.total, response.Pagination.Total)
			assert.Equal(t, tt.offset, response.Pagination.Offset)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, tt.len, response.Pagination.Count)
		})
	}
}

// TestTransactionsListInteraction walks through a filter, sort and
// paginate sequence the way the frontend issues it.
func (suite *TestSuiteStandard) TestTransactionsListInteraction() {
	headers := registerTestUser(suite.T())

	groceries := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Color: "#22c55e", Type: models.TypeExpense})

	for i := 0; i < 12; i++ {
		editable := v1.TransactionEditable{
			Title:  fmt.Sprintf("Groceries run %02d", i),
			Amount: decimal.NewFromFloat(float64(10 + i)),
			Type:   models.TypeExpense,
			Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
		if i%2 == 0 {
			editable.CategoryID = &groceries.Data.ID
		}
		createTestTransaction(suite.T(), headers, editable)
	}

	// Filter by category, sorted by date ascending, first page of 5
	values := url.Values{}
	values.Set("categoryId", groceries.Data.ID.String())
	values.Set("sort", "date")
	values.Set("order", "asc")
	values.Set("limit", "5")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?"+values.Encode(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var page v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &page)
	require.Len(suite.T(), page.Data, 5)
	assert.Equal(suite.T(), int64(6), page.Pagination.Total)
	assert.Equal(suite.T(), "Groceries run 00", page.Data[0].Title)

	// Second page has the remainder
	values.Set("offset", "5")
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?"+values.Encode(), "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &page)
	require.Len(suite.T(), page.Data, 1)
	assert.Equal(suite.T(), "Groceries run 10", page.Data[0].Title)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	headers := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Old title", Amount: decimal.NewFromFloat(42)})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"title": "New title",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "New title", response.Data.Title)

	// The amount is not changed by a partial update
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(42)), "Amount is %s", response.Data.Amount)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateInvalid() {
	headers := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Immutable", Amount: decimal.NewFromFloat(1)})

	tests := []struct {
		name string
		body any
	}{
		{"Negative amount", map[string]any{"amount": -10}},
		{"Invalid type", map[string]any{"type": "TRANSFER"}},
		{"Broken JSON", `{ "title": `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	headers := registerTestUser(suite.T())

	transaction := createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Doomed", Amount: decimal.NewFromFloat(1)})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	headers := registerTestUser(suite.T())

	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
	}{
		{"GET Collection", "", http.MethodGet},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions%s", tt.path), "", headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
		})
	}
}
