package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCategory creates a test category via the v1 API.
func createTestCategory(t *testing.T, headers map[string]string, category v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if category.Color == "" {
		category.Color = "#22c55e"
	}

	if category.Type == "" {
		category.Type = models.TypeExpense
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.CategoryEditable{category}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", reqBody, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var cr v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &cr)

	return cr.Data[0]
}

// TestCategoriesOptions verifies that the HTTP OPTIONS response for /categories/{id} is correct.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
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
				return createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Options test"}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{
		Name:  "Groceries",
		Color: "#22c55e",
		Type:  models.TypeExpense,
	})

	require.NotNil(suite.T(), category.Data)
	assert.Equal(suite.T(), "Groceries", category.Data.Name)
	assert.Equal(suite.T(), "#22c55e", category.Data.Color)
}

func (suite *TestSuiteStandard) TestCategoriesCreateInvalid() {
	headers := registerTestUser(suite.T())

	tests := []struct {
		name     string
		category v1.CategoryEditable
	}{
		{"Color without hash", v1.CategoryEditable{Name: "Bad color", Color: "22c55e", Type: models.TypeExpense}},
		{"Color too short", v1.CategoryEditable{Name: "Short color", Color: "#fff", Type: models.TypeExpense}},
		{"Invalid type", v1.CategoryEditable{Name: "Bad type", Color: "#22c55e", Type: "TRANSFER"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{tt.category}, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestCategoriesNameUniquePerUserAndType verifies the uniqueness
// constraint and that it does not apply across users or types.
func (suite *TestSuiteStandard) TestCategoriesNameUniquePerUserAndType() {
	headers := registerTestUser(suite.T())

	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Type: models.TypeExpense})

	// Same name and type again is a conflict
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Groceries", Color: "#22c55e", Type: models.TypeExpense}}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Data[0].Error)

	// Same name with another type is fine
	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Type: models.TypeIncome})

	// Same name for another user is fine
	otherUser := registerTestUser(suite.T())
	createTestCategory(suite.T(), otherUser, v1.CategoryEditable{Name: "Groceries", Type: models.TypeExpense})
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	headers := registerTestUser(suite.T())

	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Type: models.TypeExpense})
	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Restaurants", Type: models.TypeExpense})
	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Salary", Type: models.TypeIncome})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Expense only", "type=EXPENSE", 2},
		{"Income only", "type=INCOME", 1},
		{"By name", "name=Groceries", 1},
		{"No match", "name=DoesNotExist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesSortedByName() {
	headers := registerTestUser(suite.T())

	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Utilities"})
	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "groceries"})
	createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Restaurants"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "groceries", response.Data[0].Name)
	assert.Equal(suite.T(), "Restaurants", response.Data[1].Name)
	assert.Equal(suite.T(), "Utilities", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Old name", Color: "#ff0000"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"name": "New name",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "New name", response.Data.Name)

	// The color is not changed by a partial update
	assert.Equal(suite.T(), "#ff0000", response.Data.Color)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Doomed"})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
