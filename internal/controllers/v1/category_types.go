package v1

import (
	"fmt"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryEditable struct {
	Name  string                 `json:"name" example:"Groceries"`      // Name of the category, unique per user and type
	Color string                 `json:"color" example:"#22c55e"`       // Hex color for the category, e.g. in charts
	Type  models.TransactionType `json:"type" example:"EXPENSE"`        // Whether the category applies to income or expense transactions
}

// model returns the database resource for the API representation of the editable fields
func (editable CategoryEditable) model(userID uuid.UUID) models.Category {
	return models.Category{
		UserID: userID,
		Name:   editable.Name,
		Color:  editable.Color,
		Type:   editable.Type,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91f71defe"`                     // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?categoryId=3b1ea324-d438-4419-882a-2fc91f71defe"` // Transactions referencing the category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Color: model.Color,
			Type:  model.Type,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?categoryId=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of created Categories
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, CategoryResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name string                 `form:"name" filterField:"false"` // Name of the category, exact match
	Type models.TransactionType `form:"type" filterField:"false"` // Type of the category
}
