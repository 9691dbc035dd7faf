package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactions)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var recurring models.RecurringTransaction
	err := models.DB.First(&recurring, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
// @Security		Bearer
func GetRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Get recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		400	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
// @Security		Bearer
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			isActive	query	bool	false	"Filter by active state"
func GetRecurringTransactions(c *gin.Context) {
	var filter RecurringTransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionListResponse{
			Error: &s,
		})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := models.DB.
		Order("datetime(recurring_transactions.next_occurrence) ASC").
		Where("recurring_transactions.user_id = ?", auth.UserID(c)).
		Where(&model, queryFields...)

	if filter.Type != "" {
		if !filter.Type.Valid() {
			s := models.ErrTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, RecurringTransactionListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("recurring_transactions.type = ?", filter.Type)
	}

	var recurring []models.RecurringTransaction
	err := q.Find(&recurring).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0)
	for _, r := range recurring {
		data = append(data, newRecurringTransaction(c, r))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{Data: data})
}

// @Summary		Create recurring transactions
// @Description	Creates recurring transactions from the list of submitted data. The response code is the highest response code number that a single creation would have caused. If it is not equal to 201, at least one recurring transaction has an error.
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201						{object}	RecurringTransactionCreateResponse
// @Failure		400						{object}	RecurringTransactionCreateResponse
// @Failure		500						{object}	RecurringTransactionCreateResponse
// @Param			recurringTransactions	body		[]RecurringTransactionEditable	true	"Recurring transactions"
// @Router			/v1/recurring-transactions [post]
// @Security		Bearer
func CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringTransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	for _, editable := range editables {
		recurring := editable.model(userID)
		err := models.DB.Create(&recurring).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTransaction(c, recurring)
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update recurring transaction
// @Description	Updates an existing recurring transaction. Only values to be updated need to be specified.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		404						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			id						path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"Recurring transaction"
// @Router			/v1/recurring-transactions/{id} [patch]
// @Security		Bearer
func UpdateRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND user_id = ?", uri.ID.UUID, userID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var update RecurringTransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	// Fields that validation requires survive a partial update
	if update.Amount.IsZero() {
		update.Amount = recurring.Amount
	}
	if update.Type == "" {
		update.Type = recurring.Type
	}
	if update.RecurrenceFrequency == "" {
		update.RecurrenceFrequency = recurring.RecurrenceFrequency
	}
	if update.StartDate.IsZero() {
		update.StartDate = recurring.StartDate
	}

	err = models.DB.Model(&recurring).Select("", updateFields...).Updates(update.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction. Transactions already generated from it are kept.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
// @Security		Bearer
func DeleteRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
