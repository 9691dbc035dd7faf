package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionsSum returns the sum of all transaction amounts of the
// given type for a user, limited to the date range if from/until are
// not zero.
func TransactionsSum(db *gorm.DB, userID uuid.UUID, t TransactionType, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	q := db.Table("transactions").
		Where("deleted_at IS NULL").
		Where("user_id = ?", userID).
		Where("type = ?", t)

	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}

	if !until.IsZero() {
		q = q.Where("date <= ?", until)
	}

	err := q.Select("SUM(amount)").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", t, err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// CategoryTotal is the expense sum for a single category.
type CategoryTotal struct {
	CategoryID *uuid.UUID
	Total      decimal.Decimal
}

// ExpenseTotalsByCategory returns the expense sums per category ID for
// a user within the date range. Transactions without a resolvable
// category are reported with a nil CategoryID.
func ExpenseTotalsByCategory(db *gorm.DB, userID uuid.UUID, from, until time.Time) ([]CategoryTotal, error) {
	q := db.Table("transactions").
		Where("deleted_at IS NULL").
		Where("user_id = ?", userID).
		Where("type = ?", TypeExpense)

	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}

	if !until.IsZero() {
		q = q.Where("date <= ?", until)
	}

	rows, err := q.
		Select("category_id, SUM(amount) AS total").
		Group("category_id").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("grouping expenses by category failed: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var id uuid.NullUUID
		var total decimal.Decimal
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("grouping expenses by category failed: %w", err)
		}

		t := CategoryTotal{Total: total}
		if id.Valid {
			t.CategoryID = &id.UUID
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
