// Package recurring generates transactions from recurring transaction
// templates.
package recurring

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NextOccurrence returns the occurrence following the given one.
func NextOccurrence(frequency models.RecurrenceFrequency, after time.Time) time.Time {
	after = after.In(time.UTC)

	switch frequency {
	case models.FrequencyDaily:
		return after.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return after.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return after.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		return after.AddDate(1, 0, 0)
	}

	return after
}

// Materialize creates transactions for all active recurring
// transactions that are due at now and advances their next
// occurrence. Recurrences whose end date has passed are deactivated.
//
// It returns the number of transactions created.
func Materialize(db *gorm.DB, now time.Time) (int, error) {
	now = now.In(time.UTC)

	var due []models.RecurringTransaction
	err := db.
		Where("is_active = ?", true).
		Where("next_occurrence <= ?", now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, recurrence := range due {
		next := recurrence.NextOccurrence

		for !next.After(now) {
			if recurrence.EndDate != nil && next.After(*recurrence.EndDate) {
				recurrence.IsActive = false
				break
			}

			transaction := models.Transaction{
				UserID:              recurrence.UserID,
				Title:               recurrence.Title,
				Amount:              recurrence.Amount,
				Type:                recurrence.Type,
				Date:                next,
				CategoryID:          recurrence.CategoryID,
				IsRecurring:         true,
				RecurrenceFrequency: recurrence.RecurrenceFrequency,
			}

			if err := db.Create(&transaction).Error; err != nil {
				return created, err
			}

			created++
			next = NextOccurrence(recurrence.RecurrenceFrequency, next)
		}

		recurrence.NextOccurrence = next
		if err := db.Save(&recurrence).Error; err != nil {
			return created, err
		}
	}

	return created, nil
}

// RunScheduler materializes due recurring transactions on an interval
// until the context is canceled. A materialization failure is logged
// and retried on the next tick.
func RunScheduler(ctx context.Context, db *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		created, err := Materialize(db, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("recurring transaction materialization failed")
		} else if created > 0 {
			log.Info().Int("created", created).Msg("recurring transactions materialized")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
