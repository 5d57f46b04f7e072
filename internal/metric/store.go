package metric

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/callboard/callboard-backend/internal/shared"
)

// metricColumns are the value columns replaced wholesale on upsert.
var metricColumns = []string{
	"total_call_duration",
	"outbound_call_count",
	"web_call_count",
	"failed_customer_ended_call_count",
	"failed_assistant_ended_call_count",
	"failed_customer_no_answer_call_count",
	"failed_exceed_duration_call_count",
	"failed_customer_busy_call_count",
	"failed_silence_timeout_call_count",
	"failed_other_call_count",
	"total_minutes",
	"avg_call_cost",
	"total_cost",
	"total_spent",
	"success_evaluation_true",
	"success_evaluation_false",
	"success_evaluation_null",
	"updated_at",
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Metric{})
}

// Upsert writes the row for (assistant_id, date), replacing every
// metric column if the key already exists. Concurrent writers race at
// the database; last write wins.
func (s *Store) Upsert(ctx context.Context, m *Metric) error {
	return s.db.WithContext(ctx).
		Omit("Assistant").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assistant_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(metricColumns),
		}).
		Create(m).Error
}

// Apply upserts only the given columns for (assistantID, date),
// creating a zeroed row first when the key is new.
func (s *Store) Apply(ctx context.Context, assistantID uint, date time.Time, fields map[string]any) (*Metric, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Metric
		err := tx.Where("assistant_id = ? AND date = ?", assistantID, date).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m := &Metric{AssistantID: assistantID, Date: date}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			existing = *m
		} else if err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&Metric{}).Where("id = ?", existing.ID).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByKey(ctx, assistantID, date)
}

func (s *Store) GetByKey(ctx context.Context, assistantID uint, date time.Time) (*Metric, error) {
	var m Metric
	err := s.db.WithContext(ctx).Preload("Assistant").
		Where("assistant_id = ? AND date = ?", assistantID, date).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &m, err
}

func (s *Store) ListByAssistant(ctx context.Context, assistantID uint, start, end *time.Time) ([]*Metric, error) {
	q := s.db.WithContext(ctx).Preload("Assistant").Where("assistant_id = ?", assistantID)
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	var metrics []*Metric
	err := q.Order("date DESC").Find(&metrics).Error
	return metrics, err
}

func (s *Store) ListByAssistants(ctx context.Context, assistantIDs []uint, start, end *time.Time) ([]*Metric, error) {
	if len(assistantIDs) == 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).Where("assistant_id IN ?", assistantIDs)
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	var metrics []*Metric
	err := q.Order("date ASC").Find(&metrics).Error
	return metrics, err
}

func (s *Store) CountByAssistant(ctx context.Context, assistantID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Metric{}).
		Where("assistant_id = ?", assistantID).
		Count(&count).Error
	return count, err
}

// RollingRow is a metric row annotated with trailing-window averages.
type RollingRow struct {
	Metric
	RollingAvgDuration   float64
	RollingAvgTotalCalls float64
	RollingAvgMinutes    float64
	RollingAvgCallCost   float64
	RollingAvgTotalCost  float64
}

const rollingRowLimit = 30

// RollingAverages computes trailing averages over a window of `days`
// rows ordered by date, returning the most recent rows newest-first.
func (s *Store) RollingAverages(ctx context.Context, assistantID uint, days int) ([]RollingRow, error) {
	if days < 1 {
		days = 1
	}

	var metrics []Metric
	err := s.db.WithContext(ctx).
		Where("assistant_id = ?", assistantID).
		Order("date ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}

	rows := make([]RollingRow, len(metrics))
	for i, m := range metrics {
		lo := i - days + 1
		if lo < 0 {
			lo = 0
		}
		window := metrics[lo : i+1]

		var duration, calls, minutes, callCost, totalCost float64
		for _, w := range window {
			duration += w.TotalCallDuration
			calls += float64(w.TotalCalls())
			minutes += w.TotalMinutes
			callCost += w.AvgCallCost
			totalCost += w.TotalCost
		}

		n := float64(len(window))
		rows[i] = RollingRow{
			Metric:               m,
			RollingAvgDuration:   duration / n,
			RollingAvgTotalCalls: calls / n,
			RollingAvgMinutes:    minutes / n,
			RollingAvgCallCost:   callCost / n,
			RollingAvgTotalCost:  totalCost / n,
		}
	}

	// Most recent first, capped like the dashboard chart expects.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	if len(rows) > rollingRowLimit {
		rows = rows[:rollingRowLimit]
	}
	return rows, nil
}

// AggregateResult holds lifetime sums and per-row averages for one
// assistant.
type AggregateResult struct {
	Count int64

	SumTotalCallDuration               float64
	SumOutboundCallCount               int64
	SumWebCallCount                    int64
	SumFailedCustomerEndedCallCount    int64
	SumFailedAssistantEndedCallCount   int64
	SumFailedCustomerNoAnswerCallCount int64
	SumFailedExceedDurationCallCount   int64
	SumFailedCustomerBusyCallCount     int64
	SumFailedSilenceTimeoutCallCount   int64
	SumFailedOtherCallCount            int64
	SumTotalMinutes                    float64
	SumTotalCost                       float64
	SumTotalSpent                      float64
	SumSuccessEvaluationTrue           int64
	SumSuccessEvaluationFalse          int64
	SumSuccessEvaluationNull           int64

	AvgCallCost          float64
	AvgTotalCallDuration float64
	AvgTotalMinutes      float64
	AvgTotalCost         float64
	AvgTotalSpent        float64
}

// Aggregate sums every counter over the assistant's full history.
// Averages are 0 when no rows exist.
func (s *Store) Aggregate(ctx context.Context, assistantID uint) (*AggregateResult, error) {
	var metrics []Metric
	err := s.db.WithContext(ctx).
		Where("assistant_id = ?", assistantID).
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}

	result := &AggregateResult{Count: int64(len(metrics))}
	if len(metrics) == 0 {
		return result, nil
	}

	var avgCost float64
	for _, m := range metrics {
		result.SumTotalCallDuration += m.TotalCallDuration
		result.SumOutboundCallCount += m.OutboundCallCount
		result.SumWebCallCount += m.WebCallCount
		result.SumFailedCustomerEndedCallCount += m.FailedCustomerEndedCallCount
		result.SumFailedAssistantEndedCallCount += m.FailedAssistantEndedCallCount
		result.SumFailedCustomerNoAnswerCallCount += m.FailedCustomerNoAnswerCallCount
		result.SumFailedExceedDurationCallCount += m.FailedExceedDurationCallCount
		result.SumFailedCustomerBusyCallCount += m.FailedCustomerBusyCallCount
		result.SumFailedSilenceTimeoutCallCount += m.FailedSilenceTimeoutCallCount
		result.SumFailedOtherCallCount += m.FailedOtherCallCount
		result.SumTotalMinutes += m.TotalMinutes
		result.SumTotalCost += m.TotalCost
		result.SumTotalSpent += m.TotalSpent
		result.SumSuccessEvaluationTrue += m.SuccessEvaluationTrue
		result.SumSuccessEvaluationFalse += m.SuccessEvaluationFalse
		result.SumSuccessEvaluationNull += m.SuccessEvaluationNull
		avgCost += m.AvgCallCost
	}

	n := float64(len(metrics))
	result.AvgCallCost = avgCost / n
	result.AvgTotalCallDuration = result.SumTotalCallDuration / n
	result.AvgTotalMinutes = result.SumTotalMinutes / n
	result.AvgTotalCost = result.SumTotalCost / n
	result.AvgTotalSpent = result.SumTotalSpent / n
	return result, nil
}

// Since returns rows from the trailing `days` window, oldest first.
func (s *Store) Since(ctx context.Context, assistantID uint, from time.Time) ([]*Metric, error) {
	var metrics []*Metric
	err := s.db.WithContext(ctx).
		Where("assistant_id = ? AND date >= ?", assistantID, from).
		Order("date ASC").
		Find(&metrics).Error
	return metrics, err
}
