package metric

import (
	"fmt"
	"time"

	"github.com/callboard/callboard-backend/internal/assistant"
)

// Metric is one assistant's call counters for a single calendar day.
// (assistant_id, date) is the upsert key; bulk ingestion fully replaces
// a day's row rather than accumulating into it.
type Metric struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	AssistantID uint                 `gorm:"not null;uniqueIndex:idx_metrics_assistant_date" json:"assistant_id"`
	Assistant   *assistant.Assistant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assistant,omitempty"`
	Date        time.Time            `gorm:"not null;uniqueIndex:idx_metrics_assistant_date" json:"date"`

	TotalCallDuration float64 `gorm:"not null;default:0" json:"total_call_duration"`
	OutboundCallCount int64   `gorm:"not null;default:0" json:"outbound_call_count"`
	WebCallCount      int64   `gorm:"not null;default:0" json:"web_call_count"`

	FailedCustomerEndedCallCount    int64 `gorm:"not null;default:0" json:"failed_customer_ended_call_count"`
	FailedAssistantEndedCallCount   int64 `gorm:"not null;default:0" json:"failed_assistant_ended_call_count"`
	FailedCustomerNoAnswerCallCount int64 `gorm:"not null;default:0" json:"failed_customer_no_answer_call_count"`
	FailedExceedDurationCallCount   int64 `gorm:"not null;default:0" json:"failed_exceed_duration_call_count"`
	FailedCustomerBusyCallCount     int64 `gorm:"not null;default:0" json:"failed_customer_busy_call_count"`
	FailedSilenceTimeoutCallCount   int64 `gorm:"not null;default:0" json:"failed_silence_timeout_call_count"`
	FailedOtherCallCount            int64 `gorm:"not null;default:0" json:"failed_other_call_count"`

	TotalMinutes float64 `gorm:"not null;default:0" json:"total_minutes"`
	AvgCallCost  float64 `gorm:"not null;default:0" json:"avg_call_cost"`
	TotalCost    float64 `gorm:"not null;default:0" json:"total_cost"`
	TotalSpent   float64 `gorm:"not null;default:0" json:"total_spent"`

	SuccessEvaluationTrue  int64 `gorm:"not null;default:0" json:"success_evaluation_true"`
	SuccessEvaluationFalse int64 `gorm:"not null;default:0" json:"success_evaluation_false"`
	SuccessEvaluationNull  int64 `gorm:"not null;default:0" json:"success_evaluation_null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Metric) TotalCalls() int64 {
	return m.OutboundCallCount + m.WebCallCount
}

func (m *Metric) TotalFailedCalls() int64 {
	return m.FailedCustomerEndedCallCount +
		m.FailedAssistantEndedCallCount +
		m.FailedCustomerNoAnswerCallCount +
		m.FailedExceedDurationCallCount +
		m.FailedCustomerBusyCallCount +
		m.FailedSilenceTimeoutCallCount +
		m.FailedOtherCallCount
}

type TimeRange string

const (
	TimeRangeDaily   TimeRange = "daily"
	TimeRangeWeekly  TimeRange = "weekly"
	TimeRangeMonthly TimeRange = "monthly"
	TimeRangeYearly  TimeRange = "yearly"
)

// ParseTimeRange validates a bucket granularity; the empty string
// defaults to daily.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case "":
		return TimeRangeDaily, nil
	case TimeRangeDaily, TimeRangeWeekly, TimeRangeMonthly, TimeRangeYearly:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("invalid time range %q", s)
	}
}

// BucketStart truncates t to the start of its bucket. Weeks start on
// Monday; daily buckets keep the day untouched.
func (r TimeRange) BucketStart(t time.Time) time.Time {
	switch r {
	case TimeRangeWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case TimeRangeMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case TimeRangeYearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}
