package metric

import (
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeRange
		wantErr bool
	}{
		{"", TimeRangeDaily, false},
		{"daily", TimeRangeDaily, false},
		{"weekly", TimeRangeWeekly, false},
		{"monthly", TimeRangeMonthly, false},
		{"yearly", TimeRangeYearly, false},
		{"hourly", "", true},
		{"Daily", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTimeRange(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseTimeRange(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTimeRange_BucketStart(t *testing.T) {
	// 2024-03-20 is a Wednesday.
	wednesday := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		r     TimeRange
		input time.Time
		want  time.Time
	}{
		{"daily keeps the day", TimeRangeDaily, wednesday, wednesday},
		{"weekly snaps to monday", TimeRangeWeekly, wednesday, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"weekly on a monday stays", TimeRangeWeekly, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"weekly on a sunday goes back six days", TimeRangeWeekly, time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"monthly snaps to the first", TimeRangeMonthly, wednesday, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"yearly snaps to january first", TimeRangeYearly, wednesday, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.BucketStart(tt.input); !got.Equal(tt.want) {
				t.Errorf("BucketStart(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetric_Totals(t *testing.T) {
	m := &Metric{
		OutboundCallCount:               3,
		WebCallCount:                    4,
		FailedCustomerEndedCallCount:    1,
		FailedAssistantEndedCallCount:   1,
		FailedCustomerNoAnswerCallCount: 1,
		FailedExceedDurationCallCount:   1,
		FailedCustomerBusyCallCount:     1,
		FailedSilenceTimeoutCallCount:   1,
		FailedOtherCallCount:            1,
	}
	if m.TotalCalls() != 7 {
		t.Errorf("TotalCalls() = %d, want 7", m.TotalCalls())
	}
	if m.TotalFailedCalls() != 7 {
		t.Errorf("TotalFailedCalls() = %d, want 7", m.TotalFailedCalls())
	}
}
