package metric

import (
	"context"
	"sort"
	"time"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
)

// AnalyticsQuery scopes an aggregation request. A nil AssistantID means
// every assistant the user owns; nil dates leave that bound open.
type AnalyticsQuery struct {
	AssistantID *uint
	Start       *time.Time
	End         *time.Time
	Bucket      TimeRange
}

// Aggregator groups stored metrics into time buckets for the dashboard
// charts.
type Aggregator struct {
	assistants *assistant.Store
	store      *Store
}

func NewAggregator(assistants *assistant.Store, store *Store) *Aggregator {
	return &Aggregator{
		assistants: assistants,
		store:      store,
	}
}

// Analytics buckets the user's metrics by the requested granularity,
// newest bucket first, plus a grand-total summary. An empty assistant
// set yields an empty, zero-valued response rather than an error.
func (a *Aggregator) Analytics(ctx context.Context, userID uint, q AnalyticsQuery) (*dto.AnalyticsResponse, error) {
	if q.Bucket == "" {
		q.Bucket = TimeRangeDaily
	}

	owned, err := a.assistants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var scoped []*assistant.Assistant
	for _, as := range owned {
		if q.AssistantID == nil || as.ID == *q.AssistantID {
			scoped = append(scoped, as)
		}
	}

	resp := &dto.AnalyticsResponse{
		Assistants: make([]dto.MetricAssistant, 0, len(scoped)),
		Data:       []dto.AnalyticsBucket{},
		Summary: dto.AnalyticsSummary{
			TotalAssistants: len(scoped),
			TimeRange:       string(q.Bucket),
		},
	}
	if len(scoped) == 0 {
		return resp, nil
	}

	ids := make([]uint, len(scoped))
	for i, as := range scoped {
		ids[i] = as.ID
		resp.Assistants = append(resp.Assistants, dto.MetricAssistant{
			ID:        as.ID,
			Name:      as.Name,
			ModelType: as.ModelType,
		})
	}

	end := q.End
	if end != nil {
		// Inclusive day bound.
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}

	rows, err := a.store.ListByAssistants(ctx, ids, q.Start, end)
	if err != nil {
		return nil, err
	}

	resp.Data = bucketize(rows, q.Bucket)
	fillSummary(&resp.Summary, rows)
	return resp, nil
}

type bucketAcc struct {
	bucket     dto.AnalyticsBucket
	avgCostSum float64
	rowCount   int64
	assistants map[uint]bool
}

func bucketize(rows []*Metric, granularity TimeRange) []dto.AnalyticsBucket {
	accs := make(map[time.Time]*bucketAcc)
	for _, row := range rows {
		start := granularity.BucketStart(row.Date)
		acc, ok := accs[start]
		if !ok {
			acc = &bucketAcc{
				bucket:     dto.AnalyticsBucket{Period: start.Format(shared.DateOnly)},
				assistants: make(map[uint]bool),
			}
			accs[start] = acc
		}

		b := &acc.bucket
		b.TotalCallDuration += row.TotalCallDuration
		b.TotalOutboundCalls += row.OutboundCallCount
		b.TotalWebCalls += row.WebCallCount
		b.TotalCalls += row.TotalCalls()
		b.TotalFailedCustomerEnded += row.FailedCustomerEndedCallCount
		b.TotalFailedAssistantEnded += row.FailedAssistantEndedCallCount
		b.TotalFailedCustomerNoAnswer += row.FailedCustomerNoAnswerCallCount
		b.TotalFailedExceedDuration += row.FailedExceedDurationCallCount
		b.TotalFailedCustomerBusy += row.FailedCustomerBusyCallCount
		b.TotalFailedSilenceTimeout += row.FailedSilenceTimeoutCallCount
		b.TotalFailedOther += row.FailedOtherCallCount
		b.TotalFailedCalls += row.TotalFailedCalls()
		b.TotalMinutes += row.TotalMinutes
		b.TotalCost += row.TotalCost
		b.TotalSpent += row.TotalSpent
		b.TotalSuccessTrue += row.SuccessEvaluationTrue
		b.TotalSuccessFalse += row.SuccessEvaluationFalse
		b.TotalSuccessNull += row.SuccessEvaluationNull

		acc.avgCostSum += row.AvgCallCost
		acc.rowCount++
		acc.assistants[row.AssistantID] = true
	}

	starts := make([]time.Time, 0, len(accs))
	for start := range accs {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].After(starts[j]) })

	buckets := make([]dto.AnalyticsBucket, len(starts))
	for i, start := range starts {
		acc := accs[start]
		acc.bucket.AvgCallCost = acc.avgCostSum / float64(acc.rowCount)
		acc.bucket.UniqueAssistants = int64(len(acc.assistants))
		buckets[i] = acc.bucket
	}
	return buckets
}

func fillSummary(summary *dto.AnalyticsSummary, rows []*Metric) {
	if len(rows) == 0 {
		return
	}

	earliest, latest := rows[0].Date, rows[0].Date
	for _, row := range rows {
		summary.Totals.TotalCallDuration += row.TotalCallDuration
		summary.Totals.TotalCalls += row.TotalCalls()
		summary.Totals.TotalFailedCalls += row.TotalFailedCalls()
		summary.Totals.TotalMinutes += row.TotalMinutes
		summary.Totals.TotalCost += row.TotalCost
		summary.Totals.TotalSpent += row.TotalSpent

		if row.Date.Before(earliest) {
			earliest = row.Date
		}
		if row.Date.After(latest) {
			latest = row.Date
		}
	}

	start := earliest.Format(shared.DateOnly)
	end := latest.Format(shared.DateOnly)
	summary.DateRange.Start = &start
	summary.DateRange.End = &end
}
