package metric

import (
	"context"
	"log/slog"
	"time"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
)

// GroupKind identifies one report block of the analytics export. The
// exporter names its blocks with display strings, so the mapping lives
// here at the ingestion boundary; anything unrecognized folds to
// GroupUnknown and touches nothing.
type GroupKind int

const (
	GroupUnknown GroupKind = iota
	GroupTotalCallDuration
	GroupCallsByType
	GroupFailedCalls
	GroupTotalMinutes
	GroupAverageCallCost
	GroupTotalSpent
	GroupCostBreakdown
	GroupSuccessEvaluation
)

func ParseGroupKind(name string) GroupKind {
	switch name {
	case "Total Call Duration":
		return GroupTotalCallDuration
	case "Number of Calls by Type":
		return GroupCallsByType
	case "Number of Failed Calls":
		return GroupFailedCalls
	case "Total Minutes":
		return GroupTotalMinutes
	case "Average Call Cost":
		return GroupAverageCallCost
	case "Total Spent":
		return GroupTotalSpent
	case "LLM, STT, TTS, VAPI Costs":
		return GroupCostBreakdown
	case "Success Evaluation":
		return GroupSuccessEvaluation
	default:
		return GroupUnknown
	}
}

// stepMinute is the only export granularity ingested; the same data
// arrives again at coarser steps and must not be double-counted.
const stepMinute = "minute"

type mergeKey struct {
	vapiID string
	date   string
}

type accumulator struct {
	vapiID string
	metric Metric
}

// BulkResult reports one ingestion call.
type BulkResult struct {
	Processed int
	Records   []*Metric
}

// Merger folds heterogeneous analytics rows into per-(assistant, day)
// metric rows and upserts them.
type Merger struct {
	assistants *assistant.Store
	store      *Store
	logger     *slog.Logger
	now        func() time.Time
}

func NewMerger(assistants *assistant.Store, store *Store, logger *slog.Logger) *Merger {
	return &Merger{
		assistants: assistants,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// BulkUpsert implements the ingestion contract: fold rows by (vapi id,
// date), resolve vapi ids to internal assistants, and fully replace
// each touched day's row. Malformed or unmatched rows are skipped with
// a warning; only store errors fail the call.
func (m *Merger) BulkUpsert(ctx context.Context, updateAll bool, groups []dto.MetricGroup) (*BulkResult, error) {
	today := m.now()

	merged := make(map[mergeKey]*accumulator)
	var order []mergeKey

	for _, group := range groups {
		if group.TimeRange != nil && group.TimeRange.Step != stepMinute {
			continue
		}
		kind := ParseGroupKind(group.Name)

		for _, row := range group.Result {
			if row.AssistantID == "" || row.Date == "" {
				m.logger.Warn("skipping metric row without assistant id or date", "group", group.Name)
				continue
			}

			day, err := shared.ParseDay(row.Date)
			if err != nil {
				m.logger.Warn("skipping metric row with unparseable date", "group", group.Name, "date", row.Date)
				continue
			}

			if !updateAll && !sameCalendarDay(day, today) {
				continue
			}

			key := mergeKey{vapiID: row.AssistantID, date: row.Date}
			acc, ok := merged[key]
			if !ok {
				acc = &accumulator{
					vapiID: row.AssistantID,
					metric: Metric{Date: day},
				}
				merged[key] = acc
				order = append(order, key)
			}

			fold(&acc.metric, kind, row)
		}
	}

	resolved, err := m.resolveAssistants(ctx, order, merged)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Records: make([]*Metric, 0, len(order))}
	for _, key := range order {
		acc := merged[key]
		assistantID, ok := resolved[acc.vapiID]
		if !ok {
			m.logger.Warn("assistant not found for vapi id", "vapi_id", acc.vapiID)
			continue
		}

		acc.metric.AssistantID = assistantID
		if err := m.store.Upsert(ctx, &acc.metric); err != nil {
			return nil, err
		}

		record, err := m.store.GetByKey(ctx, assistantID, acc.metric.Date)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, record)
	}

	result.Processed = len(result.Records)
	return result, nil
}

func (m *Merger) resolveAssistants(ctx context.Context, order []mergeKey, merged map[mergeKey]*accumulator) (map[string]uint, error) {
	seen := make(map[string]bool)
	var vapiIDs []string
	for _, key := range order {
		id := merged[key].vapiID
		if !seen[id] {
			seen[id] = true
			vapiIDs = append(vapiIDs, id)
		}
	}
	return m.assistants.ResolveVapiIDs(ctx, vapiIDs)
}

// fold applies one row to its key's accumulator. Counter groups add;
// measure groups replace. GroupTotalSpent and GroupCostBreakdown both
// replace total_cost/total_spent, so when both appear for one key the
// group folded last wins.
func fold(m *Metric, kind GroupKind, row dto.MetricRow) {
	switch kind {
	case GroupTotalCallDuration:
		m.TotalCallDuration = row.SumDuration

	case GroupCallsByType:
		switch row.Type {
		case "outboundPhoneCall":
			m.OutboundCallCount += rowCount(row)
		case "webCall":
			m.WebCallCount += rowCount(row)
		}

	case GroupFailedCalls:
		count := rowCount(row)
		switch row.EndedReason {
		case "customer-ended-call":
			m.FailedCustomerEndedCallCount += count
		case "assistant-ended-call":
			m.FailedAssistantEndedCallCount += count
		case "customer-did-not-answer":
			m.FailedCustomerNoAnswerCallCount += count
		case "exceeded-max-duration":
			m.FailedExceedDurationCallCount += count
		case "customer-busy":
			m.FailedCustomerBusyCallCount += count
		case "silence-timed-out":
			m.FailedSilenceTimeoutCallCount += count
		default:
			m.FailedOtherCallCount += count
		}

	case GroupTotalMinutes:
		m.TotalMinutes = row.SumDuration

	case GroupAverageCallCost:
		m.AvgCallCost = row.AvgCost

	case GroupTotalSpent:
		m.TotalCost = row.SumCost
		m.TotalSpent = row.SumCost

	case GroupCostBreakdown:
		total := row.SumCostBreakdownLLM +
			row.SumCostBreakdownSTT +
			row.SumCostBreakdownTTS +
			row.SumCostBreakdownVapi
		m.TotalCost = total
		m.TotalSpent = total

	case GroupSuccessEvaluation:
		switch {
		case row.SuccessEvaluation == nil || *row.SuccessEvaluation == "":
			m.SuccessEvaluationNull += rowCount(row)
		case *row.SuccessEvaluation == "true":
			m.SuccessEvaluationTrue += rowCount(row)
		case *row.SuccessEvaluation == "false":
			m.SuccessEvaluationFalse += rowCount(row)
		}
	}
}

// rowCount reads countId, which arrives as a JSON number or a numeric
// string; anything unparseable counts as zero.
func rowCount(row dto.MetricRow) int64 {
	if row.CountID == "" {
		return 0
	}
	if n, err := row.CountID.Int64(); err == nil {
		return n
	}
	if f, err := row.CountID.Float64(); err == nil {
		return int64(f)
	}
	return 0
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
