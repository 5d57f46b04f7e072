package dto

import "encoding/json"

type UpsertMetricRequest struct {
	Date string `json:"date" example:"2024-01-15"`

	TotalCallDuration               *float64 `json:"total_call_duration,omitempty" example:"3600"`
	OutboundCallCount               *int64   `json:"outbound_call_count,omitempty" example:"12"`
	WebCallCount                    *int64   `json:"web_call_count,omitempty" example:"7"`
	FailedCustomerEndedCallCount    *int64   `json:"failed_customer_ended_call_count,omitempty" example:"1"`
	FailedAssistantEndedCallCount   *int64   `json:"failed_assistant_ended_call_count,omitempty" example:"0"`
	FailedCustomerNoAnswerCallCount *int64   `json:"failed_customer_no_answer_call_count,omitempty" example:"2"`
	FailedExceedDurationCallCount   *int64   `json:"failed_exceed_duration_call_count,omitempty" example:"0"`
	FailedCustomerBusyCallCount     *int64   `json:"failed_customer_busy_call_count,omitempty" example:"1"`
	FailedSilenceTimeoutCallCount   *int64   `json:"failed_silence_timeout_call_count,omitempty" example:"0"`
	FailedOtherCallCount            *int64   `json:"failed_other_call_count,omitempty" example:"0"`
	TotalMinutes                    *float64 `json:"total_minutes,omitempty" example:"60"`
	AvgCallCost                     *float64 `json:"avg_call_cost,omitempty" example:"0.12"`
	TotalCost                       *float64 `json:"total_cost,omitempty" example:"2.28"`
	TotalSpent                      *float64 `json:"total_spent,omitempty" example:"2.28"`
	SuccessEvaluationTrue           *int64   `json:"success_evaluation_true,omitempty" example:"15"`
	SuccessEvaluationFalse          *int64   `json:"success_evaluation_false,omitempty" example:"3"`
	SuccessEvaluationNull           *int64   `json:"success_evaluation_null,omitempty" example:"1"`
}

type MetricAssistant struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"Reception Bot"`
	ModelType string `json:"model_type" example:"gpt-4o"`
}

type MetricResponse struct {
	ID          uint             `json:"id" example:"10"`
	AssistantID uint             `json:"assistant_id" example:"1"`
	Date        string           `json:"date" example:"2024-01-15"`
	Assistant   *MetricAssistant `json:"assistant,omitempty"`

	TotalCallDuration               float64 `json:"total_call_duration" example:"3600"`
	OutboundCallCount               int64   `json:"outbound_call_count" example:"12"`
	WebCallCount                    int64   `json:"web_call_count" example:"7"`
	FailedCustomerEndedCallCount    int64   `json:"failed_customer_ended_call_count" example:"1"`
	FailedAssistantEndedCallCount   int64   `json:"failed_assistant_ended_call_count" example:"0"`
	FailedCustomerNoAnswerCallCount int64   `json:"failed_customer_no_answer_call_count" example:"2"`
	FailedExceedDurationCallCount   int64   `json:"failed_exceed_duration_call_count" example:"0"`
	FailedCustomerBusyCallCount     int64   `json:"failed_customer_busy_call_count" example:"1"`
	FailedSilenceTimeoutCallCount   int64   `json:"failed_silence_timeout_call_count" example:"0"`
	FailedOtherCallCount            int64   `json:"failed_other_call_count" example:"0"`
	TotalMinutes                    float64 `json:"total_minutes" example:"60"`
	AvgCallCost                     float64 `json:"avg_call_cost" example:"0.12"`
	TotalCost                       float64 `json:"total_cost" example:"2.28"`
	TotalSpent                      float64 `json:"total_spent" example:"2.28"`
	SuccessEvaluationTrue           int64   `json:"success_evaluation_true" example:"15"`
	SuccessEvaluationFalse          int64   `json:"success_evaluation_false" example:"3"`
	SuccessEvaluationNull           int64   `json:"success_evaluation_null" example:"1"`
}

type MetricListResponse struct {
	Metrics []MetricResponse `json:"metrics"`
}

type RollingAverageRow struct {
	MetricResponse
	RollingAvgDuration   float64 `json:"rolling_avg_duration" example:"3400.5"`
	RollingAvgTotalCalls float64 `json:"rolling_avg_total_calls" example:"18.2"`
	RollingAvgMinutes    float64 `json:"rolling_avg_minutes" example:"56.7"`
	RollingAvgCallCost   float64 `json:"rolling_avg_call_cost" example:"0.11"`
	RollingAvgTotalCost  float64 `json:"rolling_avg_total_cost" example:"2.04"`
}

type RollingAverageResponse struct {
	Days    int                 `json:"days" example:"7"`
	Metrics []RollingAverageRow `json:"metrics"`
}

type AggregateSums struct {
	TotalCallDuration               float64 `json:"total_call_duration" example:"104000"`
	OutboundCallCount               int64   `json:"outbound_call_count" example:"310"`
	WebCallCount                    int64   `json:"web_call_count" example:"190"`
	FailedCustomerEndedCallCount    int64   `json:"failed_customer_ended_call_count" example:"12"`
	FailedAssistantEndedCallCount   int64   `json:"failed_assistant_ended_call_count" example:"4"`
	FailedCustomerNoAnswerCallCount int64   `json:"failed_customer_no_answer_call_count" example:"22"`
	FailedExceedDurationCallCount   int64   `json:"failed_exceed_duration_call_count" example:"2"`
	FailedCustomerBusyCallCount     int64   `json:"failed_customer_busy_call_count" example:"9"`
	FailedSilenceTimeoutCallCount   int64   `json:"failed_silence_timeout_call_count" example:"5"`
	FailedOtherCallCount            int64   `json:"failed_other_call_count" example:"3"`
	TotalMinutes                    float64 `json:"total_minutes" example:"1733"`
	TotalCost                       float64 `json:"total_cost" example:"61.4"`
	TotalSpent                      float64 `json:"total_spent" example:"61.4"`
	SuccessEvaluationTrue           int64   `json:"success_evaluation_true" example:"402"`
	SuccessEvaluationFalse          int64   `json:"success_evaluation_false" example:"71"`
	SuccessEvaluationNull           int64   `json:"success_evaluation_null" example:"27"`
}

type AggregateAverages struct {
	AvgCallCost       float64 `json:"avg_call_cost" example:"0.12"`
	TotalCallDuration float64 `json:"total_call_duration" example:"3466.6"`
	TotalMinutes      float64 `json:"total_minutes" example:"57.7"`
	TotalCost         float64 `json:"total_cost" example:"2.04"`
	TotalSpent        float64 `json:"total_spent" example:"2.04"`
}

type AggregateResponse struct {
	Sum   AggregateSums     `json:"sum"`
	Avg   AggregateAverages `json:"avg"`
	Count int64             `json:"count" example:"30"`
}

// MetricGroup is one report block of the third-party analytics export
// posted to the bulk endpoint. The field set of each row depends on the
// group name.
type MetricGroup struct {
	Name      string          `json:"name" example:"Number of Calls by Type"`
	TimeRange *GroupTimeRange `json:"timeRange,omitempty"`
	Result    []MetricRow     `json:"result"`
}

type GroupTimeRange struct {
	Step string `json:"step" example:"minute"`
}

// MetricRow carries the union of every per-group field; rows only
// populate the ones their group defines. CountID arrives as either a
// JSON number or a numeric string.
type MetricRow struct {
	AssistantID string      `json:"assistantId" example:"asst_8f1c2d"`
	Date        string      `json:"date" example:"2024-01-15"`
	Type        string      `json:"type,omitempty" example:"outboundPhoneCall"`
	EndedReason string      `json:"endedReason,omitempty" example:"customer-ended-call"`
	CountID     json.Number `json:"countId,omitempty" example:"3"`
	SumDuration float64     `json:"sumDuration,omitempty" example:"3600"`
	AvgCost     float64     `json:"avgCost,omitempty" example:"0.12"`
	SumCost     float64     `json:"sumCost,omitempty" example:"2.28"`

	SumCostBreakdownLLM  float64 `json:"sumCostBreakdownLlm,omitempty" example:"1.1"`
	SumCostBreakdownSTT  float64 `json:"sumCostBreakdownStt,omitempty" example:"0.4"`
	SumCostBreakdownTTS  float64 `json:"sumCostBreakdownTts,omitempty" example:"0.5"`
	SumCostBreakdownVapi float64 `json:"sumCostBreakdownVapi,omitempty" example:"0.28"`

	SuccessEvaluation *string `json:"analysis.successEvaluation,omitempty" example:"true"`
}

type BulkUpdateRequest struct {
	UpdateAll bool          `json:"updateAll" example:"false"`
	Metrics   []MetricGroup `json:"metrics"`
}

type BulkUpdateResponse struct {
	Message   string           `json:"message" example:"Successfully processed 4 metrics"`
	Processed int              `json:"processed" example:"4"`
	Results   []MetricResponse `json:"results"`
}

type AnalyticsBucket struct {
	Period string `json:"period" example:"2024-01-15"`

	TotalCallDuration           float64 `json:"total_call_duration" example:"7200"`
	TotalOutboundCalls          int64   `json:"total_outbound_calls" example:"25"`
	TotalWebCalls               int64   `json:"total_web_calls" example:"14"`
	TotalCalls                  int64   `json:"total_calls" example:"39"`
	TotalFailedCustomerEnded    int64   `json:"total_failed_customer_ended" example:"2"`
	TotalFailedAssistantEnded   int64   `json:"total_failed_assistant_ended" example:"0"`
	TotalFailedCustomerNoAnswer int64   `json:"total_failed_customer_no_answer" example:"3"`
	TotalFailedExceedDuration   int64   `json:"total_failed_exceed_duration" example:"0"`
	TotalFailedCustomerBusy     int64   `json:"total_failed_customer_busy" example:"1"`
	TotalFailedSilenceTimeout   int64   `json:"total_failed_silence_timeout" example:"1"`
	TotalFailedOther            int64   `json:"total_failed_other" example:"0"`
	TotalFailedCalls            int64   `json:"total_failed_calls" example:"7"`
	TotalMinutes                float64 `json:"total_minutes" example:"120"`
	AvgCallCost                 float64 `json:"avg_call_cost" example:"0.12"`
	TotalCost                   float64 `json:"total_cost" example:"4.56"`
	TotalSpent                  float64 `json:"total_spent" example:"4.56"`
	TotalSuccessTrue            int64   `json:"total_success_true" example:"30"`
	TotalSuccessFalse           int64   `json:"total_success_false" example:"6"`
	TotalSuccessNull            int64   `json:"total_success_null" example:"3"`
	UniqueAssistants            int64   `json:"unique_assistants" example:"2"`
}

type AnalyticsTotals struct {
	TotalCallDuration float64 `json:"total_call_duration" example:"104000"`
	TotalCalls        int64   `json:"total_calls" example:"500"`
	TotalFailedCalls  int64   `json:"total_failed_calls" example:"57"`
	TotalMinutes      float64 `json:"total_minutes" example:"1733"`
	TotalCost         float64 `json:"total_cost" example:"61.4"`
	TotalSpent        float64 `json:"total_spent" example:"61.4"`
}

type AnalyticsDateRange struct {
	Start *string `json:"start" example:"2024-01-01"`
	End   *string `json:"end" example:"2024-01-31"`
}

type AnalyticsSummary struct {
	TotalAssistants int                `json:"totalAssistants" example:"3"`
	DateRange       AnalyticsDateRange `json:"dateRange"`
	TimeRange       string             `json:"timeRange" example:"daily"`
	Totals          AnalyticsTotals    `json:"totals"`
}

type AnalyticsResponse struct {
	Assistants []MetricAssistant `json:"assistants"`
	Data       []AnalyticsBucket `json:"data"`
	Summary    AnalyticsSummary  `json:"summary"`
}
