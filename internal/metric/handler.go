package metric

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/auth"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
)

type Handler struct {
	store      *Store
	merger     *Merger
	aggregator *Aggregator
	assistants *assistant.Store
	logger     *slog.Logger
}

func NewHandler(store *Store, merger *Merger, aggregator *Aggregator, assistants *assistant.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:      store,
		merger:     merger,
		aggregator: aggregator,
		assistants: assistants,
		logger:     logger,
	}
}

// RegisterAssistantRoutes wires the per-assistant metric endpoints onto
// the /assistants group.
func (h *Handler) RegisterAssistantRoutes(g *echo.Group) {
	g.POST("/:id/metrics", h.Upsert)
	g.GET("/:id/metrics", h.List)
	g.GET("/:id/metrics/rolling-avg", h.RollingAverage)
	g.GET("/:id/metrics/aggregated", h.Aggregated)
	g.GET("/:id/metrics/daily-averages", h.DailyAverages)
}

// RegisterAnalyticsRoutes wires the session-authenticated analytics
// endpoint onto the /metrics group.
func (h *Handler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics", h.Analytics)
}

// RegisterBulkRoutes wires the shared-secret ingestion endpoint onto
// its own /metrics group.
func (h *Handler) RegisterBulkRoutes(g *echo.Group) {
	g.POST("/bulk-update", h.BulkUpdate)
}

func toResponse(m *Metric) dto.MetricResponse {
	resp := dto.MetricResponse{
		ID:          m.ID,
		AssistantID: m.AssistantID,
		Date:        m.Date.Format(shared.DateOnly),

		TotalCallDuration:               m.TotalCallDuration,
		OutboundCallCount:               m.OutboundCallCount,
		WebCallCount:                    m.WebCallCount,
		FailedCustomerEndedCallCount:    m.FailedCustomerEndedCallCount,
		FailedAssistantEndedCallCount:   m.FailedAssistantEndedCallCount,
		FailedCustomerNoAnswerCallCount: m.FailedCustomerNoAnswerCallCount,
		FailedExceedDurationCallCount:   m.FailedExceedDurationCallCount,
		FailedCustomerBusyCallCount:     m.FailedCustomerBusyCallCount,
		FailedSilenceTimeoutCallCount:   m.FailedSilenceTimeoutCallCount,
		FailedOtherCallCount:            m.FailedOtherCallCount,
		TotalMinutes:                    m.TotalMinutes,
		AvgCallCost:                     m.AvgCallCost,
		TotalCost:                       m.TotalCost,
		TotalSpent:                      m.TotalSpent,
		SuccessEvaluationTrue:           m.SuccessEvaluationTrue,
		SuccessEvaluationFalse:          m.SuccessEvaluationFalse,
		SuccessEvaluationNull:           m.SuccessEvaluationNull,
	}
	if m.Assistant != nil {
		resp.Assistant = &dto.MetricAssistant{
			ID:        m.Assistant.ID,
			Name:      m.Assistant.Name,
			ModelType: m.Assistant.ModelType,
		}
	}
	return resp
}

func (h *Handler) assistantParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, shared.BadRequest("invalid_id", "assistant id must be numeric")
	}
	return uint(id), nil
}

func dayQueryParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	day, err := shared.ParseDay(raw)
	if err != nil {
		return nil, shared.BadRequest("invalid_date", name+" must be YYYY-MM-DD")
	}
	return &day, nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Upsert godoc
// @Summary      Log daily metrics for an assistant
// @Description  Creates or partially updates the assistant's row for the given day
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        id  path      int                      true  "Assistant ID"
// @Param        request      body      dto.UpsertMetricRequest  true  "Metric values"
// @Success      201          {object}  dto.MetricResponse
// @Failure      400          {object}  shared.APIError
// @Failure      401          {object}  shared.APIError
// @Failure      404          {object}  shared.APIError
// @Failure      500          {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id}/metrics [post]
func (h *Handler) Upsert(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	assistantID, err := h.assistantParam(c)
	if err != nil {
		return err
	}

	var req dto.UpsertMetricRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Date == "" {
		return shared.BadRequest("missing_date", "date is required")
	}
	day, err := shared.ParseDay(req.Date)
	if err != nil {
		return shared.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	if _, err := h.assistants.GetByID(ctx, assistantID); err != nil {
		return shared.NotFound("assistant_not_found", "assistant not found")
	}

	m, err := h.store.Apply(ctx, assistantID, day, upsertFields(req))
	if err != nil {
		h.logger.Error("failed to upsert metric", "error", err, "assistant_id", assistantID)
		return shared.InternalError("upsert_failed", "failed to save metrics")
	}

	return c.JSON(http.StatusCreated, toResponse(m))
}

// upsertFields collects only the columns the request actually set.
func upsertFields(req dto.UpsertMetricRequest) map[string]any {
	fields := make(map[string]any)
	setF := func(name string, v *float64) {
		if v != nil {
			fields[name] = *v
		}
	}
	setI := func(name string, v *int64) {
		if v != nil {
			fields[name] = *v
		}
	}

	setF("total_call_duration", req.TotalCallDuration)
	setI("outbound_call_count", req.OutboundCallCount)
	setI("web_call_count", req.WebCallCount)
	setI("failed_customer_ended_call_count", req.FailedCustomerEndedCallCount)
	setI("failed_assistant_ended_call_count", req.FailedAssistantEndedCallCount)
	setI("failed_customer_no_answer_call_count", req.FailedCustomerNoAnswerCallCount)
	setI("failed_exceed_duration_call_count", req.FailedExceedDurationCallCount)
	setI("failed_customer_busy_call_count", req.FailedCustomerBusyCallCount)
	setI("failed_silence_timeout_call_count", req.FailedSilenceTimeoutCallCount)
	setI("failed_other_call_count", req.FailedOtherCallCount)
	setF("total_minutes", req.TotalMinutes)
	setF("avg_call_cost", req.AvgCallCost)
	setF("total_cost", req.TotalCost)
	setF("total_spent", req.TotalSpent)
	setI("success_evaluation_true", req.SuccessEvaluationTrue)
	setI("success_evaluation_false", req.SuccessEvaluationFalse)
	setI("success_evaluation_null", req.SuccessEvaluationNull)
	return fields
}

// List godoc
// @Summary      Get metrics for an assistant
// @Tags         metrics
// @Produce      json
// @Param        id  path   int     true   "Assistant ID"
// @Param        start        query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end          query  string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  dto.MetricListResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id}/metrics [get]
func (h *Handler) List(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	assistantID, err := h.assistantParam(c)
	if err != nil {
		return err
	}
	start, err := dayQueryParam(c, "start")
	if err != nil {
		return err
	}
	end, err := dayQueryParam(c, "end")
	if err != nil {
		return err
	}

	metrics, err := h.store.ListByAssistant(c.Request().Context(), assistantID, start, end)
	if err != nil {
		h.logger.Error("failed to list metrics", "error", err, "assistant_id", assistantID)
		return shared.InternalError("list_failed", "failed to list metrics")
	}

	response := make([]dto.MetricResponse, len(metrics))
	for i, m := range metrics {
		response[i] = toResponse(m)
	}
	return c.JSON(http.StatusOK, dto.MetricListResponse{Metrics: response})
}

// RollingAverage godoc
// @Summary      Get rolling averages for an assistant
// @Tags         metrics
// @Produce      json
// @Param        id  path   int  true   "Assistant ID"
// @Param        days         query  int  false  "Window size in days (default 7)"
// @Success      200  {object}  dto.RollingAverageResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id}/metrics/rolling-avg [get]
func (h *Handler) RollingAverage(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	assistantID, err := h.assistantParam(c)
	if err != nil {
		return err
	}
	days := intQueryParam(c, "days", 7)

	rows, err := h.store.RollingAverages(c.Request().Context(), assistantID, days)
	if err != nil {
		h.logger.Error("failed to compute rolling averages", "error", err, "assistant_id", assistantID)
		return shared.InternalError("rolling_avg_failed", "failed to compute rolling averages")
	}

	response := dto.RollingAverageResponse{
		Days:    days,
		Metrics: make([]dto.RollingAverageRow, len(rows)),
	}
	for i, row := range rows {
		response.Metrics[i] = dto.RollingAverageRow{
			MetricResponse:       toResponse(&row.Metric),
			RollingAvgDuration:   row.RollingAvgDuration,
			RollingAvgTotalCalls: row.RollingAvgTotalCalls,
			RollingAvgMinutes:    row.RollingAvgMinutes,
			RollingAvgCallCost:   row.RollingAvgCallCost,
			RollingAvgTotalCost:  row.RollingAvgTotalCost,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Aggregated godoc
// @Summary      Get lifetime aggregated metrics for an assistant
// @Tags         metrics
// @Produce      json
// @Param        id  path  int  true  "Assistant ID"
// @Success      200  {object}  dto.AggregateResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id}/metrics/aggregated [get]
func (h *Handler) Aggregated(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	assistantID, err := h.assistantParam(c)
	if err != nil {
		return err
	}

	agg, err := h.store.Aggregate(c.Request().Context(), assistantID)
	if err != nil {
		h.logger.Error("failed to aggregate metrics", "error", err, "assistant_id", assistantID)
		return shared.InternalError("aggregate_failed", "failed to aggregate metrics")
	}

	return c.JSON(http.StatusOK, dto.AggregateResponse{
		Sum: dto.AggregateSums{
			TotalCallDuration:               agg.SumTotalCallDuration,
			OutboundCallCount:               agg.SumOutboundCallCount,
			WebCallCount:                    agg.SumWebCallCount,
			FailedCustomerEndedCallCount:    agg.SumFailedCustomerEndedCallCount,
			FailedAssistantEndedCallCount:   agg.SumFailedAssistantEndedCallCount,
			FailedCustomerNoAnswerCallCount: agg.SumFailedCustomerNoAnswerCallCount,
			FailedExceedDurationCallCount:   agg.SumFailedExceedDurationCallCount,
			FailedCustomerBusyCallCount:     agg.SumFailedCustomerBusyCallCount,
			FailedSilenceTimeoutCallCount:   agg.SumFailedSilenceTimeoutCallCount,
			FailedOtherCallCount:            agg.SumFailedOtherCallCount,
			TotalMinutes:                    agg.SumTotalMinutes,
			TotalCost:                       agg.SumTotalCost,
			TotalSpent:                      agg.SumTotalSpent,
			SuccessEvaluationTrue:           agg.SumSuccessEvaluationTrue,
			SuccessEvaluationFalse:          agg.SumSuccessEvaluationFalse,
			SuccessEvaluationNull:           agg.SumSuccessEvaluationNull,
		},
		Avg: dto.AggregateAverages{
			AvgCallCost:       agg.AvgCallCost,
			TotalCallDuration: agg.AvgTotalCallDuration,
			TotalMinutes:      agg.AvgTotalMinutes,
			TotalCost:         agg.AvgTotalCost,
			TotalSpent:        agg.AvgTotalSpent,
		},
		Count: agg.Count,
	})
}

// DailyAverages godoc
// @Summary      Get recent daily metrics for an assistant
// @Tags         metrics
// @Produce      json
// @Param        id  path   int  true   "Assistant ID"
// @Param        days         query  int  false  "Trailing window in days (default 30)"
// @Success      200  {object}  dto.MetricListResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id}/metrics/daily-averages [get]
func (h *Handler) DailyAverages(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	assistantID, err := h.assistantParam(c)
	if err != nil {
		return err
	}
	days := intQueryParam(c, "days", 30)

	from := shared.Day(time.Now().AddDate(0, 0, -days))
	metrics, err := h.store.Since(c.Request().Context(), assistantID, from)
	if err != nil {
		h.logger.Error("failed to list daily averages", "error", err, "assistant_id", assistantID)
		return shared.InternalError("daily_averages_failed", "failed to list daily averages")
	}

	response := make([]dto.MetricResponse, len(metrics))
	for i, m := range metrics {
		response[i] = toResponse(m)
	}
	return c.JSON(http.StatusOK, dto.MetricListResponse{Metrics: response})
}

// Analytics godoc
// @Summary      Get bucketed analytics across the caller's assistants
// @Tags         metrics
// @Produce      json
// @Param        assistantId  query  int     false  "Restrict to one assistant"
// @Param        startDate    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        endDate      query  string  false  "End date (YYYY-MM-DD, inclusive)"
// @Param        timeRange    query  string  false  "daily, weekly, monthly or yearly (default daily)"
// @Success      200  {object}  dto.AnalyticsResponse
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /metrics/analytics [get]
func (h *Handler) Analytics(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	query := AnalyticsQuery{}

	if raw := c.QueryParam("assistantId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return shared.BadRequest("invalid_id", "assistantId must be numeric")
		}
		assistantID := uint(id)
		query.AssistantID = &assistantID
	}

	if query.Start, err = dayQueryParam(c, "startDate"); err != nil {
		return err
	}
	if query.End, err = dayQueryParam(c, "endDate"); err != nil {
		return err
	}

	bucket, err := ParseTimeRange(c.QueryParam("timeRange"))
	if err != nil {
		return shared.BadRequest("invalid_time_range", "timeRange must be daily, weekly, monthly or yearly")
	}
	query.Bucket = bucket

	resp, err := h.aggregator.Analytics(c.Request().Context(), userID, query)
	if err != nil {
		h.logger.Error("failed to compute analytics", "error", err, "user_id", userID)
		return shared.InternalError("analytics_failed", "failed to compute analytics")
	}
	return c.JSON(http.StatusOK, resp)
}

// BulkUpdate godoc
// @Summary      Bulk-ingest metrics from the analytics exporter
// @Description  Folds exporter report blocks into per-day metric rows and upserts them
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        request  body      dto.BulkUpdateRequest  true  "Exporter payload"
// @Success      201      {object}  dto.BulkUpdateResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     IngestSecret
// @Router       /metrics/bulk-update [post]
func (h *Handler) BulkUpdate(c echo.Context) error {
	var req dto.BulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	result, err := h.merger.BulkUpsert(c.Request().Context(), req.UpdateAll, req.Metrics)
	if err != nil {
		h.logger.Error("bulk metric update failed", "error", err)
		return shared.InternalError("bulk_update_failed", "failed to store metrics")
	}

	response := dto.BulkUpdateResponse{
		Message:   fmt.Sprintf("Successfully processed %d metrics", result.Processed),
		Processed: result.Processed,
		Results:   make([]dto.MetricResponse, len(result.Records)),
	}
	for i, record := range result.Records {
		response.Results[i] = toResponse(record)
	}
	return c.JSON(http.StatusCreated, response)
}
