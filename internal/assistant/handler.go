package assistant

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callboard/callboard-backend/internal/auth"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
	"github.com/callboard/callboard-backend/internal/user"
)

// MetricCounter reports how many metric rows exist for an assistant.
// Implemented by metric.Store; declared here to keep the dependency
// one-way.
type MetricCounter interface {
	CountByAssistant(ctx context.Context, assistantID uint) (int64, error)
}

type Handler struct {
	store   *Store
	metrics MetricCounter
	logger  *slog.Logger
}

func NewHandler(store *Store, metrics MetricCounter, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

func ToResponse(a *Assistant) dto.AssistantResponse {
	resp := dto.AssistantResponse{
		ID:        a.ID,
		Name:      a.Name,
		ModelType: a.ModelType,
		VapiID:    a.VapiID,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.User != nil {
		u := user.ToResponse(a.User)
		resp.User = &u
	}
	return resp
}

func (h *Handler) withMetricCount(ctx context.Context, resp *dto.AssistantResponse) {
	if h.metrics == nil {
		return
	}
	if count, err := h.metrics.CountByAssistant(ctx, resp.ID); err == nil {
		resp.MetricCount = &count
	}
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, shared.BadRequest("invalid_id", name+" must be numeric")
	}
	return uint(id), nil
}

// Create godoc
// @Summary      Create an assistant
// @Description  Registers a new assistant owned by the caller
// @Tags         assistants
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateAssistantRequest  true  "Assistant details"
// @Success      201      {object}  dto.AssistantResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants [post]
func (h *Handler) Create(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.CreateAssistantRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Name == "" || req.ModelType == "" {
		return shared.BadRequest("missing_fields", "name and model_type are required")
	}

	a := &Assistant{
		Name:      req.Name,
		ModelType: req.ModelType,
		VapiID:    req.VapiID,
		UserID:    &userID,
	}
	if err := h.store.Create(c.Request().Context(), a); err != nil {
		h.logger.Error("failed to create assistant", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "failed to create assistant")
	}

	created, err := h.store.GetByID(c.Request().Context(), a.ID)
	if err != nil {
		created = a
	}
	return c.JSON(http.StatusCreated, ToResponse(created))
}

// List godoc
// @Summary      List the caller's assistants
// @Tags         assistants
// @Produce      json
// @Success      200  {object}  dto.AssistantListResponse
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants [get]
func (h *Handler) List(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	assistants, err := h.store.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list assistants", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "failed to list assistants")
	}

	response := make([]dto.AssistantResponse, len(assistants))
	for i, a := range assistants {
		response[i] = ToResponse(a)
		h.withMetricCount(ctx, &response[i])
	}

	return c.JSON(http.StatusOK, dto.AssistantListResponse{Assistants: response})
}

// Get godoc
// @Summary      Get assistant by ID
// @Tags         assistants
// @Produce      json
// @Param        id  path  int  true  "Assistant ID"
// @Success      200  {object}  dto.AssistantResponse
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	a, err := h.store.GetByID(ctx, id)
	if err != nil {
		return shared.NotFound("assistant_not_found", "assistant not found")
	}

	resp := ToResponse(a)
	h.withMetricCount(ctx, &resp)
	return c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete an assistant
// @Description  Removes an assistant owned by the caller
// @Tags         assistants
// @Param        id  path  int  true  "Assistant ID"
// @Success      204  "No Content"
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /assistants/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	a, err := h.store.GetByID(ctx, id)
	if err != nil {
		return shared.NotFound("assistant_not_found", "assistant not found")
	}
	if a.UserID == nil || *a.UserID != userID {
		return shared.Forbidden("not_owner", "assistant belongs to another user")
	}

	if err := h.store.Delete(ctx, id); err != nil {
		h.logger.Error("failed to delete assistant", "error", err, "assistant_id", id)
		return shared.InternalError("delete_failed", "failed to delete assistant")
	}

	return c.NoContent(http.StatusNoContent)
}
