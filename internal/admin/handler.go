package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/auth"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
	"github.com/callboard/callboard-backend/internal/user"
)

const bcryptCost = 10

// Handler exposes the management surface reserved for admin users:
// full user CRUD and assistant CRUD, including linking assistants to
// their owners.
type Handler struct {
	users      *user.Store
	assistants *assistant.Store
	metrics    assistant.MetricCounter
	logger     *slog.Logger
}

func NewHandler(users *user.Store, assistants *assistant.Store, metrics assistant.MetricCounter, logger *slog.Logger) *Handler {
	return &Handler{
		users:      users,
		assistants: assistants,
		metrics:    metrics,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)

	g.GET("/assistants", h.ListAssistants)
	g.POST("/assistants", h.CreateAssistant)
	g.PUT("/assistants/:id", h.UpdateAssistant)
	g.DELETE("/assistants/:id", h.DeleteAssistant)
	g.POST("/assistants/:id/link", h.LinkAssistant)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, shared.BadRequest("invalid_id", "id must be numeric")
	}
	return uint(id), nil
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	ctx := c.Request().Context()
	users, err := h.users.List(ctx)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		return shared.InternalError("list_failed", "failed to list users")
	}

	response := make([]dto.UserResponse, len(users))
	for i, u := range users {
		response[i] = user.ToResponse(u)
		if count, err := h.assistants.CountByUser(ctx, u.ID); err == nil {
			response[i].AssistantCount = &count
		}
	}
	return c.JSON(http.StatusOK, dto.UserListResponse{Users: response})
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateUserRequest  true  "User details"
// @Success      201      {object}  dto.UserResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      409      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/users [post]
func (h *Handler) CreateUser(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return shared.BadRequest("missing_fields", "name, email and password are required")
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetByEmail(ctx, req.Email); err == nil {
		return shared.Conflict("email_taken", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		return shared.InternalError("create_failed", "failed to create user")
	}

	role := shared.RoleCustomer
	if req.Role != "" {
		role = shared.Role(req.Role)
	}

	u := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := h.users.Create(ctx, u); err != nil {
		h.logger.Error("failed to create user", "error", err, "email", req.Email)
		return shared.InternalError("create_failed", "failed to create user")
	}

	return c.JSON(http.StatusCreated, user.ToResponse(u))
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "User ID"
// @Param        request  body      dto.UpdateUserRequest  true  "Fields to change"
// @Success      200      {object}  dto.UserResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/users/{id} [put]
func (h *Handler) UpdateUser(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return shared.BadRequest("empty_update", "no fields to update")
	}

	u, err := h.users.Update(c.Request().Context(), id, fields)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("user_not_found", "user not found")
		}
		h.logger.Error("failed to update user", "error", err, "user_id", id)
		return shared.InternalError("update_failed", "failed to update user")
	}

	return c.JSON(http.StatusOK, user.ToResponse(u))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Param        id  path  int  true  "User ID"
// @Success      204  "No Content"
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("user_not_found", "user not found")
		}
		h.logger.Error("failed to delete user", "error", err, "user_id", id)
		return shared.InternalError("delete_failed", "failed to delete user")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAssistants godoc
// @Summary      List all assistants
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.AssistantListResponse
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/assistants [get]
func (h *Handler) ListAssistants(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	ctx := c.Request().Context()
	assistants, err := h.assistants.ListAll(ctx)
	if err != nil {
		h.logger.Error("failed to list assistants", "error", err)
		return shared.InternalError("list_failed", "failed to list assistants")
	}

	response := make([]dto.AssistantResponse, len(assistants))
	for i, a := range assistants {
		response[i] = assistant.ToResponse(a)
		if h.metrics != nil {
			if count, err := h.metrics.CountByAssistant(ctx, a.ID); err == nil {
				response[i].MetricCount = &count
			}
		}
	}
	return c.JSON(http.StatusOK, dto.AssistantListResponse{Assistants: response})
}

// CreateAssistant godoc
// @Summary      Create an assistant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateAssistantRequest  true  "Assistant details"
// @Success      201      {object}  dto.AssistantResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/assistants [post]
func (h *Handler) CreateAssistant(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	var req dto.CreateAssistantRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Name == "" || req.ModelType == "" {
		return shared.BadRequest("missing_fields", "name and model_type are required")
	}

	a := &assistant.Assistant{
		Name:      req.Name,
		ModelType: req.ModelType,
		VapiID:    req.VapiID,
		UserID:    req.UserID,
	}
	ctx := c.Request().Context()
	if err := h.assistants.Create(ctx, a); err != nil {
		h.logger.Error("failed to create assistant", "error", err)
		return shared.InternalError("create_failed", "failed to create assistant")
	}

	created, err := h.assistants.GetByID(ctx, a.ID)
	if err != nil {
		created = a
	}
	return c.JSON(http.StatusCreated, assistant.ToResponse(created))
}

// UpdateAssistant godoc
// @Summary      Update an assistant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Assistant ID"
// @Param        request  body      dto.UpdateAssistantRequest  true  "Fields to change"
// @Success      200      {object}  dto.AssistantResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/assistants/{id} [put]
func (h *Handler) UpdateAssistant(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAssistantRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ModelType != nil {
		fields["model_type"] = *req.ModelType
	}
	if req.VapiID != nil {
		fields["vapi_id"] = *req.VapiID
	}
	if req.UserID != nil {
		fields["user_id"] = *req.UserID
	}
	if len(fields) == 0 {
		return shared.BadRequest("empty_update", "no fields to update")
	}

	a, err := h.assistants.Update(c.Request().Context(), id, fields)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("assistant_not_found", "assistant not found")
		}
		h.logger.Error("failed to update assistant", "error", err, "assistant_id", id)
		return shared.InternalError("update_failed", "failed to update assistant")
	}
	return c.JSON(http.StatusOK, assistant.ToResponse(a))
}

// DeleteAssistant godoc
// @Summary      Delete an assistant
// @Tags         admin
// @Param        id  path  int  true  "Assistant ID"
// @Success      204  "No Content"
// @Failure      400  {object}  shared.APIError
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/assistants/{id} [delete]
func (h *Handler) DeleteAssistant(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.assistants.Delete(c.Request().Context(), id); err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("assistant_not_found", "assistant not found")
		}
		h.logger.Error("failed to delete assistant", "error", err, "assistant_id", id)
		return shared.InternalError("delete_failed", "failed to delete assistant")
	}
	return c.NoContent(http.StatusNoContent)
}

// LinkAssistant godoc
// @Summary      Link an assistant to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Assistant ID"
// @Param        request  body      dto.LinkAssistantRequest  true  "Target user"
// @Success      200      {object}  dto.AssistantResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     BearerAuth
// @Router       /admin/assistants/{id}/link [post]
func (h *Handler) LinkAssistant(c echo.Context) error {
	if _, err := auth.RequireAdmin(c); err != nil {
		return err
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.LinkAssistantRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.UserID == 0 {
		return shared.BadRequest("missing_user_id", "user_id is required")
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetByID(ctx, req.UserID); err != nil {
		return shared.NotFound("user_not_found", "user not found")
	}

	a, err := h.assistants.Update(ctx, id, map[string]any{"user_id": req.UserID})
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("assistant_not_found", "assistant not found")
		}
		h.logger.Error("failed to link assistant", "error", err, "assistant_id", id)
		return shared.InternalError("link_failed", "failed to link assistant")
	}
	return c.JSON(http.StatusOK, assistant.ToResponse(a))
}
