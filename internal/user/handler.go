package user

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/callboard/callboard-backend/internal/auth"
	"github.com/callboard/callboard-backend/internal/dto"
	"github.com/callboard/callboard-backend/internal/shared"
)

const bcryptCost = 10

// AssistantCounter reports how many assistants a user owns. Implemented
// by assistant.Store; declared here to keep the dependency one-way.
type AssistantCounter interface {
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type Handler struct {
	store      *Store
	tokens     *auth.TokenManager
	sessions   *auth.SessionRegistry
	assistants AssistantCounter
	logger     *slog.Logger
}

func NewHandler(store *Store, tokens *auth.TokenManager, sessions *auth.SessionRegistry, assistants AssistantCounter, logger *slog.Logger) *Handler {
	return &Handler{
		store:      store,
		tokens:     tokens,
		sessions:   sessions,
		assistants: assistants,
		logger:     logger,
	}
}

// RegisterAuthRoutes wires the public login/registration endpoints.
func (h *Handler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterSessionRoutes wires the endpoints that require a session.
func (h *Handler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.POST("/logout", h.Logout)
}

func (h *Handler) RegisterUserRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func ToResponse(u *User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) issueSession(ctx context.Context, u *User) (string, error) {
	token, claims, err := h.tokens.Mint(u.ID, u.Email, u.Role)
	if err != nil {
		return "", err
	}
	if h.sessions != nil {
		if err := h.sessions.Register(ctx, claims.ID, u.ID, h.tokens.TTL()); err != nil {
			return "", err
		}
	}
	return token, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a customer account and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RegisterRequest  true  "Account details"
// @Success      201      {object}  dto.AuthResponse
// @Failure      400      {object}  shared.APIError
// @Failure      409      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return shared.BadRequest("missing_fields", "name, email and password are required")
	}

	ctx := c.Request().Context()
	if _, err := h.store.GetByEmail(ctx, req.Email); err == nil {
		return shared.Conflict("email_taken", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		return shared.InternalError("register_failed", "failed to create account")
	}

	u := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     shared.RoleCustomer,
	}
	if err := h.store.Create(ctx, u); err != nil {
		h.logger.Error("failed to create user", "error", err, "email", req.Email)
		return shared.InternalError("register_failed", "failed to create account")
	}

	token, err := h.issueSession(ctx, u)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err, "user_id", u.ID)
		return shared.InternalError("register_failed", "failed to create session")
	}

	return c.JSON(http.StatusCreated, dto.AuthResponse{User: ToResponse(u), Token: token})
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "Credentials"
// @Success      200      {object}  dto.AuthResponse
// @Failure      400      {object}  shared.APIError
// @Failure      401      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	ctx := c.Request().Context()
	u, err := h.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return shared.Unauthorized("invalid_credentials", "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return shared.Unauthorized("invalid_credentials", "invalid email or password")
	}

	token, err := h.issueSession(ctx, u)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err, "user_id", u.ID)
		return shared.InternalError("login_failed", "failed to create session")
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{User: ToResponse(u), Token: token})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current login session
// @Tags         auth
// @Success      204  "No Content"
// @Failure      401  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return shared.Unauthorized("auth_required", "authentication required")
	}

	if h.sessions != nil {
		if err := h.sessions.Revoke(c.Request().Context(), claims.ID); err != nil {
			h.logger.Error("failed to revoke session", "error", err, "user_id", claims.UserID)
			return shared.InternalError("logout_failed", "failed to revoke session")
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return shared.Unauthorized("auth_required", "authentication required")
	}

	u, err := h.store.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return shared.NotFound("user_not_found", "user not found")
	}

	return c.JSON(http.StatusOK, ToResponse(u))
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      401  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /users [get]
func (h *Handler) List(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	ctx := c.Request().Context()
	users, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		return shared.InternalError("list_failed", "failed to list users")
	}

	response := make([]dto.UserResponse, len(users))
	for i, u := range users {
		response[i] = ToResponse(u)
		if h.assistants != nil {
			if count, err := h.assistants.CountByUser(ctx, u.ID); err == nil {
				response[i].AssistantCount = &count
			}
		}
	}

	return c.JSON(http.StatusOK, dto.UserListResponse{Users: response})
}

// Get godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return shared.BadRequest("invalid_id", "user id must be numeric")
	}

	ctx := c.Request().Context()
	u, err := h.store.GetByID(ctx, uint(id))
	if err != nil {
		return shared.NotFound("user_not_found", "user not found")
	}

	resp := ToResponse(u)
	if h.assistants != nil {
		if count, err := h.assistants.CountByUser(ctx, u.ID); err == nil {
			resp.AssistantCount = &count
		}
	}

	return c.JSON(http.StatusOK, resp)
}
