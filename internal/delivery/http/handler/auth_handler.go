package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"
	ucauth "mentorlink/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	public.Post("/register", h.Register)
	public.Post("/login", h.Login)
	public.Post("/refresh", h.Refresh)

	protected.Get("/me", h.Me)
	protected.Post("/logout", h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	res, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusCreated, "user registered successfully",
		dto.NewAuthResponse(res.User, nil, res.AccessToken, res.RefreshToken))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "login successful",
		dto.NewAuthResponse(res.User, res.Profile, res.AccessToken, res.RefreshToken))
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}

	res, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "user data retrieved successfully",
		dto.NewAuthResponse(res.User, res.Profile, "", ""))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized, no token", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	// Tokens are stateless; logout is a client-side discard.
	return response.Success(c, fiber.StatusOK, "logged out successfully", nil)
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusBadRequest, "user already exists with this email", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "refresh token expired", nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "user not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "invalid refresh token", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
