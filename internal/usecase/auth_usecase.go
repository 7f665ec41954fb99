package usecase

import (
	"context"
	"errors"

	"mentorlink/internal/domain/profile"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/pkg/jwt"
	ucauth "mentorlink/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthResult struct {
	User         user.User
	Profile      *profile.Profile
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	users    user.Repository
	profiles profile.Repository
	jwt      jwt.Service
	logger   *zap.Logger
}

func NewAuthUsecase(users user.Repository, profiles profile.Repository, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authSvc:  ucauth.NewService(users),
		users:    users,
		profiles: profiles,
		jwt:      jwtSvc,
		logger:   logger,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	res, err := u.withTokens(usr)
	if err != nil {
		return AuthResult{}, err
	}

	u.logger.Info("user registered", zap.String("user_id", usr.ID.String()))
	return res, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	res, err := u.withTokens(usr)
	if err != nil {
		return AuthResult{}, err
	}
	res.Profile = u.profileFor(ctx, usr.ID)
	return res, nil
}

func (u *Auth) Me(ctx context.Context, userID uuid.UUID) (AuthResult, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthResult{}, user.ErrNotFound
		}
		return AuthResult{}, ErrInternal
	}

	return AuthResult{User: usr, Profile: u.profileFor(ctx, userID)}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) withTokens(usr user.User) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}

func (u *Auth) profileFor(ctx context.Context, userID uuid.UUID) *profile.Profile {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return &p
}
