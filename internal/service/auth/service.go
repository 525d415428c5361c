package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medicore/hms-api/internal/cache"
	"github.com/medicore/hms-api/internal/email"
	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	"github.com/medicore/hms-api/pkg/auth"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/security"
)

const blacklistPrefix = "token_blacklist:"

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	cache    cache.Cache
	tokenTTL time.Duration
}

func NewService(
	userRepo repository.UserRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	emailSvc email.Service,
	cacheSvc cache.Cache,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
		cache:    cacheSvc,
		tokenTTL: tokenTTL,
	}
}

// Register creates a patient account. Doctor accounts are created by
// admins through the doctor service.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.BadRequest("passwords do not match", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.BadRequest(err.Error(), err)
		}
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RolePatient,
		Name:         req.Name,
		ContactInfo:  req.ContactInfo,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendWelcome(ctx, user.ContactInfo, user.Name); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("welcome email failed")
		}
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Failures are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials", nil)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("account is inactive", nil)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}
	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("account is inactive", nil)
	}
	return s.issueTokens(user)
}

// Logout revokes an access token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Set(ctx, blacklistPrefix+token, true, s.tokenTTL); err != nil {
		return apperrors.Internal("failed to revoke token", err)
	}
	return nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}
	if s.cache != nil {
		revoked, err := s.cache.Exists(ctx, blacklistPrefix+token)
		if err != nil {
			log.Warn().Err(err).Msg("token revocation check failed")
		} else if revoked {
			return nil, apperrors.Unauthorized("token has been revoked", nil)
		}
	}
	return claims, nil
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.Get(ctx, userID)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Name:         "Administrator",
		ContactInfo:  "",
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// Lost a race against another instance doing the same bootstrap.
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return err
	}
	log.Info().Str("username", username).Msg("bootstrap admin created")
	return nil
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}
	return &model.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}
