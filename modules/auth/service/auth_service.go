package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"wedding-rsvp/core/cache"
	"wedding-rsvp/core/config"
	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/errors"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/core/utils"
	"wedding-rsvp/modules/auth/dto"

	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthService authenticates the single admin account configured through the
// environment. There is no user table.
type AuthService struct {
	cache cache.ICache
}

func NewAuthService(cache cache.ICache) *AuthService {
	return &AuthService{cache: cache}
}

func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(requestData.Username)
	if username == "" || requestData.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "username and password are required", nil)
	}

	loginKey := constants.RedisKeyLoginAttempt + strings.ToLower(username)

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if blocked {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire:Error", "error", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrTooManyRequests, "too many failed attempts, try again later", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok || cfg.AdminPasswordHash == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "admin credentials not configured", nil)
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(requestData.Password))
	if !usernameMatch || passwordErr != nil {
		if errIncr := service.cache.IncrementLoginAttempt(ctx, loginKey); errIncr != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error", "error", errIncr)
		}
		logger.Warn("AuthService:Login:Failed", "username", username)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid username or password", nil)
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Warn("AuthService:Login:ResetAttempts:Error", "error", errDel)
	}

	token, err := utils.GenerateToken(username, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Info("AuthService:Login:Success", "username", username)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
	}, nil
}
