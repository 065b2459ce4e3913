package service

import (
	"context"
	"time"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
	"github.com/ikkim/shop-backend/pkg/util"
)

const kindUser = "user"

// TokenRevoker keeps track of tokens invalidated before they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Session is the result of a successful login
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type UserService interface {
	GetAll(ctx context.Context, params ListParams) ([]model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	// Create registers a user; password is hashed before it is stored
	Create(ctx context.Context, user *model.User, password string) (uint, error)
	// Update keeps the stored password hash when password is empty
	Update(ctx context.Context, user *model.User, password string) (uint, error)
	Delete(ctx context.Context, id uint) error

	Login(ctx context.Context, phone, password string) (*Session, error)
	// Authenticate validates a token and checks it has not been revoked
	Authenticate(ctx context.Context, token string) (*util.Claims, error)
	// Ping reports whether token is a live token of the user with userID
	Ping(ctx context.Context, userID uint, token string) error
	Logout(ctx context.Context, token string) error
}

type userService struct {
	repo        repository.UserRepository
	revoker     TokenRevoker // nil when revocation is disabled
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewUserService(
	repo repository.UserRepository,
	revoker TokenRevoker,
	jwtSecret string,
	tokenExpiry time.Duration,
) UserService {
	return &userService{
		repo:        repo,
		revoker:     revoker,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *userService) GetAll(ctx context.Context, params ListParams) ([]model.User, error) {
	return list[model.User](ctx, s.repo, "name", params)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return getByID[model.User](ctx, s.repo, kindUser, id)
}

func (s *userService) Create(ctx context.Context, user *model.User, password string) (uint, error) {
	logger.Info("Attempting user registration", logger.Fields{
		"phone": user.Phone,
	})

	fields, err := checkUnique[model.User, *model.User](ctx, s.repo, kindUser, "phone", user.Phone, 0)
	if err != nil {
		return 0, err
	}
	if password == "" {
		fields = mergeFields(fields, map[string]string{"password": "is required"})
	}
	if fields != nil {
		return 0, newNotCreated(kindUser, fields)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, logger.Fields{"phone": user.Phone})
		return 0, err
	}
	user.PasswordHash = hash
	if user.Access == "" {
		user.Access = model.AccessUser
	}

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		logger.Error("Failed to create user in database", err, logger.Fields{"phone": user.Phone})
		return 0, wrapCreateError(kindUser, err)
	}

	logger.Info("User registered successfully", logger.Fields{
		"user_id": id,
		"access":  user.Access,
	})
	return id, nil
}

func (s *userService) Update(ctx context.Context, user *model.User, password string) (uint, error) {
	existing, err := s.GetByID(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	fields, err := checkUnique[model.User, *model.User](ctx, s.repo, kindUser, "phone", user.Phone, user.ID)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindUser, fields)
	}

	if password != "" {
		hash, err := util.HashPassword(password)
		if err != nil {
			logger.Error("Failed to hash password", err, logger.Fields{"user_id": user.ID})
			return 0, err
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = existing.PasswordHash
	}
	if user.Access == "" {
		user.Access = existing.Access
	}

	id, err := s.repo.Update(ctx, user)
	if err != nil {
		logger.Error("Failed to update user", err, logger.Fields{"user_id": user.ID})
		return 0, wrapUpdateError(kindUser, user.ID, err)
	}
	return id, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.User](ctx, s.repo, kindUser, id)
}

func (s *userService) Login(ctx context.Context, phone, password string) (*Session, error) {
	logger.Info("Login attempt", logger.Fields{"phone": phone})

	user, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		logger.Error("Failed to find user", err, logger.Fields{"phone": phone})
		return nil, err
	}
	if user == nil {
		logger.Warn("Login failed: user not found", logger.Fields{"phone": phone})
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", logger.Fields{"user_id": user.ID})
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := util.GenerateToken(user.ID, user.Phone, string(user.Access), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, logger.Fields{"user_id": user.ID})
		return nil, err
	}

	logger.Info("User logged in successfully", logger.Fields{"user_id": user.ID})
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, token)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, util.ErrRevokedToken
		}
	}
	return claims, nil
}

func (s *userService) Ping(ctx context.Context, userID uint, token string) error {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if claims.UserID != userID {
		logger.Warn("Token presented for another user", logger.Fields{
			"user_id":  userID,
			"token_id": claims.UserID,
		})
		return util.ErrInvalidToken
	}
	return nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return ErrRevocationDisabled
	}
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if err := s.revoker.Revoke(ctx, token, claims.TokenTTL()); err != nil {
		return err
	}
	logger.Info("User logged out", logger.Fields{"user_id": claims.UserID})
	return nil
}
