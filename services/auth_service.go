package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// AuthService handles sign-up, login and the current-user lookup.
type AuthService struct {
	DB            *gorm.DB
	Users         *repository.UserRepository
	Subscriptions *SubscriptionService
	Log           *zap.Logger

	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	users *repository.UserRepository,
	subs *SubscriptionService,
	secret string,
	ttl time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{DB: db, Users: users, Subscriptions: subs, Log: log, jwtSecret: secret, jwtTTL: ttl}
}

type RegisterInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name" binding:"required"`
	Phone    string      `json:"phone"`
	Role     entity.Role `json:"role" binding:"required"`
	Location string      `json:"location"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and its FREE subscription together.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, Validation("invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, Validation("password must be at least %d characters", minPasswordLength)
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("name is required")
	}

	count, err := s.Users.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Phone:    strings.TrimSpace(in.Phone),
		Location: strings.TrimSpace(in.Location),
		Role:     in.Role,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Users.Create(tx, user); err != nil {
			return err
		}
		sub, err := s.Subscriptions.Provision(tx, user.ID)
		if err != nil {
			return err
		}
		user.Subscription = sub
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.Log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login checks the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *entity.User, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
