package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	userRepository           repository.UserRepository
	tokenRepository          repository.TokenRepository
	subscriptionService      *SubscriptionService
	emailService             *EmailService
	jwtSecret                string
	isProduction             bool
	jwtExpiry                time.Duration
	tokenEmailVerifyExpiry   time.Duration
	tokenPasswordResetExpiry time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	subscriptionService *SubscriptionService,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	tokenEmailVerifyExpiry time.Duration,
	tokenPasswordResetExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:           userRepository,
		tokenRepository:          tokenRepository,
		subscriptionService:      subscriptionService,
		emailService:             emailService,
		jwtSecret:                jwtSecret,
		isProduction:             isProduction,
		jwtExpiry:                jwtExpiry,
		tokenEmailVerifyExpiry:   tokenEmailVerifyExpiry,
		tokenPasswordResetExpiry: tokenPasswordResetExpiry,
	}
}

// Register creates a new account with a free subscription and sends the
// email verification link.
func (s *AuthService) Register(username, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, ErrUsernameRequired
	}

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.subscriptionService.CreateFreeSubscription(user.ID)
	if err != nil {
		slog.Warn("failed to create free subscription", "error", err, "user_id", user.ID)
		// Don't fail user creation
	}

	err = s.sendVerification(user)
	if err != nil {
		slog.Warn("failed to send verification email", "error", err, "user_id", user.ID)
	}

	slog.Info("new user registered", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	if !user.IsVerified() {
		return nil, fmt.Errorf("email not verified: %w", ErrEmailNotVerified)
	}

	return user, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(token string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if tokenModel.Type != model.TokenTypeEmailVerify {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsVerified() {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			return nil, fmt.Errorf("failed to verify email: %w", err)
		}
	}

	slog.Info("email verified", "user_id", user.ID)
	return user, nil
}

// SendPasswordReset issues a reset token. Unknown addresses report success
// to prevent enumeration.
func (s *AuthService) SendPasswordReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		slog.Info("password reset requested for non-existent email", "email", email)
		return nil
	}

	err = s.tokenRepository.DeleteByUserAndType(user.ID, model.TokenTypePasswordReset)
	if err != nil {
		slog.Warn("failed to delete old reset tokens", "error", err, "user_id", user.ID)
	}

	resetToken, err := s.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypePasswordReset,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(s.tokenPasswordResetExpiry),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	err = s.emailService.SendPasswordResetEmail(user.Email, resetToken, user.Username)
	if err != nil {
		slog.Error("failed to send password reset email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("password reset link sent", "email", user.Email)
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	if tokenModel.Type != model.TokenTypePasswordReset {
		return ErrInvalidToken
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}

func (s *AuthService) ByID(userID string) (*model.User, error) {
	return s.userRepository.ByID(userID)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) JWTExpiry() time.Duration {
	return s.jwtExpiry
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) sendVerification(user *model.User) error {
	err := s.tokenRepository.DeleteByUserAndType(user.ID, model.TokenTypeEmailVerify)
	if err != nil {
		slog.Warn("failed to delete old verification tokens", "error", err, "user_id", user.ID)
	}

	verificationToken, err := s.GenerateToken()
	if err != nil {
		return err
	}

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeEmailVerify,
		Token:     verificationToken,
		ExpiresAt: time.Now().Add(s.tokenEmailVerifyExpiry),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, verificationToken, user.Username)
}
