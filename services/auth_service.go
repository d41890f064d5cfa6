package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService implements registration, login and server-side sessions.
// The browser cookie carries an HS256-signed token whose subject is a
// session row id; the principal itself is loaded fresh from the store on
// every request, so role changes apply from the next request onward.
type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	secret string,
	ttl time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

// Register hashes the password and persists a new user with the default
// role. A duplicate email surfaces as ErrDuplicateEmail whether caught by
// the pre-check or by the unique constraint at commit time.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("id", user.ID.String()), zap.String("email", user.Email))
	return user, nil
}

// Login verifies the credentials against the stored bcrypt hash. Both an
// unknown email and a wrong password return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession creates a session row for the user and returns the signed
// cookie token referencing it.
func (s *AuthService) IssueSession(ctx context.Context, user *models.User) (string, error) {
	session := models.NewSession(user.ID, s.ttl)
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   session.ID.String(),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Debug("session issued", zap.String("session_id", session.ID.String()))
	return token, nil
}

// ResolvePrincipal maps a cookie token to the current user. Any invalid,
// expired or revoked token yields (nil, nil): the request simply proceeds
// anonymously. The user record is always re-read so the capability set is
// derived from the stored role at check time, not at login time.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*models.User, error) {
	sessionID, ok := s.parseSessionID(token)
	if !ok {
		return nil, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired() {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// User deleted while the session row still existed.
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, nil
	}
	return user, nil
}

// Logout revokes the session referenced by the token. Unknown or already
// revoked tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, ok := s.parseSessionID(token)
	if !ok {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) parseSessionID(token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, false
	}
	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return sessionID, true
}
