package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements login, registration and session resolution.
type AuthService struct {
	users     ports.UserRepository
	denylist  ports.TokenDenylist
	activity  ports.ActivityPublisher
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewAuthService wires an AuthService. denylist and activity may be nil.
func NewAuthService(
	users ports.UserRepository,
	denylist ports.TokenDenylist,
	activity ports.ActivityPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		denylist:  denylist,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthPayload, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &ports.AuthPayload{User: user.Projection(), Token: token}, nil
}

// Register creates a viewer account. The email check runs before the
// password confirmation check.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthPayload, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalid("Password must be at least 6 characters")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleViewer,
		Status:       domain.UserActive,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityUser,
		EntityID: created.ID,
		Action:   "registered",
		ActorID:  created.ID,
		Summary:  fmt.Sprintf("%s registered", created.Name),
	})
	return &ports.AuthPayload{User: created.Projection(), Token: token}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.AuthUser, error) {
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	claims, err := ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("denylist check failed, accepting token")
		} else if revoked {
			return nil, domain.ErrNotAuthenticated
		}
	}

	sub, _ := claims["sub"].(string)
	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}

	au := user.Projection()
	return &au, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor ports.Actor, in ports.ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.ErrIncorrectPassword
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.Invalid("Password must be at least 6 characters")
	}

	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// Logout revokes token when a denylist is configured. It never fails:
// the caller has already discarded its local session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	ttl := s.tokenTTL
	if claims, err := ParseToken(token, s.jwtSecret); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ttl = time.Until(exp.Time)
		}
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, token, ttl); err != nil {
		s.log.Warn().Err(err).Msg("failed to revoke token")
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(token, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
