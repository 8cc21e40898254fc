package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/te6695/LibraryWebAPI/internals/apperrors"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
	logger "github.com/te6695/LibraryWebAPI/loggers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const TokenLifetime = 7 * 24 * time.Hour

// AccessClaims are the claims carried by every issued token.
type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthResult struct {
	Username string
	Token    string
	Role     string
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore // nil disables revocation
	secret   []byte
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, secret []byte) *AuthService {
	return &AuthService{users: users, sessions: sessions, secret: secret}
}

// Register stores a new user with a bcrypt password hash and the default
// User role. Usernames are unique with exact, case-sensitive matching.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// the unique index closes the lookup/insert race; anything else is a
		// storage failure and must not masquerade as a taken username
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and issues a signed token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, jti, err := s.generateToken(user)
	if err != nil {
		logger.Logger.Error("failed to sign token: ", err)
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, jti, user.Id, TokenLifetime); err != nil {
			logger.Logger.Error("failed to save session in redis: ", err)
			return nil, err
		}
	}

	return &AuthResult{Username: user.Username, Token: token, Role: user.Role}, nil
}

// Logout revokes the session behind the given token id.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if s.sessions == nil || jti == "" {
		return nil
	}
	return s.sessions.Delete(ctx, jti)
}

func (s *AuthService) generateToken(user *models.User) (string, string, error) {
	jti := uuid.New().String()
	claims := AccessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.Id), 10),
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenString string, secret []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
