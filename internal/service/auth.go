package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/modal-gateway/backend/internal/config"
	"github.com/modal-gateway/backend/internal/store"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrMisconfigured = errors.New("auth config invalid")
)

// AuthService owns credentials and session tokens. Tokens are stateless
// HS256 JWTs; validity is decided purely by signature and the embedded
// expiry, there is no server-side session and no revocation.
type AuthService struct {
	store     *store.Memory
	jwtSecret []byte
	tokenTTL  time.Duration
}

type authClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuthService fails when JWT_SECRET is unset. A default signing
// secret would silently weaken every deployment, so supplying one is
// mandatory.
func NewAuthService(st *store.Memory, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_TTL", ErrMisconfigured)
	}

	return &AuthService{
		store:     st,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// Register stores a salted one-way hash of password under username and
// issues a session token. A taken username fails with ErrConflict.
func (s *AuthService) Register(username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := s.store.CreateUser(username, string(hash)); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return "", ErrConflict
		}
		return "", err
	}

	return s.issueToken(username)
}

// Login verifies the credentials and issues a fresh token. Unknown
// usernames and wrong passwords fail identically with ErrUnauthorized.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.store.GetUser(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	return s.issueToken(username)
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	claims := authClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken returns the username embedded in tokenStr. Expired tokens
// fail with ErrTokenExpired; bad signatures and malformed tokens fail
// with ErrTokenInvalid. The username is not re-checked against the
// store: tokens are self-contained and users cannot be deleted.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrTokenInvalid
	}

	return claims.Username, nil
}
