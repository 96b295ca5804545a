package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/database"
	"github.com/thenoetrevino/scope/internal/remote"
)

// Token claims.
const (
	Issuer   = "project-scope"
	Audience = "project-scope-client"
)

// DefaultTokenTTL is the lifetime of issued tokens.
const DefaultTokenTTL = 24 * time.Hour

const userKey = "user"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("invalid authorization header")
	errInvalidCredentials   = errors.New("invalid username or password")
)

// Auth issues and validates HS256 bearer tokens and hashes passwords.
type Auth struct {
	secret []byte
	ttl    time.Duration
	cost   int
	parser *jwt.Parser
	nowFn  func() time.Time
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

func WithTokenTTL(d time.Duration) AuthOption {
	return func(a *Auth) {
		if d > 0 {
			a.ttl = d
		}
	}
}

// WithBcryptCost sets the password hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(a *Auth) { a.cost = cost }
}

func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *Auth) { a.nowFn = now }
}

// NewAuth creates an Auth signing with secret.
func NewAuth(secret string, opts ...AuthOption) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	a := &Auth{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		cost:   bcrypt.DefaultCost,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation()),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Issue signs a token for u.
func (a *Auth) Issue(u database.User) (string, error) {
	now := a.nowFn()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       strconv.FormatInt(u.ID, 10),
		"username":  u.Username,
		"full_name": u.FullName,
		"iss":       Issuer,
		"aud":       Audience,
		"iat":       now.Unix(),
		"exp":       now.Add(a.ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

// UserIDFromAuthHeader validates a "Bearer <token>" header and returns the
// user ID it was issued for.
func (a *Auth) UserIDFromAuthHeader(h string) (int64, error) {
	if h == "" {
		return 0, errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return 0, errBadAuthorization
	}

	parsed, err := a.parser.Parse(strings.TrimSpace(token), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	// Time claims are checked against nowFn, never the wall clock.
	now := a.nowFn().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return 0, errors.New("token expired")
	}
	if !claims.VerifyIssuedAt(now, false) || !claims.VerifyNotBefore(now, false) {
		return 0, errors.New("token not valid yet")
	}
	if !claims.VerifyIssuer(Issuer, true) {
		return 0, errors.New("invalid issuer")
	}
	if !claims.VerifyAudience(Audience, true) {
		return 0, errors.New("invalid audience")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errors.New("missing sub")
	}
	return id, nil
}

// HashPassword returns the bcrypt hash of password.
func (a *Auth) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RegisterUser creates an account with a hashed password.
func (s *Server) RegisterUser(ctx context.Context, username, password, email, fullName string) (database.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return database.User{}, apperr.Validation("username", "username is required")
	}
	if len(password) < 6 {
		return database.User{}, apperr.Validation("password", "password must be at least 6 characters")
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return database.User{}, err
	}
	return s.repo.CreateUser(ctx, database.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
}

// requireAuth rejects requests without a valid token for an existing user.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := s.auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return apperr.Wrap(apperr.KindAuth, err, "access denied: "+err.Error())
		}
		u, err := s.repo.GetUser(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.New(apperr.KindAuth, "access denied: user not found")
			}
			return err
		}
		c.Set(userKey, u)
		return next(c)
	}
}

func userToWire(u database.User) remote.User {
	return remote.User{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}

func (s *Server) login(c echo.Context) error {
	var req remote.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("username", "username and password are required")
	}

	u, err := s.repo.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Wrap(apperr.KindAuth, errInvalidCredentials, errInvalidCredentials.Error())
		}
		return err
	}
	if !checkPassword(u.PasswordHash, req.Password) {
		return apperr.Wrap(apperr.KindAuth, errInvalidCredentials, errInvalidCredentials.Error())
	}

	token, err := s.auth.Issue(u)
	if err != nil {
		return err
	}
	s.logger.Info("user logged in", "username", u.Username)
	return c.JSON(http.StatusOK, remote.LoginResponse{Token: token, User: userToWire(u)})
}

func (s *Server) verify(c echo.Context) error {
	u, _ := c.Get(userKey).(database.User)
	return c.JSON(http.StatusOK, map[string]remote.User{"user": userToWire(u)})
}
