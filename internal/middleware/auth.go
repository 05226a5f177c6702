package middleware

import (
	stderrors "errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"arcadestore/internal/auth"
	"arcadestore/internal/errors"
	"arcadestore/internal/model"
	"arcadestore/internal/repository"
)

const (
	// userIDContextKey holds the verified token subject between the token
	// gate and account resolution.
	userIDContextKey = "userID"
	// accountContextKey holds the resolved account for handlers.
	accountContextKey = "account"
)

var errTokenInvalid = stderrors.New("token invalid")

// AuthMiddleware resolves a request's caller from a bearer token and
// enforces role-based gating.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewAuthMiddleware creates the middleware with its collaborators.
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, userRepo: userRepo}
}

// unauthenticated is the single rejection used for every identity failure:
// missing header, malformed token, bad signature, expiry, vanished account.
// Callers must not be able to distinguish the subtypes.
func unauthenticated(c echo.Context) error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "invalid or missing token",
		Code:  "UNAUTHENTICATED",
	})
}

// VerifyToken extracts the bearer token from the Authorization header and
// verifies it against the token service. On success the embedded user id is
// stored on the context for AttachAccount.
func (m *AuthMiddleware) VerifyToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  userIDContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			userID, ok := m.jwtService.Verify(tokenString)
			if !ok {
				return nil, errTokenInvalid
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated(c)
		},
	})
}

// AttachAccount resolves the verified user id against storage and attaches
// the account (password excluded from serialization) to the context. A token
// for an account deleted after issuance is rejected as unauthenticated.
func (m *AuthMiddleware) AttachAccount() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(userIDContextKey).(string)
			if !ok || !model.IsValidID(userID) {
				return unauthenticated(c)
			}

			user, err := m.userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(accountContextKey, user)
			return next(c)
		}
	}
}

// Authorize rejects with a forbidden error unless the attached account's
// role is in the allowed set. It must run after VerifyToken and
// AttachAccount.
func (m *AuthMiddleware) Authorize(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := AccountFromContext(c)
			if !ok {
				return unauthenticated(c)
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "access denied: insufficient permissions",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// AccountFromContext returns the account attached by AttachAccount.
func AccountFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(accountContextKey).(*model.User)
	return user, ok
}
