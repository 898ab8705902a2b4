package middleware

import (
	"context"
	"errors"
	"net/http"

	"donmario/infras/jwt"
	"donmario/infras/otel"
	"donmario/shared/constant"
	"donmario/shared/failure"
	"donmario/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth validates JWT access tokens and guards admin-only routes.
type Auth interface {
	Verify(http.Handler) http.Handler
	Optional(http.Handler) http.Handler
	RequireAdmin(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Verify rejects requests without a valid access token.
func (m *authImpl) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized("missing authorization header")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		claims, err := m.parseHeader(authHeader)
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(contextWithClaims(ctx, claims)))
	})
}

// Optional attaches claims to the context when a valid token is present and
// lets the request through anonymously otherwise.
func (m *authImpl) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(writer, request)

			return
		}

		claims, err := m.parseHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring invalid authorization header on optional route")

			next.ServeHTTP(writer, request)

			return
		}

		next.ServeHTTP(writer, request.WithContext(contextWithClaims(ctx, claims)))
	})
}

// RequireAdmin checks the role claim set by Verify.
func (m *authImpl) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		role, _ := request.Context().Value(constant.ContextKeyUserRole).(string)

		if role != constant.RoleAdmin {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (m *authImpl) parseHeader(authHeader string) (*jwt.Claims, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, failure.Unauthorized("invalid authorization header format") // nolint:wrapcheck
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "token has expired"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "invalid token claims"
		default:
			message = "invalid token"
		}

		return nil, failure.Unauthorized(message) // nolint:wrapcheck
	}

	return claims, nil
}

func contextWithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx
}
