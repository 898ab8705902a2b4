package service

import (
	"context"

	"donmario/config"
	"donmario/infras/jwt"
	"donmario/infras/otel"
	"donmario/internal/domains/auth/model/dto"
	"donmario/shared/constant"
	"donmario/shared/failure"
	"donmario/shared/password"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Login authenticates the configured admin account. There is no user table; the
// admin username and bcrypt password hash come from configuration.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Username != s.cfg.Admin.Username {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, s.cfg.Admin.PasswordHash); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(req.Username, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
