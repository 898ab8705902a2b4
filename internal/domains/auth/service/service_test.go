package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"donmario/config"
	"donmario/infras/jwt"
	jwtMocks "donmario/infras/jwt/mocks"
	"donmario/infras/otel/mocks"
	"donmario/internal/domains/auth/model/dto"
	"donmario/internal/domains/auth/service"
	"donmario/shared/constant"
	"donmario/shared/failure"
	"donmario/shared/password"
)

func newTestConfig(t *testing.T) *config.Config {
	hash, err := password.Hash("adminpass")
	assert.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.PasswordHash = hash

	return cfg
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(newTestConfig(t), mockOtel, mockJWT)

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "admin", Password: "adminpass"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair("admin", constant.RoleAdmin).
					Return(tokenPair, nil)
			},
		},
		{
			name:      "unknown username",
			req:       dto.LoginRequest{Username: "intruder", Password: "adminpass"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "wrong password",
			req:       dto.LoginRequest{Username: "admin", Password: "wrongpass"},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
				assert.Contains(t, err.Error(), "invalid username or password")

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			assert.Equal(t, int64(900), res.ExpiresIn)
		})
	}
}

func TestAuthService_LoginTokenGenerationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(newTestConfig(t), mockOtel, mockJWT)

	mockJWT.EXPECT().
		GenerateTokenPair("admin", constant.RoleAdmin).
		Return(nil, errors.New("signing error"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "adminpass"})

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(newTestConfig(t), mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "old-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("old-refresh-token").
					Return(&jwt.TokenPair{
						AccessToken:  "new-access-token",
						RefreshToken: "new-refresh-token",
						TokenType:    "Bearer",
						ExpiresIn:    900,
					}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "bogus"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("bogus").
					Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "new-access-token", res.AccessToken)
			assert.Equal(t, "new-refresh-token", res.RefreshToken)
		})
	}
}
