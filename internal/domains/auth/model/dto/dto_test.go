package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"donmario/infras/jwt"
	"donmario/internal/domains/auth/model/dto"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(pair)

	assert.Equal(t, pair.AccessToken, response.AccessToken)
	assert.Equal(t, pair.RefreshToken, response.RefreshToken)
	assert.Equal(t, pair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(pair)

	assert.Equal(t, pair.AccessToken, response.AccessToken)
	assert.Equal(t, pair.RefreshToken, response.RefreshToken)
	assert.Equal(t, pair.ExpiresIn, response.ExpiresIn)
}
