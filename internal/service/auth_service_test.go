package service

import (
	"testing"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/config"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testAuthService() *AuthService {
	return NewAuthService(nil, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testAuthService()
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleVendor,
	}

	token, err := svc.issueToken(user)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleVendor, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := testAuthService()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCustomer}

	token, err := issuer.issueToken(user)
	require.NoError(t, err)

	verifier := NewAuthService(nil, config.AuthConfig{JWTSecret: "other-secret", TokenTTLHours: 1})
	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := testAuthService()

	_, err := svc.ParseToken("not-a-token")
	assert.Error(t, err)
}
