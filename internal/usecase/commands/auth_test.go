//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-service/internal/pkg/jwt"
	"coupon-service/internal/pkg/password"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
)

func newAuthCommands(t *testing.T) (commands.AuthCommands, *jwt.Service) {
	t.Helper()
	hash, err := password.HashPassword("HireMe@2025!")
	require.NoError(t, err)

	demoUser := commands.DemoUser{
		Email:        "hire-me@anshumat.org",
		PasswordHash: hash,
		Profile: queries.UserProfileView{
			UserID:        "demo_hireme",
			Email:         "hire-me@anshumat.org",
			Tier:          "REGULAR",
			Country:       "IN",
			LifetimeSpend: 10000,
			OrdersPlaced:  5,
		},
	}
	jwtService := jwt.NewService("test-secret", time.Hour)
	return commands.NewAuthCommands(demoUser, jwtService), jwtService
}

func TestAuthCommandsLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		uc, jwtService := newAuthCommands(t)

		result, err := uc.Login(ctx, "hire-me@anshumat.org", "HireMe@2025!")
		require.NoError(t, err)
		assert.Equal(t, "demo_hireme", result.Profile.UserID)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "demo_hireme", claims.UserID)
		assert.Equal(t, "hire-me@anshumat.org", claims.Email)
	})

	t.Run("未知のメールはErrInvalidCredentials", func(t *testing.T) {
		uc, _ := newAuthCommands(t)

		_, err := uc.Login(ctx, "someone-else@example.com", "HireMe@2025!")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("パスワード不一致も同じErrInvalidCredentials", func(t *testing.T) {
		uc, _ := newAuthCommands(t)

		_, err := uc.Login(ctx, "hire-me@anshumat.org", "wrong-password")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
