package commands

import (
	"context"

	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/jwt"
	"coupon-service/internal/pkg/password"
	"coupon-service/internal/usecase/queries"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
)

// DemoUser is the single login account this service accepts. The password is
// stored as a bcrypt hash computed at startup.
type DemoUser struct {
	Email        string
	PasswordHash string
	Profile      queries.UserProfileView
}

type LoginResult struct {
	AccessToken string
	Profile     queries.UserProfileView
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	demoUser   DemoUser
	jwtService *jwt.Service
}

func NewAuthCommands(demoUser DemoUser, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		demoUser:   demoUser,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(_ context.Context, email, rawPassword string) (*LoginResult, error) {
	// Unknown email and wrong password return the same error to prevent
	// account enumeration.
	if email != a.demoUser.Email {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(a.demoUser.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := a.jwtService.GenerateToken(a.demoUser.Profile.UserID, a.demoUser.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		AccessToken: accessToken,
		Profile:     a.demoUser.Profile,
	}, nil
}
