package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/Alturino/grocery/internal/auth"
	"github.com/Alturino/grocery/internal/config"
	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/internal/testutil"
	"github.com/Alturino/grocery/user/pkg/request"
)

const secret = "secret-key-for-testing"

type userServiceSuite struct {
	suite.Suite

	c       context.Context
	service *UserService
}

func TestUserServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed tests in short mode")
	}
	suite.Run(t, new(userServiceSuite))
}

func (s *userServiceSuite) SetupSuite() {
	s.c = testutil.Context(s.T())
	pool := testutil.StartPostgres(s.c, s.T())
	s.service = NewUserService(repository.New(pool), config.Application{SecretKey: secret})
}

func (s *userServiceSuite) register() request.Register {
	param := request.Register{
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Email:    gofakeit.DigitN(6) + gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 16),
	}
	user, err := s.service.Register(s.c, param)
	s.Require().NoError(err)
	s.Equal(param.Email, user.Email)
	return param
}

func (s *userServiceSuite) TestRegisterDuplicate() {
	param := s.register()

	_, err := s.service.Register(s.c, param)
	s.ErrorIs(err, inErrors.ErrAlreadyExist)
}

func (s *userServiceSuite) TestLogin() {
	param := s.register()
	now := time.Now()
	s.service.now = func() time.Time { return now }

	token, err := s.service.Login(s.c, request.Login{Email: param.Email, Password: param.Password})
	s.Require().NoError(err)
	s.Equal(now.Add(auth.TokenLifetime), token.ExpiresAt)

	jwtToken, err := auth.VerifyToken(s.c, token.AccessToken, secret)
	s.Require().NoError(err)
	userID, err := auth.UserIDFromJwtToken(auth.AttachJwtToken(s.c, jwtToken))
	s.Require().NoError(err)
	s.NotEmpty(userID)
}

func (s *userServiceSuite) TestLoginFailures() {
	param := s.register()

	testCases := []struct {
		name  string
		login request.Login
	}{
		{name: "wrong password", login: request.Login{Email: param.Email, Password: param.Password + "x"}},
		{name: "unknown email", login: request.Login{Email: "missing" + param.Email, Password: param.Password}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Login(s.c, tc.login)
			s.ErrorIs(err, inErrors.ErrPasswordMismatch)
		})
	}
}
