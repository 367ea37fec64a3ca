// Package authservice manages business logic layer of email sign-in.
package authservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/passpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
)

const codeLength = 6

// Repo provides data access layer interface needed by auth service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateConfirmationCodeParams) (domain.ConfirmationCode, error)
	GetLatest(ctx context.Context, email string) (domain.ConfirmationCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// UserService provides the user lookups needed by auth service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type UserService interface {
	GetOrCreateByEmail(ctx context.Context, email string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// Mailer delivers issued confirmation codes.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// Service facilitates email sign-in logic.
type Service struct {
	repo   Repo
	users  UserService
	mailer Mailer

	tokenMaker          tokenpkg.Maker
	accessTokenDuration time.Duration
	codeDuration        time.Duration
}

// New returns auth service struct to manage email sign-in bussines logic.
func New(ar Repo, users UserService, mailer Mailer, tokenMaker tokenpkg.Maker, accessTokenDuration, codeDuration time.Duration) *Service {
	return &Service{
		repo:                ar,
		users:               users,
		mailer:              mailer,
		tokenMaker:          tokenMaker,
		accessTokenDuration: accessTokenDuration,
		codeDuration:        codeDuration,
	}
}

// SendConfirmationCode issues a one-time sign-in code for the email and
// delivers it through the mailer. The user is registered on first call.
func (s *Service) SendConfirmationCode(ctx context.Context, email string) error {
	l := zerolog.Ctx(ctx)

	user, err := s.users.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return err
	}

	code := randompkg.Digits(codeLength)

	hash, err := passpkg.Hash(code)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	_, err = s.repo.Create(ctx, domain.CreateConfirmationCodeParams{
		ID:        uuid.New(),
		Email:     user.Email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(s.codeDuration),
	})
	if err != nil {
		return err
	}

	return s.mailer.SendConfirmationCode(ctx, user.Email, code)
}

// IssueToken exchanges a valid confirmation code for an access token.
// The code is single use; all codes for the email are dropped on success.
func (s *Service) IssueToken(ctx context.Context, email, code string) (string, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	issued, err := s.repo.GetLatest(ctx, user.Email)
	if err != nil {
		return "", err
	}

	if time.Now().After(issued.ExpiresAt) {
		l.Info().Str("email", user.Email).Msg("confirmation code expired")
		return "", domain.ErrExpiredConfirmationCode
	}

	if err := passpkg.Check(code, issued.CodeHash); err != nil {
		l.Info().Str("email", user.Email).Msg("confirmation code mismatch")
		return "", domain.ErrInvalidConfirmationCode
	}

	if err := s.repo.DeleteByEmail(ctx, user.Email); err != nil {
		return "", err
	}

	accessToken, _, err := s.tokenMaker.CreateToken(user.Username, s.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	return accessToken, nil
}
