// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context, search string, limit, offset int32) ([]domain.User, error)
	Update(ctx context.Context, username string, arg domain.UpdateUserParams) (domain.User, error)
	Delete(ctx context.Context, username string) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{repo: ur}
}

// Get returns the user with the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.User, error) {
	return s.repo.Get(ctx, username)
}

// GetByEmail returns the user with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// usernameFromEmail derives a username from the email local part. Characters
// the username format does not allow are dropped.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}

	var sb strings.Builder

	for _, r := range strings.ToLower(local) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	if sb.Len() == 0 {
		return randompkg.String(8)
	}

	return sb.String()
}

// GetOrCreateByEmail returns the user registered under the given email,
// creating one on first sign-in. A taken username gets a random numeric
// suffix.
func (s *Service) GetOrCreateByEmail(ctx context.Context, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}

	if err != domain.ErrUserNotFound {
		return domain.User{}, err
	}

	username := usernameFromEmail(email)

	user, err = s.repo.Create(ctx, domain.CreateUserParams{
		Username: username,
		Email:    email,
	})

	if err == domain.ErrUsernameAlreadyExists {
		user, err = s.repo.Create(ctx, domain.CreateUserParams{
			Username: username + randompkg.Digits(4),
			Email:    email,
		})
	}

	if err == domain.ErrEmailAlreadyExists {
		// Lost a registration race; hand back the winner.
		return s.repo.GetByEmail(ctx, email)
	}

	if err != nil {
		return domain.User{}, err
	}

	l.Info().Str("username", user.Username).Msg("registered new user")

	return user, nil
}

// Create registers the user with the given params.
func (s *Service) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	return s.repo.Create(ctx, arg)
}

// List returns the specified page of users, optionally filtered by the
// exact username search term.
func (s *Service) List(ctx context.Context, search string, pageSize, pageID int32) ([]domain.User, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, search, limit, offset)
}

func overlay(current domain.User, patch domain.PatchUserParams) domain.UpdateUserParams {
	arg := domain.UpdateUserParams{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Bio:       current.Bio,
		Role:      current.Role,
	}

	if patch.FirstName != nil {
		arg.FirstName = *patch.FirstName
	}

	if patch.LastName != nil {
		arg.LastName = *patch.LastName
	}

	if patch.Bio != nil {
		arg.Bio = *patch.Bio
	}

	if patch.Role != nil {
		arg.Role = *patch.Role
	}

	return arg
}

// Update overlays the given fields onto the user. Role changes go through
// here, so only admin-facing handlers should call it with Role set.
func (s *Service) Update(ctx context.Context, username string, patch domain.PatchUserParams) (domain.User, error) {
	current, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	return s.repo.Update(ctx, username, overlay(current, patch))
}

// UpdateProfile overlays the given fields onto the user's own profile.
// The role always keeps its current value.
func (s *Service) UpdateProfile(ctx context.Context, username string, patch domain.PatchUserParams) (domain.User, error) {
	patch.Role = nil
	return s.Update(ctx, username, patch)
}

// Delete removes the user with the given username.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}
