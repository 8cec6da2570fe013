package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/repo"
	"github.com/diagnosis/place-reservations/pkg/auth"
	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/go-playground/validator/v10"
)

const MsgCredentialsTooLong = "Username or password too long"

type AuthService interface {
	Register(ctx context.Context, in domain.Credentials) error
	Login(ctx context.Context, in domain.Credentials) (*domain.Session, error)
}

type authService struct {
	users    repo.UsersRepo
	tokens   *auth.TokenManager
	validate *validator.Validate
}

func NewAuthService(users repo.UsersRepo, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens, validate: validator.New()}
}

type credentialLimits struct {
	Uname    string `validate:"max=64"`
	Password string `validate:"max=256"`
}

func (s *authService) check(in domain.Credentials) error {
	if in.Uname == "" || in.Password == "" {
		return domain.NewValidation(domain.MsgMissingCredentials)
	}
	if err := s.validate.Struct(credentialLimits{Uname: in.Uname, Password: in.Password}); err != nil {
		return domain.NewValidation(MsgCredentialsTooLong)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, in domain.Credentials) error {
	if err := s.check(in); err != nil {
		return err
	}

	_, err := s.users.FindByUname(ctx, in.Uname)
	switch {
	case err == nil:
		return domain.NewConflict(domain.MsgUsernameTaken)
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := argon2id.CreateHash(in.Password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// A concurrent registration can still win between lookup and insert.
	if err := s.users.Create(ctx, &domain.User{Uname: in.Uname, HashedPassword: hash}); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.NewConflict(domain.MsgUsernameTaken)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoContext(ctx).Str("uname", in.Uname).Msg("user registered")
	return nil
}

func (s *authService) Login(ctx context.Context, in domain.Credentials) (*domain.Session, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByUname(ctx, in.Uname)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewAuth(domain.MsgBadCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password, u.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, domain.NewAuth(domain.MsgBadCredentials)
	}

	token, err := s.tokens.NewAccessToken(u.Uname)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &domain.Session{
		Uname:     u.Uname,
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}
