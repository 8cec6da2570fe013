package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/repo/memory"
	"github.com/diagnosis/place-reservations/pkg/auth"
)

type failingUsers struct{ err error }

func (f failingUsers) FindByUname(context.Context, string) (*domain.User, error) { return nil, f.err }
func (f failingUsers) Create(context.Context, *domain.User) error                { return f.err }

func newAuth(t *testing.T) (AuthService, *auth.TokenManager) {
	t.Helper()
	tm := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(memory.NewUsersRepo(), tm), tm
}

func kindOf(err error) domain.ErrorKind {
	if de, ok := domain.AsError(err); ok {
		return de.Kind
	}
	return ""
}

func TestRegister(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.Credentials
		kind domain.ErrorKind
	}{
		{"ok", domain.Credentials{Uname: "alice", Password: "pw"}, ""},
		{"duplicate", domain.Credentials{Uname: "alice", Password: "other"}, domain.KindConflict},
		{"missing password", domain.Credentials{Uname: "bob"}, domain.KindValidation},
		{"missing uname", domain.Credentials{Password: "pw"}, domain.KindValidation},
		{"uname too long", domain.Credentials{Uname: strings.Repeat("x", 65), Password: "pw"}, domain.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.in)
			if got := kindOf(err); got != tt.kind {
				t.Fatalf("kind = %q (err %v), want %q", got, err, tt.kind)
			}
		})
	}
}

func TestRegisterStoresHash(t *testing.T) {
	users := memory.NewUsersRepo()
	svc := NewAuthService(users, auth.NewTokenManager("s", time.Hour))
	if err := svc.Register(context.Background(), domain.Credentials{Uname: "carol", Password: "secret"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := users.FindByUname(context.Background(), "carol")
	if err != nil {
		t.Fatalf("FindByUname: %v", err)
	}
	if u.HashedPassword == "secret" || !strings.HasPrefix(u.HashedPassword, "$argon2id$") {
		t.Fatalf("password not hashed: %q", u.HashedPassword)
	}
}

func TestLogin(t *testing.T) {
	svc, tm := newAuth(t)
	ctx := context.Background()
	if err := svc.Register(ctx, domain.Credentials{Uname: "dave", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := svc.Login(ctx, domain.Credentials{Uname: "dave", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d", sess.ExpiresIn)
	}
	claims, err := tm.Parse(sess.Token)
	if err != nil || claims.Subject != "dave" {
		t.Fatalf("token subject = %v, %v", claims, err)
	}

	_, wrongPw := svc.Login(ctx, domain.Credentials{Uname: "dave", Password: "nope"})
	_, noUser := svc.Login(ctx, domain.Credentials{Uname: "ghost", Password: "pw"})
	if wrongPw.Error() != noUser.Error() || kindOf(wrongPw) != domain.KindAuth {
		t.Fatalf("login failures differ: %v / %v", wrongPw, noUser)
	}

	if _, err := svc.Login(ctx, domain.Credentials{Uname: "dave"}); kindOf(err) != domain.KindValidation {
		t.Fatalf("missing password: %v", err)
	}
}

func TestStoreFailuresAreInternal(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewAuthService(failingUsers{err: boom}, auth.NewTokenManager("s", time.Hour))

	err := svc.Register(context.Background(), domain.Credentials{Uname: "a", Password: "b"})
	if !errors.Is(err, boom) || kindOf(err) != "" {
		t.Fatalf("Register err = %v", err)
	}
	_, err = svc.Login(context.Background(), domain.Credentials{Uname: "a", Password: "b"})
	if !errors.Is(err, boom) || kindOf(err) != "" {
		t.Fatalf("Login err = %v", err)
	}
}
