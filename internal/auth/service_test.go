package auth

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	issuer, err := NewIssuer("secret", WithIssuerClock(fixedClock(issuedAt)))
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	creds := StaticCredentials{"ivan": " hunter2 \n", "blank": ""}
	return NewService(creds, issuer, logging.FromZap(zaptest.NewLogger(t)))
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, "ivan", "hunter2 ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User != "ivan" || login.Token == "" {
		t.Fatalf("unexpected login %+v", login)
	}

	session, err := svc.Verify(ctx, login.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if session.User != "ivan" || session.LoginTime != issuedAt.UnixMilli() {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		user, password string
		want           error
	}{
		{user: "", password: "x", want: ErrMissingCredentials},
		{user: "ivan", password: "", want: ErrMissingCredentials},
		{user: "ivan", password: "wrong", want: ErrInvalidCredentials},
		{user: "nobody", password: "hunter2", want: ErrInvalidCredentials},
		{user: "blank", password: "x", want: ErrInvalidCredentials},
	}

	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.user, tc.password); !errors.Is(err, tc.want) {
			t.Fatalf("Login(%q, %q) = %v, want %v", tc.user, tc.password, err, tc.want)
		}
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("TEST_PASS_IVAN", "s3cret")

	creds := NewEnvCredentials(map[string]string{"ivan": "TEST_PASS_IVAN", "mildred": "TEST_PASS_UNSET"})

	if p, ok := creds.Password("ivan"); !ok || p != "s3cret" {
		t.Fatalf("got %q, %v", p, ok)
	}
	if _, ok := creds.Password("mildred"); ok {
		t.Fatal("unset variable should not resolve")
	}
	if _, ok := creds.Password("unknown"); ok {
		t.Fatal("unknown user should not resolve")
	}
}

func TestParseUserMapping(t *testing.T) {
	got, err := ParseUserMapping(" ivan:USER_PASS_IVAN , mildred:USER_PASS_MILDRED,")
	if err != nil {
		t.Fatalf("ParseUserMapping: %v", err)
	}
	want := map[string]string{"ivan": "USER_PASS_IVAN", "mildred": "USER_PASS_MILDRED"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"ivan", "ivan:", ":KEY"} {
		if _, err := ParseUserMapping(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
