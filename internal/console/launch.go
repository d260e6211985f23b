package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/honeycarbs/recruit-dash/internal/session"
)

var ErrLoginAborted = errors.New("console: login aborted")

// Gate is the session guard consulted before any applicant data is requested
type Gate interface {
	RequireAuth(ctx context.Context, target string) (session.Verification, error)
	Login(ctx context.Context, userID, password string) (string, error)
	CurrentUser(ctx context.Context) (string, bool, error)
	Logout(ctx context.Context) error
}

// Launch signs the user in and only then starts the controller. Nothing is
// fetched unless SignIn succeeds.
func Launch(ctx context.Context, gate Gate, fetcher Fetcher, renderer *Renderer, input <-chan string, resumed <-chan struct{}, opts ...Option) error {
	var out io.Writer = io.Discard
	if renderer != nil {
		out = renderer.out
	}

	user, err := SignIn(ctx, gate, input, out)
	if err != nil {
		return err
	}

	ctrl := NewController(fetcher, renderer, append(opts, WithSession(gate, user))...)
	return ctrl.Run(ctx, input, resumed)
}

// SignIn verifies the stored session and falls back to prompting for
// credentials on input until a login succeeds or input ends
func SignIn(ctx context.Context, gate Gate, input <-chan string, out io.Writer) (string, error) {
	v, err := gate.RequireAuth(ctx, session.DefaultRedirect)
	if err == nil {
		return v.User, nil
	}
	if !errors.Is(err, session.ErrUnauthenticated) {
		return "", err
	}

	fmt.Fprintln(out, "Please sign in to view the recruitment dashboard.")
	for {
		userID, ok := prompt(ctx, out, "Username: ", input)
		if !ok {
			return "", ErrLoginAborted
		}
		password, ok := prompt(ctx, out, "Password: ", input)
		if !ok {
			return "", ErrLoginAborted
		}

		target, err := gate.Login(ctx, userID, password)
		if err != nil {
			if errors.Is(err, session.ErrLoginFailed) {
				fmt.Fprintln(out, strings.TrimPrefix(err.Error(), session.ErrLoginFailed.Error()+": "))
			} else {
				fmt.Fprintf(out, "Login failed: %v\n", err)
			}
			continue
		}

		user, _, err := gate.CurrentUser(ctx)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(out, "Signed in as %s, opening %s\n", user, target)
		return user, nil
	}
}

func prompt(ctx context.Context, out io.Writer, label string, input <-chan string) (string, bool) {
	fmt.Fprint(out, label)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-input:
		return line, ok
	}
}
