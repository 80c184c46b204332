package app

import (
	"context"
	"errors"
	"fmt"
	"mermaid_slot/internal/repository"
	"mermaid_slot/internal/service/auth"
	"strings"

	"go.uber.org/zap"
)

// login повторяет запрос, пока игрок не войдёт или не выйдет.
// false: Exit, конец ввода или отмена.
func (s *App) login(ctx context.Context, lines <-chan string) (string, bool) {
	out := s.opts.Out
	authServ := s.ServiceProvider.AuthService(ctx)
	logger := s.ServiceProvider.Logger()

	for {
		fmt.Fprint(out, "\nLogin or Register\n  1) Login\n  2) Register\n  3) Exit\n> ")
		choice, ok := prompt(ctx, lines)
		if !ok {
			return "", false
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "login", "l":
			username, password, ok := s.credentials(ctx, lines)
			if !ok {
				return "", false
			}
			data, err := authServ.Login(ctx, username, password)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidCredentials) && !errors.Is(err, auth.ErrEmptyCredentials) {
					logger.Error("login", zap.Error(err))
				}
				fmt.Fprintln(out, "Invalid credentials.")
				continue
			}
			return data.Username, true

		case "2", "register", "r":
			username, password, ok := s.credentials(ctx, lines)
			if !ok {
				return "", false
			}
			err := authServ.Register(ctx, username, password)
			switch {
			case err == nil:
				fmt.Fprintln(out, "Registration successful. You can now log in.")
			case errors.Is(err, auth.ErrEmptyCredentials):
				fmt.Fprintln(out, "Username and password cannot be empty.")
			case errors.Is(err, repository.ErrUserExists):
				fmt.Fprintln(out, "Username already exists.")
			case errors.Is(err, auth.ErrMalformedCredentials):
				fmt.Fprintln(out, "Username cannot contain commas or line breaks.")
			default:
				logger.Error("register", zap.Error(err))
				fmt.Fprintln(out, "Registration failed.")
			}

		case "3", "exit", "q", "quit":
			return "", false
		}
	}
}

func (s *App) credentials(ctx context.Context, lines <-chan string) (string, string, bool) {
	fmt.Fprint(s.opts.Out, "Username: ")
	username, ok := prompt(ctx, lines)
	if !ok {
		return "", "", false
	}
	fmt.Fprint(s.opts.Out, "Password: ")
	password, ok := prompt(ctx, lines)
	if !ok {
		return "", "", false
	}
	return username, password, true
}
