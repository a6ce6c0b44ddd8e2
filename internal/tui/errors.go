package tui

import (
	"errors"
	"strings"

	"github.com/tkaraev/go-progress-tracker/internal/service"
	"github.com/tkaraev/go-progress-tracker/internal/store"
)

func humanizeAuthError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrAuthFailed):
		return "wrong username or password"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "username and password are required"
	case errors.Is(err, store.ErrUsernameTaken):
		return "that username is already taken"
	}

	return humanizeStorageError(err)
}

func humanizeStorageError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "storage is unreachable, check the database connection"
	}

	return err.Error()
}
