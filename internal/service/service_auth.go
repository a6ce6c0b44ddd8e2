// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/models"
)

// authService is the concrete implementation of [AuthService]. It handles
// user registration and credential verification using a UserRepository for
// persistence and bcrypt for password digests.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] backed by the provided
// repository and logger.
func NewAuthService(userRepository store.UserRepository, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both username and password are non-empty, digests the
// password with bcrypt (randomized salt, fixed cost), and delegates
// persistence to the UserRepository. The username is taken verbatim, without
// normalization.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameTaken).
func (a *authService) RegisterUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:       username,
		PasswordDigest: string(digest),
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both username and password are non-empty, looks up the
// account, and verifies the password against the stored bcrypt digest.
// bcrypt's comparison is constant-time with respect to the digest.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrAuthFailed for an unknown username or a wrong password; the two
//     cases are not distinguished.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Str("username", username).Msg("login failed: unknown username")
			return models.User{}, ErrAuthFailed
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordDigest), []byte(password)); err != nil {
		log.Debug().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("login failed: wrong password")
		return models.User{}, ErrAuthFailed
	}

	return foundUser, nil
}
