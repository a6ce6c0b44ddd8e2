// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package app

import (
	"context"
	"errors"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/service"
	"github.com/tkaraev/go-progress-tracker/internal/tui"
)

type App struct {
	services *service.Services
	tui      *tui.TUI

	logger *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("services and ui are required")
	}

	return &App{
		services: services,
		tui:      ui,
		logger:   logger,
	}, nil
}

// Run blocks until the user quits. Each run starts unauthenticated; logging
// out returns to the login flow rather than ending the process.
func (a *App) Run() error {
	ctx := a.logger.WithContext(context.Background())

	for {
		user, err := a.tui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				a.logger.Debug().Msg("user quit from the login flow")
				return nil
			}
			return err
		}

		a.logger.Debug().
			Int64("user_id", user.UserID).
			Str("username", user.Username).
			Msg("user authenticated")

		logout, err := a.tui.MainLoop(ctx, user)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.logger.Debug().Int64("user_id", user.UserID).Msg("user logged out")
	}
}
