package tui

import (
	"context"
	"errors"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/service"
	"github.com/tkaraev/go-progress-tracker/models"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned when the user leaves the program from the login
// flow instead of authenticating.
var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services *service.Services
}

func New(services *service.Services, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// LoginFlow runs the unauthenticated part of the UI (menu, login, register)
// and blocks until the user authenticates or quits.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.User{}, ErrUserQuit
	}

	return result.resultUser, nil
}

// MainLoop runs the authenticated part of the UI and blocks until the user
// quits or logs out. Logout is reported to the caller so it can restart the
// login flow.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, user)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
