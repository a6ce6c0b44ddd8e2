package tui

import (
	"github.com/tkaraev/go-progress-tracker/models"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the login-flow router to another page. An optional
// Payload is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes an async login attempt. On success the router stores
// the user and quits the login flow.
type LoginResult struct {
	Err  error
	User models.User
}

// RegisterResult finishes an async registration attempt.
type RegisterResult struct {
	Err      error
	Username string
}

// RegisterSuccessNotice is shown on the menu page after a successful
// registration.
type RegisterSuccessNotice struct {
	Username string
}
