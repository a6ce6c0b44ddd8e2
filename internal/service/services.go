package service

import (
	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/store"
)

type Services struct {
	AuthService    AuthService
	CounterService CounterService
	JournalService JournalService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, logger),
		CounterService: NewCounterService(storages.CounterRepository, logger),
		JournalService: NewJournalService(storages.JournalRepository, storages.CounterRepository, logger),
	}
}
