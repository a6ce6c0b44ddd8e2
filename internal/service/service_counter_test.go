package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/mock"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/models"
)

// newTestCounterSvc is a helper for creating a counterService with a mocked
// repository.
func newTestCounterSvc(t *testing.T, ctrl *gomock.Controller) (*counterService, *mock.MockCounterRepository) {
	t.Helper()
	mockCounters := mock.NewMockCounterRepository(ctrl)

	svc := NewCounterService(mockCounters, logger.Nop()).(*counterService)

	return svc, mockCounters
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCounterService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	mockCounters.EXPECT().CreateCounter(ctx, int64(1), "pushups").Return(nil)

	err := svc.Create(ctx, 1, "pushups")
	require.NoError(t, err)
}

func TestCounterService_Create_NormalizesName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	// mixed case and surrounding whitespace collapse onto one counter
	mockCounters.EXPECT().CreateCounter(ctx, int64(1), "pushups").Return(nil)

	err := svc.Create(ctx, 1, "  PushUps  ")
	require.NoError(t, err)
}

func TestCounterService_Create_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	err := svc.Create(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCounterService_Create_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	mockCounters.EXPECT().CreateCounter(ctx, int64(1), "pushups").Return(store.ErrCounterExists)

	err := svc.Create(ctx, 1, "pushups")
	assert.ErrorIs(t, err, store.ErrCounterExists)
}

// ── Ensure ───────────────────────────────────────────────────────────────────

func TestCounterService_Ensure_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	mockCounters.EXPECT().EnsureCounter(ctx, int64(1), "reading").Return(nil).Times(2)

	// idempotent: ensuring twice is not an error
	require.NoError(t, svc.Ensure(ctx, 1, "Reading"))
	require.NoError(t, svc.Ensure(ctx, 1, "reading"))
}

func TestCounterService_Ensure_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	err := svc.Ensure(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Increment ────────────────────────────────────────────────────────────────

func TestCounterService_Increment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	mockCounters.EXPECT().IncrementCounter(ctx, int64(1), "pushups", int64(25)).Return(nil)

	err := svc.Increment(ctx, 1, "PUSHUPS", 25)
	require.NoError(t, err)
}

func TestCounterService_Increment_ZeroAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	// zero is a valid no-op increment
	mockCounters.EXPECT().IncrementCounter(ctx, int64(1), "pushups", int64(0)).Return(nil)

	err := svc.Increment(ctx, 1, "pushups", 0)
	require.NoError(t, err)
}

func TestCounterService_Increment_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	err := svc.Increment(ctx, 1, "pushups", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCounterService_Increment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	mockCounters.EXPECT().IncrementCounter(ctx, int64(1), "missing", int64(1)).Return(store.ErrCounterNotFound)

	err := svc.Increment(ctx, 1, "missing", 1)
	assert.ErrorIs(t, err, store.ErrCounterNotFound)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestCounterService_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	want := []models.Counter{
		{CounterID: 1, UserID: 1, Name: "pushups", Total: 120},
		{CounterID: 2, UserID: 1, Name: "reading", Total: 7},
	}
	mockCounters.EXPECT().ListCounters(ctx, int64(1)).Return(want, nil)

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCounterService_List_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCounters := newTestCounterSvc(t, ctrl)
	ctx := context.Background()

	listErr := errors.New("connection refused")
	mockCounters.EXPECT().ListCounters(ctx, int64(1)).Return(nil, listErr)

	_, err := svc.List(ctx, 1)
	assert.ErrorIs(t, err, listErr)
}
