package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"quotegen/internal/service"
	"quotegen/mocks"
)

func TestSessionSweeper_EvictsOnTick(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sessions.On("EvictIdle", mock.Anything, time.Hour).Return(2)

	sweeper := service.NewSessionSweeper(sessions, service.SessionSweeperConfig{
		IdleTimeout:   time.Hour,
		SweepInterval: 20 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}

	sessions.AssertCalled(t, "EvictIdle", mock.Anything, time.Hour)
}

func TestSessionSweeper_DisabledReturnsImmediately(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sweeper := service.NewSessionSweeper(sessions, service.SessionSweeperConfig{})

	done := make(chan struct{})
	go func() {
		sweeper.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled sweeper should return immediately")
	}
	sessions.AssertNotCalled(t, "EvictIdle", mock.Anything, mock.Anything)
}
