package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type fakeDeleter struct {
	mu      sync.Mutex
	calls   []time.Time
	deleted int64
	err     error
}

func (f *fakeDeleter) DeleteExpiredRefreshTokens(before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, before)
	return f.deleted, f.err
}

func (f *fakeDeleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSweep(t *testing.T) {
	repo := &fakeDeleter{deleted: 3}
	s := NewTokenSweeper(repo, time.Hour, zaptest.NewLogger(t))
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.Equal(t, int64(3), s.Sweep())
	assert.Equal(t, []time.Time{now}, repo.calls)

	repo.err = errors.New("db down")
	assert.Zero(t, s.Sweep())
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	repo := &fakeDeleter{}
	s := NewTokenSweeper(repo, time.Hour, zaptest.NewLogger(t))

	s.Start()
	assert.Eventually(t, func() bool { return repo.callCount() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, repo.callCount())
}

func TestStartDisabled(t *testing.T) {
	repo := &fakeDeleter{}
	s := NewTokenSweeper(repo, 0, zaptest.NewLogger(t))

	s.Start()
	s.Stop()

	assert.Zero(t, repo.callCount())
}
