package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"helicharter-portal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Sweep(now time.Time) {
	m.Called(now)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Backend.RequestTimeoutSeconds = 5
	return cfg
}

func TestRefreshCatalog(t *testing.T) {
	t.Run("Refreshes with a deadline", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Refresh", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})).Return(nil)

		NewJobRunner(catalog, nil, testConfig()).RefreshCatalog()
		catalog.AssertExpectations(t)
	})

	t.Run("Failure is logged, not raised", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Refresh", mock.Anything).Return(errors.New("backend down"))

		assert.NotPanics(t, func() { NewJobRunner(catalog, nil, testConfig()).RefreshCatalog() })
	})

	t.Run("Panic is recovered", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Refresh", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

		assert.NotPanics(t, func() { NewJobRunner(catalog, nil, testConfig()).RefreshCatalog() })
	})
}

func TestSweepRateLimiter(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	sweeper := new(MockSweeper)
	sweeper.On("Sweep", now).Return()

	jr := NewJobRunner(new(MockCatalog), sweeper, testConfig())
	jr.now = func() time.Time { return now }
	jr.SweepRateLimiter()
	sweeper.AssertExpectations(t)

	assert.NotPanics(t, func() { NewJobRunner(new(MockCatalog), nil, testConfig()).SweepRateLimiter() })
}
