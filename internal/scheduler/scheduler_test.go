package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/config"
)

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) CompleteElapsed(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type mockPurger struct{ mock.Mock }

func (m *mockPurger) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

var cfg = config.SchedulerConfig{Enabled: true, Spec: "0 */5 * * * *", BatchMax: 50, TokenPurgeSpec: "0 30 3 * * *"}

func TestNewRegistersJobs(t *testing.T) {
	s, err := New(cfg, nil, &mockCompleter{}, &mockPurger{})
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)

	s, err = New(cfg, time.UTC, &mockCompleter{}, nil)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)

	bad := cfg
	bad.Spec = "every five minutes"
	_, err = New(bad, time.UTC, &mockCompleter{}, nil)
	assert.Error(t, err)
}

func TestJobs(t *testing.T) {
	completer, purger := &mockCompleter{}, &mockPurger{}
	completer.On("CompleteElapsed", mock.Anything, 50).Return(3, nil).Once()
	completer.On("CompleteElapsed", mock.Anything, 50).Return(1, errors.New("deadlock")).Once()
	purger.On("DeleteExpired", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) >= 24*time.Hour
	})).Return(int64(7), nil).Once()

	s, err := New(cfg, time.UTC, completer, purger)
	require.NoError(t, err)
	s.CompleteReservations()
	s.CompleteReservations()
	s.PurgeTokens()

	completer.AssertExpectations(t)
	purger.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := New(cfg, time.UTC, &mockCompleter{}, nil)
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
