package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/Dan9191/ledger-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	states []repository.ConnectivityState
	calls  int
}

func (s *stubChecker) TestDatabase(ctx context.Context) (repository.Connectivity, service.Result) {
	state := s.states[s.calls%len(s.states)]
	s.calls++
	if state == repository.Healthy {
		return repository.Connectivity{State: state}, service.Result{Kind: service.Success, Message: "Database connection is OK."}
	}
	return repository.Connectivity{State: state, Err: errors.New("down")},
		service.Result{Kind: service.StorageFailed, Message: "Failed to connect to database. Error: down"}
}

func TestNew_InvalidSchedule(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := New(&stubChecker{}, "every minute", log)
	assert.Error(t, err)
}

func TestCheck_LogsTransitionsOnly(t *testing.T) {
	log, hook := test.NewNullLogger()
	checker := &stubChecker{states: []repository.ConnectivityState{
		repository.Healthy, repository.Healthy, repository.Unreachable, repository.Healthy,
	}}
	m, err := New(checker, "@every 1h", log)
	require.NoError(t, err)

	_, ran := m.state()
	assert.False(t, ran)

	for i := 0; i < 4; i++ {
		m.Check()
	}

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "unreachable", entries[1].Data["state"])
	assert.Equal(t, "Database connection is OK.", entries[2].Message)

	state, ran := m.state()
	assert.True(t, ran)
	assert.Equal(t, repository.Healthy, state)
}

func TestStartStop(t *testing.T) {
	log, _ := test.NewNullLogger()
	m, err := New(&stubChecker{states: []repository.ConnectivityState{repository.Healthy}}, "@every 1h", log)
	require.NoError(t, err)

	m.Start()
	m.Stop()
}
