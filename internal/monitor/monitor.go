// Package monitor periodically checks database connectivity.
package monitor

import (
	"context"
	"fmt"
	"sync"

	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/Dan9191/ledger-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Checker runs a connectivity check
type Checker interface {
	TestDatabase(ctx context.Context) (repository.Connectivity, service.Result)
}

// Monitor runs Checker on a cron schedule and logs state changes
type Monitor struct {
	checker Checker
	log     *logrus.Logger
	cron    *cron.Cron

	mu   sync.Mutex
	last *repository.ConnectivityState
}

// New schedules checks according to schedule, a standard cron expression or a
// descriptor such as "@every 1m"
func New(checker Checker, schedule string, log *logrus.Logger) (*Monitor, error) {
	m := &Monitor{
		checker: checker,
		log:     log,
		cron:    cron.New(),
	}
	if _, err := m.cron.AddFunc(schedule, m.Check); err != nil {
		return nil, fmt.Errorf("invalid health check schedule %q: %w", schedule, err)
	}
	return m, nil
}

// Start begins running scheduled checks in the background
func (m *Monitor) Start() {
	m.cron.Start()
}

// Stop stops scheduling checks and waits for a running one to finish
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

// Check runs a single connectivity check
func (m *Monitor) Check() {
	c, result := m.checker.TestDatabase(context.Background())

	m.mu.Lock()
	changed := m.last == nil || *m.last != c.State
	m.last = &c.State
	m.mu.Unlock()

	if !changed {
		m.log.Debugf("Database connectivity unchanged: %s", c.State)
		return
	}
	entry := m.log.WithField("state", c.State.String())
	if c.State == repository.Healthy {
		entry.Info(result.Message)
	} else {
		entry.Warn(result.Message)
	}
}

// state returns the state of the last check and whether a check has run yet
func (m *Monitor) state() (repository.ConnectivityState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return repository.Unreachable, false
	}
	return *m.last, true
}
