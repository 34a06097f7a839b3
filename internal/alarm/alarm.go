// Package alarm provides named one-shot and periodic timers.
package alarm

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Info describes an armed alarm
type Info struct {
	Name     string
	Period   time.Duration // zero for one-shot alarms
	Next     time.Time
	Periodic bool
}

type entry struct {
	info Info
	stop chan struct{}
}

// Manager owns the named alarms of one process. Creating an alarm with an
// existing name replaces it, so there is never more than one timer per name.
type Manager struct {
	logger *zap.Logger

	mu     sync.Mutex
	alarms map[string]*entry
	fired  chan string
	done   chan struct{}
	closed bool
}

// NewManager creates an empty alarm manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		alarms: make(map[string]*entry),
		fired:  make(chan string, 1),
		done:   make(chan struct{}),
	}
}

// Fired delivers the name of every alarm that goes off
func (m *Manager) Fired() <-chan string {
	return m.fired
}

// Create arms a periodic alarm, replacing any alarm with the same name
func (m *Manager) Create(name string, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("alarm %s: period must be positive, got %s", name, period)
	}
	return m.arm(name, period, true)
}

// Once arms an alarm that fires a single time after delay
func (m *Manager) Once(name string, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	return m.arm(name, delay, false)
}

// Clear cancels the named alarm. It reports whether one was armed.
func (m *Manager) Clear(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.alarms[name]
	if !ok {
		return false
	}
	close(e.stop)
	delete(m.alarms, name)
	m.logger.Debug("Alarm cleared", zap.String("name", name))
	return true
}

// Get returns the named alarm if it is armed
func (m *Manager) Get(name string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.alarms[name]
	if !ok {
		return Info{}, false
	}
	return e.info, true
}

// Names lists the armed alarms
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.alarms))
	for name := range m.alarms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close cancels every alarm. The manager cannot be reused.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	for name, e := range m.alarms {
		close(e.stop)
		delete(m.alarms, name)
	}
	close(m.done)
	m.closed = true
}

func (m *Manager) arm(name string, d time.Duration, periodic bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("alarm %s: manager closed", name)
	}

	if old, ok := m.alarms[name]; ok {
		close(old.stop)
	}

	e := &entry{
		info: Info{
			Name:     name,
			Period:   d,
			Next:     time.Now().Add(d),
			Periodic: periodic,
		},
		stop: make(chan struct{}),
	}
	if !periodic {
		e.info.Period = 0
	}
	m.alarms[name] = e

	if periodic {
		go m.runPeriodic(e, d)
	} else {
		go m.runOnce(e, d)
	}

	m.logger.Debug("Alarm armed",
		zap.String("name", name),
		zap.Duration("after", d),
		zap.Bool("periodic", periodic))
	return nil
}

func (m *Manager) runPeriodic(e *entry, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			e.info.Next = time.Now().Add(period)
			m.mu.Unlock()
			if !m.deliver(e) {
				return
			}
		}
	}
}

func (m *Manager) runOnce(e *entry, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-e.stop:
		return
	case <-timer.C:
	}

	m.mu.Lock()
	if m.alarms[e.info.Name] == e {
		delete(m.alarms, e.info.Name)
	}
	m.mu.Unlock()

	m.deliver(e)
}

// deliver blocks until the name is consumed, the alarm is cancelled or the manager closes
func (m *Manager) deliver(e *entry) bool {
	select {
	case m.fired <- e.info.Name:
		return true
	case <-e.stop:
		return false
	case <-m.done:
		return false
	}
}
