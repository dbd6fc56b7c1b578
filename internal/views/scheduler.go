package views

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a continuation back onto the Bubble Tea update loop
type dispatchMsg struct {
	fn func()
}

// Scheduler implements form.Scheduler on top of the Bubble Tea event
// loop. Callbacks are queued and delivered as messages through Listen, so
// they always run inside Update. After Close, queued and future callbacks
// are dropped.
type Scheduler struct {
	queue chan dispatchMsg

	done      chan struct{}
	closeOnce sync.Once
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: make(chan dispatchMsg, 64),
		done:  make(chan struct{}),
	}
}

func (s *Scheduler) Now() time.Time {
	return time.Now()
}

func (s *Scheduler) Post(fn func()) {
	select {
	case s.queue <- dispatchMsg{fn: fn}:
	case <-s.done:
	}
}

func (s *Scheduler) After(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool

	timer := time.AfterFunc(d, func() {
		s.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})

	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Listen waits for the next queued callback. It has to be re-issued after
// every dispatchMsg is handled. Once the scheduler is closed it yields nil.
func (s *Scheduler) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.queue:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// Close releases every goroutine blocked in Post or Listen
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
