package capture

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a recurring timer owned by a session.
type Timer interface {
	ID() uint64
	// Stop cancels the timer. Safe to call more than once.
	Stop()
}

// Scheduler creates recurring timers. Each firing must be turned into a
// Session.Tick(id) call on the caller's event loop.
type Scheduler interface {
	Schedule(every time.Duration) Timer
}

// Fire is a single timer firing.
type Fire struct {
	TimerID uint64
	At      time.Time
}

// TickerScheduler backs each timer with a time.Ticker goroutine and hands
// firings to deliver. deliver must not call back into the session; it
// should post the firing to the event loop that owns it.
type TickerScheduler struct {
	deliver func(Fire)
	nextID  atomic.Uint64

	mu     sync.Mutex
	timers map[uint64]*tickerTimer
	closed bool
}

// NewTickerScheduler creates a scheduler that calls deliver for every tick.
func NewTickerScheduler(deliver func(Fire)) *TickerScheduler {
	return &TickerScheduler{
		deliver: deliver,
		timers:  make(map[uint64]*tickerTimer),
	}
}

// Schedule starts a timer firing every interval until stopped.
func (s *TickerScheduler) Schedule(every time.Duration) Timer {
	t := &tickerTimer{
		id:    s.nextID.Add(1),
		owner: s,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(t.done)
		t.once.Do(func() { close(t.stop) })
		return t
	}
	s.timers[t.id] = t
	s.mu.Unlock()

	go t.run(every, s.deliver)
	return t
}

// Active returns the number of running timers.
func (s *TickerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every timer and waits for their goroutines to exit.
// Timers scheduled afterwards never fire.
func (s *TickerScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	timers := make([]*tickerTimer, 0, len(s.timers))
	for _, t := range s.timers {
		timers = append(timers, t)
	}
	s.mu.Unlock()

	for _, t := range timers {
		t.Stop()
		<-t.done
	}
}

func (s *TickerScheduler) forget(id uint64) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()
}

type tickerTimer struct {
	id    uint64
	owner *TickerScheduler
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func (t *tickerTimer) ID() uint64 { return t.id }

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		close(t.stop)
		t.owner.forget(t.id)
	})
}

func (t *tickerTimer) run(every time.Duration, deliver func(Fire)) {
	defer close(t.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case now := <-ticker.C:
			// A stop that raced the tick wins.
			select {
			case <-t.stop:
				return
			default:
			}
			deliver(Fire{TimerID: t.id, At: now})
		}
	}
}
