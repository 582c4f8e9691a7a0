package learning

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/growthkit/linkedin-assistant/internal/storage"
)

const (
	// eventQueueSize is the buffer size for the event queue.
	// If full, events are dropped (non-blocking).
	eventQueueSize = 1000

	// batchFlushSize is the number of events that triggers an immediate flush.
	batchFlushSize = 10

	// flushInterval is how often pending events are flushed.
	flushInterval = 50 * time.Millisecond
)

// Tracker records comment activity in the background with non-blocking writes.
type Tracker struct {
	storage    storage.ActivityStore
	logger     *zap.Logger
	eventQueue chan Event
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	enabled    bool
	mu         sync.RWMutex
}

// NewTracker initializes s and starts the background writer. If s fails to
// initialize the tracker starts disabled.
func NewTracker(s storage.ActivityStore, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		storage:    s,
		logger:     logger,
		eventQueue: make(chan Event, eventQueueSize),
		stopChan:   make(chan struct{}),
		enabled:    s != nil,
	}

	if s != nil {
		if err := s.Init(); err != nil {
			logger.Warn("learning storage initialization failed", zap.Error(err))
			t.enabled = false
		}
	}

	t.wg.Add(1)
	go t.processEvents()

	return t
}

// Track queues an event without blocking. If the queue is full the event is
// dropped and a warning is logged.
func (t *Tracker) Track(event Event) {
	if !t.isEnabled() {
		return
	}

	select {
	case t.eventQueue <- event:
	default:
		t.logger.Warn("learning queue full, dropping event",
			zap.String("action", event.Action),
			zap.String("tone", event.Tone),
		)
	}
}

// Stop shuts down the tracker, flushing remaining events. It is safe to call
// more than once.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
		t.wg.Wait()
	})
}

// Disable disables tracking (events are ignored).
func (t *Tracker) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// Enable enables tracking.
func (t *Tracker) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = true
}

// IsEnabled returns whether tracking is enabled.
func (t *Tracker) IsEnabled() bool {
	return t.isEnabled()
}

func (t *Tracker) isEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled && t.storage != nil
}

// processEvents runs in the background, batching and flushing events.
func (t *Tracker) processEvents() {
	defer t.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, batchFlushSize)

	for {
		select {
		case event := <-t.eventQueue:
			batch = append(batch, event)

			if len(batch) >= batchFlushSize {
				t.flush(batch)
				batch = make([]Event, 0, batchFlushSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = make([]Event, 0, batchFlushSize)
			}

		case <-t.stopChan:
			// Drain whatever is still queued, then exit
			for {
				select {
				case event := <-t.eventQueue:
					batch = append(batch, event)
					if len(batch) >= batchFlushSize {
						t.flush(batch)
						batch = make([]Event, 0, batchFlushSize)
					}
				default:
					t.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to storage.
func (t *Tracker) flush(events []Event) {
	for _, event := range events {
		if err := t.storage.RecordActivity(event.ToStorage()); err != nil {
			t.logger.Warn("failed to record activity", zap.Error(err))
		}
	}
}

// QueueLen returns the current number of events in the queue.
func (t *Tracker) QueueLen() int {
	return len(t.eventQueue)
}
