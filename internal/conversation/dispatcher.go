package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultWorkers     = 16
	DefaultTurnTimeout = 30 * time.Second
	shardQueueSize     = 64
)

// EventHandler processes one inbound event to completion, reply included.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev Event) Reply
}

// Dispatcher fans events out to a fixed set of workers. A chat always maps to
// the same worker, so its events are handled and answered in arrival order
// while different chats proceed in parallel.
type Dispatcher struct {
	Handler     EventHandler
	Logger      *logrus.Logger
	TurnTimeout time.Duration

	shards []chan Event
	wg     sync.WaitGroup
}

func NewDispatcher(h EventHandler, logger *logrus.Logger, workers int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	d := &Dispatcher{Handler: h, Logger: logger, TurnTimeout: DefaultTurnTimeout}
	d.shards = make([]chan Event, workers)
	for i := range d.shards {
		d.shards[i] = make(chan Event, shardQueueSize)
	}
	return d
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for _, q := range d.shards {
		d.wg.Add(1)
		go d.work(q)
	}
}

// Submit queues ev on its chat's worker. It blocks while that worker's queue
// is full and returns false if ctx ends first. Submit must not be called
// after Close.
func (d *Dispatcher) Submit(ctx context.Context, ev Event) bool {
	select {
	case d.shards[d.shard(ev.ChatID)] <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close stops accepting events and waits until every queued event is handled.
func (d *Dispatcher) Close() {
	for _, q := range d.shards {
		close(q)
	}
	d.wg.Wait()
}

func (d *Dispatcher) shard(chatID int64) int {
	// group chats have negative ids
	return int(uint64(chatID) % uint64(len(d.shards)))
}

func (d *Dispatcher) work(q <-chan Event) {
	defer d.wg.Done()
	for ev := range q {
		d.handle(ev)
	}
}

func (d *Dispatcher) handle(ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log().WithFields(logrus.Fields{"chat_id": ev.ChatID, "panic": rec}).Error("turn panicked")
		}
	}()
	timeout := d.TurnTimeout
	if timeout <= 0 {
		timeout = DefaultTurnTimeout
	}
	// turns are detached from the poll loop so a half-done reply still goes out on shutdown
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	d.Handler.HandleEvent(ctx, ev)
}

func (d *Dispatcher) log() *logrus.Logger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
