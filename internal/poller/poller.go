// Package poller runs a task on a fixed interval until stopped.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one unit of periodic work
type Task func(ctx context.Context)

// Poller periodically runs a task
type Poller struct {
	name     string
	task     Task
	interval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Poller. The task is not run immediately on Start, the
// first run happens after one interval.
func New(name string, interval time.Duration, task Task) *Poller {
	return &Poller{
		name:     name,
		task:     task,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop in the background
func (p *Poller) Start(ctx context.Context) {
	slog.Info("Starting poller", "poller", p.name, "interval", p.interval)

	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)", "poller", p.name)
			return
		case <-p.stopChan:
			slog.Info("Poller stopped", "poller", p.name)
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}

// Stop signals the poller to stop and waits for a running task to finish
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
	p.wg.Wait()
}
