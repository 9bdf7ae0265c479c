// Package jobs contains the background jobs the server runs alongside the
// HTTP listener.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cursorboston/community-api/internal/service"
)

// ClaimExpiry periodically expires pending agents whose claim window has
// lapsed. The conditional update that performs claims already rejects
// lapsed tokens, so this job only keeps stored statuses honest.
type ClaimExpiry struct {
	agentService *service.AgentService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewClaimExpiry creates a new claim expiry job
func NewClaimExpiry(agentService *service.AgentService, interval time.Duration) *ClaimExpiry {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &ClaimExpiry{
		agentService: agentService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the claim expiry job
func (j *ClaimExpiry) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	slog.Info("claim expiry job started", slog.Duration("interval", j.interval))
}

// Stop gracefully stops the claim expiry job
func (j *ClaimExpiry) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	slog.Info("claim expiry job stopped")
}

// run is the main loop
func (j *ClaimExpiry) run() {
	defer j.wg.Done()

	// Run immediately on start
	j.expire()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.expire()
		case <-j.stopCh:
			return
		}
	}
}

func (j *ClaimExpiry) expire() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.agentService.ExpireLapsed(ctx)
	if err != nil {
		slog.Error("claim expiry run failed", slog.Any("error", err))
		return
	}
	if count > 0 {
		slog.Info("expired lapsed agent claims", slog.Int("count", count))
	}
}
