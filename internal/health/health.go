// Package health reports the latest state of weather mode over HTTP.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/clambin/ecobee-controller/internal/controller"
	"github.com/clambin/ecobee-controller/internal/ecobee"
)

// A Publisher sends the controller's updates.
type Publisher interface {
	Subscribe() <-chan controller.Update
	Unsubscribe(<-chan controller.Update)
}

// Health tracks the controller's latest temperature check. The controller is unhealthy before its first check,
// or when its last check is older than maxAge.
type Health struct {
	publisher Publisher
	maxAge    time.Duration
	logger    *slog.Logger
	lock      sync.RWMutex
	last      controller.Update
	checks    int
	failures  int
	now       func() time.Time
}

// Status is the body returned by ServeHTTP.
type Status struct {
	Healthy     bool        `json:"healthy"`
	Mode        ecobee.Mode `json:"mode"`
	Temperature float64     `json:"temperature"`
	LastCheck   time.Time   `json:"last_check"`
	Age         string      `json:"age"`
	Checks      int         `json:"checks"`
	Failures    int         `json:"failures"`
	Error       string      `json:"error,omitempty"`
}

// New returns a Health for the controller's updates. The controller checks the temperature every interval:
// a last check older than twice the interval means the controller is stuck.
func New(p Publisher, interval time.Duration, logger *slog.Logger) *Health {
	return &Health{
		publisher: p,
		maxAge:    2 * interval,
		logger:    logger,
		now:       time.Now,
	}
}

func (h *Health) Run(ctx context.Context) error {
	h.logger.Debug("started")
	defer h.logger.Debug("stopped")

	ch := h.publisher.Subscribe()
	defer h.publisher.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-ch:
			h.record(update)
		}
	}
}

func (h *Health) record(update controller.Update) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.last = update
	h.checks++
	if update.Err != "" {
		h.failures++
	}
}

// Status returns the controller's health. The bool is false if the controller hasn't checked the temperature yet.
func (h *Health) Status() (Status, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	if h.checks == 0 {
		return Status{}, false
	}
	age := h.now().Sub(h.last.Time)
	return Status{
		Healthy:     h.maxAge <= 0 || age <= h.maxAge,
		Mode:        h.last.Mode,
		Temperature: h.last.Temperature,
		LastCheck:   h.last.Time,
		Age:         age.Round(time.Second).String(),
		Checks:      h.checks,
		Failures:    h.failures,
		Error:       h.last.Err,
	}, true
}

// ServeHTTP returns the controller's Status as JSON. Before the first temperature check, or when the last check is
// stale, it returns http.StatusServiceUnavailable.
func (h *Health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	status, ok := h.Status()
	if !ok {
		http.Error(w, "no update yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		h.logger.Warn("last temperature check is stale", "last_check", status.LastCheck, "age", status.Age)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(status); err != nil {
		h.logger.Error("failed to encode health status", "err", err)
	}
}
