package attendancehandler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/middleware"
)

// idempotencyEndpoint scopes stored scanner responses.
const idempotencyEndpoint = "checkin"

// Sweeper runs one auto-checkout pass on demand.
type Sweeper interface {
	RunAutoCheckout(ctx context.Context) (attendance.SweepResult, error)
}

type Handler struct {
	Service *attendance.Service
	Sweeper Sweeper
	Idem    middleware.Idempotency
	Metrics *metrics.Collector
	Now     func() time.Time
}

func NewHandler(service *attendance.Service, sweeper Sweeper, idem middleware.Idempotency, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Sweeper: sweeper, Idem: idem, Metrics: collector, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/checkin", h.handleCheckIn)
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleManualEntry)
		r.Get("/today", h.handleToday)
		r.Get("/stats", h.handleStats)
		r.Post("/auto-checkout", h.handleAutoCheckout)
	})
}

// IsScan matches the kiosk check-in route. Scans are throttled per employee
// by the cooldown, so the per-IP API limiter leaves them alone.
func IsScan(r *http.Request) bool {
	return r.Method == http.MethodPost && strings.TrimSuffix(r.URL.Path, "/") == "/api/checkin"
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
