package service

import (
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

// Cycle results reported to an Observer.
const (
	ResultOK         = "ok"
	ResultNoLocation = "no_location"
	ResultError      = "error"
)

// Observer receives poller lifecycle events (metrics).
type Observer interface {
	CycleCompleted(result string, d time.Duration)
	TickSkipped()
	RouteChanged(n int)
	StatusRendered(s domain.Status)
	FrameRendered()
}

type nopObserver struct{}

func (nopObserver) CycleCompleted(string, time.Duration) {}
func (nopObserver) TickSkipped()                         {}
func (nopObserver) RouteChanged(int)                     {}
func (nopObserver) StatusRendered(domain.Status)         {}
func (nopObserver) FrameRendered()                       {}
