// Package smartplug reports power state for smart plugs that machines
// may be connected to. The current implementation is a stub: no device
// API is wired up yet, so every plug reports the same canned status.
package smartplug

import (
	"context"
	"fmt"
	"time"
)

// Status is a point-in-time reading from a smart plug.
type Status struct {
	IsOn          bool  `json:"isOn"`
	OnTimeSeconds int64 `json:"onTimeSeconds"`
}

// OnTime returns the accumulated on-time as a duration.
func (s Status) OnTime() time.Duration {
	return time.Duration(s.OnTimeSeconds) * time.Second
}

// Client talks to smart plugs by device id.
type Client interface {
	Status(ctx context.Context, deviceID string) (Status, error)
	SetPower(ctx context.Context, deviceID string, on bool) error
}

// StubClient satisfies Client without any device I/O.
type StubClient struct{}

// NewStub returns a Client that answers with fixed values.
func NewStub() *StubClient { return &StubClient{} }

// Status always reports an off plug with one hour of accumulated on-time.
func (*StubClient) Status(_ context.Context, _ string) (Status, error) {
	return Status{IsOn: false, OnTimeSeconds: 3600}, nil
}

// SetPower is a no-op until a device API is integrated.
func (*StubClient) SetPower(_ context.Context, _ string, _ bool) error {
	return nil
}

// FormatOnTime renders a duration the way the status panel shows it,
// e.g. "1h 0m" or "45m".
func FormatOnTime(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
