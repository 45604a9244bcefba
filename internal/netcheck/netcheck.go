// Package netcheck answers "is the network reachable right now" with a
// short TCP dial against the movie API host.
package netcheck

import (
	"context"
	"log/slog"
	"net"
	"time"
)

const defaultTimeout = 3 * time.Second

// Dialer is the subset of net.Dialer used by Probe
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Probe implements domain.Connectivity
type Probe struct {
	address string
	timeout time.Duration
	dialer  Dialer
	logger  *slog.Logger
}

// Option configures a Probe
type Option func(*Probe)

// WithDialer replaces the network dialer
func WithDialer(d Dialer) Option {
	return func(p *Probe) { p.dialer = d }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Probe) { p.logger = logger }
}

// New creates a probe for host:port address
func New(address string, timeout time.Duration, opts ...Option) *Probe {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	p := &Probe{
		address: address,
		timeout: timeout,
		dialer:  &net.Dialer{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsConnected dials the probe address and reports whether it answered.
// An empty address disables the check.
func (p *Probe) IsConnected() bool {
	if p.address == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		p.logger.Debug("connectivity probe failed", "address", p.address, "error", err)
		return false
	}
	conn.Close()
	p.logger.Debug("connectivity probe ok", "address", p.address, "duration", time.Since(start))
	return true
}
