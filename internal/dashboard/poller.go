// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"log"
	"time"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 60 * time.Second

// Poller decides when the dashboard stats are refreshed. It does not own a
// goroutine; the console schedules ticks and reports completions. Each tick
// chain carries the epoch it was started in, and Stop bumps the epoch so
// ticks from an earlier chain end themselves.
type Poller struct {
	interval     time.Duration
	singleFlight bool

	active   bool
	epoch    uint64
	inFlight int

	lastSuccess time.Time
	lastErr     error
	failures    int
}

// NewPoller creates a stopped poller.
func NewPoller(interval time.Duration, singleFlight bool) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{interval: interval, singleFlight: singleFlight}
}

// Interval returns the refresh period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Configure updates the period and overlap policy. A running chain picks up
// the new interval on its next tick.
func (p *Poller) Configure(interval time.Duration, singleFlight bool) {
	if interval > 0 {
		p.interval = interval
	}
	p.singleFlight = singleFlight
}

// Start begins a new tick chain and returns its epoch.
func (p *Poller) Start() uint64 {
	p.active = true
	p.epoch++
	return p.epoch
}

// Stop ends the current tick chain.
func (p *Poller) Stop() {
	if !p.active {
		return
	}
	p.active = false
	p.epoch++
}

// Active reports whether a tick chain is running.
func (p *Poller) Active() bool {
	return p.active
}

// Epoch returns the current chain epoch.
func (p *Poller) Epoch() uint64 {
	return p.epoch
}

// Tick handles a tick from chain epoch. cont reports whether the chain should
// schedule another tick; fetch whether a stats request should go out now.
func (p *Poller) Tick(epoch uint64) (fetch, cont bool) {
	if !p.active || epoch != p.epoch {
		return false, false
	}
	return p.BeginFetch(), true
}

// BeginFetch records a request about to be sent. Without single-flight it
// always allows the request, even if earlier ones are still outstanding.
func (p *Poller) BeginFetch() bool {
	if p.singleFlight && p.inFlight > 0 {
		log.Printf("STATS_REFRESH_SKIPPED | in_flight=%d", p.inFlight)
		return false
	}
	p.inFlight++
	return true
}

// Done records the completion of a request started with BeginFetch.
// Failures are logged and otherwise ignored.
func (p *Poller) Done(err error, now time.Time) {
	if p.inFlight > 0 {
		p.inFlight--
	}
	if err != nil {
		p.lastErr = err
		p.failures++
		log.Printf("STATS_REFRESH_FAILED | failures=%d error=%v", p.failures, err)
		return
	}
	p.lastErr = nil
	p.lastSuccess = now
}

// InFlight returns the number of outstanding requests.
func (p *Poller) InFlight() int {
	return p.inFlight
}

// LastSuccess returns when stats last merged successfully.
func (p *Poller) LastSuccess() time.Time {
	return p.lastSuccess
}

// LastError returns the error from the most recent request, if it failed.
func (p *Poller) LastError() error {
	return p.lastErr
}
