// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock provides the current time and periodic ticks. Production code
// should never call time.Now or time.NewTicker directly; accept a
// Clock (or embed one in a config struct) so that tests can control
// time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker that delivers ticks on its C channel
	// at the given interval. Panics if d <= 0, matching time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. Read ticks from C and call Stop when
// the ticker is no longer needed.
type Ticker struct {
	// C delivers ticks. Buffered with capacity 1; ticks are dropped,
	// not queued, if the consumer falls behind.
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. No more ticks arrive on C after Stop
// returns. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }
