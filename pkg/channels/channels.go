// Package channels provides small channel primitives: loss-tolerant
// sends, bounded receives and a subscription broadcaster. They exist
// for paths where the sender must never block on a slow or vanished
// consumer, such as publishing playback state out of a realtime loop.
package channels

import (
	"errors"
)

var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("channel timeout")
	ErrChannelFull    = errors.New("channel full")
)
