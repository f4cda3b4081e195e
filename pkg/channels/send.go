package channels

import "time"

// SendNonBlock attempts to send a message without blocking.
// Returns an error if the channel is full or closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	// Sending on a closed channel panics; report it as an error instead
	// so broadcast paths can mark the subscriber dead and move on.
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendWithTimeout sends a message, giving up after the timeout.
// Returns an error if the timeout expires or the channel is closed.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	case <-time.After(timeout):
		return ErrChannelTimeout
	}
}
