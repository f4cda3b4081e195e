package channels

import "time"

// Receive waits up to timeout for the next message.
func Receive[T any](ch <-chan T, timeout time.Duration) (T, error) {
	var zero T

	select {
	case msg, ok := <-ch:
		if !ok {
			return zero, ErrChannelClosed
		}
		return msg, nil
	case <-time.After(timeout):
		return zero, ErrChannelTimeout
	}
}

// ReceiveAll collects messages until the channel stays quiet for the
// idle duration or closes. Useful in tests that want "everything that
// arrived" without guessing a count.
func ReceiveAll[T any](ch <-chan T, idle time.Duration) []T {
	var msgs []T

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return msgs
			}
			msgs = append(msgs, msg)
		case <-time.After(idle):
			return msgs
		}
	}
}
