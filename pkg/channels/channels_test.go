package channels_test

import (
	"testing"
	"time"

	"github.com/alkime/sounder/pkg/channels"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFunctions(t *testing.T) {

	t.Run("send non-blocking", func(t *testing.T) {
		t.Run("success - buffered channel with capacity", func(t *testing.T) {
			ch := make(chan int, 2)
			err := channels.SendNonBlock(ch, 42)
			assert.NoError(t, err)
			assert.Equal(t, 42, <-ch) // Verify message was sent
		})

		t.Run("full - buffered channel", func(t *testing.T) {
			ch := make(chan int, 1)
			ch <- 1 // Fill buffer
			err := channels.SendNonBlock(ch, 42)
			assert.ErrorIs(t, err, channels.ErrChannelFull)
		})

		t.Run("full - unbuffered with no receiver", func(t *testing.T) {
			ch := make(chan int)
			err := channels.SendNonBlock(ch, 42)
			assert.ErrorIs(t, err, channels.ErrChannelFull)
		})

		t.Run("closed channel", func(t *testing.T) {
			ch := make(chan int, 2)
			ch <- 1 // Write data before closing
			close(ch)
			err := channels.SendNonBlock(ch, 42)
			assert.ErrorIs(t, err, channels.ErrChannelClosed)
			// Verify original data still readable
			assert.Equal(t, 1, <-ch)
		})
	})

	t.Run("send with timeout", func(t *testing.T) {
		t.Run("success - unbuffered with receiver", func(t *testing.T) {
			ch := make(chan int)
			go func() { <-ch }()
			err := channels.SendWithTimeout(ch, 42, 10*time.Millisecond)
			assert.NoError(t, err)
		})

		t.Run("timeout - buffered channel full", func(t *testing.T) {
			ch := make(chan int, 1)
			ch <- 1 // Fill buffer
			err := channels.SendWithTimeout(ch, 42, 1*time.Millisecond)
			assert.ErrorIs(t, err, channels.ErrChannelTimeout)
		})

		t.Run("closed channel", func(t *testing.T) {
			ch := make(chan int)
			close(ch)
			err := channels.SendWithTimeout(ch, 42, 10*time.Millisecond)
			assert.ErrorIs(t, err, channels.ErrChannelClosed)
		})
	})
}

func TestReceiveFunctions(t *testing.T) {

	t.Run("receive", func(t *testing.T) {
		t.Run("message already waiting", func(t *testing.T) {
			ch := make(chan string, 1)
			ch <- "hello"

			msg, err := channels.Receive(ch, 10*time.Millisecond)
			require.NoError(t, err)
			assert.Equal(t, "hello", msg)
		})

		t.Run("times out when nothing arrives", func(t *testing.T) {
			ch := make(chan string)
			_, err := channels.Receive(ch, 5*time.Millisecond)
			assert.ErrorIs(t, err, channels.ErrChannelTimeout)
		})

		t.Run("closed channel", func(t *testing.T) {
			ch := make(chan string)
			close(ch)
			_, err := channels.Receive(ch, 10*time.Millisecond)
			assert.ErrorIs(t, err, channels.ErrChannelClosed)
		})
	})

	t.Run("receive all", func(t *testing.T) {
		t.Run("drains buffered messages", func(t *testing.T) {
			ch := make(chan int, 4)
			ch <- 1
			ch <- 2
			ch <- 3

			got := channels.ReceiveAll(ch, 5*time.Millisecond)
			assert.Equal(t, []int{1, 2, 3}, got)
		})

		t.Run("empty channel yields nothing", func(t *testing.T) {
			ch := make(chan int, 4)
			assert.Empty(t, channels.ReceiveAll(ch, 5*time.Millisecond))
		})

		t.Run("stops at close", func(t *testing.T) {
			ch := make(chan int, 4)
			ch <- 9
			close(ch)

			got := channels.ReceiveAll(ch, time.Second)
			assert.Equal(t, []int{9}, got)
		})
	})
}
