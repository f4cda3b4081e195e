// Package mp3 turns rendered tone samples into MP3 frames for export.
package mp3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"
)

// StreamingEncoder reads mono S16 samples from a channel, buffers to a
// threshold, then batch-encodes to MP3 and writes to an io.Writer.
//
// The encoder runs in a goroutine and handles graceful shutdown when
// the input channel is closed or the context is cancelled.
type StreamingEncoder struct {
	config EncoderConfig
	input  <-chan []int16
	output io.Writer

	encoder *mp3encoder.Encoder
	buffer  []int16

	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// NewStreamingEncoder creates a new streaming MP3 encoder reading
// sample batches from input and writing MP3 frames to output.
func NewStreamingEncoder(
	config EncoderConfig,
	input <-chan []int16,
	output io.Writer,
) (*StreamingEncoder, error) {
	if input == nil {
		return nil, errors.New("input channel cannot be nil")
	}

	if output == nil {
		return nil, errors.New("output writer cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoder config: %w", err)
	}

	return &StreamingEncoder{
		config: config,
		input:  input,
		output: output,
		buffer: make([]int16, 0, config.BufferThreshold),
	}, nil
}

// Start begins the encoding goroutine. Must be called before any data
// is sent to the input channel. Returns error if already started.
func (e *StreamingEncoder) Start(ctx context.Context) error {
	if e.encoder != nil {
		return errors.New("encoder already started")
	}

	// Create shine-mp3 encoder as STEREO (workaround for mono bug).
	e.encoder = mp3encoder.NewEncoder(e.config.SampleRate, 2)

	e.wg.Go(func() {
		defer func() {
			if err := e.Flush(); err != nil {
				e.setError(fmt.Errorf("failed to flush encoder on shutdown: %w", err))
			}
		}()

		for {
			select {
			case samples, ok := <-e.input:
				if !ok {
					// Channel closed, finish encoding.
					return
				}

				e.buffer = append(e.buffer, samples...)

				if len(e.buffer) >= e.config.BufferThreshold {
					if err := e.encodeBatch(); err != nil {
						e.setError(err)
						return
					}
				}

			case <-ctx.Done():
				e.setError(fmt.Errorf("encoder context cancelled: %w", ctx.Err()))
				return
			}
		}
	})

	return nil
}

// encodeBatch converts buffered samples to MP3 and writes to output.
// Clears the buffer after successful encoding.
func (e *StreamingEncoder) encodeBatch() error {
	if len(e.buffer) == 0 {
		return nil
	}

	// WORKAROUND: shine-mp3 Write() has a bug for mono (always
	// increments by samples_per_pass * 2). Duplicate samples into
	// both channels instead.
	stereoSamples := make([]int16, len(e.buffer)*2)
	for i, sample := range e.buffer {
		stereoSamples[i*2] = sample
		stereoSamples[i*2+1] = sample
	}

	slog.Debug("encoding MP3 batch",
		"monoSamples", len(e.buffer),
		"stereoSamples", len(stereoSamples))

	if err := e.encoder.Write(e.output, stereoSamples); err != nil {
		return fmt.Errorf("failed to encode audio to MP3: %w", err)
	}

	// Clear buffer (reuse allocated memory).
	e.buffer = e.buffer[:0]

	return nil
}

// Flush encodes any remaining buffered data. Safe to call multiple times.
func (e *StreamingEncoder) Flush() error {
	if err := e.encodeBatch(); err != nil {
		return fmt.Errorf("failed to flush MP3 encoder: %w", err)
	}

	return nil
}

// Wait blocks until encoding completes and returns any error that occurred.
func (e *StreamingEncoder) Wait() error {
	e.wg.Wait()

	return e.err
}

// setError records the first error that occurs (subsequent calls are no-ops).
func (e *StreamingEncoder) setError(err error) {
	e.errOnce.Do(func() {
		e.err = err
		slog.Debug("streaming encoder error", "error", err)
	})
}
