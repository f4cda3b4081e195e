package tone

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/pkg/collections"

	"github.com/gen2brain/malgo"
)

// ringCapacity holds roughly a quarter second at the default rate,
// plenty for a waveform window.
const ringCapacity = 11025

// DeviceSink plays patterns through a raw output device. The device is
// allocated lazily on first Play and reused across runs; its data
// callback pulls S16LE frames straight out of the current pattern.
type DeviceSink struct {
	synth Synth
	ring  *Ring

	mu       sync.Mutex
	mgCtx    *malgo.AllocatedContext
	mgDevice *malgo.Device
	head     *playhead
}

func NewDeviceSink(synth Synth) *DeviceSink {
	return &DeviceSink{
		synth: synth,
		ring:  NewRing(ringCapacity),
		head:  &playhead{},
	}
}

func (s *DeviceSink) BuildPattern(seq morse.Sequence) (playback.Pattern, error) {
	return NewPattern(s.synth, seq)
}

// Play swaps the pattern under the device callback and starts the
// device. The device keeps running on zero-fill after the pattern ends
// so the driver never underruns; Stop winds it down.
func (s *DeviceSink) Play(p playback.Pattern, done func()) error {
	pattern, ok := p.(*Pattern)
	if !ok {
		return fmt.Errorf("pattern %T was not built by this sink", p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.allocDeviceLocked(); err != nil {
		return err
	}

	s.ring.Clear()
	s.head.swap(pattern, s.ring, done)

	if !s.mgDevice.IsStarted() {
		if err := s.mgDevice.Start(); err != nil {
			return fmt.Errorf("failed to start output device: %w", err)
		}
	}

	return nil
}

// Pause halts the device callback in place. The playhead keeps its
// position for Resume.
func (s *DeviceSink) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mgDevice == nil || !s.mgDevice.IsStarted() {
		return nil
	}

	if err := s.mgDevice.Stop(); err != nil {
		return fmt.Errorf("failed to stop output device: %w", err)
	}

	return nil
}

func (s *DeviceSink) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mgDevice == nil || s.mgDevice.IsStarted() {
		return nil
	}

	if err := s.mgDevice.Start(); err != nil {
		return fmt.Errorf("failed to start output device: %w", err)
	}

	return nil
}

func (s *DeviceSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.head.swap(nil, nil, nil)
	s.ring.Clear()

	if s.mgDevice == nil || !s.mgDevice.IsStarted() {
		return nil
	}

	if err := s.mgDevice.Stop(); err != nil {
		return fmt.Errorf("failed to stop output device: %w", err)
	}

	return nil
}

// Recent returns the newest samples that went out the device, for
// waveform display.
func (s *DeviceSink) Recent(n int) []int16 {
	return s.ring.Recent(n)
}

// Close releases the device and its backend context. The sink is
// unusable afterwards.
func (s *DeviceSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mgDevice != nil {
		s.mgDevice.Uninit()
		s.mgDevice = nil
	}

	uninitializeContext(s.mgCtx)
	s.mgCtx = nil
}

func (s *DeviceSink) allocDeviceLocked() error {
	if s.mgDevice != nil {
		return nil
	}

	mgCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", playback.ErrSinkUnavailable, err)
	}

	devCnf := malgo.DefaultDeviceConfig(malgo.Playback)
	devCnf.Playback.Format = malgo.FormatS16
	devCnf.Playback.Channels = 1
	devCnf.SampleRate = uint32(s.synth.SampleRate)

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			s.head.fill(out)
		},
	}

	mgDevice, err := malgo.InitDevice(mgCtx.Context, devCnf, callbacks)
	if err != nil {
		uninitializeContext(mgCtx)
		return fmt.Errorf("%w: %w", playback.ErrSinkUnavailable, err)
	}

	s.mgCtx = mgCtx
	s.mgDevice = mgDevice

	return nil
}

// playhead is the cursor the device callback reads through. It lives
// apart from the sink so the realtime callback only ever takes this
// one small lock.
type playhead struct {
	mu      sync.Mutex
	pattern *Pattern
	ring    *Ring
	pos     int
	done    func()
	fired   bool
}

func (h *playhead) swap(p *Pattern, ring *Ring, done func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pattern = p
	h.ring = ring
	h.pos = 0
	h.done = done
	h.fired = false
}

// fill satisfies one device buffer. Past the end of the pattern it
// writes silence and fires done exactly once, off the audio thread.
func (h *playhead) fill(out []byte) {
	h.mu.Lock()

	if h.pattern == nil {
		h.mu.Unlock()
		clear(out)
		return
	}

	n := h.pattern.FillS16LE(h.pos, out)
	h.pos += n

	if h.ring != nil && n > 0 {
		h.ring.Write(h.pattern.Samples()[h.pos-n : h.pos])
	}

	var done func()
	if h.pos >= h.pattern.SampleCount() && !h.fired {
		h.fired = true
		done = h.done
	}
	h.mu.Unlock()

	if done != nil {
		go done()
	}
}

// Info describes one output device.
type Info struct {
	Name        string
	IsDefault   bool
	FormatCount int
	Formats     []string
}

// EnumerateDevices lists the playback devices the backend can see.
func EnumerateDevices(ctx context.Context) ([]Info, error) {
	devCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", playback.ErrSinkUnavailable, err)
	}
	defer uninitializeContext(devCtx)

	devices, err := devCtx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to list playback devices: %w", err)
	}

	return collections.Apply(devices, malgoDeviceInfoToInfo), nil
}

func malgoDeviceInfoToInfo(mdi malgo.DeviceInfo) Info {
	formats := make([]string, len(mdi.Formats))
	for i, mf := range mdi.Formats {
		formats[i] = fmt.Sprintf("(SampleSizeBytes: %d, Channels: %d, SampleRate: %d)",
			malgo.SampleSizeInBytes(mf.Format), mf.Channels, mf.SampleRate)
	}

	return Info{
		Name:        mdi.Name(),
		IsDefault:   mdi.IsDefault != 0,
		FormatCount: int(mdi.FormatCount),
		Formats:     formats,
	}
}

func uninitializeContext(deviceCtx *malgo.AllocatedContext) {
	if deviceCtx == nil {
		return
	}

	if err := deviceCtx.Uninit(); err != nil {
		slog.Error("failed to uninitialize audio context", "error", err)
	}
	deviceCtx.Free()
}
