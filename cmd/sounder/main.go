package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/alkime/sounder/internal/config"
	"github.com/alkime/sounder/internal/logger"
	"github.com/alkime/sounder/internal/morse"
	"github.com/alkime/sounder/internal/mp3"
	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tone"
	"github.com/alkime/sounder/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the sounder command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch the interactive Morse player"`

	// Subcommands
	Play    PlayCmd    `cmd:"" help:"Play text as Morse audio without the UI"`
	Text    TextCmd    `cmd:"" help:"Print text as Morse glyphs"`
	Export  ExportCmd  `cmd:"" help:"Render text to an MP3 file"`
	Devices DevicesCmd `cmd:"" help:"List available audio output devices"`
}

// TUICmd is the default command that runs the interactive player.
type TUICmd struct {
	Text   string `arg:"" optional:"" help:"Text to load into the player"`
	WPM    int    `flag:"" optional:"" help:"Words per minute (3-25, overrides WPM env)"`
	Engine string `flag:"" optional:"" help:"Audio backend: device, speaker or none"`
	Loop   bool   `flag:"" optional:"" help:"Start with looping on"`
}

// Run executes the TUI command.
func (c *TUICmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyOverrides(cfg, c.WPM, c.Engine)

	if c.Loop {
		cfg.Loop = true
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	_, closeLogs, err := logger.SetupFileLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLogs()

	sess, err := newSession(c.Text, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	p := tea.NewProgram(tui.New(sess.Controls()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	return nil
}

// PlayCmd plays text once (or in a loop) without the UI.
type PlayCmd struct {
	Text   string `arg:"" required:"" help:"Text to play"`
	WPM    int    `flag:"" optional:"" help:"Words per minute (3-25, overrides WPM env)"`
	Engine string `flag:"" optional:"" help:"Audio backend: device, speaker or none"`
	Loop   bool   `flag:"" optional:"" help:"Repeat until interrupted"`
}

// Run executes the play command.
func (c *PlayCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyOverrides(cfg, c.WPM, c.Engine)

	if c.Loop {
		cfg.Loop = true
	}

	logger.SetupLogger(cfg)

	sess, err := newSession(c.Text, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	snap := sess.coord.Snapshot()
	if !snap.CanPlay() {
		return fmt.Errorf("nothing to play in %q", c.Text)
	}

	fmt.Println(snap.Sequence.DisplayString())
	slog.Info("playing",
		"text", snap.Text,
		"wpm", snap.WPM,
		"duration", snap.Sequence.TotalDuration,
		"loop", snap.Looping,
	)

	events := make(chan playback.Event, 64)
	cancel := sess.coord.Subscribe(events)
	defer cancel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess.coord.Play()

	for {
		select {
		case <-ctx.Done():
			sess.coord.Stop()
			fmt.Println("interrupted")

			return nil

		case ev := <-events:
			if ev.Kind == playback.EventState && ev.Snapshot.State == playback.StateFinished {
				return nil
			}
		}
	}
}

// TextCmd prints the glyph rendering of text without playing it.
type TextCmd struct {
	Text string `arg:"" required:"" help:"Text to render"`
	WPM  int    `flag:"" optional:"" help:"Also print the transmission duration at this rate"`
}

// Run executes the text command.
func (c *TextCmd) Run() error {
	display := morse.DisplayString(c.Text)
	if display == "" {
		return fmt.Errorf("no encodable characters in %q", c.Text)
	}

	fmt.Println(display)

	if c.WPM > 0 {
		if err := validateWPM(c.WPM); err != nil {
			return err
		}

		timing, err := morse.NewTimingConfig(c.WPM)
		if err != nil {
			return err
		}

		seq, err := morse.Encode(c.Text, timing)
		if err != nil {
			return err
		}

		fmt.Printf("%.1fs at %d wpm\n", seq.TotalDuration.Seconds(), c.WPM)
	}

	return nil
}

// ExportCmd renders text to an MP3 file instead of playing it.
type ExportCmd struct {
	Text   string `arg:"" required:"" help:"Text to render"`
	Output string `arg:"" optional:"" default:"sounder.mp3" help:"Output MP3 path"`
	WPM    int    `flag:"" optional:"" help:"Words per minute (3-25, overrides WPM env)"`
}

// Run executes the export command.
func (c *ExportCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyOverrides(cfg, c.WPM, "")
	logger.SetupLogger(cfg)

	if err := validateWPM(cfg.WPM); err != nil {
		return err
	}

	timing, err := morse.NewTimingConfig(cfg.WPM)
	if err != nil {
		return err
	}

	seq, err := morse.Encode(c.Text, timing)
	if err != nil {
		return fmt.Errorf("failed to encode text: %w", err)
	}

	pattern, err := tone.NewPattern(newSynth(cfg), seq)
	if err != nil {
		return fmt.Errorf("nothing audible to export: %w", err)
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encodeToMP3(pattern, cfg.SampleRate, out); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	fmt.Printf("wrote %s (%.1fs at %d wpm)\n", c.Output, pattern.Duration().Seconds(), cfg.WPM)

	return nil
}

// encodeToMP3 streams the pattern's samples through the MP3 encoder
// into w, in batches around the encoder's own threshold.
func encodeToMP3(pattern *tone.Pattern, sampleRate int, w io.Writer) error {
	samplesC := make(chan []int16, 4)

	enc, err := mp3.NewStreamingEncoder(mp3.EncoderConfig{
		SampleRate: sampleRate,
		Channels:   1,
	}.WithDefaults(), samplesC, w)
	if err != nil {
		return fmt.Errorf("failed to create MP3 encoder: %w", err)
	}

	if err := enc.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start MP3 encoder: %w", err)
	}

	samples := pattern.Samples()
	for len(samples) > 0 {
		n := min(len(samples), mp3.DefaultBufferThreshold)
		samplesC <- samples[:n]
		samples = samples[n:]
	}
	close(samplesC)

	if err := enc.Wait(); err != nil {
		return fmt.Errorf("MP3 encoding failed: %w", err)
	}

	return nil
}

// DevicesCmd lists available audio output devices.
type DevicesCmd struct{}

// Run executes the devices command.
func (dcmd *DevicesCmd) Run() error {
	slog.Info("Enumerating audio devices...")

	devices, err := tone.EnumerateDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	for _, dev := range devices {
		slog.Info("Audio Device",
			"name", dev.Name,
			"isDefault", dev.IsDefault,
			"formatCount", dev.FormatCount,
			"formats", dev.Formats,
		)
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// applyOverrides lets command flags override environment config. Zero
// values leave the config untouched.
func applyOverrides(cfg *config.Config, wpm int, engine string) {
	if wpm != 0 {
		cfg.WPM = wpm
	}

	if engine != "" {
		cfg.Engine = engine
	}
}

func validateWPM(wpm int) error {
	if wpm < morse.MinWPM || wpm > morse.MaxWPM {
		return fmt.Errorf("wpm %d out of range: must be %d-%d", wpm, morse.MinWPM, morse.MaxWPM)
	}

	return nil
}
