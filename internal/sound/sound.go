// Package sound plays the short click heard on start and lap.
package sound

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/stopwatch/internal/config"
)

// Format is the speaker output format.
var Format = beep.Format{
	SampleRate:  beep.SampleRate(config.SampleRate),
	NumChannels: 2,
	Precision:   2,
}

var errUnsupported = errors.New("unsupported file type")

// Player plays a preloaded click. A disabled Player does nothing.
type Player struct {
	buffer  *beep.Buffer
	volume  float64
	enabled bool
	logger  *log.Logger

	play func(...beep.Streamer)
}

// NewPlayer prepares the click and opens the speaker. Failures are logged
// and leave the player disabled, so the stopwatch works without audio.
func NewPlayer(cfg config.SoundConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		volume: cfg.Volume,
		logger: logger,
		play:   speaker.Play,
	}
	if !cfg.Enabled {
		return p
	}

	buf, err := loadClick(cfg.File)
	if err != nil {
		logger.Printf("sound disabled: %v", err)
		return p
	}

	if err := speaker.Init(Format.SampleRate, Format.SampleRate.N(time.Second/20)); err != nil {
		logger.Printf("sound disabled: speaker init: %v", err)
		return p
	}

	p.buffer = buf
	p.enabled = true
	return p
}

func loadClick(path string) (*beep.Buffer, error) {
	if path == "" {
		return Tone(Format, config.ClickFrequency, config.ClickLength*time.Millisecond), nil
	}
	return Load(path, Format)
}

// Enabled reports whether clicks are audible.
func (p *Player) Enabled() bool { return p.enabled }

// Click plays the click once.
func (p *Player) Click() {
	if !p.enabled || p.buffer == nil {
		return
	}
	p.play(withVolume(p.buffer.Streamer(0, p.buffer.Len()), p.volume))
}

// withVolume maps a linear 0..1 volume onto effects.Volume's log scale.
func withVolume(s beep.Streamer, v float64) *effects.Volume {
	v = clamp01(v)
	if v == 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(v),
	}
}

// Tone renders a sine of freq Hz lasting d, fading out linearly to avoid a
// pop at the end.
func Tone(format beep.Format, freq float64, d time.Duration) *beep.Buffer {
	total := format.SampleRate.N(d)
	step := 2 * math.Pi * freq / float64(format.SampleRate)

	pos := 0
	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := math.Sin(step*float64(pos)) * env
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})

	buf := beep.NewBuffer(format)
	buf.Append(gen)
	return buf
}

// Load decodes a wav, mp3 or flac file, resampled to format's rate.
func Load(path string, format beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		src      beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, src, err = wav.Decode(f)
	case ".mp3":
		streamer, src, err = mp3.Decode(f)
	case ".flac":
		streamer, src, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupported, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if src.SampleRate != format.SampleRate {
		s = beep.Resample(4, src.SampleRate, format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
