// Package audio plays the short interface cues of the sphere menu.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue identifies a sound.
type Cue int

const (
	CueSelect Cue = iota // Active item changed
	CueGrab              // Drag started
)

var errNotInitialized = errors.New("audio not initialized")

// Manager mixes cues into the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	sfxVolLevel  float64

	cues     map[Cue]*beep.Buffer
	sfxMixer *beep.Mixer
}

// New creates a manager with generated default cues.
func New() *Manager {
	m := &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		cues:         make(map[Cue]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
	m.cues[CueSelect] = blip(m.sampleRate, 880, 70*time.Millisecond)
	m.cues[CueGrab] = blip(m.sampleRate, 440, 40*time.Millisecond)
	return m
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized reports whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the cue volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// LoadCue replaces a cue with decoded WAV data, resampled to the speaker
// rate.
func (m *Manager) LoadCue(cue Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)

	m.mu.Lock()
	m.cues[cue] = buf
	m.mu.Unlock()
	return nil
}

// Play mixes a cue in at the current volume. It never blocks.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	buf := m.cues[cue]
	m.mu.RUnlock()

	if !initialized {
		return errNotInitialized
	}
	if buf == nil {
		return fmt.Errorf("unknown cue %d", cue)
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     10,
		Volume:   volumeToExponent(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// volumeToExponent returns the base-10 exponent giving a linear gain of vol.
func volumeToExponent(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// blip renders a sine tone with a linear decay into a buffer.
func blip(sr beep.SampleRate, freq float64, d time.Duration) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return buf
	}
	n := sr.N(d)
	buf.Append(&decay{Streamer: beep.Take(n, tone), total: n})
	return buf
}

// decay fades its streamer linearly to silence over total samples.
type decay struct {
	beep.Streamer
	pos, total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.pos)/float64(d.total)
		samples[i][0] *= g * 0.5
		samples[i][1] *= g * 0.5
		d.pos++
	}
	return n, ok
}
