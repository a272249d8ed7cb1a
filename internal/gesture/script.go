package gesture

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrSourceUnavailable is returned by Source.Start when the producer cannot begin delivering
// signals (missing device, unreadable script, ...).
var ErrSourceUnavailable = errors.New("gesture: source unavailable")

// DefaultInterval is the script playback cadence when a script does not set one (~30 Hz, the
// usual detector rate; the render loop runs faster).
const DefaultInterval = 33 * time.Millisecond

// Source is a gesture producer. Start must not block: it validates the producer, launches it on
// its own goroutine and returns. publish may be called from that goroutine until ctx is done.
type Source interface {
	Start(ctx context.Context, publish func(Signal)) error
}

// Step is one entry of a gesture script. Either the summary fields or Hands are used: when
// Hands is set the signal is derived from the landmarks. Repeat defaults to 1.
type Step struct {
	Present   bool    `yaml:"present"`
	Expansion float32 `yaml:"expansion"`
	Pinch     float32 `yaml:"pinch"`
	Focus     *Point  `yaml:"focus,omitempty"`
	Hands     []Hand  `yaml:"hands,omitempty"`
	Repeat    int     `yaml:"repeat,omitempty"`
}

// Signal returns the signal this step stands for.
func (s Step) Signal() Signal {
	if s.Hands != nil {
		return Derive(s.Hands)
	}
	if !s.Present {
		return Idle()
	}
	sig := Signal{Present: true, Expansion: s.Expansion, Pinch: s.Pinch, Focus: Center}
	if s.Focus != nil {
		sig.Focus = *s.Focus
	}
	return sig.Sanitize()
}

// Script is a recorded or hand-written gesture sequence.
type Script struct {
	Interval time.Duration `yaml:"interval,omitempty"`
	Loop     bool          `yaml:"loop,omitempty"`
	Steps    []Step        `yaml:"steps"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "gesture: read script")
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "gesture: parse script")
	}
	for i, st := range s.Steps {
		if st.Repeat < 0 {
			return nil, errors.Errorf("gesture: step %d: negative repeat %d", i, st.Repeat)
		}
	}
	return &s, nil
}

// Signals expands the script into one signal per frame.
func (s *Script) Signals() []Signal {
	var out []Signal
	for _, st := range s.Steps {
		n := st.Repeat
		if n == 0 {
			n = 1
		}
		sig := st.Signal()
		for i := 0; i < n; i++ {
			out = append(out, sig)
		}
	}
	return out
}

// ScriptSource replays a Script on its own goroutine, standing in for a live detector.
type ScriptSource struct {
	Script *Script
	// Path is loaded on Start when Script is nil.
	Path string
}

// Start implements Source. When the script ends without Loop, an Idle signal is published once
// and the goroutine exits.
func (s *ScriptSource) Start(ctx context.Context, publish func(Signal)) error {
	script := s.Script
	if script == nil {
		loaded, err := LoadScript(s.Path)
		if err != nil {
			return errors.Wrapf(ErrSourceUnavailable, "%s: %v", s.Path, err)
		}
		script = loaded
	}
	signals := script.Signals()
	if len(signals) == 0 {
		return errors.Wrap(ErrSourceUnavailable, "empty gesture script")
	}
	interval := script.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			if i == len(signals) {
				if !script.Loop {
					publish(Idle())
					return
				}
				i = 0
			}
			publish(signals[i])
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return nil
}
