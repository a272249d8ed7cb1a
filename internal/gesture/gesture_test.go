package gesture

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hand builds a full landmark set with the wrist at (wx,wy) and thumb/index tips d apart.
func hand(wx, wy, d float32) Hand {
	h := make(Hand, LandmarksPerHand)
	for i := range h {
		h[i] = Landmark{X: wx, Y: wy}
	}
	h[ThumbTip] = Landmark{X: wx, Y: wy - 0.1}
	h[IndexTip] = Landmark{X: wx + d, Y: wy - 0.1}
	return h
}

func TestPinchFromDistance(t *testing.T) {
	tests := []struct {
		d    float32
		want float32
	}{
		{d: 0.02, want: 1},
		{d: 0.2, want: 0},
		{d: 0.11, want: 0.5},
		{d: 0, want: 1},
		{d: 0.5, want: 0},
		{d: math32.NaN(), want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PinchFromDistance(tt.d), 1e-5, "d=%v", tt.d)
	}
}

func TestExpansionFromDistance(t *testing.T) {
	tests := []struct {
		d    float32
		want float32
	}{
		{d: 0.1, want: 0},
		{d: 0.8, want: 1},
		{d: 0.45, want: 0.5},
		{d: 0.01, want: 0},
		{d: 2, want: 1},
		{d: math32.NaN(), want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ExpansionFromDistance(tt.d), 1e-5, "d=%v", tt.d)
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		hands []Hand
		want  Signal
	}{
		{name: "no hands", hands: nil, want: Idle()},
		{name: "malformed hand ignored", hands: []Hand{make(Hand, 5)}, want: Idle()},
		{
			name:  "one hand",
			hands: []Hand{hand(0.3, 0.6, 0.02)},
			want:  Signal{Present: true, Expansion: 0.5, Pinch: 1, Focus: Point{X: 0.3, Y: 0.6}},
		},
		{
			name:  "two hands",
			hands: []Hand{hand(0.1, 0.5, 0.02), hand(0.9, 0.5, 0.2)},
			want:  Signal{Present: true, Expansion: 1, Pinch: 0.5, Focus: Point{X: 0.5, Y: 0.5}},
		},
		{
			name:  "two hands close together",
			hands: []Hand{hand(0.45, 0.4, 0.2), hand(0.5, 0.4, 0.2)},
			want:  Signal{Present: true, Expansion: 0, Pinch: 0, Focus: Point{X: 0.475, Y: 0.4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.hands)
			assert.Equal(t, tt.want.Present, got.Present)
			assert.InDelta(t, tt.want.Expansion, got.Expansion, 1e-5)
			assert.InDelta(t, tt.want.Pinch, got.Pinch, 1e-5)
			assert.InDelta(t, tt.want.Focus.X, got.Focus.X, 1e-5)
			assert.InDelta(t, tt.want.Focus.Y, got.Focus.Y, 1e-5)
		})
	}
}

func TestDerive_TwoToOneHandFallsBack(t *testing.T) {
	two := Derive([]Hand{hand(0.2, 0.5, 0.1), hand(0.8, 0.5, 0.1)})
	require.True(t, two.Present)
	assert.InDelta(t, (0.6-0.1)/0.7, two.Expansion, 1e-5)

	one := Derive([]Hand{hand(0.8, 0.3, 0.1)})
	assert.True(t, one.Present)
	assert.Equal(t, float32(SingleExpansion), one.Expansion)
	assert.Equal(t, Point{X: 0.8, Y: 0.3}, one.Focus)
}

func TestSignal_Sanitize(t *testing.T) {
	s := Signal{
		Present:   true,
		Expansion: math32.NaN(),
		Pinch:     1.5,
		Focus:     Point{X: -0.2, Y: math32.NaN()},
	}.Sanitize()
	assert.Equal(t, Signal{Present: true, Focus: Point{X: 0, Y: 0.5}}, s)

	ok := Signal{Present: true, Expansion: 0.3, Pinch: 0.7, Focus: Point{X: 0.1, Y: 0.9}}
	assert.Equal(t, ok, ok.Sanitize())
}

func TestSlot(t *testing.T) {
	var s Slot
	sig, ok := s.Latest()
	assert.False(t, ok)
	assert.Equal(t, Idle(), sig)

	s.Publish(Signal{Present: true, Expansion: 0.1})
	s.Publish(Signal{Present: true, Expansion: 0.9})
	sig, ok = s.Latest()
	assert.True(t, ok)
	assert.Equal(t, float32(0.9), sig.Expansion, "only the newest signal is kept")
	assert.Equal(t, uint64(2), s.Seq())
}

func TestSlot_ConcurrentPublish(t *testing.T) {
	var s Slot
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s.Publish(Signal{Present: true, Pinch: float32(i) / 1000})
			}
		}()
	}
	for i := 0; i < 1000; i++ {
		_, _ = s.Latest()
	}
	wg.Wait()
	assert.Equal(t, uint64(4000), s.Seq())
}

const testScript = `
interval: 5ms
steps:
  - present: false
    repeat: 2
  - present: true
    expansion: 0.25
    focus: {x: 0.2, y: 0.8}
  - hands:
      - [{x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.4},
         {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.52, y: 0.4}, {x: 0.5, y: 0.5},
         {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5},
         {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5}, {x: 0.5, y: 0.5},
         {x: 0.5, y: 0.5}]
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, s.Interval)

	sigs := s.Signals()
	require.Len(t, sigs, 4)
	assert.Equal(t, Idle(), sigs[0])
	assert.Equal(t, Idle(), sigs[1])
	assert.Equal(t, Signal{Present: true, Expansion: 0.25, Focus: Point{X: 0.2, Y: 0.8}}, sigs[2])
	assert.True(t, sigs[3].Present)
	assert.InDelta(t, 1, sigs[3].Pinch, 1e-5)
	assert.Equal(t, float32(SingleExpansion), sigs[3].Expansion)

	_, err = ParseScript([]byte("steps:\n  - repeat: -1\n"))
	assert.Error(t, err)
	_, err = ParseScript([]byte("steps: [\n"))
	assert.Error(t, err)
}

func TestScriptSource_Start(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	require.NoError(t, err)

	var mu sync.Mutex
	var got []Signal
	done := make(chan struct{})
	publish := func(sig Signal) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, sig)
		if len(got) == 5 {
			close(done)
		}
	}

	src := &ScriptSource{Script: s}
	require.NoError(t, src.Start(context.Background(), publish))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("script did not finish")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, Idle(), got[4], "playback ends on idle")
}

func TestScriptSource_StartFailures(t *testing.T) {
	missing := &ScriptSource{Path: filepath.Join(t.TempDir(), "nope.yaml")}
	err := missing.Start(context.Background(), func(Signal) {})
	assert.True(t, errors.Is(err, ErrSourceUnavailable))

	empty := &ScriptSource{Script: &Script{}}
	err = empty.Start(context.Background(), func(Signal) {})
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestScriptSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var slot Slot
	src := &ScriptSource{Script: &Script{Interval: time.Millisecond, Loop: true, Steps: []Step{{Present: true}}}}
	require.NoError(t, src.Start(ctx, slot.Publish))
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)
	n := slot.Seq()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, slot.Seq())
	assert.Greater(t, n, uint64(1))
}

func TestPointer(t *testing.T) {
	var p Pointer
	frame := PointerState{X: 200, Y: 150, Width: 800, Height: 600}

	assert.Equal(t, Idle(), p.Update(frame), "button up is absence")

	frame.Wheel = 3
	p.Update(frame)
	assert.InDelta(t, 0.3, p.Expansion(), 1e-5, "wheel accumulates while absent")

	frame.Wheel = 0
	frame.Primary = true
	sig := p.Update(frame)
	assert.True(t, sig.Present)
	assert.InDelta(t, 0.3, sig.Expansion, 1e-5)
	assert.InDelta(t, 0.25, sig.Focus.X, 1e-5)
	assert.InDelta(t, 0.25, sig.Focus.Y, 1e-5)
	assert.Equal(t, float32(0), sig.Pinch)

	frame.Secondary = true
	frame.Wheel = 50
	frame.X = -10
	sig = p.Update(frame)
	assert.Equal(t, float32(1), sig.Pinch)
	assert.Equal(t, float32(1), sig.Expansion, "expansion saturates")
	assert.Equal(t, float32(0), sig.Focus.X, "focus clamped to the window")

	frame.Wheel = math32.NaN()
	p.Update(frame)
	assert.Equal(t, float32(1), p.Expansion())

	frame.Width = 0
	assert.Equal(t, Idle(), p.Update(frame), "minimised window reads as absent")
}

func TestBundledScriptParses(t *testing.T) {
	s, err := LoadScript(filepath.Join("..", "..", "scripts", "wave.yaml"))
	require.NoError(t, err)
	sigs := s.Signals()
	require.Len(t, sigs, 345)
	assert.Equal(t, Idle(), sigs[0])
	assert.True(t, sigs[30].Present)
	assert.Equal(t, Point{X: 0.8, Y: 0.4}, sigs[30+60+45+90].Focus)
	assert.Equal(t, Idle(), sigs[len(sigs)-1])
}
