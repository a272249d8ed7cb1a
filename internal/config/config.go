package config

import (
	"os"
	"path/filepath"

	"particle-morph/internal/dust"
	"particle-morph/internal/morph"
	"particle-morph/internal/scene"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/morph.yaml"

// Window holds the raylib window settings.
type Window struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	TargetFPS int32  `yaml:"target_fps"`
}

// Cloud holds the main point cloud and morph tuning.
type Cloud struct {
	Count          int     `yaml:"count"`
	Blend          float32 `yaml:"blend"`
	DriftSpeed     float32 `yaml:"drift_speed"`
	DriftAmplitude float32 `yaml:"drift_amplitude"`
	SphereRadius   float32 `yaml:"sphere_radius"`
	GalaxyScale    float32 `yaml:"galaxy_scale"`
	BaseSpin       float32 `yaml:"base_spin"`
	SpinGain       float32 `yaml:"spin_gain"`
	ScaleGain      float32 `yaml:"scale_gain"`
	ReferenceStep  float32 `yaml:"reference_step,omitempty"`
}

// Dust holds the background field. Count 0 disables it.
type Dust struct {
	Count     int     `yaml:"count"`
	Speed     float32 `yaml:"speed"`
	Amplitude float32 `yaml:"amplitude"`
}

// Camera holds the gesture to camera mapping.
type Camera struct {
	IdleZ     float32 `yaml:"idle_z"`
	FarZ      float32 `yaml:"far_z"`
	ZoomRange float32 `yaml:"zoom_range"`
	PanX      float32 `yaml:"pan_x"`
	PanY      float32 `yaml:"pan_y"`
	Smoothing float32 `yaml:"smoothing"`
	Fovy      float32 `yaml:"fovy"`
}

// Config is the persisted application configuration.
type Config struct {
	// Seed feeds the shape generator; 0 picks a time-based seed.
	Seed    int64  `yaml:"seed"`
	ShowFPS bool   `yaml:"show_fps"`
	LogPath string `yaml:"log_path,omitempty"`
	// Script, when set, replays a gesture script instead of reading the mouse.
	Script  string `yaml:"script,omitempty"`
	// Font names a console font under assets/fonts; empty uses the raylib default.
	Font    string `yaml:"font,omitempty"`
	Window  Window `yaml:"window"`
	Cloud   Cloud  `yaml:"cloud"`
	Dust    Dust   `yaml:"dust"`
	Camera  Camera `yaml:"camera"`
}

// Default returns the tuned configuration.
func Default() Config {
	m := morph.DefaultOptions()
	d := dust.DefaultOptions()
	s := scene.DefaultOptions()
	return Config{
		Window: Window{Title: "Particle Morph", Width: 1280, Height: 720, TargetFPS: 60},
		Cloud: Cloud{
			Count:          30000,
			Blend:          m.Blend,
			DriftSpeed:     m.DriftSpeed,
			DriftAmplitude: m.DriftAmplitude,
			SphereRadius:   m.SphereRadius,
			GalaxyScale:    m.GalaxyScale,
			BaseSpin:       m.BaseSpin,
			SpinGain:       m.SpinGain,
			ScaleGain:      m.ScaleGain,
		},
		Dust: Dust{Count: 600, Speed: d.Speed, Amplitude: d.Amplitude},
		Camera: Camera{
			IdleZ:     s.IdlePosition[2],
			FarZ:      s.FarZ,
			ZoomRange: s.ZoomRange,
			PanX:      s.PanX,
			PanY:      s.PanY,
			Smoothing: s.Smoothing,
			Fovy:      s.Fovy,
		},
	}
}

// Load reads the config at path (ConfigPath when empty) on top of Default, so a partial file
// only overrides what it names. A missing file yields Default() and no error. An unreadable or
// invalid file yields Default() and the error.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "config: parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path (ConfigPath when empty), creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "config: create dir")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config: encode")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "config: write")
}

// Validate reports the first setting the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Cloud.Count <= 0:
		return errors.Wrapf(morph.ErrInvalidCount, "cloud.count %d", c.Cloud.Count)
	case !(c.Cloud.Blend > 0 && c.Cloud.Blend < 1):
		return errors.Wrapf(morph.ErrInvalidBlend, "cloud.blend %v", c.Cloud.Blend)
	case c.Dust.Count < 0:
		return errors.Errorf("dust.count %d", c.Dust.Count)
	case !(c.Camera.Smoothing > 0 && c.Camera.Smoothing <= 1):
		return errors.Errorf("camera.smoothing %v not in (0,1]", c.Camera.Smoothing)
	case c.Camera.ZoomRange <= 0:
		return errors.Errorf("camera.zoom_range %v", c.Camera.ZoomRange)
	case c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180:
		return errors.Errorf("camera.fovy %v", c.Camera.Fovy)
	}
	return nil
}

// Merge copies every non-zero field of overrides into dst, section by section. Zero values
// (empty strings, 0, false) never override, so a flag left at its zero default keeps the file
// value.
func Merge(dst *Config, overrides Config) error {
	opt := copier.Option{IgnoreEmpty: true}
	pairs := []struct{ to, from any }{
		{&dst.Window, overrides.Window},
		{&dst.Cloud, overrides.Cloud},
		{&dst.Dust, overrides.Dust},
		{&dst.Camera, overrides.Camera},
	}
	for _, p := range pairs {
		if err := copier.CopyWithOption(p.to, p.from, opt); err != nil {
			return errors.Wrap(err, "config: merge")
		}
	}
	if overrides.Seed != 0 {
		dst.Seed = overrides.Seed
	}
	if overrides.ShowFPS {
		dst.ShowFPS = true
	}
	if overrides.LogPath != "" {
		dst.LogPath = overrides.LogPath
	}
	if overrides.Script != "" {
		dst.Script = overrides.Script
	}
	if overrides.Font != "" {
		dst.Font = overrides.Font
	}
	return nil
}

// MorphOptions maps the cloud section onto the engine options.
func (c Config) MorphOptions() morph.Options {
	return morph.Options{
		Blend:          c.Cloud.Blend,
		DriftSpeed:     c.Cloud.DriftSpeed,
		DriftAmplitude: c.Cloud.DriftAmplitude,
		SphereRadius:   c.Cloud.SphereRadius,
		GalaxyScale:    c.Cloud.GalaxyScale,
		BaseSpin:       c.Cloud.BaseSpin,
		SpinGain:       c.Cloud.SpinGain,
		ScaleGain:      c.Cloud.ScaleGain,
		ReferenceStep:  c.Cloud.ReferenceStep,
	}
}

// DustOptions maps the dust section onto the field options.
func (c Config) DustOptions() dust.Options {
	return dust.Options{Speed: c.Dust.Speed, Amplitude: c.Dust.Amplitude}
}

// SceneOptions maps the camera section onto the controller options.
func (c Config) SceneOptions() scene.Options {
	o := scene.DefaultOptions()
	o.IdlePosition = [3]float32{0, 0, c.Camera.IdleZ}
	o.FarZ = c.Camera.FarZ
	o.ZoomRange = c.Camera.ZoomRange
	o.PanX = c.Camera.PanX
	o.PanY = c.Camera.PanY
	o.Smoothing = c.Camera.Smoothing
	o.Fovy = c.Camera.Fovy
	return o
}
