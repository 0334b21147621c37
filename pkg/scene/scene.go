package scene

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flipkit/pkg/anim"
	"github.com/matzehuels/flipkit/pkg/errors"
	"github.com/matzehuels/flipkit/pkg/flip"
	"github.com/matzehuels/flipkit/pkg/matrix"
)

// Supported scene formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Defaults for scenes that leave fields out.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
	FadeEffect    = "fade"
)

// Scene is a decoded scene file.
type Scene struct {
	Name     string   `toml:"name" yaml:"name" json:"name"`
	Viewport Viewport `toml:"viewport" yaml:"viewport" json:"viewport"`
	Options  Options  `toml:"options" yaml:"options" json:"options"`
	Frames   []Frame  `toml:"frames" yaml:"frames" json:"frames"`
}

// Viewport is the visible area in pixels.
type Viewport struct {
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Options are the container-level animation settings.
type Options struct {
	Duration             float64 `toml:"duration" yaml:"duration" json:"duration"` // ms
	Easing               string  `toml:"easing" yaml:"easing" json:"easing"`
	Spring               *Spring `toml:"spring" yaml:"spring" json:"spring"`
	ApplyTransformOrigin *bool   `toml:"apply_transform_origin" yaml:"apply_transform_origin" json:"apply_transform_origin"`
	Debug                bool    `toml:"debug" yaml:"debug" json:"debug"`
	Stagger              float64 `toml:"stagger" yaml:"stagger" json:"stagger"` // ms between fades
}

// Spring selects a preset or explicit parameters. Explicit non-zero values
// override the preset's.
type Spring struct {
	Preset            string  `toml:"preset" yaml:"preset" json:"preset"`
	Stiffness         float64 `toml:"stiffness" yaml:"stiffness" json:"stiffness"`
	Damping           float64 `toml:"damping" yaml:"damping" json:"damping"`
	Mass              float64 `toml:"mass" yaml:"mass" json:"mass"`
	OvershootClamping bool    `toml:"overshoot_clamping" yaml:"overshoot_clamping" json:"overshoot_clamping"`
}

// Frame is one complete layout.
type Frame struct {
	Name   string  `toml:"name" yaml:"name" json:"name"`
	Layout string  `toml:"layout" yaml:"layout" json:"layout"`
	Gap    float64 `toml:"gap" yaml:"gap" json:"gap"`
	Nodes  []Node  `toml:"nodes" yaml:"nodes" json:"nodes"`
}

// Node is one box of a frame.
type Node struct {
	ID      string `toml:"id" yaml:"id" json:"id"`
	Inverse string `toml:"inverse" yaml:"inverse" json:"inverse"`

	X float64 `toml:"x" yaml:"x" json:"x"`
	Y float64 `toml:"y" yaml:"y" json:"y"`
	W float64 `toml:"w" yaml:"w" json:"w"`
	H float64 `toml:"h" yaml:"h" json:"h"`

	Layout    string   `toml:"layout" yaml:"layout" json:"layout"`
	Gap       float64  `toml:"gap" yaml:"gap" json:"gap"`
	Transform string   `toml:"transform" yaml:"transform" json:"transform"`
	Opacity   *float64 `toml:"opacity" yaml:"opacity" json:"opacity"`

	Translate       *bool    `toml:"translate" yaml:"translate" json:"translate"`
	Scale           *bool    `toml:"scale" yaml:"scale" json:"scale"`
	AnimateOpacity  *bool    `toml:"animate_opacity" yaml:"animate_opacity" json:"animate_opacity"`
	Spring          *Spring  `toml:"spring" yaml:"spring" json:"spring"`
	Ease            string   `toml:"ease" yaml:"ease" json:"ease"`
	Duration        float64  `toml:"duration" yaml:"duration" json:"duration"` // ms
	Delay           float64  `toml:"delay" yaml:"delay" json:"delay"`          // ms
	Origin          string   `toml:"origin" yaml:"origin" json:"origin"`
	Component       string   `toml:"component" yaml:"component" json:"component"`
	ComponentFilter []string `toml:"component_filter" yaml:"component_filter" json:"component_filter"`
	Appear          string   `toml:"appear" yaml:"appear" json:"appear"`
	Exit            string   `toml:"exit" yaml:"exit" json:"exit"`

	Label    string `toml:"label" yaml:"label" json:"label"`
	Color    string `toml:"color" yaml:"color" json:"color"`
	Children []Node `toml:"children" yaml:"children" json:"children"`
}

// Load reads the scene file at path. The format is chosen by extension:
// .toml, .yaml/.yml or .json.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "open %s", path)
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "load %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FormatOf returns the scene format for a file name.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", filepath.Ext(path))
}

// Decode reads a scene in format from r, applies defaults and validates it.
func Decode(r io.Reader, format string) (*Scene, error) {
	if err := errors.ValidateFormat(format, FormatTOML, FormatYAML, FormatJSON); err != nil {
		return nil, err
	}

	var s Scene
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s", format)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Viewport.Width <= 0 {
		s.Viewport.Width = DefaultWidth
	}
	if s.Viewport.Height <= 0 {
		s.Viewport.Height = DefaultHeight
	}
	if s.Options.ApplyTransformOrigin == nil {
		on := true
		s.Options.ApplyTransformOrigin = &on
	}
}

// Validate checks the scene for errors a player could not recover from.
func (s *Scene) Validate() error {
	if len(s.Frames) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no frames")
	}
	if _, err := s.FlipOptions(); err != nil {
		return err
	}
	for i, f := range s.Frames {
		if _, err := parseLayout(f.Layout); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "frame %d", i)
		}
		seen := make(map[string]bool)
		for _, n := range f.Nodes {
			if err := n.validate(seen); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "frame %d", i)
			}
		}
	}
	return nil
}

func (n Node) validate(seen map[string]bool) error {
	if n.ID != "" {
		if err := errors.ValidateFlipID(n.ID); err != nil {
			return err
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidFlipID, "duplicate flip id %q", n.ID)
		}
		seen[n.ID] = true
	}
	if n.Inverse != "" {
		if err := errors.ValidateFlipID(n.Inverse); err != nil {
			return err
		}
	}
	if n.W < 0 || n.H < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "node %q has negative size", n.ID)
	}
	if _, err := parseLayout(n.Layout); err != nil {
		return err
	}
	if _, err := matrix.Parse(n.Transform); err != nil {
		return err
	}
	if n.Ease != "" {
		if _, err := anim.ParseEasing(n.Ease); err != nil {
			return err
		}
	}
	if n.Spring != nil {
		if _, err := n.Spring.Params(); err != nil {
			return err
		}
	}
	for _, effect := range []string{n.Appear, n.Exit} {
		if effect != "" && effect != FadeEffect {
			return errors.New(errors.ErrCodeInvalidScene, "unknown effect %q", effect)
		}
	}
	for _, c := range n.Children {
		if err := c.validate(seen); err != nil {
			return err
		}
	}
	return nil
}

// Params resolves the spring to engine parameters.
func (sp Spring) Params() (anim.SpringParams, error) {
	name := sp.Preset
	if name == "" {
		name = anim.DefaultSpring
	}
	p, err := anim.SpringPreset(name)
	if err != nil {
		return anim.SpringParams{}, err
	}
	if sp.Stiffness != 0 {
		p.Stiffness = sp.Stiffness
	}
	if sp.Damping != 0 {
		p.Damping = sp.Damping
	}
	if sp.Mass != 0 {
		p.Mass = sp.Mass
	}
	p.OvershootClamping = sp.OvershootClamping
	return p, p.Validate()
}

// FlipOptions returns the engine options with defaults applied.
func (s *Scene) FlipOptions() (flip.Options, error) {
	o := flip.Options{
		Duration: millis(s.Options.Duration),
		Easing:   s.Options.Easing,
		Debug:    s.Options.Debug,
	}
	if s.Options.ApplyTransformOrigin != nil {
		o.ApplyTransformOrigin = *s.Options.ApplyTransformOrigin
	}
	if s.Options.Spring != nil {
		p, err := s.Options.Spring.Params()
		if err != nil {
			return flip.Options{}, err
		}
		o.Spring = p
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return flip.Options{}, err
	}
	return o, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
