package preset

import (
	"errors"
	"fmt"
	"io"

	"github.com/pion/screenshare/pkg/prop"
	"gopkg.in/yaml.v3"
)

// Overrides holds the overrides of a single tier as read from a file.
type Overrides struct {
	Video *VideoOverride
	Audio *AudioOverride
}

// LoadOverrides reads per-tier overrides from YAML:
//
//	desktop:
//	  video:
//	    width: {ideal: 1920, max: 2560}
//	    frameRate: 24
//	    cursor: motion
//	  audio:
//	    echoCancellation: false
//
// A bare number is an ideal value; a mapping takes min, max, ideal or exact.
func LoadOverrides(r io.Reader) (map[Tier]Overrides, error) {
	var doc map[string]tierDoc

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("preset: failed to parse overrides: %w", err)
	}

	out := make(map[Tier]Overrides, len(doc))
	for name, entry := range doc {
		t, err := ParseTier(name)
		if err != nil {
			return nil, err
		}

		var o Overrides
		if entry.Video != nil {
			if o.Video, err = entry.Video.override(); err != nil {
				return nil, fmt.Errorf("preset: %s: %w", name, err)
			}
		}
		if entry.Audio != nil {
			o.Audio = entry.Audio.override()
		}
		out[t] = o
	}
	return out, nil
}

type tierDoc struct {
	Video *videoDoc `yaml:"video"`
	Audio *audioDoc `yaml:"audio"`
}

type videoDoc struct {
	Width          *rangeDoc `yaml:"width"`
	Height         *rangeDoc `yaml:"height"`
	FrameRate      *rangeDoc `yaml:"frameRate"`
	Cursor         string    `yaml:"cursor"`
	DisplaySurface string    `yaml:"displaySurface"`
}

func (s *videoDoc) override() (*VideoOverride, error) {
	o := &VideoOverride{
		Width:     s.Width.intConstraint(),
		Height:    s.Height.intConstraint(),
		FrameRate: s.FrameRate.floatConstraint(),
	}

	switch c := CursorMode(s.Cursor); c {
	case "", CursorAlways, CursorMotion, CursorNever:
		o.Cursor = c
	default:
		return nil, fmt.Errorf("unknown cursor mode %q", s.Cursor)
	}

	switch d := DisplaySurface(s.DisplaySurface); d {
	case "", SurfaceMonitor, SurfaceWindow, SurfaceBrowser:
		o.DisplaySurface = d
	default:
		return nil, fmt.Errorf("unknown display surface %q", s.DisplaySurface)
	}
	return o, nil
}

type audioDoc struct {
	EchoCancellation *bool `yaml:"echoCancellation"`
	NoiseSuppression *bool `yaml:"noiseSuppression"`
	AutoGainControl  *bool `yaml:"autoGainControl"`
	SystemAudio      *bool `yaml:"systemAudio"`
}

func (s *audioDoc) override() *AudioOverride {
	return &AudioOverride{
		EchoCancellation: boolConstraint(s.EchoCancellation),
		NoiseSuppression: boolConstraint(s.NoiseSuppression),
		AutoGainControl:  boolConstraint(s.AutoGainControl),
		SystemAudio:      boolConstraint(s.SystemAudio),
	}
}

func boolConstraint(b *bool) prop.BoolConstraint {
	if b == nil {
		return nil
	}
	return prop.Bool(*b)
}

type rangeDoc struct {
	Min   float64  `yaml:"min"`
	Max   float64  `yaml:"max"`
	Ideal float64  `yaml:"ideal"`
	Exact *float64 `yaml:"exact"`
}

// UnmarshalYAML accepts either a bare ideal value or a mapping.
func (s *rangeDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&s.Ideal)
	}

	// Node.Decode does not inherit KnownFields from the outer decoder.
	if value.Kind == yaml.MappingNode {
		for i := 0; i < len(value.Content); i += 2 {
			switch key := value.Content[i]; key.Value {
			case "min", "max", "ideal", "exact":
			default:
				return fmt.Errorf("line %d: unknown range field %q", key.Line, key.Value)
			}
		}
	}

	type plain rangeDoc
	return value.Decode((*plain)(s))
}

func (s *rangeDoc) intConstraint() prop.IntConstraint {
	switch {
	case s == nil:
		return nil
	case s.Exact != nil:
		return prop.IntExact(int(*s.Exact))
	case s.Min == 0 && s.Max == 0:
		return prop.Int(int(s.Ideal))
	default:
		return prop.IntRanged{Min: int(s.Min), Max: int(s.Max), Ideal: int(s.Ideal)}
	}
}

func (s *rangeDoc) floatConstraint() prop.FloatConstraint {
	switch {
	case s == nil:
		return nil
	case s.Exact != nil:
		return prop.FloatExact(float32(*s.Exact))
	case s.Min == 0 && s.Max == 0:
		return prop.Float(float32(s.Ideal))
	default:
		return prop.FloatRanged{Min: float32(s.Min), Max: float32(s.Max), Ideal: float32(s.Ideal)}
	}
}
