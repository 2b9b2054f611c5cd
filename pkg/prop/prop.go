package prop

import (
	"fmt"
	"reflect"
)

// MediaConstraints represents set of media property constraints.
// Each field constrains property by min/ideal/max range, exact match, or possible values.
// A nil field means the property is not constrained.
type MediaConstraints struct {
	DeviceID StringConstraint
	VideoConstraints
	AudioConstraints
}

// String prints a one-line description of the constraints.
func (m *MediaConstraints) String() string {
	return prettifyStruct(m)
}

// VideoConstraints represents a video's constraints
type VideoConstraints struct {
	Width, Height  IntConstraint
	FrameRate      FloatConstraint
	DisplaySurface StringConstraint
	Cursor         StringConstraint
}

// AudioConstraints represents an audio's constraints
type AudioConstraints struct {
	ChannelCount     IntConstraint
	SampleRate       IntConstraint
	EchoCancellation BoolConstraint
	NoiseSuppression BoolConstraint
	AutoGainControl  BoolConstraint
	SystemAudio      BoolConstraint
}

// Media stores single set of media properties.
type Media struct {
	DeviceID string
	Video
	Audio
}

// String prints a one-line description of the media properties.
func (m *Media) String() string {
	return prettifyStruct(m)
}

// Video represents a video's properties
type Video struct {
	Width, Height  int
	FrameRate      float32
	DisplaySurface string
	Cursor         string
}

// Audio represents an audio's properties
type Audio struct {
	ChannelCount     int
	SampleRate       int
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
	SystemAudio      bool
}

// FitnessDistance calculates fitness of media property and media constraints.
// If no media satisfies the constraints, second return value will be false.
func (p *MediaConstraints) FitnessDistance(o Media) (float64, bool) {
	cmps := comparisons{}

	cmps.add(p.DeviceID, o.DeviceID)
	cmps.add(p.Width, o.Width)
	cmps.add(p.Height, o.Height)
	cmps.add(p.FrameRate, o.FrameRate)
	cmps.add(p.DisplaySurface, o.DisplaySurface)
	cmps.add(p.Cursor, o.Cursor)
	cmps.add(p.ChannelCount, o.ChannelCount)
	cmps.add(p.SampleRate, o.SampleRate)
	cmps.add(p.EchoCancellation, o.EchoCancellation)
	cmps.add(p.NoiseSuppression, o.NoiseSuppression)
	cmps.add(p.AutoGainControl, o.AutoGainControl)
	cmps.add(p.SystemAudio, o.SystemAudio)

	return cmps.fitnessDistance()
}

type comparisons []struct {
	desired, actual interface{}
}

func (c *comparisons) add(desired, actual interface{}) {
	if desired == nil {
		return
	}
	if v := reflect.ValueOf(desired); v.Kind() == reflect.Slice && v.IsNil() {
		return
	}
	*c = append(*c,
		struct{ desired, actual interface{} }{
			desired, actual,
		},
	)
}

// fitnessDistance is an implementation for https://w3c.github.io/mediacapture-main/#dfn-fitness-distance
func (c *comparisons) fitnessDistance() (float64, bool) {
	var dist float64
	for _, field := range *c {
		var d float64
		var ok bool

		switch c := field.desired.(type) {
		case IntConstraint:
			actual, typeOK := field.actual.(int)
			if !typeOK {
				panic("wrong type of actual value")
			}
			d, ok = c.Compare(actual)
		case FloatConstraint:
			actual, typeOK := field.actual.(float32)
			if !typeOK {
				panic("wrong type of actual value")
			}
			d, ok = c.Compare(actual)
		case StringConstraint:
			actual, typeOK := field.actual.(string)
			if !typeOK {
				panic("wrong type of actual value")
			}
			d, ok = c.Compare(actual)
		case BoolConstraint:
			actual, typeOK := field.actual.(bool)
			if !typeOK {
				panic("wrong type of actual value")
			}
			d, ok = c.Compare(actual)
		default:
			panic("unsupported constraint type")
		}

		dist += d
		if !ok {
			return 0, false
		}
	}
	return dist, true
}

// Merge merges all the field values from o to p, except zero values.
// Boolean fields are always copied.
func (p *Media) Merge(o Media) {
	rp := reflect.ValueOf(p).Elem()
	ro := reflect.ValueOf(o)

	// merge b fields to a recursively
	var merge func(a, b reflect.Value)
	merge = func(a, b reflect.Value) {
		numFields := a.NumField()
		for i := 0; i < numFields; i++ {
			fieldA := a.Field(i)
			fieldB := b.Field(i)

			// if a is a struct, b is also a struct. Then,
			// we recursively merge them
			if fieldA.Kind() == reflect.Struct {
				merge(fieldA, fieldB)
				continue
			}

			if fieldB.IsZero() && fieldB.Kind() != reflect.Bool {
				continue
			}

			fieldA.Set(fieldB)
		}
	}

	merge(rp, ro)
}

// MergeConstraints merges the values of constraints that pin down a single
// value (exact or ideal) into p. Ranged and one-of constraints are skipped.
func (p *Media) MergeConstraints(o MediaConstraints) {
	if v, ok := stringValue(o.DeviceID); ok {
		p.DeviceID = v
	}
	if v, ok := intValue(o.Width); ok {
		p.Width = v
	}
	if v, ok := intValue(o.Height); ok {
		p.Height = v
	}
	if v, ok := floatValue(o.FrameRate); ok {
		p.FrameRate = v
	}
	if v, ok := stringValue(o.DisplaySurface); ok {
		p.DisplaySurface = v
	}
	if v, ok := stringValue(o.Cursor); ok {
		p.Cursor = v
	}
	if v, ok := intValue(o.ChannelCount); ok {
		p.ChannelCount = v
	}
	if v, ok := intValue(o.SampleRate); ok {
		p.SampleRate = v
	}
	if o.EchoCancellation != nil {
		p.EchoCancellation = o.EchoCancellation.Value()
	}
	if o.NoiseSuppression != nil {
		p.NoiseSuppression = o.NoiseSuppression.Value()
	}
	if o.AutoGainControl != nil {
		p.AutoGainControl = o.AutoGainControl.Value()
	}
	if o.SystemAudio != nil {
		p.SystemAudio = o.SystemAudio.Value()
	}
}

func intValue(c IntConstraint) (int, bool) {
	if c == nil {
		return 0, false
	}
	return c.Value()
}

func floatValue(c FloatConstraint) (float32, bool) {
	if c == nil {
		return 0, false
	}
	return c.Value()
}

func stringValue(c StringConstraint) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.Value()
}

func prettifyStruct(i interface{}) string {
	var out []string
	var addStruct func(reflect.Value)
	addStruct = func(obj reflect.Value) {
		for i := 0; i < obj.NumField(); i++ {
			field := obj.Field(i)
			fieldType := obj.Type().Field(i)
			if field.Kind() == reflect.Struct && fieldType.Anonymous {
				addStruct(field)
				continue
			}
			if field.Kind() == reflect.Interface && field.IsNil() {
				continue
			}
			out = append(out, fmt.Sprintf("%s: %v", fieldType.Name, field.Interface()))
		}
	}
	addStruct(reflect.ValueOf(i).Elem())

	var s string
	for i, o := range out {
		if i > 0 {
			s += ", "
		}
		s += o
	}
	return s
}
