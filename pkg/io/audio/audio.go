// Package audio provides chunk readers for captured system audio.
package audio

// Chunk is a block of interleaved PCM samples.
type Chunk struct {
	Data         []byte
	SampleRate   int
	ChannelCount int
	// SampleSize is the size of a single sample in bytes.
	SampleSize int
}

// Frames returns the number of sample frames in c.
func (c Chunk) Frames() int {
	if c.ChannelCount <= 0 || c.SampleSize <= 0 {
		return 0
	}
	return len(c.Data) / (c.ChannelCount * c.SampleSize)
}

// Reader produces audio chunks.
type Reader interface {
	Read() (chunk Chunk, release func(), err error)
}

// ReaderFunc is a proxy type to make easier for users to implement Reader
type ReaderFunc func() (chunk Chunk, release func(), err error)

// Read implements Reader.
func (rf ReaderFunc) Read() (chunk Chunk, release func(), err error) {
	chunk, release, err = rf()
	return
}

// TransformFunc produces a new Reader that will produces a transformed audio
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}
