package audio

import "testing"

func TestChunkFrames(t *testing.T) {
	testCases := map[string]struct {
		chunk  Chunk
		frames int
	}{
		"StereoS16": {Chunk{Data: make([]byte, 1920), ChannelCount: 2, SampleSize: 2}, 480},
		"MonoF32":   {Chunk{Data: make([]byte, 1920), ChannelCount: 1, SampleSize: 4}, 480},
		"Unknown":   {Chunk{Data: make([]byte, 1920)}, 0},
	}

	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			if n := c.chunk.Frames(); n != c.frames {
				t.Errorf("expected %d frames, got %d", c.frames, n)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	var order []int
	mark := func(i int) TransformFunc {
		return func(r Reader) Reader {
			return ReaderFunc(func() (Chunk, func(), error) {
				c, release, err := r.Read()
				order = append(order, i)
				return c, release, err
			})
		}
	}

	src := ReaderFunc(func() (Chunk, func(), error) {
		return Chunk{SampleRate: 48000}, func() {}, nil
	})
	r := Merge(mark(1), nil, mark(2))(src)

	c, _, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if c.SampleRate != 48000 {
		t.Errorf("unexpected chunk: %+v", c)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("transforms ran in wrong order: %v", order)
	}
}
