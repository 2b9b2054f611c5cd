package screenshare

import (
	"fmt"
	"testing"

	"github.com/pion/screenshare/pkg/prop"
)

type mockMediaStreamTrack struct {
	id      string
	kind    MediaDeviceType
	stopped int
}

func (track *mockMediaStreamTrack) ID() string {
	return track.id
}

func (track *mockMediaStreamTrack) Kind() MediaDeviceType {
	return track.kind
}

func (track *mockMediaStreamTrack) Settings() prop.Media {
	return prop.Media{}
}

func (track *mockMediaStreamTrack) OnEnded(handler func()) {
}

func (track *mockMediaStreamTrack) Stop() {
	track.stopped++
}

func TestMediaStreamFilters(t *testing.T) {
	var audioTracks, videoTracks []Track
	for i := 0; i < 5; i++ {
		audioTracks = append(audioTracks, &mockMediaStreamTrack{id: fmt.Sprint("audio", i), kind: AudioInput})
	}
	for i := 0; i < 3; i++ {
		videoTracks = append(videoTracks, &mockMediaStreamTrack{id: fmt.Sprint("video", i), kind: VideoInput})
	}

	tracks := append(append([]Track{}, audioTracks...), videoTracks...)
	stream, err := NewMediaStream(tracks...)
	if err != nil {
		t.Fatal(err)
	}

	expect := func(t *testing.T, actual, expected []Track) {
		if len(actual) != len(expected) {
			t.Fatalf("%s: Expected to get %d tracks, but got %d tracks", t.Name(), len(expected), len(actual))
		}

		for i := range actual {
			if actual[i] != expected[i] {
				t.Fatalf("%s: Expected track %s at %d, got %s", t.Name(), expected[i].ID(), i, actual[i].ID())
			}
		}
	}

	t.Run("GetAudioTracks", func(t *testing.T) {
		expect(t, stream.GetAudioTracks(), audioTracks)
	})

	t.Run("GetVideoTracks", func(t *testing.T) {
		expect(t, stream.GetVideoTracks(), videoTracks)
	})

	t.Run("GetTracks", func(t *testing.T) {
		expect(t, stream.GetTracks(), tracks)
	})
}

func TestMediaStreamAddRemove(t *testing.T) {
	a := &mockMediaStreamTrack{id: "a", kind: VideoInput}
	b := &mockMediaStreamTrack{id: "b", kind: AudioInput}

	stream, err := NewMediaStream(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(stream.GetTracks()); n != 1 {
		t.Fatalf("duplicated tracks must be ignored, got %d tracks", n)
	}

	stream.AddTrack(b)
	stream.RemoveTrack(a)
	tracks := stream.GetTracks()
	if len(tracks) != 1 || tracks[0] != Track(b) {
		t.Fatalf("unexpected tracks after remove: %v", tracks)
	}

	stream.Stop()
	if a.stopped != 0 || b.stopped != 1 {
		t.Errorf("Stop must stop the current tracks only, got a=%d b=%d", a.stopped, b.stopped)
	}
}
