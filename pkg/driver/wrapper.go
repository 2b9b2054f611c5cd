package driver

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

func wrapAdapter(a Adapter, info Info) (Driver, error) {
	generator, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	d := &adapterWrapper{
		Adapter: a,
		id:      generator.String(),
		info:    info,
		state:   StateClosed,
	}

	switch v := a.(type) {
	case VideoRecorder:
		return &videoAdapterWrapper{
			adapterWrapper: d,
			VideoRecorder:  v,
		}, nil
	case AudioRecorder:
		return &audioAdapterWrapper{
			adapterWrapper: d,
			AudioRecorder:  v,
		}, nil
	default:
		return nil, fmt.Errorf("adapter has to be either VideoRecorder/AudioRecorder")
	}
}

type adapterWrapper struct {
	Adapter
	id    string
	info  Info
	mu    sync.Mutex
	state State
}

func (w *adapterWrapper) ID() string {
	return w.id
}

func (w *adapterWrapper) Info() Info {
	return w.info
}

func (w *adapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *adapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.Adapter.Open)
}

func (w *adapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}
	return w.state.Update(StateClosed, w.Adapter.Close)
}

func (w *adapterWrapper) Properties() []prop.Media {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}

	return w.Adapter.Properties()
}

// record moves the driver to running. When f fails the driver is closed so
// that it can be selected again later.
func (w *adapterWrapper) record(f func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.state.Update(StateRunning, f)
	if err != nil && w.state != StateClosed {
		_ = w.state.Update(StateClosed, w.Adapter.Close)
	}
	return err
}

type videoAdapterWrapper struct {
	*adapterWrapper
	VideoRecorder
}

func (w *videoAdapterWrapper) VideoRecord(p prop.Media) (video.Reader, error) {
	var r video.Reader
	err := w.record(func() error {
		var err error
		r, err = w.VideoRecorder.VideoRecord(p)
		return err
	})
	return r, err
}

type audioAdapterWrapper struct {
	*adapterWrapper
	AudioRecorder
}

func (w *audioAdapterWrapper) AudioRecord(p prop.Media) (audio.Reader, error) {
	var r audio.Reader
	err := w.record(func() error {
		var err error
		r, err = w.AudioRecorder.AudioRecord(p)
		return err
	})
	return r, err
}
