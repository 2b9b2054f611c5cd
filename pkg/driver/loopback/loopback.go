// Package loopback registers a system audio driver that records what the
// machine is playing back. miniaudio implements loopback on WASAPI only, so
// the driver is registered on Windows and nowhere else.
package loopback

import (
	"io"
	"runtime"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/pion/screenshare/internal/logging"
	"github.com/pion/screenshare/pkg/driver"
	"github.com/pion/screenshare/pkg/driver/availability"
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/prop"
)

const (
	sampleRate   = 48000
	channelCount = 2
	sampleSize   = 2
)

var logger = logging.NewLogger("driver/loopback")

type loopback struct {
	ctx *malgo.AllocatedContext

	mu        sync.Mutex
	chunkChan chan []byte
	device    *malgo.Device
}

func init() {
	if runtime.GOOS != "windows" {
		return
	}

	ctx, err := malgo.InitContext([]malgo.Backend{malgo.BackendWasapi}, malgo.ContextConfig{}, func(message string) {
		logger.Debugf("%v", message)
	})
	if err != nil {
		logger.Warnf("system audio is unavailable: %v", err)
		return
	}

	err = driver.GetManager().Register(&loopback{ctx: ctx}, driver.Info{
		Label:      "system",
		DeviceType: driver.SystemAudio,
		Priority:   driver.PriorityHigh,
	})
	if err != nil {
		logger.Errorf("failed to register loopback driver: %v", err)
	}
}

func (l *loopback) Open() error {
	if l.ctx == nil {
		return availability.ErrUnsupported
	}
	l.mu.Lock()
	l.chunkChan = make(chan []byte, 8)
	l.mu.Unlock()
	return nil
}

func (l *loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.device != nil {
		if err := l.device.Stop(); err != nil {
			logger.Warnf("failed to stop loopback device: %v", err)
		}
		l.device.Uninit()
		l.device = nil
	}
	if l.chunkChan != nil {
		close(l.chunkChan)
		l.chunkChan = nil
	}
	return nil
}

func (l *loopback) AudioRecord(p prop.Media) (audio.Reader, error) {
	config := malgo.DefaultDeviceConfig(malgo.Loopback)
	config.Capture.Format = malgo.FormatS16
	config.Capture.Channels = channelCount
	config.SampleRate = sampleRate
	config.PerformanceProfile = malgo.LowLatency

	l.mu.Lock()
	chunkChan := l.chunkChan
	l.mu.Unlock()

	onRecvChunk := func(_, chunk []byte, _ uint32) {
		// miniaudio reuses its buffer after the callback returns.
		data := make([]byte, len(chunk))
		copy(data, chunk)
		select {
		case chunkChan <- data:
		default:
			logger.Trace("dropping system audio chunk, reader is too slow")
		}
	}

	device, err := malgo.InitDevice(l.ctx.Context, config, malgo.DeviceCallbacks{
		Data: onRecvChunk,
	})
	if err != nil {
		return nil, err
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, err
	}

	l.mu.Lock()
	l.device = device
	l.mu.Unlock()

	return audio.ReaderFunc(func() (audio.Chunk, func(), error) {
		data, ok := <-chunkChan
		if !ok {
			return audio.Chunk{}, func() {}, io.EOF
		}
		return audio.Chunk{
			Data:         data,
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			SampleSize:   sampleSize,
		}, func() {}, nil
	}), nil
}

func (l *loopback) Properties() []prop.Media {
	return []prop.Media{{
		Audio: prop.Audio{
			ChannelCount: channelCount,
			SampleRate:   sampleRate,
			SystemAudio:  true,
		},
	}}
}
