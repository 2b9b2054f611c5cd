// Command screenshare probes screen capture support, prints the constraints
// a quality tier resolves to and captures a few frames to PNG files.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pion/screenshare"
	"github.com/pion/screenshare/internal/logging"
	"github.com/pion/screenshare/pkg/driver"
	_ "github.com/pion/screenshare/pkg/driver/loopback"
	_ "github.com/pion/screenshare/pkg/driver/screen"
	"github.com/pion/screenshare/pkg/driver/screentest"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/preset"
	"github.com/pion/screenshare/pkg/quality"
	"github.com/pion/webrtc/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
)

var logger = logging.NewLogger("cmd")

var flags struct {
	tier        string
	userAgent   string
	overrides   string
	audio       bool
	frames      int
	out         string
	fake        bool
	locale      string
	list        bool
	monitor     time.Duration
	metricsAddr string
	help        bool
}

func main() {
	flag.StringVarP(&flags.tier, "tier", "t", "", "quality tier (default: picked from --user-agent)")
	flag.StringVar(&flags.userAgent, "user-agent", "", "client user agent used to pick a default tier")
	flag.StringVar(&flags.overrides, "overrides", "", "YAML file with per-tier overrides")
	flag.BoolVar(&flags.audio, "audio", false, "capture system audio when the tier allows it")
	flag.IntVarP(&flags.frames, "frames", "n", 0, "number of frames to capture")
	flag.StringVarP(&flags.out, "out", "o", ".", "directory captured frames are written to")
	flag.BoolVar(&flags.fake, "fake", false, "capture a fake 1920x1080 screen instead of the real displays")
	flag.StringVar(&flags.locale, "locale", string(preset.English), "language of tier descriptions (en, zh)")
	flag.BoolVar(&flags.list, "list", false, "list the quality tiers and exit")
	flag.DurationVar(&flags.monitor, "monitor", 0, "watch the quality of a loopback peer connection for this long")
	flag.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while monitoring")
	flag.BoolVarP(&flags.help, "help", "h", false, "print help")
	flag.Parse()

	if flags.help {
		fmt.Println("screenshare: screen capture presets and connection quality")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "screenshare: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	locale := preset.Locale(flags.locale)
	if flags.list {
		for _, tier := range preset.Tiers() {
			fmt.Printf("%-16s %s\n%-16s %s\n", tier, locale.Description(string(tier)), "", locale.Hint(string(tier)))
		}
		return nil
	}

	opts := screenshare.CaptureOptions{
		UserAgent: flags.userAgent,
		Audio:     flags.audio,
	}
	if flags.tier != "" {
		tier, err := preset.ParseTier(flags.tier)
		if err != nil {
			return err
		}
		opts.Quality = tier
	}
	if flags.overrides != "" {
		if err := applyOverrides(&opts); err != nil {
			return err
		}
	}

	var mdOpts []screenshare.MediaDevicesOption
	if flags.fake {
		m := driver.NewManager()
		if err := m.Register(screentest.New(1920, 1080), driver.Info{Label: "fake", DeviceType: driver.Screen}); err != nil {
			return err
		}
		if err := m.Register(screentest.NewSystemAudio(), driver.Info{Label: "fake", DeviceType: driver.SystemAudio}); err != nil {
			return err
		}
		mdOpts = append(mdOpts, screenshare.WithDriverManager(m))
	}
	md := screenshare.NewMediaDevices(mdOpts...)

	// A local command is a secure context.
	support := screenshare.CheckCaptureSupport(screenshare.Environment{MediaDevices: md, SecureContext: true})
	if support.Supported {
		fmt.Println("capture supported: yes")
	} else {
		fmt.Printf("capture supported: no (%s)\n", support.Reason)
	}
	for _, d := range md.EnumerateDevices() {
		fmt.Printf("  %-10s %-12s %s\n", d.Kind, d.DeviceType, d.Label)
	}

	tier, constraints := opts.Constraints()
	fmt.Printf("tier: %s (%s)\n", tier, locale.Description(string(tier)))
	var vc screenshare.MediaTrackConstraints
	constraints.Video(&vc)
	fmt.Printf("video: %s\n", vc.MediaConstraints.String())
	if constraints.Audio != nil {
		var ac screenshare.MediaTrackConstraints
		constraints.Audio(&ac)
		fmt.Printf("audio: %s\n", ac.MediaConstraints.String())
	}

	if flags.frames > 0 && support.Supported {
		if err := capture(md, opts); err != nil {
			return err
		}
	}

	if flags.monitor > 0 {
		return monitor(flags.monitor)
	}
	return nil
}

func applyOverrides(opts *screenshare.CaptureOptions) error {
	f, err := os.Open(flags.overrides)
	if err != nil {
		return err
	}
	defer f.Close()

	overrides, err := preset.LoadOverrides(f)
	if err != nil {
		return fmt.Errorf("%s: %w", flags.overrides, err)
	}

	tier, _ := opts.Constraints()
	if o, ok := overrides[tier]; ok {
		opts.VideoOverride = o.Video
		opts.AudioOverride = o.Audio
	}
	return nil
}

func capture(md screenshare.MediaDevices, opts screenshare.CaptureOptions) error {
	stream, err := screenshare.RequestCapture(md, opts)
	if err != nil {
		return err
	}
	defer stream.Stop()

	track := stream.GetVideoTracks()[0].(*screenshare.VideoTrack)
	ended := make(chan struct{})
	track.OnEnded(func() {
		fmt.Println("screen sharing ended")
		close(ended)
	})

	settings := track.Settings()
	fmt.Printf("capturing %d frame(s) at %dx%d@%.0ffps\n", flags.frames, settings.Width, settings.Height, settings.FrameRate)

	reader := track.NewReader()
	for i := 0; i < flags.frames; i++ {
		if err := writeFrame(reader, filepath.Join(flags.out, fmt.Sprintf("frame-%03d.png", i))); err != nil {
			select {
			case <-ended:
				return nil
			default:
				return err
			}
		}
	}

	for _, t := range stream.GetAudioTracks() {
		chunk, _, err := t.(*screenshare.AudioTrack).NewReader().Read()
		if err != nil {
			return err
		}
		fmt.Printf("system audio: %d frame(s) of %dHz x%d per chunk\n", chunk.Frames(), chunk.SampleRate, chunk.ChannelCount)
	}
	return nil
}

func writeFrame(r video.Reader, name string) error {
	img, release, err := r.Read()
	if err != nil {
		return err
	}
	defer release()

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	logger.Debugf("wrote %s", name)
	return f.Close()
}

func monitor(d time.Duration) error {
	offerer, answerer, err := loopbackPair()
	if err != nil {
		return err
	}
	defer offerer.Close()
	defer answerer.Close()

	reg := prometheus.NewRegistry()
	collector, err := quality.NewCollector(reg)
	if err != nil {
		return err
	}
	if flags.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(flags.metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("failed to start metrics server: %v", err)
			}
		}()
		fmt.Printf("prometheus metrics exported on %s\n", flags.metricsAddr)
	}

	m, err := quality.Watch(offerer, func(l quality.Label) {
		fmt.Printf("%s connection quality: %s\n", time.Now().Format(time.TimeOnly), l)
	}, quality.WithMetrics(collector), quality.WithName("loopback"))
	if err != nil {
		return err
	}
	defer m.Stop()

	time.Sleep(d)
	return nil
}

// loopbackPair connects two peer connections in process.
func loopbackPair() (*webrtc.PeerConnection, *webrtc.PeerConnection, error) {
	offerer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, nil, err
	}
	answerer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		offerer.Close()
		return nil, nil, err
	}

	err = func() error {
		if _, err := offerer.CreateDataChannel("probe", nil); err != nil {
			return err
		}

		offer, err := offerer.CreateOffer(nil)
		if err != nil {
			return err
		}
		gatherComplete := webrtc.GatheringCompletePromise(offerer)
		if err := offerer.SetLocalDescription(offer); err != nil {
			return err
		}
		<-gatherComplete
		if err := answerer.SetRemoteDescription(*offerer.LocalDescription()); err != nil {
			return err
		}

		answer, err := answerer.CreateAnswer(nil)
		if err != nil {
			return err
		}
		gatherComplete = webrtc.GatheringCompletePromise(answerer)
		if err := answerer.SetLocalDescription(answer); err != nil {
			return err
		}
		<-gatherComplete
		return offerer.SetRemoteDescription(*answerer.LocalDescription())
	}()
	if err != nil {
		offerer.Close()
		answerer.Close()
		return nil, nil, err
	}
	return offerer, answerer, nil
}
