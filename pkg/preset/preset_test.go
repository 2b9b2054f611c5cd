package preset

import (
	"errors"
	"testing"

	"github.com/pion/screenshare/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	phoneUA   = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Mobile Safari/537.36"
	tabletUA  = "Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

func TestResolveDefaults(t *testing.T) {
	expected := map[Tier]struct {
		video Video
		audio Audio
	}{
		AICompatible: {
			Video{prop.IntRanged{Ideal: 500, Max: 800}, prop.IntRanged{Ideal: 500, Max: 800}, prop.FloatRanged{Ideal: 30, Max: 60}, CursorAlways, SurfaceMonitor},
			Audio{prop.Bool(true), prop.Bool(true), prop.Bool(true), prop.Bool(true)},
		},
		Mobile: {
			Video{prop.IntRanged{Ideal: 720, Max: 960}, prop.IntRanged{Ideal: 480, Max: 640}, prop.FloatRanged{Ideal: 8, Max: 12}, CursorAlways, SurfaceWindow},
			Audio{prop.Bool(true), prop.Bool(true), prop.Bool(true), prop.Bool(false)},
		},
		Desktop: {
			Video{prop.IntRanged{Ideal: 1280, Max: 1600}, prop.IntRanged{Ideal: 720, Max: 900}, prop.FloatRanged{Ideal: 15, Max: 20}, CursorAlways, SurfaceMonitor},
			Audio{prop.Bool(true), prop.Bool(true), prop.Bool(true), prop.Bool(true)},
		},
		HighBandwidth: {
			Video{prop.IntRanged{Ideal: 1920, Max: 2560}, prop.IntRanged{Ideal: 1080, Max: 1440}, prop.FloatRanged{Ideal: 15, Max: 24}, CursorAlways, SurfaceMonitor},
			Audio{prop.Bool(true), prop.Bool(true), nil, prop.Bool(true)},
		},
	}

	require.Len(t, Tiers(), len(expected))
	for _, tier := range Tiers() {
		tier := tier
		t.Run(string(tier), func(t *testing.T) {
			v, a := Resolve(tier, phoneUA, nil, nil)
			assert.Equal(t, expected[tier].video, v)
			assert.Equal(t, expected[tier].audio, a)

			lv, la, ok := Lookup(tier)
			require.True(t, ok)
			assert.Equal(t, lv, v)
			assert.Equal(t, la, a)
		})
	}
}

func TestResolveOverride(t *testing.T) {
	for _, tier := range Tiers() {
		tier := tier
		t.Run(string(tier), func(t *testing.T) {
			defVideo, defAudio, _ := Lookup(tier)

			v, a := Resolve(tier, desktopUA,
				&VideoOverride{
					Width:  prop.IntExact(640),
					Cursor: CursorNever,
				},
				&AudioOverride{
					EchoCancellation: prop.Bool(false),
				},
			)

			assert.Equal(t, prop.IntExact(640), v.Width)
			assert.Equal(t, CursorNever, v.Cursor)
			assert.Equal(t, defVideo.Height, v.Height)
			assert.Equal(t, defVideo.FrameRate, v.FrameRate)
			assert.Equal(t, defVideo.DisplaySurface, v.DisplaySurface)

			assert.Equal(t, prop.Bool(false), a.EchoCancellation)
			assert.Equal(t, defAudio.NoiseSuppression, a.NoiseSuppression)
			assert.Equal(t, defAudio.AutoGainControl, a.AutoGainControl)
			assert.Equal(t, defAudio.SystemAudio, a.SystemAudio)
		})
	}
}

func TestResolveOverrideNotValidated(t *testing.T) {
	v, _ := Resolve(Desktop, "", &VideoOverride{Width: prop.Int(-1)}, nil)
	assert.Equal(t, prop.Int(-1), v.Width)
}

func TestResolveDoesNotMutateDefaults(t *testing.T) {
	Resolve(Desktop, "", &VideoOverride{Width: prop.Int(1)}, &AudioOverride{SystemAudio: prop.Bool(false)})

	v, a, _ := Lookup(Desktop)
	assert.Equal(t, prop.IntRanged{Ideal: 1280, Max: 1600}, v.Width)
	assert.True(t, a.WantsSystemAudio())
}

func TestResolveFallback(t *testing.T) {
	testCases := map[string]struct {
		tier      Tier
		userAgent string
		expected  Tier
	}{
		"PhoneWithoutTier":   {"", phoneUA, Mobile},
		"TabletWithoutTier":  {"", tabletUA, Desktop},
		"DesktopWithoutTier": {"", desktopUA, Desktop},
		"UnknownTier":        {"ultra", phoneUA, Mobile},
		"ExplicitTier":       {HighBandwidth, phoneUA, HighBandwidth},
	}

	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			v, a := Resolve(c.tier, c.userAgent, nil, nil)
			ev, ea, _ := Lookup(c.expected)
			assert.Equal(t, ev, v)
			assert.Equal(t, ea, a)
		})
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("ai-compatible")
	require.NoError(t, err)
	assert.Equal(t, AICompatible, tier)

	_, err = ParseTier("ultra")
	assert.True(t, errors.Is(err, ErrUnknownTier))
}

func TestMediaConstraints(t *testing.T) {
	v, a := Resolve(Mobile, "", nil, nil)

	vc := v.MediaConstraints()
	assert.Equal(t, prop.String("window"), vc.DisplaySurface)
	assert.Equal(t, prop.String("always"), vc.Cursor)
	assert.Equal(t, prop.IntRanged{Ideal: 720, Max: 960}, vc.Width)
	assert.Equal(t, prop.FloatRanged{Ideal: 8, Max: 12}, vc.FrameRate)

	ac := a.MediaConstraints()
	assert.Equal(t, prop.Bool(false), ac.SystemAudio)
	assert.False(t, a.WantsSystemAudio())
}

func TestDescriptionAndHint(t *testing.T) {
	for _, tier := range Tiers() {
		assert.NotEqual(t, "Unknown quality", Description(string(tier)))
		assert.NotEmpty(t, Hint(string(tier)))
		assert.NotEqual(t, "未知质量", Chinese.Description(string(tier)))
	}

	assert.Equal(t, "Unknown quality", Description("ultra"))
	assert.Equal(t, "", Hint("ultra"))
	assert.Equal(t, "未知质量", Chinese.Description("ultra"))
	assert.Equal(t, "AI兼容 (500x500@30fps)", Chinese.Description("ai-compatible"))
	assert.Equal(t, "移动优化 (720p@8fps)", Chinese.Description("mobile"))
	assert.Equal(t, "桌面标准 (1080p@15fps)", Chinese.Description("desktop"))
	assert.Equal(t, "高质量 (1080p@24fps)", Chinese.Description("high-bandwidth"))
	assert.Equal(t, "🎯 优化AI识别，500x500分辨率，推荐默认选择", Chinese.Hint("ai-compatible"))
	assert.Equal(t, "适用于移动网络，低带宽消耗", Chinese.Hint("mobile"))
	assert.Equal(t, "平衡质量与性能，1080p标准分辨率", Chinese.Hint("desktop"))
	assert.Equal(t, "高质量，需要良好网络环境", Chinese.Hint("high-bandwidth"))
	assert.Equal(t, Description("mobile"), Locale("fr").Description("mobile"))
}
