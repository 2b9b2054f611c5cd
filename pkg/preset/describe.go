package preset

// Locale selects the language of tier descriptions and hints.
type Locale string

const (
	English Locale = "en"
	Chinese Locale = "zh"
)

type catalog struct {
	descriptions map[Tier]string
	hints        map[Tier]string
	unknown      string
}

var catalogs = map[Locale]catalog{
	English: {
		descriptions: map[Tier]string{
			AICompatible:  "AI compatible (500x500@30fps)",
			Mobile:        "Mobile optimized (720p@8fps)",
			Desktop:       "Desktop standard (1080p@15fps)",
			HighBandwidth: "High quality (1080p@24fps)",
		},
		hints: map[Tier]string{
			AICompatible:  "🎯 Tuned for AI recognition at 500x500, recommended default",
			Mobile:        "For mobile networks, low bandwidth usage",
			Desktop:       "Balances quality and performance, 1080p standard resolution",
			HighBandwidth: "Highest quality, needs a good network",
		},
		unknown: "Unknown quality",
	},
	Chinese: {
		descriptions: map[Tier]string{
			AICompatible:  "AI兼容 (500x500@30fps)",
			Mobile:        "移动优化 (720p@8fps)",
			Desktop:       "桌面标准 (1080p@15fps)",
			HighBandwidth: "高质量 (1080p@24fps)",
		},
		hints: map[Tier]string{
			AICompatible:  "🎯 优化AI识别，500x500分辨率，推荐默认选择",
			Mobile:        "适用于移动网络，低带宽消耗",
			Desktop:       "平衡质量与性能，1080p标准分辨率",
			HighBandwidth: "高质量，需要良好网络环境",
		},
		unknown: "未知质量",
	},
}

// Description returns the English label of tier, or "Unknown quality".
func Description(tier string) string {
	return English.Description(tier)
}

// Hint returns the English usage hint of tier, or "" for unknown tiers.
func Hint(tier string) string {
	return English.Hint(tier)
}

// Description returns the label of tier in l. Unsupported locales use English.
func (l Locale) Description(tier string) string {
	c := l.catalog()
	if d, ok := c.descriptions[Tier(tier)]; ok {
		return d
	}
	return c.unknown
}

// Hint returns the usage hint of tier in l. Unsupported locales use English.
func (l Locale) Hint(tier string) string {
	return l.catalog().hints[Tier(tier)]
}

func (l Locale) catalog() catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[English]
}
