package emotion

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Label 表示后端可能返回的情绪标签。
type Label string

const (
	Joy         Label = "joy"
	Sadness     Label = "sadness"
	Anxiety     Label = "anxiety"
	Anger       Label = "anger"
	Fear        Label = "fear"
	Calm        Label = "calm"
	Hope        Label = "hope"
	Confusion   Label = "confusion"
	Frustration Label = "frustration"
	Overwhelmed Label = "overwhelmed"
)

// Style 是某个情绪在界面上的呈现方式。
type Style struct {
	Label Label
	Color lipgloss.Color
	// Accent is the second stop of the indicator gradient.
	Accent lipgloss.Color
	Emoji  string
	Known  bool
}

// FallbackEmoji is shown for tags outside the table.
const FallbackEmoji = "💭"

var (
	fallbackColor  = lipgloss.Color("#9ca3af")
	fallbackAccent = lipgloss.Color("#7c3aed")
)

var palette = map[Label]Style{
	Joy:         {Color: "#fbbf24", Accent: "#fde047", Emoji: "😊"},
	Sadness:     {Color: "#3b82f6", Accent: "#93c5fd", Emoji: "😢"},
	Anxiety:     {Color: "#f97316", Accent: "#fca5a5", Emoji: "😰"},
	Anger:       {Color: "#dc2626", Accent: "#ef4444", Emoji: "😠"},
	Fear:        {Color: "#7c3aed", Accent: "#c084fc", Emoji: "😨"},
	Calm:        {Color: "#10b981", Accent: "#86efac", Emoji: "😌"},
	Hope:        {Color: "#06b6d4", Accent: "#67e8f9", Emoji: "🌟"},
	Confusion:   {Color: "#f59e0b", Accent: "#fcd34d", Emoji: "😕"},
	Frustration: {Color: "#ea580c", Accent: "#fb923c", Emoji: "😤"},
	Overwhelmed: {Color: "#6b7280", Accent: "#9ca3af", Emoji: "😵"},
}

var sentimentEmojis = map[string]string{
	"positive": "😊",
	"neutral":  "😐",
	"negative": "😔",
}

// Lookup 返回情绪标签对应的颜色与表情，未知标签回退为灰色与 💭。
func Lookup(tag string) Style {
	label := Label(strings.ToLower(strings.TrimSpace(tag)))
	style, ok := palette[label]
	if !ok {
		return Style{Label: label, Color: fallbackColor, Accent: fallbackAccent, Emoji: FallbackEmoji}
	}
	style.Label = label
	style.Known = true
	return style
}

// SentimentEmoji maps positive/neutral/negative to a face.
func SentimentEmoji(sentiment string) string {
	if emoji, ok := sentimentEmojis[strings.ToLower(strings.TrimSpace(sentiment))]; ok {
		return emoji
	}
	return FallbackEmoji
}

// Level 描述强度所在区间。
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

// IntensityLevel buckets an intensity: >0.7 high, >0.4 medium, otherwise low.
func IntensityLevel(intensity float64) Level {
	switch {
	case intensity > 0.7:
		return LevelHigh
	case intensity > 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// LevelColor returns the bar colour for an intensity level.
func LevelColor(level Level) lipgloss.Color {
	switch level {
	case LevelHigh:
		return lipgloss.Color("#ef4444")
	case LevelMedium:
		return lipgloss.Color("#eab308")
	default:
		return lipgloss.Color("#22c55e")
	}
}

// Percent rounds a [0,1] ratio to a whole percentage, clamping out-of-range input.
func Percent(ratio float64) int {
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}
	if ratio >= 1 {
		return 100
	}
	return int(math.Round(ratio * 100))
}
