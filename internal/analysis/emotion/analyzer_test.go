package emotion

import "testing"

func TestLookupKnownLabel(t *testing.T) {
	style := Lookup("anxiety")
	if !style.Known {
		t.Fatal("expected anxiety to be a known label")
	}
	if style.Emoji != "😰" {
		t.Fatalf("expected 😰, got %s", style.Emoji)
	}
}

func TestLookupNormalizesCase(t *testing.T) {
	if got := Lookup("  Hope ").Emoji; got != "🌟" {
		t.Fatalf("expected 🌟, got %s", got)
	}
}

func TestLookupUnknownFallsBack(t *testing.T) {
	style := Lookup("nostalgia")
	if style.Known {
		t.Fatal("nostalgia should not be known")
	}
	if style.Emoji != FallbackEmoji {
		t.Fatalf("expected fallback emoji, got %s", style.Emoji)
	}
}

func TestSentimentEmoji(t *testing.T) {
	cases := map[string]string{
		"positive": "😊",
		"neutral":  "😐",
		"negative": "😔",
		"mixed":    FallbackEmoji,
	}
	for input, want := range cases {
		if got := SentimentEmoji(input); got != want {
			t.Errorf("SentimentEmoji(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestIntensityLevel(t *testing.T) {
	cases := []struct {
		intensity float64
		want      Level
	}{
		{intensity: 0.9, want: LevelHigh},
		{intensity: 0.7, want: LevelMedium},
		{intensity: 0.41, want: LevelMedium},
		{intensity: 0.4, want: LevelLow},
		{intensity: 0, want: LevelLow},
	}
	for _, tc := range cases {
		if got := IntensityLevel(tc.intensity); got != tc.want {
			t.Errorf("IntensityLevel(%v) = %v, want %v", tc.intensity, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{ratio: 0.9, want: 90},
		{ratio: 0.856, want: 86},
		{ratio: -1, want: 0},
		{ratio: 1.5, want: 100},
	}
	for _, tc := range cases {
		if got := Percent(tc.ratio); got != tc.want {
			t.Errorf("Percent(%v) = %d, want %d", tc.ratio, got, tc.want)
		}
	}
}
