package chat

import (
	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
)

// Phase is the request cycle state of a Service: Idle, Awaiting or Failed.
type Phase interface {
	phase()
}

// Idle accepts a new submission.
type Idle struct{}

// Awaiting holds the single in-flight request.
type Awaiting struct {
	Pending Pending
}

// Failed means the last exchange did not produce a reply. It accepts new
// submissions just like Idle.
type Failed struct {
	Err error
}

func (Idle) phase()     {}
func (Awaiting) phase() {}
func (Failed) phase()   {}

// Insight is what the last settled reply told us about the user: either an
// emotion analysis or a safety alert, never a fresh analysis and an alert at once.
type Insight interface {
	insight()
}

// EmotionInsight carries the analysis of a normal reply.
type EmotionInsight struct {
	Analysis chat.EmotionAnalysis
}

// AlertInsight carries a safety alert. Emotion is the analysis that was current
// before the alert arrived; alert replies never update it.
type AlertInsight struct {
	Alert   chat.SafetyAlert
	Emotion *chat.EmotionAnalysis
}

func (EmotionInsight) insight() {}
func (AlertInsight) insight()   {}

// Badge is the emotion tag the backend attached to one of our own messages.
type Badge struct {
	State     string
	Intensity *float64
}

// Pending is the snapshot a submission hands to Exchange.
type Pending struct {
	Seq            uint64
	MessageID      string
	Content        string
	ConversationID *string
}

// Outcome is the settled result of one exchange.
type Outcome struct {
	Pending Pending
	Result  *chat.SendResult
	Err     error
}

// Snapshot is an immutable copy of the session used for rendering.
type Snapshot struct {
	Phase    Phase
	Messages []chat.Message
	Insight  Insight
	Badges   map[string]Badge
}

// Awaiting reports whether a request is in flight.
func (s Snapshot) Awaiting() bool {
	_, ok := s.Phase.(Awaiting)
	return ok
}

// CurrentEmotion returns the analysis to display, if any.
func (s Snapshot) CurrentEmotion() *chat.EmotionAnalysis {
	switch insight := s.Insight.(type) {
	case EmotionInsight:
		analysis := insight.Analysis
		return &analysis
	case AlertInsight:
		if insight.Emotion == nil {
			return nil
		}
		analysis := *insight.Emotion
		return &analysis
	default:
		return nil
	}
}

// SafetyAlert returns the alert to display, if any.
func (s Snapshot) SafetyAlert() *chat.SafetyAlert {
	if insight, ok := s.Insight.(AlertInsight); ok {
		alert := insight.Alert
		return &alert
	}
	return nil
}

// LastError returns the error of a failed exchange.
func (s Snapshot) LastError() error {
	if failed, ok := s.Phase.(Failed); ok {
		return failed.Err
	}
	return nil
}

// BadgeFor returns the emotion badge of a message, if the backend sent one.
func (s Snapshot) BadgeFor(messageID string) (Badge, bool) {
	badge, ok := s.Badges[messageID]
	return badge, ok
}
