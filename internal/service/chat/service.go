package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/service/identity"
)

// FallbackReply is shown when an exchange fails for any reason.
const FallbackReply = "Desculpe, tive um problema ao processar sua mensagem. Tente novamente."

var (
	ErrEmptyInput       = errors.New("message content is required")
	ErrAwaitingResponse = errors.New("a response is still pending")
	ErrNotAwaiting      = errors.New("no request is pending")
	ErrStalePending     = errors.New("outcome does not belong to the pending request")
	ErrMalformedReply   = errors.New("reply has no assistant message")
)

// Sender is the part of the API client the session needs.
type Sender interface {
	SendMessage(ctx context.Context, content string, conversationID *string) (*chat.SendResult, error)
}

// Service owns one chat session: the message log, the request cycle and the
// last insight. At most one request is in flight at a time.
type Service struct {
	sender   Sender
	identity *identity.Store
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	phase    Phase
	seq      uint64
	messages []chat.Message
	insight  Insight
	badges   map[string]Badge
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the UUID generator for locally created messages.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService bootstraps a session bound to sender and the given identity store.
// A nil store gets a fresh one.
func NewService(sender Sender, ids *identity.Store, opts ...Option) *Service {
	if ids == nil {
		ids = identity.NewStore()
	}
	s := &Service{
		sender:   sender,
		identity: ids,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		phase:    Idle{},
		messages: make([]chat.Message, 0, 16),
		badges:   make(map[string]Badge),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Identity exposes the conversation identity owned by this session.
func (s *Service) Identity() *identity.Store {
	return s.identity
}

// Submit appends the user's message and moves the session to Awaiting. Blank
// input and submissions while a request is in flight change nothing.
func (s *Service) Submit(input string) (Pending, error) {
	if strings.TrimSpace(input) == "" {
		return Pending{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.phase.(Awaiting); busy {
		return Pending{}, ErrAwaitingResponse
	}

	s.seq++
	message := chat.Message{
		ID:        s.newID(),
		Role:      chat.RoleUser,
		Content:   input,
		CreatedAt: chat.NewTimestamp(s.now()),
	}
	s.messages = append(s.messages, message)

	pending := Pending{
		Seq:            s.seq,
		MessageID:      message.ID,
		Content:        input,
		ConversationID: s.identity.Ref(),
	}
	s.phase = Awaiting{Pending: pending}
	return pending, nil
}

// Exchange performs the request for pending. It does not touch session state
// and may run on any goroutine.
func (s *Service) Exchange(ctx context.Context, pending Pending) Outcome {
	result, err := s.sender.SendMessage(ctx, pending.Content, pending.ConversationID)
	return Outcome{Pending: pending, Result: result, Err: err}
}

// Apply settles the pending request with its outcome and returns the assistant
// message that was appended.
func (s *Service) Apply(outcome Outcome) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	awaiting, ok := s.phase.(Awaiting)
	if !ok {
		return chat.Message{}, ErrNotAwaiting
	}
	if awaiting.Pending.Seq != outcome.Pending.Seq {
		return chat.Message{}, ErrStalePending
	}

	err := outcome.Err
	if err == nil && outcome.Result == nil {
		err = ErrMalformedReply
	}
	if err == nil {
		if alert, isAlert := outcome.Result.Alert(); isAlert {
			return s.applyAlert(alert), nil
		}
		if outcome.Result.AssistantMessage == nil {
			err = ErrMalformedReply
		}
	}
	if err != nil {
		return s.applyFailure(err), nil
	}
	return s.applyReply(outcome.Pending, outcome.Result), nil
}

// Send runs a whole cycle synchronously. The returned error only reports a
// rejected submission; failed exchanges are folded into the fallback reply.
func (s *Service) Send(ctx context.Context, input string) (chat.Message, error) {
	pending, err := s.Submit(input)
	if err != nil {
		return chat.Message{}, err
	}
	return s.Apply(s.Exchange(ctx, pending))
}

// Reset starts over with a new conversation. It is refused while a request is
// in flight.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.phase.(Awaiting); busy {
		return ErrAwaitingResponse
	}
	s.identity.Clear()
	s.phase = Idle{}
	s.messages = make([]chat.Message, 0, 16)
	s.insight = nil
	s.badges = make(map[string]Badge)
	return nil
}

// Resume replaces the session with a stored conversation so new messages
// continue it.
func (s *Service) Resume(detail chat.ConversationDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.phase.(Awaiting); busy {
		return ErrAwaitingResponse
	}
	s.identity.Set(detail.ID)
	s.phase = Idle{}
	s.messages = append(make([]chat.Message, 0, len(detail.Messages)+16), detail.Messages...)
	s.insight = nil
	s.badges = make(map[string]Badge)
	for _, msg := range detail.Messages {
		if msg.IsUser() && msg.EmotionalState != "" {
			s.badges[msg.ID] = Badge{State: msg.EmotionalState, Intensity: msg.EmotionIntensity}
		}
	}
	return nil
}

// Snapshot returns a copy of the session for rendering.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges := make(map[string]Badge, len(s.badges))
	for id, badge := range s.badges {
		badges[id] = badge
	}
	return Snapshot{
		Phase:    s.phase,
		Messages: append([]chat.Message(nil), s.messages...),
		Insight:  s.insight,
		Badges:   badges,
	}
}

func (s *Service) applyAlert(alert chat.SafetyAlert) chat.Message {
	var previous *chat.EmotionAnalysis
	switch insight := s.insight.(type) {
	case EmotionInsight:
		analysis := insight.Analysis
		previous = &analysis
	case AlertInsight:
		previous = insight.Emotion
	}
	s.insight = AlertInsight{Alert: alert, Emotion: previous}

	s.logger.Warn("safety alert received", zap.String("level", alert.Level))
	return s.appendAssistant(chat.Message{Content: alert.Message})
}

func (s *Service) applyReply(pending Pending, result *chat.SendResult) chat.Message {
	// The reply's id always wins; an empty one starts a new conversation next time.
	s.identity.Set(result.ConversationID)

	if result.EmotionAnalysis != nil {
		s.insight = EmotionInsight{Analysis: *result.EmotionAnalysis}
	} else {
		s.insight = nil
	}

	if badge, ok := badgeFromReply(result); ok {
		s.badges[pending.MessageID] = badge
	}

	reply := result.AssistantMessage
	return s.appendAssistant(chat.Message{
		ID:        reply.ID,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	})
}

func (s *Service) applyFailure(err error) chat.Message {
	s.logger.Error("failed to send message", zap.Error(err))
	s.phase = Failed{Err: err}
	return s.appendFallback()
}

func (s *Service) appendFallback() chat.Message {
	message := chat.Message{
		ID:        s.newID(),
		Role:      chat.RoleAssistant,
		Content:   FallbackReply,
		CreatedAt: chat.NewTimestamp(s.now()),
	}
	s.messages = append(s.messages, message)
	return message
}

// appendAssistant fills in missing id/timestamp, appends and returns to Idle.
func (s *Service) appendAssistant(message chat.Message) chat.Message {
	message.Role = chat.RoleAssistant
	if message.ID == "" {
		message.ID = s.newID()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = chat.NewTimestamp(s.now())
	}
	s.messages = append(s.messages, message)
	s.phase = Idle{}
	return message
}

func badgeFromReply(result *chat.SendResult) (Badge, bool) {
	if user := result.UserMessage; user != nil && user.EmotionalState != "" {
		return Badge{State: user.EmotionalState, Intensity: user.EmotionIntensity}, true
	}
	if analysis := result.EmotionAnalysis; analysis != nil && analysis.State != "" {
		intensity := analysis.Intensity
		return Badge{State: analysis.State, Intensity: &intensity}, true
	}
	return Badge{}, false
}
