package mentor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/codementorhq/code-mentor/internal/application"
	"github.com/codementorhq/code-mentor/internal/domain/ai"
	"github.com/codementorhq/code-mentor/internal/domain/analysis"
	"github.com/codementorhq/code-mentor/internal/domain/conversation"
	"github.com/codementorhq/code-mentor/internal/infra/ai/prompt"
)

// ErrInputEmpty rejects blank code or a blank question before any request
// is built or sent.
var ErrInputEmpty = errors.New("input is empty")

// Service implements the mentor use-cases: one-shot full analysis of a
// snippet and the follow-up chat dialogue. Safe for concurrent use; each
// session's conversation carries its own lock.
//
// Failure policy: configuration, auth and transport failures reject the
// operation with a classified error; parse failures degrade into a
// displayable fallback analysis inside Normalize and never reject.
type Service struct {
	client ai.Client // nil when no provider is configured
	clock  application.Clock

	mu       sync.Mutex
	sessions map[string]*conversation.Conversation
}

func NewService(client ai.Client, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{
		client:   client,
		clock:    clock,
		sessions: make(map[string]*conversation.Conversation),
	}
}

// session returns the conversation for a session id, creating it empty on
// first use.
func (s *Service) session(id string) *conversation.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sessions[id]
	if !ok {
		c = conversation.New()
		s.sessions[id] = c
	}
	return c
}

// gateway returns the configured client or the configuration-missing
// rejection. Checked per call so the error is raised before any network
// attempt, never surfaced as a transport failure.
func (s *Service) gateway() (ai.Client, error) {
	if s.client == nil {
		return nil, ai.ConfigurationMissing("AI provider API key")
	}
	return s.client, nil
}

// RequestFullAnalysis sends one snippet through the full-analysis prompt
// and normalizes whatever comes back. The snippet becomes the session's
// code context for follow-up chat, unless the session was cleared while the
// request was in flight.
func (s *Service) RequestFullAnalysis(ctx context.Context, sessionID, code string) (analysis.CodeAnalysis, error) {
	if strings.TrimSpace(code) == "" {
		return analysis.CodeAnalysis{}, ErrInputEmpty
	}
	client, err := s.gateway()
	if err != nil {
		return analysis.CodeAnalysis{}, err
	}

	conv := s.session(sessionID)
	epoch := conv.Epoch()

	system, user := prompt.Build(prompt.Request{CodeSnippet: code, Mode: prompt.ModeFullAnalysis})
	raw, err := client.Complete(ctx, ai.CompletionRequest{
		System:   system,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: user}},
		JSONMode: true,
	})
	if err != nil {
		return analysis.CodeAnalysis{}, err
	}

	conv.SetCodeContextIfCurrent(epoch, code)
	return analysis.Normalize(raw), nil
}

// SendChatMessage sends one mentor question, carrying the conversation
// history and the current code context. The reply is used verbatim; both
// turns are appended through the stale-response guard so a completion that
// raced a reset is discarded rather than resurrecting cleared state.
func (s *Service) SendChatMessage(ctx context.Context, sessionID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrInputEmpty
	}
	client, err := s.gateway()
	if err != nil {
		return "", err
	}

	conv := s.session(sessionID)
	epoch := conv.Epoch()
	history := conv.Turns()

	system, user := prompt.Build(prompt.Request{
		CodeSnippet: conv.CodeContext(),
		UserText:    text,
		Mode:        prompt.ModeChat,
	})

	msgs := make([]ai.Message, 0, len(history)+1)
	for _, t := range history {
		msgs = append(msgs, ai.Message{Role: string(t.Role), Content: t.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: user})

	conv.AppendIfCurrent(epoch, conversation.RoleUser, text, s.clock.Now())

	reply, err := client.Complete(ctx, ai.CompletionRequest{System: system, Messages: msgs})
	if err != nil {
		return "", err
	}

	conv.AppendIfCurrent(epoch, conversation.RoleAssistant, reply, s.clock.Now())
	return reply, nil
}

// Conversation returns the session's turn log in append order.
func (s *Service) Conversation(sessionID string) []conversation.Turn {
	return s.session(sessionID).Turns()
}

// ResetConversation clears the session's turns and code context. Requests
// already in flight resolve against the old epoch and are discarded.
func (s *Service) ResetConversation(sessionID string) {
	s.session(sessionID).Reset()
}

// Configured reports whether a provider client is wired in. Used by the
// health endpoint; never triggers a network call.
func (s *Service) Configured() bool {
	return s.client != nil
}
