package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/aura/internal/assessment"
	"github.com/abhisek/aura/internal/llm"
)

// Config holds reflection generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for reflection generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.7,
	}
}

// Service generates reflections asynchronously. A nil provider makes every
// request resolve to the static fallback.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	mu      sync.Mutex
	gen     uint64
	pending *Reflection
	ready   bool
}

// NewService creates a reflection service.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("insight")}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Reflect generates a reflection for result. Provider failures fall back to
// the static reflection; the error is still returned for the caller to log.
func (s *Service) Reflect(ctx context.Context, result assessment.Result) (Reflection, error) {
	if !s.Enabled() {
		return Fallback(result), nil
	}
	r, err := s.generate(ctx, result)
	if err != nil {
		return Fallback(result), err
	}
	return *r, nil
}

// Request starts async reflection generation. Only one reflection is
// in-flight at a time; a new request replaces the pending one.
func (s *Service) Request(ctx context.Context, result assessment.Result) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		r, err := s.Reflect(ctx, result)
		if err != nil {
			s.logger.Warn("reflection generation failed, using fallback", zap.Error(err))
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = &r
		s.ready = true
	}()
}

// Consume returns the pending reflection if one is ready.
// After consumption, the pending slot is cleared.
func (s *Service) Consume() (*Reflection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	r := s.pending
	s.pending = nil
	s.ready = false
	return r, r != nil
}

type reflectionOutput struct {
	Title       string   `json:"title"`
	Reflection  string   `json:"reflection"`
	Practices   []string `json:"practices"`
	Affirmation string   `json:"affirmation"`
}

func (s *Service) generate(ctx context.Context, result assessment.Result) (*Reflection, error) {
	ctx = llm.WithPurpose(ctx, "reflection")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(result)},
		},
		Schema:      ReflectionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reflection generation: %w", err)
	}

	var out reflectionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse reflection response: %w", err)
	}

	return &Reflection{
		Center:      result.Primary.CenterID,
		Title:       out.Title,
		Body:        out.Reflection,
		Practices:   out.Practices,
		Affirmation: out.Affirmation,
		Source:      SourceLLM,
	}, nil
}
