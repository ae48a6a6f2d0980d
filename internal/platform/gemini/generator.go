package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/procrastilist/procrastilist/internal/config"
	"github.com/procrastilist/procrastilist/internal/generation"
	"google.golang.org/genai"
)

// modelsClient is the subset of *genai.Models the generator calls.
type modelsClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	models         modelsClient

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator validates the configuration, loads the prompt template and
// creates a Gemini API client.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models)
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models modelsClient) (*Generator, error) {
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.RequestedDistractions < 1 {
		return nil, fmt.Errorf("%w: requested distractions must be positive", generation.ErrInvalidConfig)
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Generator{
		logger:         logger.With("component", "gemini_generator"),
		config:         cfg,
		promptTemplate: tmpl,
		models:         models,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// GenerateDistractions asks the model for distractions from taskDescription.
// Errors wrap one of the generation package sentinels.
func (g *Generator) GenerateDistractions(ctx context.Context, taskDescription string) ([]string, error) {
	taskDescription = strings.TrimSpace(taskDescription)
	if taskDescription == "" {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, ErrEmptyTaskDescription)
	}

	prompt, err := renderPrompt(g.promptTemplate, promptData{
		TaskDescription: taskDescription,
		Count:           g.config.RequestedDistractions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "prompt rendered",
		"prompt_length", len(prompt),
		"task_length", len(taskDescription))

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	distractions, err := generation.ParseDistractions(text, g.config.MaxDistractions)
	if err != nil {
		g.logger.WarnContext(ctx, "model returned unparseable distractions",
			"error", err,
			"response_length", len(text))
		return nil, err
	}

	g.logger.InfoContext(ctx, "distractions generated",
		"count", len(distractions))
	return distractions, nil
}

// callWithRetry calls the model, retrying transient failures with
// exponential backoff and jitter. Safety blocks and malformed responses are
// permanent and returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		text, err := g.call(ctx, prompt)
		if err == nil {
			g.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attempt+1)
			return text, nil
		}

		if !errors.Is(err, generation.ErrTransientFailure) {
			g.logger.WarnContext(ctx, "permanent Gemini error, not retrying",
				"attempt", attempt+1,
				"error", err)
			return "", err
		}

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached",
				"max_retries", maxRetries,
				"error", err)
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		delay := g.backoff(attempt)
		g.logger.InfoContext(ctx, "retrying Gemini call after delay",
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff returns baseDelay * 2^attempt * [0.5, 1.0).
func (g *Generator) backoff(attempt int) time.Duration {
	base := float64(g.config.RetryDelaySeconds) * math.Pow(2, float64(attempt))

	g.rngMu.Lock()
	jitter := 0.5 + g.rng.Float64()*0.5
	g.rngMu.Unlock()

	return time.Duration(base * jitter * float64(time.Second))
}

// call performs a single GenerateContent request and classifies the outcome.
func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
	}

	resp, err := g.models.GenerateContent(ctx, g.config.ModelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
