package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/sportbeacon/eventparse/pkg/logger"
)

// OpenAIConfig represents the OpenAI enhancer configuration
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIEnhancer rewrites titles and descriptions with a chat completion.
// Every call is time-boxed; the caller falls back to the deterministic draft
// when the call fails or runs long.
type OpenAIEnhancer struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewOpenAIEnhancer creates a new OpenAI-backed enhancer
func NewOpenAIEnhancer(cfg OpenAIConfig, log *logger.Logger) *OpenAIEnhancer {
	if cfg.APIKey == "" {
		log.Warn("OpenAI API key is empty - event enhancement will fail and fall back to templates")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	return &OpenAIEnhancer{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  log.Named("enhance"),
	}
}

const systemPrompt = `You improve titles and descriptions for recreational sports events. ` +
	`Respond with a JSON object containing "title" (short, catchy), "description" ` +
	`(one friendly paragraph) and "requirements" (array of short strings, may be empty). ` +
	`Write in the language indicated by the user. Never invent times, venues or prices ` +
	`that are not in the input.`

// Enhance asks the model for an improved title/description/requirements set
func (e *OpenAIEnhancer) Enhance(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(req)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var result Result
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode enhancement response: %w", err)
	}

	e.logger.Debug("Event draft enhanced",
		logger.String("model", e.model),
		logger.Duration("elapsed", time.Since(start)))
	return &result, nil
}

// buildUserPrompt flattens the request into a compact prompt the model can
// rewrite from without hallucinating structure
func buildUserPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", req.Language)
	fmt.Fprintf(&b, "Original request: %s\n", req.Text)
	if req.SportType != "" {
		fmt.Fprintf(&b, "Sport: %s\n", req.SportType)
	}
	if req.EventType != "" {
		fmt.Fprintf(&b, "Event type: %s\n", req.EventType)
	}
	if req.VenueName != "" {
		fmt.Fprintf(&b, "Venue: %s\n", req.VenueName)
	}
	if !req.StartTime.IsZero() {
		fmt.Fprintf(&b, "Starts: %s\n", req.StartTime.Format("Monday, Jan 2 at 3:04 PM"))
	}
	if req.MaxParticipants > 0 {
		fmt.Fprintf(&b, "Up to %d participants\n", req.MaxParticipants)
	}
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&b, "User preferences: %s\n", strings.Join(req.Preferences, ", "))
	}
	fmt.Fprintf(&b, "Current title: %s\n", req.Title)
	fmt.Fprintf(&b, "Current description: %s\n", req.Description)
	return b.String()
}
