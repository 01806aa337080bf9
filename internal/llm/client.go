package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ChatTurn is one prior exchange message used to seed a chat session.
// Role is "user" or "model".
type ChatTurn struct {
	Role string
	Text string
}

// ChatSession is a live handle to a stateful multi-turn exchange. The
// backend keeps the conversation state; Send appends one user message and
// returns the assistant reply.
type ChatSession interface {
	Send(ctx context.Context, text string) (string, error)
}

// JSONResult is the outcome of a JSON-mode generation: the raw JSON text
// plus any citation source URIs the backend attached to the response.
type JSONResult struct {
	Text    string
	Sources []string
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text with an optional system instruction.
	GenerateContent(ctx context.Context, system, prompt string, tier ModelTier, temperature float32) (string, error)
	// GenerateJSON generates JSON-mode content with an optional system instruction.
	GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (*JSONResult, error)
	// StartChat creates a stateful chat session seeded with prior turns.
	StartChat(system string, prior []ChatTurn, tier ModelTier) ChatSession
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// model builds a configured generative model for a tier.
func (c *GeminiClient) model(tier ModelTier, system string) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	return model, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, system, prompt string, tier ModelTier, temperature float32) (string, error) {
	model, err := c.model(tier, system)
	if err != nil {
		return "", err
	}
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content using the specified model tier.
// The response text is cleaned of markdown code block wrappers.
func (c *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string, tier ModelTier) (*JSONResult, error) {
	model, err := c.model(tier, system)
	if err != nil {
		return nil, err
	}
	model.SetTemperature(0.1) // Low temperature for consistent structured output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &JSONResult{
		Text:    CleanJSONBlock(text),
		Sources: extractCitationSources(resp),
	}, nil
}

// StartChat creates a stateful chat session seeded with prior turns.
func (c *GeminiClient) StartChat(system string, prior []ChatTurn, tier ModelTier) ChatSession {
	model, err := c.model(tier, system)
	if err != nil {
		return &geminiChat{err: err}
	}

	chat := model.StartChat()
	history := make([]*genai.Content, 0, len(prior))
	for _, turn := range prior {
		history = append(history, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	chat.History = history

	return &geminiChat{session: chat}
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// geminiChat wraps a genai chat session. A construction error is deferred
// to the first Send so StartChat keeps a non-failing signature.
type geminiChat struct {
	session *genai.ChatSession
	err     error
}

func (g *geminiChat) Send(ctx context.Context, text string) (string, error) {
	if g.err != nil {
		return "", g.err
	}

	resp, err := g.session.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}

	return extractTextFromResponse(resp)
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// extractCitationSources collects citation URIs attached to the first
// candidate, deduplicated in response order.
func extractCitationSources(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 {
		return nil
	}

	meta := resp.Candidates[0].CitationMetadata
	if meta == nil {
		return nil
	}

	var sources []string
	seen := make(map[string]bool)
	for _, src := range meta.CitationSources {
		if src == nil || src.URI == nil || *src.URI == "" {
			continue
		}
		if seen[*src.URI] {
			continue
		}
		seen[*src.URI] = true
		sources = append(sources, *src.URI)
	}
	return sources
}
