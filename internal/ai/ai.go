package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/matheuskafuri/classicnews/internal/config"
)

// ErrNotConfigured is returned by New when no provider or key is set.
var ErrNotConfigured = errors.New("AI not configured")

// APIError carries the provider's own error message.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Provider, e.Status, e.Message)
}

// Summarizer turns article text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// New creates a Summarizer from the summarizer config.
func New(cfg config.Summarizer, apiKey string) (Summarizer, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case "gemini", "":
		model := cfg.Model
		if model == "" {
			model = "gemini-pro"
		}
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
		}
		return &geminiProvider{apiKey: apiKey, model: model, endpoint: strings.TrimRight(endpoint, "/"), client: client}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		oc := openai.DefaultConfig(apiKey)
		if cfg.Endpoint != "" {
			oc.BaseURL = cfg.Endpoint
		}
		oc.HTTPClient = client
		return &openaiProvider{model: model, client: openai.NewClientWithConfig(oc)}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: gemini, openai)", cfg.Provider)
	}
}

const summarizePrompt = `You are an expert news summarizer. Your goal is to provide a concise, easy-to-understand summary
of the following news article content. Focus on the key points and present them clearly.

Article Content:
"%s"

Your Concise Summary:`

// cleanSummary drops an echoed answer label and surrounding blank space.
func cleanSummary(text string) string {
	text = strings.TrimSpace(text)
	for _, label := range []string{"Your Concise Summary:", "Summary:"} {
		if strings.HasPrefix(text, label) {
			text = strings.TrimSpace(strings.TrimPrefix(text, label))
		}
	}
	return text
}

// --- Gemini provider ---

type geminiProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *geminiProvider) Summarize(ctx context.Context, text string) (string, error) {
	out, err := g.call(ctx, fmt.Sprintf(summarizePrompt, text))
	if err != nil {
		return "", err
	}
	return cleanSummary(out), nil
}

func (g *geminiProvider) call(ctx context.Context, prompt string) (string, error) {
	gr := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}
	gr.GenerationConfig.Temperature = 0.3
	body, _ := json.Marshal(gr)

	u := g.endpoint + "/" + url.PathEscape(g.model) + ":generateContent?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading gemini response: %w", err)
	}

	var parsed geminiResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		if len(msg) > 1024 {
			msg = msg[:1024]
		}
		return "", &APIError{Provider: "gemini", Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("malformed gemini response: %w", decodeErr)
	}
	if parsed.Error != nil {
		return "", &APIError{Provider: "gemini", Status: parsed.Error.Code, Message: parsed.Error.Message}
	}
	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("malformed gemini response: no candidate text")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// --- OpenAI provider ---

type openaiProvider struct {
	model  string
	client *openai.Client
}

func (o *openaiProvider) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(summarizePrompt, text)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: "openai", Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return cleanSummary(resp.Choices[0].Message.Content), nil
}
