package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 15 * time.Second

	// systemPrompt demands a bare JSON array so the response parses without
	// any post-processing.
	systemPrompt = `You extract tasks from natural language.
Return ONLY a valid JSON array of very short, actionable tasks.

Examples:

Input: "Buy milk and call mom"
Output: ["Buy milk", "Call mom"]

Input: "Finish report, send email to team, book flight"
Output: ["Finish report", "Send email to team", "Book flight"]

Return nothing except a JSON array.`
)

// Extractor converts one free-form utterance into an ordered sequence of
// short, independent task titles.
type Extractor interface {
	Extract(ctx context.Context, utterance string) ([]string, error)
}

// OpenAIExtractor implements Extractor against the OpenAI chat completions
// API. Any transport, status, or parse failure is returned as an error so
// the caller can fall back to the local splitter.
type OpenAIExtractor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIExtractor creates an extractor. Empty model or baseURL fall back
// to the defaults; a zero timeout falls back to 15 seconds.
func NewOpenAIExtractor(apiKey, modelName, baseURL string, timeout time.Duration) *OpenAIExtractor {
	if modelName == "" {
		modelName = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OpenAIExtractor{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Extract asks the model for a JSON array of task titles.
func (e *OpenAIExtractor) Extract(ctx context.Context, utterance string) ([]string, error) {
	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: utterance},
		},
		Temperature: 0.2,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling extraction API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("response contains no choices")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("response contains no content")
	}

	var titles []string
	if err := json.Unmarshal([]byte(content), &titles); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of strings: %w", err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("response array is empty")
	}

	return titles, nil
}

// --- OpenAI API types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
