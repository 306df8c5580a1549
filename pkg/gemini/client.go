package gemini

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

// ErrMissingAPIKey is returned before any network call when the credential
// is absent. Callers use it to short-circuit to their degraded output.
var ErrMissingAPIKey = fmt.Errorf("gemini: API key is not configured")

// Client manages requests to the Gemini generateContent REST API. The
// endpoint is configurable so tests and proxies can stand in for the real
// service.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Gemini REST client.
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// HasAPIKey reports whether a credential is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// --- data structures ---

// Part is one piece of request or response content.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a role-tagged list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig constrains the model output.
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	Temperature      float32 `json:"temperature,omitempty"`
}

// Tool enables a grounding capability on a request.
type Tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
	GoogleMaps   *struct{} `json:"googleMaps,omitempty"`
}

// GenerateContentRequest is the request body for generateContent.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	Tools            []Tool            `json:"tools,omitempty"`
}

// GroundingChunk is one web or maps citation attached to a candidate.
type GroundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
	Maps *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"maps,omitempty"`
}

// GroundingMetadata carries the citations for a candidate.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// Candidate is one model answer.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GenerateContentResponse is the response body for generateContent.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// ErrorResponse is the error envelope returned on non-200 status codes.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Text concatenates all text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// GroundingChunksOf returns the citations of the first candidate, or nil.
func (r *GenerateContentResponse) GroundingChunksOf() []GroundingChunk {
	if len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	return r.Candidates[0].GroundingMetadata.GroundingChunks
}

// --- methods ---

// GenerateContent sends one prompt and returns the parsed response.
func (c *Client) GenerateContent(ctx context.Context, prompt string, cfg *GenerationConfig, tools []Tool) (*GenerateContentResponse, error) {
	request := GenerateContentRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: cfg,
		Tools:            tools,
	}

	var response GenerateContentResponse
	if err := c.doRequest(ctx, request, &response); err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}
	return &response, nil
}

// GenerateJSON sends one prompt with a JSON-constrained response and
// unmarshals the reply into out. Markdown code fences around the JSON body
// are tolerated.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	response, err := c.GenerateContent(ctx, prompt, &GenerationConfig{ResponseMIMEType: "application/json"}, nil)
	if err != nil {
		return err
	}

	text := StripCodeFence(response.Text())
	if text == "" {
		return fmt.Errorf("Gemini returned an empty response")
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse Gemini JSON response: %w", err)
	}
	return nil
}

// doRequest performs the HTTP round trip and base response handling shared
// by all calls.
func (c *Client) doRequest(ctx context.Context, requestData interface{}, responseData interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.endpoint, "/"), c.model, c.apiKey)

	requestBody, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return fmt.Errorf("Gemini API error (status: %d): %s", resp.StatusCode, errorResp.Error.Message)
		}
		return fmt.Errorf("Gemini API error (status: %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, responseData); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	return nil
}

// StripCodeFence removes a surrounding markdown code fence from a model
// reply, if present. Models sometimes wrap JSON output in ```json blocks
// even when a JSON MIME type was requested.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
