package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentParsesResponse(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"namaste "},{"text":"manager"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-flash")
	response, err := client.GenerateContent(context.Background(), "hello", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "namaste manager", response.Text())
	assert.Nil(t, response.GroundingChunksOf())
}

func TestGenerateContentSendsToolsAndConfig(t *testing.T) {
	var got GenerateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-flash")
	_, err := client.GenerateContent(context.Background(), "prompt",
		&GenerationConfig{ResponseMIMEType: "application/json"},
		[]Tool{{GoogleSearch: &struct{}{}}, {GoogleMaps: &struct{}{}}})
	require.NoError(t, err)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "prompt", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
	require.Len(t, got.Tools, 2)
	assert.NotNil(t, got.Tools[0].GoogleSearch)
	assert.NotNil(t, got.Tools[1].GoogleMaps)
}

func TestGenerateContentMissingKey(t *testing.T) {
	client := NewClient("https://unreachable.invalid", "", "gemini-2.5-flash")

	_, err := client.GenerateContent(context.Background(), "hello", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, client.HasAPIKey())
}

func TestGenerateContentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", "gemini-2.5-flash")
	_, err := client.GenerateContent(context.Background(), "hello", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Contains(t, err.Error(), "403")
}

func TestGenerateJSONUnmarshalsIntoTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `{"candidates":[{"content":{"parts":[{"text":"{\"answer\":42}"}]}}]}`
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-flash")
	var out struct {
		Answer int `json:"answer"`
	}
	require.NoError(t, client.GenerateJSON(context.Background(), "prompt", &out))
	assert.Equal(t, 42, out.Answer)
}

func TestGenerateJSONEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.5-flash")
	var out map[string]interface{}
	err := client.GenerateJSON(context.Background(), "prompt", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFence(tc.in))
		})
	}
}

func TestTextJoinsAllParts(t *testing.T) {
	response := &GenerateContentResponse{
		Candidates: []Candidate{{
			Content: Content{Parts: []Part{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
		}},
	}
	assert.Equal(t, "abc", response.Text())

	empty := &GenerateContentResponse{}
	assert.Equal(t, "", empty.Text())
	assert.True(t, strings.TrimSpace(empty.Text()) == "")
}
