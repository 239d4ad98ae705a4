package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/advisor/pkg/advisor/internalerr"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (f roundTrip) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestChat(t *testing.T) {
	var captured *http.Request
	var capturedBody chatRequest

	client := &Client{
		BaseURL:   "https://llm.example/v1/",
		APIKey:    "sk-test",
		ChatModel: "advisor-chat",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			captured = req
			require.NoError(t, json.NewDecoder(req.Body).Decode(&capturedBody))
			return jsonResponse(`{"choices":[{"message":{"role":"assistant","content":"CS200 comes first."}}]}`), nil
		})},
	}

	reply, err := client.Chat(context.Background(), "system prompt", "user question")
	require.NoError(t, err)
	assert.Equal(t, "CS200 comes first.", reply)

	assert.Equal(t, "https://llm.example/v1/chat/completions", captured.URL.String(),
		"trailing slash on the base URL is not doubled")
	assert.Equal(t, "Bearer sk-test", captured.Header.Get("Authorization"))
	assert.Equal(t, "advisor-chat", capturedBody.Model)
	require.Len(t, capturedBody.Messages, 2)
	assert.Equal(t, "system", capturedBody.Messages[0].Role)
	assert.Equal(t, "user", capturedBody.Messages[1].Role)
}

func TestChatAPIError(t *testing.T) {
	client := &Client{
		BaseURL:   "https://llm.example/v1",
		ChatModel: "advisor-chat",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(`{"error":{"message":"model overloaded"}}`), nil
		})},
	}

	_, err := client.Chat(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "model overloaded")
}

func TestChatRequiresConfiguration(t *testing.T) {
	_, err := (&Client{}).Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, internalerr.ErrModelMissing)

	_, err = (&Client{BaseURL: "https://llm.example/v1"}).Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, internalerr.ErrModelMissing)

	_, err = (&Client{BaseURL: "https://llm.example/v1"}).Embed(context.Background(), "text")
	assert.ErrorIs(t, err, internalerr.ErrModelMissing)
}

func TestChatEmptyChoices(t *testing.T) {
	client := &Client{
		BaseURL:   "https://llm.example/v1",
		ChatModel: "advisor-chat",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(`{"choices":[]}`), nil
		})},
	}

	_, err := client.Chat(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "empty response")
}

func TestPhraseSendsResults(t *testing.T) {
	var capturedBody chatRequest

	client := &Client{
		BaseURL:   "https://llm.example/v1",
		ChatModel: "advisor-chat",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&capturedBody))
			return jsonResponse(`{"choices":[{"message":{"content":"ok"}}]}`), nil
		})},
	}

	_, err := client.Phrase(context.Background(),
		"What are the prerequisites for CS375?", "Prerequisites for CS375: CS200")
	require.NoError(t, err)

	require.Len(t, capturedBody.Messages, 2)
	assert.Contains(t, capturedBody.Messages[1].Content, "Prerequisites for CS375: CS200")
}

func TestGroundedAnswerIncludesContexts(t *testing.T) {
	var capturedBody chatRequest

	client := &Client{
		BaseURL:   "https://llm.example/v1",
		ChatModel: "advisor-chat",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&capturedBody))
			return jsonResponse(`{"choices":[{"message":{"content":"ok"}}]}`), nil
		})},
	}

	_, err := client.GroundedAnswer(context.Background(), "library hours?",
		[]string{"The library closes at midnight."})
	require.NoError(t, err)

	require.Len(t, capturedBody.Messages, 2)
	assert.Contains(t, capturedBody.Messages[1].Content, "The library closes at midnight.")
}

func TestEmbed(t *testing.T) {
	var capturedBody embedRequest

	client := &Client{
		BaseURL:    "https://llm.example/v1",
		EmbedModel: "advisor-embed",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&capturedBody))
			return jsonResponse(`{"data":[{"embedding":[0.25,-1.5,3]}]}`), nil
		})},
	}

	vec, err := client.Embed(context.Background(), "registration info")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -1.5, 3}, vec)
	assert.Equal(t, "advisor-embed", capturedBody.Model)
	assert.Equal(t, "registration info", capturedBody.Input)
}

func TestEmbedEmptyData(t *testing.T) {
	client := &Client{
		BaseURL:    "https://llm.example/v1",
		EmbedModel: "advisor-embed",
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(`{"data":[]}`), nil
		})},
	}

	_, err := client.Embed(context.Background(), "text")
	assert.ErrorContains(t, err, "empty embedding")
}
