// Package llm calls an OpenAI-compatible API for chat completions and
// embeddings. The advisor core treats it as an optional collaborator:
// when unconfigured, answers come straight from the formatter.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/campuscore/advisor/pkg/advisor/internalerr"
)

// Client calls an OpenAI-compatible endpoint.
type Client struct {
	BaseURL    string // e.g. https://api.openai.com/v1
	APIKey     string
	ChatModel  string
	EmbedModel string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends a system+user message pair and returns the reply text.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.ChatModel == "" {
		return "", fmt.Errorf("%w: base URL and chat model required", internalerr.ErrModelMissing)
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.sendChat(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

// Phrase asks the model to turn formatted lookup results into a
// conversational answer.
func (c *Client) Phrase(ctx context.Context, question, results string) (string, error) {
	system := "You are an academic advisor for a university records system. " +
		"Answer using ONLY the provided database results. Be concise and helpful."
	user := fmt.Sprintf("Student question: %q\nDatabase results:\n%s\n\nRespond conversationally using only these results.",
		question, results)
	return c.Chat(ctx, system, user)
}

// GroundedAnswer asks the model to answer from retrieved knowledge
// chunks.
func (c *Client) GroundedAnswer(ctx context.Context, question string, contexts []string) (string, error) {
	system := "You are an academic advisor. Answer using ONLY the provided context. " +
		"If the context does not cover the question, say so."
	var b strings.Builder
	if len(contexts) > 0 {
		b.WriteString("Context:\n")
		for _, chunk := range contexts {
			fmt.Fprintf(&b, "- %s\n", chunk)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Student question: %q\nAnswer the question using the provided context.", question)
	return c.Chat(ctx, system, b.String())
}

// Embed returns the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.BaseURL == "" || c.EmbedModel == "" {
		return nil, fmt.Errorf("%w: base URL and embed model required", internalerr.ErrModelMissing)
	}
	reqBody, err := json.Marshal(embedRequest{Model: c.EmbedModel, Input: text})
	if err != nil {
		return nil, err
	}

	var payload embedResponse
	if err := c.post(ctx, "/embeddings", reqBody, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("llm: empty embedding response")
	}
	return payload.Data[0].Embedding, nil
}

func (c *Client) sendChat(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.ChatModel, Messages: messages})
	if err != nil {
		return nil, err
	}
	var payload chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	return &payload, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
