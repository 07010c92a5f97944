package main

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

const oracleSystemPrompt = `
You are the Oracle in a guessing game. Players are trying to guess a secret word by asking questions.

STRICT RULES:
1. NEVER say the secret word or any obvious variation of it.
2. ONLY answer questions ABOUT the secret word (e.g., "Is it alive?", "What color?", "When was it made?")
3. REFUSE off-topic questions not about the secret word (e.g., "Who is the president?", "What's the weather?")
4. Keep answers to one short sentence.
5. If the answer would make the word too obvious, be more vague.
`

const questionPrompt = `
SECRET WORD (NEVER say this): {SECRET_WORD}

WEB SEARCH RESULTS ABOUT THE SECRET WORD:
{SEARCH_RESULTS}

PLAYER'S QUESTION: {QUESTION}

INSTRUCTIONS:
- If the question is ABOUT the secret word (asking its properties, characteristics, history, etc.), answer using the search results.
- If the question is OFF-TOPIC (not about the secret word, like general trivia), respond with "That's not about what you're trying to guess!"
- NEVER say "{SECRET_WORD}" or anything that directly reveals it.
- One short sentence only.
`

// buildQuestionPrompt fills the per-question template with the secret word,
// the search digest, and the player's question.
func buildQuestionPrompt(secretWord, searchResults, question string) string {
	if searchResults == "" {
		searchResults = "No search results available."
	}

	prompt := strings.ReplaceAll(questionPrompt, "{SECRET_WORD}", secretWord)
	prompt = strings.Replace(prompt, "{SEARCH_RESULTS}", searchResults, 1)
	prompt = strings.Replace(prompt, "{QUESTION}", question, 1)
	return prompt
}

// Completer produces a free-text completion for a system instruction and a
// user prompt. Implementations must honor context cancellation.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CompletionClient talks to an OpenAI-compatible chat completion endpoint.
// With an empty key no Authorization header is sent, which covers locally
// hosted models.
type CompletionClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
}

func newCompletionClient(cfg *Config) *CompletionClient {
	return &CompletionClient{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiURL:     cfg.completionURL,
		apiKey:     cfg.completionKey,
		model:      cfg.completionModel,
	}
}

func (c *CompletionClient) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion error: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
