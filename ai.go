package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carlmjohnson/requests"
)

const (
	defaultAIEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	defaultAIModel    = "llama3-70b-8192"
)

var postTones = []string{"professional", "friendly", "thought-leader", "casual"}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// profileAnalysis is the JSON shape the backend is prompted to return
// for profile extraction.
type profileAnalysis struct {
	Industry       string   `json:"industry"`
	TopSkills      []string `json:"top_skills"`
	Audience       string   `json:"audience"`
	ContentPillars []string `json:"content_pillars"`
	Tone           string   `json:"tone"`
}

type generatedPost struct {
	Post     string   `json:"post"`
	Hashtags []string `json:"hashtags"`
}

// malformedResponseError carries the raw backend text so it can be shown
// to the user instead of crashing the interaction.
type malformedResponseError struct {
	raw string
	err error
}

func (e *malformedResponseError) Error() string {
	return "malformed backend response: " + e.err.Error()
}

func (e *malformedResponseError) Unwrap() error {
	return e.err
}

// chatCompletion sends a role-tagged message list to the configured
// chat completion backend and returns the raw text of the first choice.
func (a *postPilot) chatCompletion(ctx context.Context, messages []chatMessage, temperature float64) (string, error) {
	cfg := a.cfg.AI
	response := &chatResponse{}
	builder := requests.
		URL(cfg.Endpoint).
		Client(a.httpClient).
		Method(http.MethodPost).
		BodyJSON(&chatRequest{
			Model:       cfg.Model,
			Messages:    messages,
			Temperature: temperature,
		}).
		ToJSON(response)
	if cfg.APIKey != "" {
		builder = builder.Header("Authorization", "Bearer "+cfg.APIKey)
	}
	if err := builder.Fetch(ctx); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("backend returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}

const analyzeProfilePrompt = `You are an assistant that extracts structured JSON from a professional profile.
Return ONLY valid JSON with:
- industry (string)
- top_skills (list of 5 strings)
- audience (string)
- content_pillars (list of 3 strings)
- tone (one word)
DO NOT add any explanation or extra text.

Profile text: %s`

// analyzeProfile asks the backend to extract content themes from
// free-text profile input. Low temperature, this is an extraction task.
func (a *postPilot) analyzeProfile(ctx context.Context, profileText string) (*profileAnalysis, error) {
	content, err := a.chatCompletion(ctx, []chatMessage{
		{Role: "user", Content: fmt.Sprintf(analyzeProfilePrompt, profileText)},
	}, 0.2)
	if err != nil {
		return nil, err
	}
	analysis := &profileAnalysis{}
	if err = unmarshalAIResponse(content, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

const generatePostsPrompt = `Given content pillars: %s, and tone: %s, generate %d social post drafts.
Return ONLY a JSON array like:
[{"post":"...","hashtags":["#...","#...","#..."]}, ...]
NO extra text or explanation.`

// generatePosts asks the backend for n post drafts steered by the given
// content pillars and tone.
func (a *postPilot) generatePosts(ctx context.Context, pillars []string, tone string, n int) ([]*generatedPost, error) {
	content, err := a.chatCompletion(ctx, []chatMessage{
		{Role: "user", Content: fmt.Sprintf(generatePostsPrompt, strings.Join(pillars, ", "), tone, n)},
	}, 0.7)
	if err != nil {
		return nil, err
	}
	posts := []*generatedPost{}
	if err = unmarshalAIResponse(content, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// unmarshalAIResponse parses a JSON document out of free-form backend
// text. Backends tend to wrap JSON in Markdown code fences or prose, so
// the first JSON object or array found in the text is used. A parse
// failure yields a malformedResponseError carrying the raw text.
func unmarshalAIResponse(raw string, target any) error {
	extracted := extractJSON(raw)
	if extracted == "" {
		return &malformedResponseError{raw: raw, err: errors.New("no JSON document found")}
	}
	if err := json.Unmarshal([]byte(extracted), target); err != nil {
		return &malformedResponseError{raw: raw, err: err}
	}
	return nil
}

func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	objStart := strings.IndexAny(s, "{[")
	if objStart < 0 {
		return ""
	}
	var objEnd int
	if s[objStart] == '{' {
		objEnd = strings.LastIndex(s, "}")
	} else {
		objEnd = strings.LastIndex(s, "]")
	}
	if objEnd < objStart {
		return ""
	}
	return s[objStart : objEnd+1]
}
