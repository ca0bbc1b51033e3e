// Package openai implements the semantic-coherence collaborator on the
// OpenAI chat-completions API. The check is strictly advisory: any
// failure (missing key, network error, timeout, unparseable reply)
// answers true so composition never depends on the service being up.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

const requestTimeout = 20 * time.Second

const systemPrompt = "You are a video editing assistant evaluating if segments should be combined " +
	"into a premium multi-segment clip. The segments MUST tell a coherent, flowing story about the " +
	"SAME specific topic. Be strict - only answer YES if the segments clearly build on each other " +
	"or discuss the exact same subject. Answer NO if segments jump between different topics, even " +
	"if loosely related. Answer with ONLY 'YES' or 'NO'."

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func New(apiKey, model, baseURL string, log zerolog.Logger) *Adapter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: normalizeBaseURL(baseURL),
		client:  &http.Client{Timeout: requestTimeout},
		log:     log.With().Str("component", "coherence").Logger(),
	}
}

func (a *Adapter) CheckCoherent(segments []types.Segment) bool {
	if a.key == "" {
		// No credentials configured: the deterministic gap and duration
		// checks are the only gate.
		return true
	}
	if len(segments) == 0 {
		return true
	}

	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "Segment %d: %s\n", i+1, seg.Text)
	}

	payload := map[string]any{
		"model": a.model,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": "Could these segments work together in a clip?\n\n" + b.String()},
		},
		"max_tokens":  10,
		"temperature": 0.3,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		a.log.Warn().Err(err).Msg("coherence check skipped")
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		a.log.Warn().Err(err).Msg("coherence check skipped")
		return true
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Warn().Err(err).Msg("coherence check failed, allowing group")
		return true
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		a.log.Warn().Int("status", resp.StatusCode).Str("body", string(rb)).
			Msg("coherence check failed, allowing group")
		return true
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil || len(raw.Choices) == 0 {
		a.log.Warn().Msg("coherence check unparseable, allowing group")
		return true
	}

	answer := strings.ToUpper(strings.TrimSpace(raw.Choices[0].Message.Content))
	coherent := strings.HasPrefix(answer, "YES")
	if !coherent {
		a.log.Debug().Msg("segment group rejected by coherence check")
	}
	return coherent
}
