package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/eventscout/internal/metrics"
	"github.com/iliyamo/eventscout/internal/model"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI interprets queries with a chat-completions call that is
// instructed to answer with a bare JSON object.  Any failure along the
// way (transport, non-2xx, refusal, unparseable output) falls back to the
// heuristic parser; this interpreter never surfaces an error.
type OpenAI struct {
	baseURL  string
	apiKey   string
	model    string
	client   *http.Client
	fallback *Heuristic
}

func NewOpenAI(baseURL, apiKey, chatModel string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	return &OpenAI{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		model:    chatModel,
		client:   &http.Client{Timeout: timeout},
		fallback: NewHeuristic(),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
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
}

// aiParams is the JSON shape the model is asked to produce.  Dates are
// deliberately absent from the prompt; date phrases are computed locally
// so the window math stays deterministic.
type aiParams struct {
	City     string   `json:"city"`
	Artist   string   `json:"artist"`
	Genre    string   `json:"genre"`
	Keywords []string `json:"keywords"`
}

func (o *OpenAI) Interpret(ctx context.Context, query, locationHint string) model.SearchParams {
	if o.apiKey == "" {
		return o.fallback.Interpret(ctx, query, locationHint)
	}
	parsed, err := o.parse(ctx, query, locationHint)
	if err != nil {
		log.Printf("interpreter: ai parse failed: %v; using heuristic", err)
		metrics.InterpreterFallbacks.Inc()
		return o.fallback.Interpret(ctx, query, locationHint)
	}
	params := model.SearchParams{
		City:      parsed.City,
		Artist:    parsed.Artist,
		Genre:     parsed.Genre,
		Keywords:  parsed.Keywords,
		DateRange: PhraseRange(query, time.Now()),
	}
	if locationHint != "" {
		params.City = locationHint
	}
	return params
}

func (o *OpenAI) parse(ctx context.Context, query, locationHint string) (aiParams, error) {
	prompt := buildPrompt(query, locationHint)
	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   300,
		Temperature: 0.1,
	})
	if err != nil {
		return aiParams{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return aiParams{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return aiParams{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return aiParams{}, fmt.Errorf("openai: http %d", resp.StatusCode)
	}
	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return aiParams{}, fmt.Errorf("openai: decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return aiParams{}, fmt.Errorf("openai: empty completion")
	}
	content := stripFences(strings.TrimSpace(cr.Choices[0].Message.Content))
	var out aiParams
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return aiParams{}, fmt.Errorf("openai: bad json in completion: %w", err)
	}
	return out, nil
}

func buildPrompt(query, locationHint string) string {
	defaultCity := locationHint
	if defaultCity == "" {
		defaultCity = "Los Angeles"
	}
	return fmt.Sprintf(`Analyze this event search query and extract search parameters. Return ONLY a valid JSON object with these fields:

- city: the city mentioned (or use %q if no city mentioned)
- artist: any artist, band, or performer name mentioned, exactly as written
- genre: music genre (rock, pop, hip hop, country, jazz, electronic, etc.)
- keywords: array of other relevant search terms

Do NOT include fields you have no value for. Do NOT include dates; they are handled separately.

Query: %q

Return ONLY the JSON object, no markdown formatting, no code blocks, no additional text.`, defaultCity, query)
}

// stripFences removes a surrounding markdown code block if the model added
// one despite the instructions.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
