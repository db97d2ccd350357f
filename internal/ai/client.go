package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	apperrors "meetbook/internal/errors"
)

// Ranker sends a ranking prompt to a generative model and recovers the JSON
// array embedded in its free-form reply.
type Ranker interface {
	Rank(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error)
}

// Client calls the OpenAI chat completion API. The model's output format is
// not contractually guaranteed, so the reply is treated as free text and the
// array is recovered heuristically. No retries are performed; the caller
// decides whether to retry.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	log     *logrus.Entry
}

// Ensure Client implements Ranker
var _ Ranker = (*Client)(nil)

// NewClient creates a ranking client for the given model. The rate limiter
// caps outbound model traffic at 3 requests per second with a burst of 5.
func NewClient(apiKey, model string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(3), 5),
		log:     log.WithField("component", "ai"),
	}
}

// Rank invokes the model with the prompt and extracts the JSON array from the
// reply. Upstream failures (transport, auth, rate limit, timeout) surface as
// ErrUpstreamUnavailable; extraction failures as ErrNoStructuredOutput or
// ErrMalformedModelOutput.
func (c *Client) Rank(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		c.log.WithError(err).Warn("model call failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", apperrors.ErrUpstreamUnavailable)
	}

	return ExtractJSONArray(resp.Choices[0].Message.Content)
}

// ExtractJSONArray treats the substring between the first '[' and the last
// ']' (inclusive) as the candidate JSON payload, tolerating explanatory prose
// around it. This is a deliberate recovery heuristic, not a parser. The
// decoded array is returned verbatim with no schema validation; downstream
// consumers must tolerate missing or extra fields.
func ExtractJSONArray(content string) (json.RawMessage, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, apperrors.ErrNoStructuredOutput
	}

	raw := content[start : end+1]
	var probe interface{}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedModelOutput, err)
	}
	return json.RawMessage(raw), nil
}
