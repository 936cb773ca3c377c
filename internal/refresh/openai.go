package refresh

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// DefaultModel is used when OpenAIConfig.Model is empty.
const DefaultModel = "gpt-4o-mini"

const storyInstructions = `You write short reading passages for typing practice.
Use plain prose with no lists, headings, quotes or markdown.
Answer in exactly this format:
TITLE: <a short title>
<the passage as one paragraph>`

// OpenAIConfig configures an OpenAIWriter.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Words is the approximate story length.
	Words int
	// Timeout limits each request attempt. Zero keeps the SDK default.
	Timeout time.Duration
}

// OpenAIWriter asks an OpenAI model to retell the harvest as a story.
type OpenAIWriter struct {
	responses responsesClient
	model     string
	words     int
}

type responsesClient interface {
	New(ctx context.Context, body responses.ResponseNewParams, opts ...option.RequestOption) (string, error)
}

type responseServiceAdapter struct {
	service responses.ResponseService
}

func (a responseServiceAdapter) New(
	ctx context.Context,
	body responses.ResponseNewParams,
	opts ...option.RequestOption,
) (string, error) {
	resp, err := a.service.New(ctx, body, opts...)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// NewOpenAIWriter builds a writer backed by the Responses API.
func NewOpenAIWriter(cfg OpenAIConfig) (*OpenAIWriter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("new openai writer: missing api key")
	}

	options := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	if cfg.Timeout > 0 {
		options = append(options, option.WithRequestTimeout(cfg.Timeout))
	}
	client := openai.NewClient(options...)

	return newOpenAIWriter(responseServiceAdapter{service: client.Responses}, cfg.Model, cfg.Words), nil
}

func newOpenAIWriter(client responsesClient, model string, words int) *OpenAIWriter {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	if words <= 0 {
		words = DefaultWordCount
	}
	return &OpenAIWriter{responses: client, model: model, words: words}
}

func (w *OpenAIWriter) Write(ctx context.Context, h Harvest) (Story, error) {
	if strings.TrimSpace(h.Text) == "" {
		return Story{}, fmt.Errorf("openai write: %w", ErrNothingHarvested)
	}
	text, err := w.responses.New(ctx, w.params(h))
	if err != nil {
		return Story{}, fmt.Errorf("openai write: %w", err)
	}
	story := parseStory(text)
	if len(strings.Fields(story.Body)) == 0 {
		return Story{}, fmt.Errorf("openai write: %w", ErrEmptyStory)
	}
	if story.Title == "" {
		story.Title = h.Title
	}
	return story, nil
}

func (w *OpenAIWriter) params(h Harvest) responses.ResponseNewParams {
	prompt := fmt.Sprintf("Write a passage of about %d words inspired by the text below.\n\n%s", w.words, h.Text)
	items := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(storyInstructions, responses.EasyInputMessageRoleSystem),
		responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
	}
	params := responses.ResponseNewParams{
		Model: w.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}
	// Generous headroom: roughly two tokens per word of output.
	params.MaxOutputTokens = openai.Int(int64(w.words * 2))
	return params
}
