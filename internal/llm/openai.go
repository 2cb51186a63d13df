package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are an expert business consultant. " +
	"Respond ONLY with a valid JSON object, with no additional text or formatting."

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient() *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(os.Getenv("OPENAI_API_KEY")))

	model := openai.ChatModel(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	return &OpenAIClient{
		client: &client,
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		if isTransient(err) {
			return "", fmt.Errorf("%w: %v", ErrThrottled, err)
		}
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

func isTransient(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests ||
			apierr.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
