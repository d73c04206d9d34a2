package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kevinmichaelchen/repo-lens/internal/models"
)

// ErrorServicesEntry is the single services entry reported for a failed analysis.
const ErrorServicesEntry = "Error occurred during analysis"

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set")

type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	l         *zap.Logger
}

func NewClient(opts Options, l *zap.Logger) *Client {
	c := &Client{
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		l:         l,
	}
	if c.model == "" {
		c.model = openai.GPT4oMini
	}
	if c.maxTokens <= 0 {
		c.maxTokens = 1000
	}
	// Without a key there is nothing to call; Analyze reports it per request.
	if opts.APIKey != "" {
		cfg := openai.DefaultConfig(opts.APIKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
		}
		if opts.HTTPClient != nil {
			cfg.HTTPClient = opts.HTTPClient
		}
		c.client = openai.NewClientWithConfig(cfg)
	}
	return c
}

const systemPrompt = "You are a professional software project analyst."

const promptTemplate = `
You are a senior software architect analyzing a GitHub repository.

Your tasks:
1. Write a short and accurate description of what this project does (max 5 lines) under a markdown heading titled ` + "`### Project Description`" + `.
2. Return the list of services the project uses (like databases, APIs, external services, frameworks, etc.) as a **JSON array** under a markdown heading titled ` + "`### Services Used`" + `.

IMPORTANT: The services must be returned as a valid JSON array format like this:
### Services Used
["Python", "Flask", "MongoDB", "AWS S3"]

Focus on:
- Programming languages and frameworks
- Databases and storage services
- Cloud services (AWS, Azure, GCP, etc.)
- External APIs and services
- Development tools and platforms
- Deployment and infrastructure tools

Here is the repository content:
%s
`

// BuildPrompt embeds the collected repository text in the analysis instructions.
func BuildPrompt(repoText string) string {
	return fmt.Sprintf(promptTemplate, repoText)
}

// Analyze asks the model to describe the repository. It never fails: any
// error is turned into a synthetic reply in the same two-section format and
// the result is marked degraded.
func (c *Client) Analyze(ctx context.Context, repoText string) models.Analysis {
	text, err := c.complete(ctx, BuildPrompt(repoText))
	if err != nil {
		c.l.Error("analyzing repository", zap.Error(err))
		return models.Analysis{
			Text:   ErrorText(err),
			Status: models.StatusDegraded,
			Err:    err,
		}
	}

	c.l.Debug("model response", zap.Int("length", len(text)), zap.String("text", text))
	return models.Analysis{Text: text, Status: models.StatusOK}
}

// ErrorText renders the reply used in place of a failed completion.
func ErrorText(err error) string {
	return fmt.Sprintf("\n### Project Description\nError analyzing repository: %v\n\n### Services Used\n[%q]\n", err, ErrorServicesEntry)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
