// Package gemini wraps the Google GenAI SDK behind the two calls the
// pipeline needs: plain text generation and audio-file transcription.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

const transcribePrompt = "この音声ファイルを文字起こししてください。"

// Client calls the Gemini API, rotating through the supplied API keys on
// quota errors. Not safe for concurrent use; the pipeline is sequential.
type Client struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// New creates a Client for the given model and key list. At least one key
// is required.
func New(apiKeys []string, model string, log logger.Logger) (*Client, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini: at least one API key is required")
	}
	return &Client{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}, nil
}

// Generate sends a text prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.withClient(ctx, func(client *genai.Client) (string, error) {
		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return extractText(result)
	})
}

// Transcribe uploads one audio file, asks the model to transcribe it, and
// returns the text. The uploaded artifact is deleted from the API before
// Transcribe returns, whether or not generation succeeded, so remote
// storage stays bounded across a long chunked run.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return c.withClient(ctx, func(client *genai.Client) (string, error) {
		c.logger.Info(ctx, "Uploading audio: %s", audioPath)
		file, err := client.Files.UploadFromPath(ctx, audioPath, nil)
		if err != nil {
			return "", fmt.Errorf("upload audio: %w", err)
		}
		defer func() {
			if _, derr := client.Files.Delete(ctx, file.Name, nil); derr != nil {
				c.logger.Warn(ctx, "Failed to delete uploaded file %s: %v", file.Name, derr)
			} else {
				c.logger.Debug(ctx, "Deleted uploaded file: %s", file.Name)
			}
		}()

		contents := []*genai.Content{{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: transcribePrompt},
				{FileData: &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType}},
			},
		}}

		result, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			return "", err
		}
		return extractText(result)
	})
}

// withClient runs fn against a client for the current key, rotating to the
// next key on rate-limit / quota errors until every key has been tried.
func (c *Client) withClient(ctx context.Context, fn func(*genai.Client) (string, error)) (string, error) {
	var lastErr error

	for range c.apiKeys {
		key := c.apiKeys[c.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		text, err := fn(client)
		if err != nil {
			if isQuotaError(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", c.currentKey+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", err
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) rotateKey() {
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
