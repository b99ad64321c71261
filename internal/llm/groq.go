package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

const (
	groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"
	groqModel  = "llama-3.3-70b-versatile"
)

// groqClient is an alternate generation backend for the Groq API. The
// endpoint only supports a generic JSON output mode, so the requested schema
// is rendered into the prompt text rather than sent structurally.
type groqClient struct {
	apiKey     string
	httpClient *http.Client
}

// NewGroqClient creates a new Groq API client.
func NewGroqClient(cfg *config.Config) StructuredGenerator {
	return &groqClient{
		apiKey: cfg.GroqAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateStructured sends a prompt to the Groq model in JSON mode and
// returns the generated text.
func (c *groqClient) GenerateStructured(ctx context.Context, prompt, systemInstruction string, schema *genai.Schema) (ContentResponse, error) {
	fullPrompt := prompt
	if schema != nil {
		fullPrompt = fmt.Sprintf("%s\n\nThe output MUST be JSON matching this shape exactly:\n%s", prompt, schemaOutline(schema))
	}

	messages := []map[string]string{}
	if systemInstruction != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemInstruction})
	}
	messages = append(messages, map[string]string{"role": "user", "content": fullPrompt})

	reqBody := map[string]interface{}{
		"model":           groqModel,
		"messages":        messages,
		"temperature":     0.1,
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", groqAPIURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContentResponse{}, &ServiceError{Backend: "groq", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, &ServiceError{
			Backend: "groq",
			Err:     fmt.Errorf("status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var groqResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&groqResp); err != nil {
		return ContentResponse{}, &ServiceError{Backend: "groq", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(groqResp.Choices) == 0 {
		return ContentResponse{}, &ServiceError{Backend: "groq", Err: errors.New("no content generated")}
	}

	return ContentResponse{
		Content: groqResp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     groqResp.Usage.PromptTokens,
			CompletionTokens: groqResp.Usage.CompletionTokens,
			TotalTokens:      groqResp.Usage.TotalTokens,
			Model:            groqModel,
		},
	}, nil
}

// schemaOutline renders a genai schema as a compact JSON-ish skeleton.
// Required property names are marked with a trailing asterisk.
func schemaOutline(s *genai.Schema) string {
	var sb strings.Builder
	writeOutline(&sb, s)
	return sb.String()
}

func writeOutline(sb *strings.Builder, s *genai.Schema) {
	if s == nil {
		sb.WriteString("null")
		return
	}
	switch s.Type {
	case genai.TypeArray:
		sb.WriteString("[")
		writeOutline(sb, s.Items)
		sb.WriteString(", ...]")
	case genai.TypeObject:
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		sb.WriteString("{")
		first := true
		for name, prop := range s.Properties {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(`"` + name + `"`)
			if required[name] {
				sb.WriteString("*")
			}
			sb.WriteString(": ")
			writeOutline(sb, prop)
		}
		sb.WriteString("}")
	case genai.TypeString:
		sb.WriteString("string")
	case genai.TypeNumber:
		sb.WriteString("number")
	case genai.TypeInteger:
		sb.WriteString("integer")
	case genai.TypeBoolean:
		sb.WriteString("boolean")
	default:
		sb.WriteString("any")
	}
}
