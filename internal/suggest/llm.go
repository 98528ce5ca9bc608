package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"listlens/internal/config"
	"listlens/internal/model"
)

const icebreakerPrompt = "Based on this social media post data: %s, create a natural, friendly one-liner icebreaker for a cold email or DM that references the content of the post. The icebreaker should establish relevance, sound conversational (not salesy), and subtly suggest a connection between the recipient's interests and the topic in the post."

// DraftWithLLM optionally upgrades a heuristic draft using an LLM provider.
// When no provider is configured the heuristic is returned unchanged.
func DraftWithLLM(ctx context.Context, cfg config.LLMConfig, post model.Post, heuristic string) (string, error) {
	if strings.ToLower(cfg.Provider) != "openai" || cfg.APIKey == "" {
		return heuristic, nil
	}
	postJSON, err := json.Marshal(post)
	if err != nil {
		return heuristic, err
	}
	body, err := json.Marshal(map[string]any{
		"model": cfg.Model,
		"input": []map[string]any{{
			"role": "user",
			"content": []map[string]string{{
				"type": "text",
				"text": fmt.Sprintf(icebreakerPrompt, string(postJSON)),
			}},
		}},
	})
	if err != nil {
		return heuristic, err
	}
	req, err := httpNewRequest(ctx, "https://api.openai.com/v1/responses", "POST", string(body))
	if err != nil {
		return heuristic, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpDo(req)
	if err != nil {
		return heuristic, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return heuristic, fmt.Errorf("llm status %d", resp.StatusCode)
	}
	text, err := parseOpenAIResponse(resp)
	if err != nil || strings.TrimSpace(text) == "" {
		return heuristic, err
	}
	return strings.TrimSpace(text), nil
}
