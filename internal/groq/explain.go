package groq

import (
	"context"
	"fmt"

	"github.com/abhishek622/prepai/internal/jsonx"
	"github.com/abhishek622/prepai/pkg/model"
)

const explainSystemMsg = `You are an AI trained to explain interview concepts in depth.

Your ONLY output is a JSON object. No explanation outside it, no markdown fences, no surrounding text.

Schema:
{
  "title": "short title for the explanation",
  "explanation": "detailed explanation as if teaching a beginner, markdown allowed inside this string"
}

Rules:
- Focus on the underlying concept the question is testing, not on reciting an answer.
- Include a small code example in a fenced block when it helps.
- Output must be a single valid JSON object and nothing else.`

// ExplainConcept asks for a deeper walkthrough of one interview question.
func (c *Client) ExplainConcept(ctx context.Context, question string) (*model.Explanation, error) {
	userPrompt := fmt.Sprintf("Explain the concept behind this interview question:\n\n%s", question)

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": explainSystemMsg},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   2000,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}

	var out model.Explanation
	if err := jsonx.ExtractTo(respStr, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	if out.Explanation == "" {
		return nil, fmt.Errorf("model returned an empty explanation")
	}
	return &out, nil
}
