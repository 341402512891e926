package groq

import (
	"context"
	"fmt"

	"github.com/abhishek622/prepai/internal/jsonx"
)

type GeneratedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const questionsSystemMsg = `You are an AI trained to generate technical interview questions and answers.

Your ONLY output is a JSON array. No explanation, no markdown fences, no surrounding text.

Each item must be an object:
{
  "question": "string",
  "answer": "string"
}

Rules:
- Questions must match the given role, experience level and focus topics.
- Answers are beginner-friendly but technically correct, and may contain a
  small markdown code block if the concept needs one.
- Never repeat a question within the set.
- Output must be a single valid JSON array and nothing else.`

// GenerateQuestions asks the model for a question/answer set for a target
// role. Model output routinely violates the "JSON only" instruction, so the
// response goes through the jsonx repair pipeline instead of a bare
// json.Unmarshal.
func (c *Client) GenerateQuestions(ctx context.Context, role, experience, topics string, n int) ([]GeneratedQuestion, error) {
	userPrompt := fmt.Sprintf(`Role: %s
Experience: %s
Focus topics: %s

Write %d interview questions with detailed answers. Return ONLY the JSON array.`, role, experience, topics, n)

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": questionsSystemMsg},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   4000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	var out []GeneratedQuestion
	if err := jsonx.ExtractTo(respStr, &out); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return out, nil
}
