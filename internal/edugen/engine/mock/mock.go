package mock

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine"
)

// Engine produces deterministic MCQ lists without calling any model. Same
// input, same output.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "mock" }

func (e *Engine) GenerateMCQ(ctx context.Context, p engine.MCQParams) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := contract.MCQList{Questions: make([]contract.MCQ, 0, p.Num)}
	for i := 0; i < p.Num; i++ {
		options := []string{
			fmt.Sprintf("%s fact %d", p.Topic, i+1),
			fmt.Sprintf("%s misconception %d", p.Topic, i+1),
			fmt.Sprintf("%s distractor %d", p.Subtopic, i+1),
			"None of the above",
		}
		h := sha256.Sum256([]byte(fmt.Sprintf("%s\n%s\n%d", p.Topic, p.Subtopic, i)))
		answer := options[int(h[0])%len(options)]

		q := contract.MCQ{
			Question: fmt.Sprintf("[%s, grade %s] Question %d on %s (%s)?", p.Subject, p.Grade, i+1, p.Topic, p.Subtopic),
			Options:  options,
			Answer:   answer,
		}
		if p.IsNCERT {
			q.Explanation = "Aligned with the NCERT syllabus."
		}
		out.Questions = append(out.Questions, q)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return b, nil
}
