package contract

// MaxQuestions caps numberOfQuestions per request.
const MaxQuestions = 50

// MCQRequest is a validated MCQ request as the gateway consumes it.
type MCQRequest struct {
	Grade              string `json:"grade"`
	Subject            string `json:"subject"`
	Topic              string `json:"topic"`
	Subtopic           string `json:"subtopic"`
	IsNCERT            bool   `json:"isNcert"`
	NumberOfQuestions  int    `json:"numberOfQuestions"`
	CustomInstructions string `json:"customInstructions"`
}

// MCQBody is the body of POST /generate-mcq. Pointers record presence:
// required strings must be sent but may be empty.
type MCQBody struct {
	Grade              *string `json:"grade" binding:"required"`
	Subject            *string `json:"subject" binding:"required"`
	Topic              *string `json:"topic" binding:"required"`
	Subtopic           *string `json:"subtopic" binding:"required"`
	IsNCERT            *bool   `json:"isNcert"`
	NumberOfQuestions  *int    `json:"numberOfQuestions" binding:"required,min=1,max=50"`
	CustomInstructions *string `json:"customInstructions"`
}

// Request resolves b into an MCQRequest, applying defaults for omitted
// optional fields.
func (b MCQBody) Request() MCQRequest {
	return MCQRequest{
		Grade:              deref(b.Grade),
		Subject:            deref(b.Subject),
		Topic:              deref(b.Topic),
		Subtopic:           deref(b.Subtopic),
		IsNCERT:            deref(b.IsNCERT),
		NumberOfQuestions:  deref(b.NumberOfQuestions),
		CustomInstructions: deref(b.CustomInstructions),
	}
}

// Body is the wire form of r with every field present.
func (r MCQRequest) Body() MCQBody {
	return MCQBody{
		Grade:              &r.Grade,
		Subject:            &r.Subject,
		Topic:              &r.Topic,
		Subtopic:           &r.Subtopic,
		IsNCERT:            &r.IsNCERT,
		NumberOfQuestions:  &r.NumberOfQuestions,
		CustomInstructions: &r.CustomInstructions,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// MCQ is one generated question as LLM-backed engines return it.
type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// MCQList is the result shape LLM-backed engines are held to. The gateway
// itself passes engine output through without decoding it.
type MCQList struct {
	Questions []MCQ `json:"questions"`
}

// MCQListSchema is the JSON Schema for MCQList.
func MCQListSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"question", "options", "answer"},
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 4,
							"maxItems": 4,
							"items":    map[string]any{"type": "string"},
						},
						"answer":      map[string]any{"type": "string", "minLength": 1},
						"explanation": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}
