package contract

import "encoding/json"

// LessonPlanRequest is the body of POST /generate-lesson-plan. The route
// validates it but generation is not offered yet. Pointers record presence,
// as in MCQBody.
type LessonPlanRequest struct {
	Subject  *string `json:"subject" binding:"required"`
	Topic    *string `json:"topic" binding:"required"`
	Grade    *int    `json:"grade" binding:"required,min=1,max=12"`
	Duration *int    `json:"duration" binding:"required,min=1,max=600"`

	// Must be present, may be empty.
	CustomInstructions *string `json:"customInstructions" binding:"required"`
}

// UnmarshalJSON also accepts custom_instructions. customInstructions wins
// when both are sent.
func (r *LessonPlanRequest) UnmarshalJSON(b []byte) error {
	type plain LessonPlanRequest
	var wire struct {
		plain
		SnakeInstructions *string `json:"custom_instructions"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*r = LessonPlanRequest(wire.plain)
	if r.CustomInstructions == nil {
		r.CustomInstructions = wire.SnakeInstructions
	}
	return nil
}

// NCERTLessonPlan is the response shape promised for lesson plans.
type NCERTLessonPlan struct {
	Subject        string   `json:"subject"`
	Topic          string   `json:"topic"`
	Grade          int      `json:"grade"`
	Duration       string   `json:"duration"`
	Objectives     []string `json:"objectives"`
	Prerequisites  []string `json:"prerequisites"`
	Introduction   string   `json:"introduction"`
	ContentOutline []string `json:"contentOutline"`
	Activities     []string `json:"activities"`
	Assessment     string   `json:"assessment"`
	Conclusion     string   `json:"conclusion"`
	Resources      []string `json:"resources"`
	Timeline       []string `json:"timeline"`
}

// UnmarshalJSON also accepts content_outline.
func (p *NCERTLessonPlan) UnmarshalJSON(b []byte) error {
	type plain NCERTLessonPlan
	var wire struct {
		plain
		SnakeOutline []string `json:"content_outline"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*p = NCERTLessonPlan(wire.plain)
	if p.ContentOutline == nil {
		p.ContentOutline = wire.SnakeOutline
	}
	return nil
}
