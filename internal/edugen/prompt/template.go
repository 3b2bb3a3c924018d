// Package prompt holds the fixed MCQ instruction template and the rule for
// combining it with caller-supplied instructions.
package prompt

import (
	"fmt"
	"strings"
)

const mcqTemplate = `
Generate %d multiple-choice question (MCQ) based on the given topic and level.
Provide the question, four answer options, and the correct answer.
Topic: %s
Subtopic: %s
Subject: %s
Grade: %s
`

// MCQTemplate renders the fixed template for one request.
func MCQTemplate(topic, subtopic, subject, grade string, num int) string {
	return fmt.Sprintf(mcqTemplate, num, topic, subtopic, subject, grade)
}

// CombineInstructions always puts the template before the caller's text.
// Nothing is trimmed or inserted between the two.
func CombineInstructions(template, custom string) string {
	var b strings.Builder
	b.Grow(len(template) + len(custom))
	b.WriteString(template)
	b.WriteString(custom)
	return b.String()
}

// MCQInstructions is MCQTemplate followed by custom.
func MCQInstructions(topic, subtopic, subject, grade string, num int, custom string) string {
	return CombineInstructions(MCQTemplate(topic, subtopic, subject, grade, num), custom)
}
