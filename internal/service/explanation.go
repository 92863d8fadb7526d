package service

import (
	"strconv"
	"strings"

	"github.com/lshigami/examsim/internal/model"
)

// RenderExplanation lays a verdict out as the markdown shown to the
// candidate. Optional sections are left out entirely when empty.
func RenderExplanation(v *model.Verdict) string {
	var sb strings.Builder
	sb.WriteString(v.Explanation)
	sb.WriteString("\n\nConfidence: ")
	sb.WriteString(formatConfidence(v.Confidence))

	if v.CodeSnippet != nil && *v.CodeSnippet != "" {
		sb.WriteString("\n\n#### 💻 Reference Code\n```python\n")
		sb.WriteString(*v.CodeSnippet)
		sb.WriteString("\n```")
	}

	if len(v.RelatedTopics) > 0 {
		sb.WriteString("\n\n#### 🧠 Related Concepts\n")
		sb.WriteString(strings.Join(v.RelatedTopics, ", "))
	}

	if len(v.LearningResources) > 0 {
		sb.WriteString("\n\n#### 🔗 Learning Resources")
		for _, r := range v.LearningResources {
			sb.WriteString("\n- ")
			sb.WriteString(r)
		}
	}

	return sb.String()
}

// formatConfidence always keeps a fractional part: 1 renders as "1.0".
func formatConfidence(c float64) string {
	s := strconv.FormatFloat(c, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
