package checklist

import (
	"encoding/json"
	"regexp"
	"strings"
)

// parsedBody is the shape the strict-JSON parser expects from the LLM: the
// generator fills in alertId/generatedAt/llmProviderUsed/sourceRunbooks
// itself, so the LLM only needs to emit summary+steps.
type parsedBody struct {
	Summary string `json:"summary"`
	Steps   []Step `json:"steps"`
}

// ParseResponse implements spec §4.6's two-stage output parsing: a strict
// JSON attempt, falling back to a forgiving Markdown parser that never
// fails. The returned steps are renumbered to a contiguous 1..n sequence
// regardless of which path produced them.
func ParseResponse(raw string) (summary string, steps []Step) {
	if body, ok := tryParseJSON(raw); ok {
		return body.Summary, renumber(body.Steps)
	}
	return "", renumber(parseMarkdownFallback(raw))
}

func tryParseJSON(raw string) (parsedBody, bool) {
	trimmed := strings.TrimSpace(raw)
	trimmed = stripCodeFence(trimmed)

	var body parsedBody
	if err := json.Unmarshal([]byte(trimmed), &body); err != nil {
		return parsedBody{}, false
	}
	if len(body.Steps) == 0 {
		return parsedBody{}, false
	}
	return body, true
}

var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeFence(s string) string {
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

var numberedLinePattern = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.*)$`)

// parseMarkdownFallback splits the response into numbered/bulleted lines,
// each becoming a MEDIUM-priority step with no commands. It is pure: no
// re-prompting, so it stays deterministic under test. If the response has
// no non-blank line it synthesizes a single diagnostic step so the
// checklist is never empty.
func parseMarkdownFallback(raw string) []Step {
	lines := strings.Split(raw, "\n")
	var steps []Step
	order := 1
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		instruction := trimmed
		if m := numberedLinePattern.FindStringSubmatch(trimmed); m != nil {
			instruction = strings.TrimSpace(m[1])
		}
		if instruction == "" {
			continue
		}
		steps = append(steps, Step{
			Order:       order,
			Instruction: instruction,
			Priority:    PriorityMedium,
			Commands:    []string{},
		})
		order++
	}

	if len(steps) == 0 {
		diagnostic := strings.TrimSpace(raw)
		if diagnostic == "" {
			diagnostic = "LLM returned an empty response; no checklist could be generated."
		}
		steps = []Step{{Order: 1, Instruction: diagnostic, Priority: PriorityMedium, Commands: []string{}}}
	}
	return steps
}

// renumber enforces steps[i].Order = i+1 regardless of what the LLM or
// fallback emitted, per spec §4.6.
func renumber(steps []Step) []Step {
	for i := range steps {
		steps[i].Order = i + 1
		if steps[i].Commands == nil {
			steps[i].Commands = []string{}
		}
		if steps[i].Priority == "" {
			steps[i].Priority = PriorityMedium
		}
	}
	return steps
}
