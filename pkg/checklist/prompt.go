package checklist

import (
	"fmt"
	"strings"

	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
	"github.com/tarsy-labs/checklist-rag/pkg/retriever"
)

const systemPrompt = `You are an expert site-reliability troubleshooting assistant.
Respond with strict JSON matching the Checklist schema: {"summary": string, "steps": [{"order": int, "instruction": string, "rationale": string, "currentValue": string, "expectedValue": string, "priority": "HIGH"|"MEDIUM"|"LOW", "commands": [string]}]}.
Do not include any text outside the JSON object.`

const unknownPlaceholder = "unknown"

// BuildPrompt composes the three mandatory sections required by spec §4.6:
// ALERT CONTEXT, RUNBOOK SECTIONS, INSTRUCTIONS.
func BuildPrompt(ec enrich.EnrichedContext, chunks []retriever.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	b.WriteString("ALERT CONTEXT\n")
	fmt.Fprintf(&b, "Title: %s\n", orUnknown(ec.Alert.Title))
	fmt.Fprintf(&b, "Severity: %s\n", orUnknown(string(ec.Alert.Severity)))
	fmt.Fprintf(&b, "Message: %s\n", orUnknown(ec.Alert.Message))
	fmt.Fprintf(&b, "Resource: %s\n", orUnknown(resourceDisplayName(ec)))
	fmt.Fprintf(&b, "Shape: %s\n\n", orUnknown(resourceShape(ec)))

	b.WriteString("RUNBOOK SECTIONS\n")
	for _, rc := range chunks {
		fmt.Fprintf(&b, "### %s / %s\n%s\n\n", rc.Chunk.RunbookPath, rc.Chunk.SectionTitle, rc.Chunk.Content)
	}

	b.WriteString("INSTRUCTIONS\n")
	b.WriteString("Produce a prioritized, step-by-step troubleshooting checklist as strict JSON matching the schema above.\n")

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return unknownPlaceholder
	}
	return s
}

func resourceDisplayName(ec enrich.EnrichedContext) string {
	if ec.Resource == nil {
		return ""
	}
	return ec.Resource.DisplayName
}

func resourceShape(ec enrich.EnrichedContext) string {
	if ec.Resource == nil {
		return ""
	}
	return ec.Resource.Shape
}
