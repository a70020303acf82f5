// Package checklist implements C6: composing a prompt from enriched context
// and retrieved runbook chunks, invoking an LLM, and parsing its response
// (strict JSON, falling back to a forgiving Markdown parser) into a
// Checklist.
package checklist

import "time"

// Priority is the urgency of one checklist step.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Step is one instruction in a generated checklist.
type Step struct {
	Order         int      `json:"order"`
	Instruction   string   `json:"instruction"`
	Rationale     string   `json:"rationale,omitempty"`
	CurrentValue  string   `json:"currentValue,omitempty"`
	ExpectedValue string   `json:"expectedValue,omitempty"`
	Priority      Priority `json:"priority"`
	Commands      []string `json:"commands"`
}

// Checklist is the final artifact produced by C6 and delivered by C8.
type Checklist struct {
	AlertID         string    `json:"alertId"`
	Summary         string    `json:"summary"`
	Steps           []Step    `json:"steps"`
	SourceRunbooks  []string  `json:"sourceRunbooks"`
	GeneratedAt     time.Time `json:"generatedAt"`
	LLMProviderUsed string    `json:"llmProviderUsed"`
}
