package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

// FileDestination serializes the checklist as JSON and writes it to
// <outputDir>/checklist-<alertId>-<unix-millis>.json, creating outputDir if
// missing. It is a built-in destination (spec §4.8) and always passes its
// filter unless explicitly overridden.
type FileDestination struct {
	name      string
	outputDir string
	filter    Filter
	retry     RetryConfig
	now       func() time.Time
}

func NewFileDestination(name, outputDir string, filter Filter) *FileDestination {
	return &FileDestination{name: name, outputDir: outputDir, filter: filter, retry: RetryConfig{RetryCount: 0, InitialDelay: 0}, now: time.Now}
}

func (d *FileDestination) Name() string       { return d.name }
func (d *FileDestination) Type() string       { return "file" }
func (d *FileDestination) Filter() Filter     { return d.filter }
func (d *FileDestination) Retry() RetryConfig { return d.retry }

func (d *FileDestination) ShouldSend(severity string, labels map[string]string) bool {
	return d.filter.admits(severity, labels)
}

func (d *FileDestination) Attempt(ctx context.Context, c checklist.Checklist) DeliveryResult {
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return DeliveryResult{Success: false, Err: fmt.Errorf("create output dir: %w", err)}
	}

	body, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return DeliveryResult{Success: false, Err: fmt.Errorf("encode checklist: %w", err)}
	}

	name := fmt.Sprintf("checklist-%s-%d.json", c.AlertID, d.now().UnixMilli())
	path := filepath.Join(d.outputDir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return DeliveryResult{Success: false, Err: fmt.Errorf("write %s: %w", path, err)}
	}
	return DeliveryResult{Success: true, StatusCode: 200}
}
