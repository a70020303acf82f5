package alert

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// CloudAlarmAdapter recognizes AWS CloudWatch alarm notification payloads
// (the SNS-delivered JSON body, or the raw alarm message body).
type CloudAlarmAdapter struct{}

func NewCloudAlarmAdapter() *CloudAlarmAdapter { return &CloudAlarmAdapter{} }

func (a *CloudAlarmAdapter) SourceType() string { return "aws-cloudwatch-alarm" }

type cloudAlarmTrigger struct {
	MetricName string                `json:"MetricName"`
	Namespace  string                `json:"Namespace"`
	Dimensions []cloudAlarmDimension `json:"Dimensions"`
}

type cloudAlarmDimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cloudAlarmPayload struct {
	MessageID        string            `json:"MessageId"`
	AlarmName        string            `json:"AlarmName"`
	AlarmDescription string            `json:"AlarmDescription"`
	AlarmArn         string            `json:"AlarmArn"`
	NewStateValue    string            `json:"NewStateValue"`
	NewStateReason   string            `json:"NewStateReason"`
	StateChangeTime  string            `json:"StateChangeTime"`
	Region           string            `json:"Region"`
	Trigger          cloudAlarmTrigger `json:"Trigger"`
}

// CanHandle reports whether raw looks like a CloudWatch alarm notification:
// it must parse as JSON and carry both an AlarmName and a NewStateValue.
func (a *CloudAlarmAdapter) CanHandle(raw []byte) bool {
	var p cloudAlarmPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return false
	}
	return p.AlarmName != "" && p.NewStateValue != ""
}

// ParseAlert implements the severity mapping and deterministic-id policy of
// spec §4.1: ALARM -> CRITICAL, INSUFFICIENT_DATA -> WARNING, OK -> skipped
// (nil, nil), anything else -> INFO.
func (a *CloudAlarmAdapter) ParseAlert(raw []byte) (*Alert, error) {
	var p cloudAlarmPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cloudwatch alarm: invalid JSON: %w", err)
	}

	var severity Severity
	switch p.NewStateValue {
	case "ALARM":
		severity = SeverityCritical
	case "INSUFFICIENT_DATA":
		severity = SeverityWarning
	case "OK":
		return nil, nil
	default:
		severity = SeverityInfo
	}

	dims := make(map[string]string, len(p.Trigger.Dimensions))
	for _, d := range p.Trigger.Dimensions {
		dims[d.Name] = d.Value
	}

	return &Alert{
		ID:            cloudAlarmID(p.MessageID, p.AlarmArn),
		Title:         p.AlarmName,
		Message:       p.NewStateReason,
		Severity:      severity,
		SourceService: a.SourceType(),
		Dimensions:    dims,
		Labels:        map[string]string{"region": p.Region, "namespace": p.Trigger.Namespace, "metric": p.Trigger.MetricName},
		Timestamp:     parseTimestampPermissive(p.StateChangeTime),
		RawPayload:    raw,
	}, nil
}

func cloudAlarmID(messageID, alarmArn string) string {
	sum := sha256.Sum256([]byte(messageID + ":" + alarmArn))
	return "cw-" + hex.EncodeToString(sum[:])
}

// parseTimestampPermissive tries strict ISO-instant first, then the
// CloudWatch-specific layout, then falls back to the current time.
func parseTimestampPermissive(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000+0000", s); err == nil {
		return t
	}
	return time.Now().UTC()
}
