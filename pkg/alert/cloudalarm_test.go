package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudAlarmAdapter_ALARMMapsToCritical(t *testing.T) {
	a := NewCloudAlarmAdapter()
	raw := []byte(`{
		"MessageId": "m-1", "AlarmName": "High Memory Usage", "AlarmArn": "arn:aws:1",
		"NewStateValue": "ALARM", "NewStateReason": "mem > 90%", "Region": "us-east-1",
		"StateChangeTime": "2026-01-02T15:04:05.000+0000",
		"Trigger": {"MetricName": "MemoryUtilization", "Namespace": "AWS/EC2",
			"Dimensions": [{"name": "InstanceId", "value": "i-1"}]}
	}`)

	require.True(t, a.CanHandle(raw))
	got, err := a.ParseAlert(raw)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEmpty(t, got.ID)
	assert.True(t, got.Severity.Valid())
	assert.Equal(t, SeverityCritical, got.Severity)
	assert.Equal(t, "i-1", got.Dimensions["InstanceId"])
}

func TestCloudAlarmAdapter_OKStateSkipped(t *testing.T) {
	a := NewCloudAlarmAdapter()
	raw := []byte(`{"MessageId":"m-2","AlarmName":"x","AlarmArn":"arn:2","NewStateValue":"OK"}`)

	require.True(t, a.CanHandle(raw))
	got, err := a.ParseAlert(raw)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCloudAlarmAdapter_InsufficientDataMapsToWarning(t *testing.T) {
	a := NewCloudAlarmAdapter()
	raw := []byte(`{"MessageId":"m-3","AlarmName":"x","AlarmArn":"arn:3","NewStateValue":"INSUFFICIENT_DATA"}`)
	got, err := a.ParseAlert(raw)
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, got.Severity)
}

func TestCloudAlarmAdapter_UnknownStateMapsToInfo(t *testing.T) {
	a := NewCloudAlarmAdapter()
	raw := []byte(`{"MessageId":"m-4","AlarmName":"x","AlarmArn":"arn:4","NewStateValue":"WEIRD"}`)
	got, err := a.ParseAlert(raw)
	require.NoError(t, err)
	assert.Equal(t, SeverityInfo, got.Severity)
}

func TestCloudAlarmAdapter_DeterministicID(t *testing.T) {
	a := NewCloudAlarmAdapter()
	raw := []byte(`{"MessageId":"m-5","AlarmName":"x","AlarmArn":"arn:5","NewStateValue":"ALARM"}`)
	g1, _ := a.ParseAlert(raw)
	g2, _ := a.ParseAlert(raw)
	assert.Equal(t, g1.ID, g2.ID)
}

func TestCloudAlarmAdapter_CannotHandleNonJSON(t *testing.T) {
	a := NewCloudAlarmAdapter()
	assert.False(t, a.CanHandle([]byte("not json")))
}
