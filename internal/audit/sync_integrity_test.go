// File path: internal/audit/sync_integrity_test.go
package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSyncIntegrityPlaceholder(t *testing.T) {
	m := CalculateSyncIntegrity(nil)

	assert.Zero(t, m.ActiveIntegrations)
	assert.Zero(t, m.RecentSyncErrors)
	assert.NotNil(t, m.FailedRecords)
	assert.Empty(t, m.FailedRecords)
	assert.Equal(t, "Unknown", m.LastSuccessfulSync)
}

func TestFormatSyncIntegrityWithoutData(t *testing.T) {
	groups := FormatSyncIntegrity(CalculateSyncIntegrity(nil))
	require.Len(t, groups, 4)

	overview := groups[0].Metrics[0]
	assert.Equal(t, "Data Not Available", overview.Value)
	assert.Equal(t, SeverityWarning, overview.Severity)

	health := groups[1]
	assert.Equal(t, "N/A", health.Metrics[0].Value)
	assert.Equal(t, "N/A", health.Metrics[1].Value)

	assert.Equal(t, "Unknown", groups[2].Metrics[0].Value)
	assert.Equal(t, "Limited Data", groups[3].Metrics[0].Value)
}

func TestFormatSyncIntegrityWithData(t *testing.T) {
	m := CalculateSyncIntegrity(&IntegrationStatus{
		Integrations: []string{"salesforce", "mailchimp"},
		LastSync:     "2025-06-15T10:00:00Z",
	})
	groups := FormatSyncIntegrity(m)

	assert.Equal(t, 2, groups[0].Metrics[0].Value)
	assert.Equal(t, SeverityGood, groups[0].Metrics[0].Severity)
	assert.Equal(t, "2025-06-15T10:00:00Z", groups[2].Metrics[0].Value)
}
