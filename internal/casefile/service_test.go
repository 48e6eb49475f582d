package casefile

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCase(findingCount int) Case {
	item := Case{
		ID:           uuid.New(),
		CreatedAt:    time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC),
		Name:         "Exchange Hack Investigation",
		Description:  "Tracing stolen hot wallet funds",
		Investigator: "J. Rivera",
		Status:       StatusActive,
		Addresses: []CaseAddress{
			{Address: "0xaaa", Tag: TagVictim, Notes: "hot wallet"},
			{Address: "0xbbb", Tag: TagSuspect, Notes: "first hop"},
		},
		Notes: []Note{{Content: "initial triage complete"}},
	}

	for i := 0; i < findingCount; i++ {
		item.Findings = append(item.Findings, Finding{Finding: fmt.Sprintf("finding %d", i+1)})
	}

	return item
}

func TestUnitBuildSummary(t *testing.T) {
	t.Run("counts and recent findings", func(t *testing.T) {
		summary := buildSummary(makeCase(8))

		assert.Equal(t, 2, summary.AddressCount)
		assert.Equal(t, 1, summary.NoteCount)
		assert.Equal(t, 8, summary.FindingCount)
		require.Len(t, summary.Findings, summaryFindingsLimit)
		assert.Equal(t, "finding 4", summary.Findings[0].Finding)
		assert.Equal(t, "finding 8", summary.Findings[4].Finding)
	})

	t.Run("few findings kept as is", func(t *testing.T) {
		summary := buildSummary(makeCase(2))
		assert.Len(t, summary.Findings, 2)
	})
}

func TestUnitRenderReport(t *testing.T) {
	report := renderReport(makeCase(1))

	assert.Contains(t, report, "CASE INVESTIGATION REPORT")
	assert.Contains(t, report, "Case Name: Exchange Hack Investigation")
	assert.Contains(t, report, "Investigator: J. Rivera")
	assert.Contains(t, report, "Created: 2026-04-02 09:30:00")
	assert.Contains(t, report, "- 0xbbb\n  Tag: suspect\n  Notes: first hop")
	assert.Contains(t, report, "KEY FINDINGS:\n- finding 1")

	t.Run("findings section omitted when empty", func(t *testing.T) {
		assert.NotContains(t, renderReport(makeCase(0)), "KEY FINDINGS")
	})
}
