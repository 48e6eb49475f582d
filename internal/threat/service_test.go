package threat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flagged = "0x000000000000000000000000000000000000bad1"

func newTestService(t *testing.T) *Service {
	t.Helper()

	return NewService(nil, NewCache())
}

func TestUnitCheck(t *testing.T) {
	t.Run("unknown address", func(t *testing.T) {
		service := newTestService(t)

		result := service.Check(flagged)
		assert.False(t, result.IsFlagged)
		assert.Equal(t, "none", result.Severity)
	})

	t.Run("single source is medium", func(t *testing.T) {
		service := newTestService(t)
		service.cache.AddItems(SourceScamAlert, flagged)

		result := service.Check(flagged)
		require.True(t, result.IsFlagged)
		assert.Equal(t, "medium", result.Severity)
		assert.Equal(t, []string{"known_scammer"}, result.ThreatTypes)
	})

	t.Run("two sources is high", func(t *testing.T) {
		service := newTestService(t)
		service.cache.AddItems(SourceScamAlert, flagged)
		service.cache.AddItems(SourceOFAC, flagged)

		result := service.Check(flagged)
		assert.Equal(t, "high", result.Severity)
		assert.InDelta(t, 0.85, result.Confidence, 1e-9)
	})

	t.Run("three sources is critical", func(t *testing.T) {
		service := newTestService(t)
		service.cache.AddItems(SourceScamAlert, flagged)
		service.cache.AddItems(SourceOFAC, flagged)
		service.cache.AddItems(SourceChainalysis, flagged)

		result := service.Check(flagged)
		assert.Equal(t, "critical", result.Severity)
	})

	t.Run("lookup is case insensitive", func(t *testing.T) {
		service := newTestService(t)
		service.cache.AddItems(SourceOFAC, "0xABCDEF")

		result := service.Check("0xabcdef")
		assert.True(t, result.IsFlagged)
	})
}

func TestUnitBatchCheck(t *testing.T) {
	service := newTestService(t)
	service.cache.AddItems(SourceOFAC, flagged)

	results := service.BatchCheck([]string{flagged, "0xclean"})
	require.Len(t, results, 2)
	assert.True(t, results[flagged].IsFlagged)
	assert.False(t, results["0xclean"].IsFlagged)
}

func TestUnitLoadFeeds(t *testing.T) {
	dir := t.TempDir()

	csvBody := "address,name\n0xAAA,Sanctioned One\n0xbbb,Sanctioned Two\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ofac_sdn.csv"), []byte(csvBody), 0o644))

	jsonBody := `{"scammers": ["0xCCC"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scamalert.json"), []byte(jsonBody), 0o644))

	cache := NewCache()
	require.NoError(t, LoadFeeds(dir, cache))

	assert.Equal(t, 3, cache.Size())
	assert.Equal(t, []string{SourceOFAC}, cache.SourcesFor("0xaaa"))
	assert.Equal(t, []string{SourceScamAlert}, cache.SourcesFor("0xccc"))
}
