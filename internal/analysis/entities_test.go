package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitKnownEntity(t *testing.T) {
	t.Run("lookup is case insensitive", func(t *testing.T) {
		lower := "0x12d66f87a04a9e220743712ce6d9bb1b5616b8fc"
		entity, ok := KnownEntity(strings.ToUpper(lower))
		require.True(t, ok)
		assert.Equal(t, EntityMixer, entity.Type)
		assert.Equal(t, RiskCritical, entity.Risk)
	})

	t.Run("unknown address", func(t *testing.T) {
		_, ok := KnownEntity("0xdeadbeef")
		assert.False(t, ok)
	})
}

func TestUnitIdentifyEntity(t *testing.T) {
	for _, tc := range []struct {
		name     string
		incoming int
		outgoing int
		expected EntityType
	}{
		{name: "exchange like inflow", incoming: 60, outgoing: 10, expected: EntityExchange},
		{name: "mixer like inflow", incoming: 30, outgoing: 12, expected: EntityMixer},
		{name: "distribution wallet", incoming: 0, outgoing: 25, expected: EntityContract},
		{name: "quiet wallet", incoming: 2, outgoing: 3, expected: EntityUnknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			entity := IdentifyEntity("0x1234", tc.incoming, tc.outgoing)
			assert.Equal(t, tc.expected, entity.Type)
		})
	}
}
