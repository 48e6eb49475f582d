package chainconn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitValidateAddress(t *testing.T) {
	for name, tc := range map[string]struct {
		address string
		valid   bool
	}{
		"checksummed": {"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		"lowercase":   {"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		"no prefix":   {"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		"too short":   {"0x5aaeb6053f3e94", false},
		"not hex":     {"0xZZZeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		"empty":       {"", false},
		"too long":    {"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00", false},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateAddress(tc.address))
		})
	}
}

func TestUnitDisconnectedLookupsFail(t *testing.T) {
	c := NewConnector("")

	assert.Error(t, c.Connect(context.Background()))

	_, err := c.Balance(context.Background(), "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Error(t, err)

	_, err = c.LatestBlock(context.Background())
	assert.Error(t, err)
}
