package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanSource = `
pragma solidity ^0.8.0;
contract Token {
    function transfer(address to, uint256 amount) public returns (bool) {
        require(amount > 0);
        return true;
    }
}
`

const rugSource = `
pragma solidity ^0.8.0;
contract Scam {
    function kill() public { selfdestruct(payable(owner)); }
    function mint(uint256 amount) public { _mint(msg.sender, amount); }
    function emergencyWithdraw() public onlyOwner { }
    mapping(address => bool) blacklist;
}
`

const honeypotSource = `
contract Trap {
    uint256 buyFee = 45;
    uint256 maxSellAmount = 100;
    function check() internal { require(canSell == false); }
}
`

func TestUnitDetectRugPull(t *testing.T) {
	t.Run("clean contract scores low", func(t *testing.T) {
		indicators := DetectRugPull(cleanSource)
		assert.Zero(t, indicators.RiskScore)
		assert.Equal(t, "LOW", indicators.Severity)
	})

	t.Run("scam contract fires multiple patterns", func(t *testing.T) {
		indicators := DetectRugPull(rugSource)
		assert.GreaterOrEqual(t, indicators.RiskScore, 75)
		assert.Equal(t, "CRITICAL", indicators.Severity)

		names := make([]string, 0, len(indicators.PatternsFound))
		for _, p := range indicators.PatternsFound {
			names = append(names, p.Pattern)
		}
		assert.Contains(t, names, "SELFDESTRUCT")
		assert.Contains(t, names, "UNLIMITED_MINT")
		assert.Contains(t, names, "EMERGENCY_WITHDRAW")
	})
}

func TestUnitDetectHoneypot(t *testing.T) {
	t.Run("clean contract is not a honeypot", func(t *testing.T) {
		indicators := DetectHoneypot(cleanSource)
		assert.False(t, indicators.IsHoneypot)
	})

	t.Run("trap contract flagged", func(t *testing.T) {
		indicators := DetectHoneypot(honeypotSource)
		assert.True(t, indicators.IsHoneypot)
		assert.GreaterOrEqual(t, indicators.RiskScore, 60)
	})
}

func TestUnitCheckLiquidityLock(t *testing.T) {
	t.Run("no lock raises risk", func(t *testing.T) {
		lock := CheckLiquidityLock(cleanSource)
		assert.False(t, lock.HasLock)
		assert.Equal(t, "HIGH", lock.Risk)
	})

	t.Run("lock time detected", func(t *testing.T) {
		lock := CheckLiquidityLock("uint256 lockTime = 31536000;")
		require.True(t, lock.HasLock)
		require.NotNil(t, lock.LockDuration)
		assert.EqualValues(t, 31536000, *lock.LockDuration)
	})
}

func TestUnitBuildReport(t *testing.T) {
	report := BuildReport("0xabc", "Scam", "v0.8.19", rugSource)

	assert.True(t, report.IsVerified)
	assert.Equal(t, "Scam", report.Name)
	assert.GreaterOrEqual(t, report.OverallRiskScore, 40.0)
	assert.NotEmpty(t, report.Recommendation)
}
