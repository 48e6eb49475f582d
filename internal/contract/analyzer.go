package contract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reUnlimitedMint = regexp.MustCompile(`(?i)function\s+mint\s*\([^)]*\)\s*(public|external)`)
	reOnlyOwner     = regexp.MustCompile(`(?i)function\s+mint\s*\([^)]*\)\s*(public|external)[^{]*onlyOwner`)
	rePauseTransfer = regexp.MustCompile(`(?i)(pause|freeze|stop).*transfer`)
	reBlacklist     = regexp.MustCompile(`(?i)(blacklist|whitelist|banned)`)
	reEmergency     = regexp.MustCompile(`(?i)(withdrawAll|emergencyWithdraw|drainBalance)`)

	reOwnerOnlyBuy = regexp.MustCompile(`(?i)(onlyOwner.*buy|buy.*onlyOwner)`)
	reSellDisabled = regexp.MustCompile(`(?i)(cannot.*sell|sell.*forbidden|sell.*disabled)`)
	reBuyFee       = regexp.MustCompile(`(?i)(buyFee|buy_fee)\s*=\s*(\d+)`)
	reSellLimit    = regexp.MustCompile(`(?i)(sellLimit|maxSell|maxSellAmount)`)
	reRevertOnSell = regexp.MustCompile(`(?i)require.*sell.*false`)

	reLockTime     = regexp.MustCompile(`lockTime\s*=\s*(\d+)`)
	reLockContract = regexp.MustCompile(`(Locker|Lock|LockManager)`)
)

// DetectRugPull scans verified source for owner-controlled drain vectors.
func DetectRugPull(source string) *RugPullIndicators {
	indicators := &RugPullIndicators{}

	if strings.Contains(strings.ToLower(source), "selfdestruct") {
		indicators.add("SELFDESTRUCT", "Contract can self-destruct (owner can drain)", "CRITICAL", 30)
	}
	if reUnlimitedMint.MatchString(source) && !reOnlyOwner.MatchString(source) {
		indicators.add("UNLIMITED_MINT", "Anyone can mint tokens (infinite supply)", "CRITICAL", 25)
	}
	if rePauseTransfer.MatchString(source) {
		indicators.add("PAUSE_TRANSFER", "Owner can pause/freeze token transfers", "HIGH", 20)
	}
	if reBlacklist.MatchString(source) {
		indicators.add("BLACKLIST", "Blacklist/whitelist functionality (can freeze addresses)", "MEDIUM", 15)
	}
	if hiddenTransferLogic(source) {
		indicators.add("HIDDEN_TRANSFER_LOGIC", "Custom transfer logic without restrictions", "HIGH", 15)
	}
	if reEmergency.MatchString(source) {
		indicators.add("EMERGENCY_WITHDRAW", "Emergency withdrawal function (can drain liquidity)", "CRITICAL", 20)
	}

	if indicators.RiskScore > 100 {
		indicators.RiskScore = 100
	}

	switch {
	case indicators.RiskScore >= 75:
		indicators.Severity, indicators.Confidence = "CRITICAL", 0.95
	case indicators.RiskScore >= 50:
		indicators.Severity, indicators.Confidence = "HIGH", 0.85
	case indicators.RiskScore >= 25:
		indicators.Severity, indicators.Confidence = "MEDIUM", 0.7
	default:
		indicators.Severity, indicators.Confidence = "LOW", 0.5
	}

	return indicators
}

func (i *RugPullIndicators) add(pattern, description, risk string, score int) {
	i.PatternsFound = append(i.PatternsFound, PatternMatch{
		Pattern:     pattern,
		Description: description,
		Risk:        risk,
	})
	i.RiskScore += score
}

// DetectHoneypot scans for constructs that let holders buy but never sell.
func DetectHoneypot(source string) *HoneypotIndicators {
	indicators := &HoneypotIndicators{}

	add := func(pattern, description, risk string, score int) {
		indicators.Patterns = append(indicators.Patterns, PatternMatch{
			Pattern:     pattern,
			Description: description,
			Risk:        risk,
		})
		indicators.RiskScore += score
	}

	if reOwnerOnlyBuy.MatchString(source) {
		add("OWNER_ONLY_BUY", "Only owner can buy tokens", "CRITICAL", 35)
	}
	if reSellDisabled.MatchString(source) {
		add("SELL_DISABLED", "Token transfers/sales are disabled", "CRITICAL", 35)
	}
	if m := reBuyFee.FindStringSubmatch(source); m != nil {
		if fee, err := strconv.Atoi(m[2]); err == nil && fee > 20 {
			add("MASSIVE_BUY_FEE", "Very high buy fee ("+m[2]+"%)", "HIGH", 25)
		}
	}
	if reSellLimit.MatchString(source) {
		add("SELL_LIMIT", "Per-address sell limit enforced", "HIGH", 20)
	}
	if reRevertOnSell.MatchString(source) {
		add("REVERT_ON_SELL", "Sales revert (trapped tokens)", "CRITICAL", 40)
	}

	if indicators.RiskScore > 100 {
		indicators.RiskScore = 100
	}

	switch {
	case indicators.RiskScore >= 60:
		indicators.IsHoneypot = true
		indicators.Confidence = 0.9
	case indicators.RiskScore >= 30:
		indicators.Confidence = 0.65
	default:
		indicators.Confidence = 0.4
	}

	return indicators
}

// CheckLiquidityLock looks for evidence that liquidity cannot be pulled.
func CheckLiquidityLock(source string) *LiquidityLock {
	lock := &LiquidityLock{Risk: "UNKNOWN"}

	if strings.Contains(source, "uniswapV2Pair") {
		lock.LockPatterns = append(lock.LockPatterns, "Uniswap V2 LP token detected")
	}
	if m := reLockTime.FindStringSubmatch(source); m != nil {
		if duration, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			lock.HasLock = true
			lock.LockDuration = &duration
			lock.LockPatterns = append(lock.LockPatterns, "Lock duration: "+m[1]+" seconds")
		}
	}
	if reLockContract.MatchString(source) {
		lock.HasLock = true
		lock.LockPatterns = append(lock.LockPatterns, "Uses external lock contract")
	}
	if strings.Contains(strings.ToLower(source), "cannot remove liquidity") {
		lock.HasLock = true
		lock.LockPatterns = append(lock.LockPatterns, "Explicit: Cannot remove liquidity")
	}

	if lock.HasLock {
		lock.Risk = "LOW"
	} else {
		lock.Risk = "HIGH"
		lock.LockPatterns = append(lock.LockPatterns, "No liquidity lock detected, high rug pull risk")
	}

	return lock
}

// BuildReport combines the individual screenings into one verdict.
func BuildReport(address, name, compilerVersion, source string) *Report {
	rugPull := DetectRugPull(source)
	honeypot := DetectHoneypot(source)
	lock := CheckLiquidityLock(source)

	lockPenalty := 40.0
	if lock.HasLock {
		lockPenalty = 0
	}

	overall := float64(rugPull.RiskScore)*0.4 + float64(honeypot.RiskScore)*0.3 + lockPenalty*0.3
	if overall > 100 {
		overall = 100
	}

	level := "LOW"
	switch {
	case overall >= 75:
		level = "CRITICAL"
	case overall >= 50:
		level = "HIGH"
	case overall >= 25:
		level = "MEDIUM"
	}

	return &Report{
		Address:          address,
		Name:             name,
		IsVerified:       true,
		CompilerVersion:  compilerVersion,
		RugPull:          rugPull,
		Honeypot:         honeypot,
		LiquidityLock:    lock,
		OverallRiskScore: overall,
		OverallRiskLevel: level,
		Recommendation:   recommendation(overall),
		AnalyzedAt:       time.Now().UTC(),
	}
}

func recommendation(overall float64) string {
	switch {
	case overall >= 80:
		return "AVOID: high probability of scam or rug pull, do not invest"
	case overall >= 60:
		return "EXTREME CAUTION: multiple suspicious patterns detected, high risk"
	case overall >= 40:
		return "CAUTION: some suspicious patterns found, verify before investing"
	case overall >= 20:
		return "REVIEW: minor concerns, research team and liquidity status"
	default:
		return "LOW RISK: no major red flags detected, still conduct due diligence"
	}
}

// hiddenTransferLogic flags a custom _transfer with no require guard nearby.
func hiddenTransferLogic(source string) bool {
	idx := strings.Index(source, "_transfer")
	if idx < 0 {
		return false
	}

	window := source[idx:]
	if len(window) > 200 {
		window = window[:200]
	}

	return !strings.Contains(window, "require")
}
