package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"Address", "Tag", "Risk Score", "Confidence", "Entity Type",
	"Total TX", "ETH Received", "ETH Sent", "Patterns", "Flagged", "Status",
}

// WriteCSV renders batch results as a comparison table.
func WriteCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, result := range results {
		row := []string{
			result.Address,
			result.Tag,
			strconv.Itoa(result.RiskScore),
			fmt.Sprintf("%d%%", result.ConfidenceScore),
			result.EntityType,
			strconv.Itoa(result.TotalTransactions),
			fmt.Sprintf("%.4f", result.TotalReceived),
			fmt.Sprintf("%.4f", result.TotalSent),
			strconv.Itoa(len(result.PatternsDetected)),
			strconv.FormatBool(result.ThreatFlagged),
			result.Status,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
