package threat

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// feed files expected under the intel directory
var feedFiles = map[string]string{
	SourceChainalysis:       "chainalysis_sanctions.csv",
	SourceOFAC:              "ofac_sdn.csv",
	SourceScamAlert:         "scamalert.json",
	SourceEtherscanPhishing: "etherscan_phishing.csv",
}

type scamAlertFile struct {
	Scammers []string `json:"scammers"`
}

// LoadFeeds reads every known feed file from dir into the cache. Missing
// files are skipped, broken files are logged and skipped.
func LoadFeeds(dir string, cache *Cache) error {
	for source, filename := range feedFiles {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		var (
			addresses []string
			err       error
		)

		if strings.HasSuffix(filename, ".json") {
			addresses, err = loadJSONFeed(path)
		} else {
			addresses, err = loadCSVFeed(path)
		}
		if err != nil {
			log.Warn().Err(err).Str("source", source).Msg("skip threat feed")

			continue
		}

		cache.ReplaceItems(source, addresses...)
		log.Info().Str("source", source).Int("addresses", len(addresses)).Msg("threat feed loaded")
	}

	return nil
}

// loadCSVFeed reads the first column as the address, skipping a header row.
func loadCSVFeed(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var addresses []string
	for _, record := range records {
		if len(record) == 0 {
			continue
		}

		addr := strings.ToLower(strings.TrimSpace(record[0]))
		if addr == "" || addr == "address" {
			continue
		}

		addresses = append(addresses, addr)
	}

	return addresses, nil
}

func loadJSONFeed(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}

	var file scamAlertFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	addresses := make([]string, 0, len(file.Scammers))
	for _, addr := range file.Scammers {
		addresses = append(addresses, strings.ToLower(addr))
	}

	return addresses, nil
}
