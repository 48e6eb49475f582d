package threat

import (
	"strings"
	"sync"
)

// Cache keeps the loaded feeds in memory keyed by source.
type Cache struct {
	mu sync.RWMutex

	data map[string]map[string]struct{}
}

func NewCache() *Cache {
	return &Cache{
		data: make(map[string]map[string]struct{}),
	}
}

func (c *Cache) AddItems(source string, addresses ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[source]
	if !ok {
		data = make(map[string]struct{})
	}

	for _, addr := range addresses {
		data[strings.ToLower(addr)] = struct{}{}
	}

	c.data[source] = data
}

func (c *Cache) ReplaceItems(source string, addresses ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		data[strings.ToLower(addr)] = struct{}{}
	}

	c.data[source] = data
}

// SourcesFor lists the feeds that flag the given address.
func (c *Cache) SourcesFor(address string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	address = strings.ToLower(address)

	var sources []string
	for source, addresses := range c.data {
		if _, ok := addresses[address]; ok {
			sources = append(sources, source)
		}
	}

	return sources
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, addresses := range c.data {
		total += len(addresses)
	}

	return total
}
