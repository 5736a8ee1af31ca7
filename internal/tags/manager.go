package tags

import (
	"sort"
	"strings"
	"sync"

	"outlooker/internal/eventbus"
)

// Manager maintains the tag index shown by the tag-manage panel
type Manager interface {
	Counts() map[string]int
	Names() []string
	Count(tag string) int
}

// manager is the concrete implementation
type manager struct {
	bus    eventbus.EventBus
	mu     sync.RWMutex
	counts map[string]int // tag name -> accounts carrying it (within loaded pages)
}

// NewManager creates a tag manager. It rebuilds its index from every
// loaded page, so counts reflect what the dashboard currently shows, not
// the whole server dataset.
func NewManager(bus eventbus.EventBus) Manager {
	m := &manager{
		bus:    bus,
		counts: make(map[string]int),
	}

	bus.Subscribe(eventbus.EventAccountsLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AccountsLoadedEvent); ok {
			m.rebuild(event)
		}
	})

	return m
}

func (m *manager) rebuild(event eventbus.AccountsLoadedEvent) {
	counts := make(map[string]int)
	for _, acct := range event.Page.Accounts {
		for _, tag := range acct.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}

	m.mu.Lock()
	m.counts = counts
	m.mu.Unlock()
}

// Counts returns a copy of the tag index.
func (m *manager) Counts() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int, len(m.counts))
	for tag, n := range m.counts {
		counts[tag] = n
	}
	return counts
}

// Names returns all known tag names sorted.
func (m *manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.counts))
	for tag := range m.counts {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of loaded accounts carrying the tag.
func (m *manager) Count(tag string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[tag]
}

// SplitTags parses a comma-separated tag string: pieces are trimmed and
// empty segments dropped, so "VIP, Premium," yields ["VIP","Premium"].
func SplitTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}
