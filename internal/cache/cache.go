// Package cache persists the last server responses so the dashboard can
// render stale data instantly on startup while the first fetch runs.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"outlooker/internal/domain"
)

const (
	accountsKey = "accounts_page"
	metricsKey  = "system_metrics"
)

// Snapshot is a local read-through cache of the last loaded page and
// metrics. It is advisory only: the UI always refetches after rendering
// a cached snapshot.
type Snapshot struct {
	d *diskv.Diskv
}

// New creates a snapshot cache under dir, defaulting to the user config dir.
func New(dir string) *Snapshot {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		dir = filepath.Join(configDir, "outlooker", "cache")
	}

	return &Snapshot{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

// SaveAccounts stores the last loaded page.
func (s *Snapshot) SaveAccounts(page domain.AccountPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return s.d.Write(accountsKey, data)
}

// Accounts returns the cached page, reporting ok=false when none exists
// or the stored bytes no longer parse.
func (s *Snapshot) Accounts() (domain.AccountPage, bool) {
	if !s.d.Has(accountsKey) {
		return domain.AccountPage{}, false
	}
	data, err := s.d.Read(accountsKey)
	if err != nil {
		return domain.AccountPage{}, false
	}
	var page domain.AccountPage
	if err := json.Unmarshal(data, &page); err != nil {
		return domain.AccountPage{}, false
	}
	return page, true
}

// SaveMetrics stores the last metrics snapshot.
func (s *Snapshot) SaveMetrics(m domain.SystemMetrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.d.Write(metricsKey, data)
}

// Metrics returns the cached metrics snapshot.
func (s *Snapshot) Metrics() (domain.SystemMetrics, bool) {
	if !s.d.Has(metricsKey) {
		return domain.SystemMetrics{}, false
	}
	data, err := s.d.Read(metricsKey)
	if err != nil {
		return domain.SystemMetrics{}, false
	}
	var m domain.SystemMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.SystemMetrics{}, false
	}
	return m, true
}

// Invalidate erases cached entries after server-side mutations so the
// next startup does not replay deleted rows.
func (s *Snapshot) Invalidate() {
	if s.d.Has(accountsKey) {
		_ = s.d.Erase(accountsKey)
	}
	if s.d.Has(metricsKey) {
		_ = s.d.Erase(metricsKey)
	}
}
