package domain

import "time"

// Account represents one managed email account as reported by the server.
type Account struct {
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Tags         []string  `json:"tags"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountPage is one page of accounts plus the paging totals the server
// computed for the query that produced it.
type AccountPage struct {
	Accounts   []Account `json:"accounts"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// AccountQuery describes a dashboard listing request.
type AccountQuery struct {
	Page     int
	PageSize int
	Search   string
	Tag      string
}

// TagMode selects how a batch tag update is applied.
type TagMode string

const (
	TagModeAdd    TagMode = "add"    // append to existing tags
	TagModeRemove TagMode = "remove" // strip from existing tags
	TagModeSet    TagMode = "set"    // replace existing tags
)

// Valid reports whether the mode is one of the three enumerated values.
func (m TagMode) Valid() bool {
	return m == TagModeAdd || m == TagModeRemove || m == TagModeSet
}

// MergeMode selects the import strategy when an imported account collides
// with a stored one.
type MergeMode string

const (
	MergeModeUpdate MergeMode = "update"
	MergeModeSkip   MergeMode = "skip"
)

// ImportPreview is the server's parse of pasted import text, returned
// before anything is written.
type ImportPreview struct {
	Accounts    []Account `json:"accounts"`
	ParsedCount int       `json:"parsed_count"`
	ErrorCount  int       `json:"error_count"`
	Errors      []string  `json:"errors"`
}

// ImportResult holds the aggregate counts of a committed import.
type ImportResult struct {
	AddedCount   int `json:"added_count"`
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
	ErrorCount   int `json:"error_count"`
}

// SystemConfig is the server-side configuration the admin panel edits.
type SystemConfig struct {
	EmailLimit int `json:"email_limit"`
}

// SystemMetrics is the server-reported snapshot of the email-fetch cache
// and client pool. Consumed read-only by the system view.
type SystemMetrics struct {
	CacheHits      int    `json:"cache_hits"`
	CacheMisses    int    `json:"cache_misses"`
	ClientsReused  int    `json:"clients_reused"`
	ClientsCreated int    `json:"clients_created"`
	Warning        string `json:"warning,omitempty"`
}

// VerificationCode is the latest code found in a mailbox, for the
// end-user lookup view.
type VerificationCode struct {
	Code       string    `json:"code"`
	Sender     string    `json:"sender,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
