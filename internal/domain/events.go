package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAccountsRequested EventType = "AccountsRequested"
	EventAccountsLoaded    EventType = "AccountsLoaded"
	EventAccountsDeleted   EventType = "AccountsDeleted"
	EventTagsUpdated       EventType = "TagsUpdated"
	EventImportCompleted   EventType = "ImportCompleted"
	EventMetricsLoaded     EventType = "MetricsLoaded"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventCacheRefreshed    EventType = "CacheRefreshed"
	EventAuthExpired       EventType = "AuthExpired"
	EventLoggedIn          EventType = "LoggedIn"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AccountsRequestedEvent asks the accounts service to fetch a page.
type AccountsRequestedEvent struct {
	Query AccountQuery
}

func (e AccountsRequestedEvent) Type() EventType { return EventAccountsRequested }

// AccountsLoadedEvent carries a freshly fetched page of accounts.
type AccountsLoadedEvent struct {
	Page  AccountPage
	Query AccountQuery
}

func (e AccountsLoadedEvent) Type() EventType { return EventAccountsLoaded }

// AccountsDeletedEvent is emitted after a batch delete succeeds.
type AccountsDeletedEvent struct {
	Emails []string
}

func (e AccountsDeletedEvent) Type() EventType { return EventAccountsDeleted }

// TagsUpdatedEvent is emitted after a tag update (single or batch) succeeds.
type TagsUpdatedEvent struct {
	Emails []string
	Tags   []string
	Mode   TagMode
}

func (e TagsUpdatedEvent) Type() EventType { return EventTagsUpdated }

// ImportCompletedEvent is emitted after an import commit succeeds.
type ImportCompletedEvent struct {
	Result ImportResult
}

func (e ImportCompletedEvent) Type() EventType { return EventImportCompleted }

// MetricsLoadedEvent carries a fresh metrics snapshot.
type MetricsLoadedEvent struct {
	Metrics SystemMetrics
}

func (e MetricsLoadedEvent) Type() EventType { return EventMetricsLoaded }

// ConfigLoadedEvent carries the server-side system configuration.
type ConfigLoadedEvent struct {
	Config SystemConfig
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when the system configuration was saved.
type ConfigSavedEvent struct {
	Config SystemConfig
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// CacheRefreshedEvent is emitted when the server-side cache was refreshed.
type CacheRefreshedEvent struct{}

func (e CacheRefreshedEvent) Type() EventType { return EventCacheRefreshed }

// AuthExpiredEvent is emitted once when a request comes back 401 and the
// stored token has been cleared.
type AuthExpiredEvent struct{}

func (e AuthExpiredEvent) Type() EventType { return EventAuthExpired }

// LoggedInEvent is emitted when an admin login succeeds and the token is
// stored.
type LoggedInEvent struct{}

func (e LoggedInEvent) Type() EventType { return EventLoggedIn }

// ErrorEvent is emitted when an operation fails.
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
