package state

import (
	"time"

	"outlooker/internal/domain"
)

// View identifies which screen is active.
type View int

const (
	ViewVerification View = iota // end-user code lookup, default without a token
	ViewLogin
	ViewDashboard
	ViewImport
	ViewTags
	ViewSystem
	ViewRecovery // shown after a panic was caught
)

// Name returns the view's display name for the header.
func (v View) Name() string {
	switch v {
	case ViewVerification:
		return "Verification"
	case ViewLogin:
		return "Admin Login"
	case ViewDashboard:
		return "Accounts"
	case ViewImport:
		return "Import"
	case ViewTags:
		return "Tags"
	case ViewSystem:
		return "System"
	case ViewRecovery:
		return "Recovered"
	}
	return "Unknown"
}

// ToastLevel classifies a status toast.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// AppState contains all the application state
type AppState struct {
	CurrentView View

	// Account data
	Page      domain.AccountPage
	Query     domain.AccountQuery
	FromCache bool // Page came from the local snapshot, refetch pending

	// Row cursor
	SelectedIndex int

	// Tags view cursor
	TagIndex int

	// Operation states
	LoadingAccounts  bool
	RefreshingCache  bool
	SavingConfig     bool
	VerifyLoading    bool
	LoginLoading     bool
	ImportLoading    bool
	UpdatingRowTags  bool

	// Verification view
	VerificationEmail  string
	VerificationResult *domain.VerificationCode

	// Login view
	LoginAttempts int

	// Import view
	ImportText    string
	ImportPreview *domain.ImportPreview
	ImportResult  *domain.ImportResult
	MergeMode     domain.MergeMode

	// System view
	Metrics      *domain.SystemMetrics
	SystemConfig *domain.SystemConfig

	// UI state
	Toast      string
	ToastLevel ToastLevel
	ToastUntil time.Time
	ShowHelp   bool

	// Recovery view
	PanicMessage string
}

// NewAppState creates a new application state
func NewAppState(pageSize int) *AppState {
	return &AppState{
		CurrentView: ViewVerification,
		Query: domain.AccountQuery{
			Page:     1,
			PageSize: pageSize,
		},
		MergeMode: domain.MergeModeUpdate,
	}
}

// ApplyPage installs a freshly loaded page and clamps the row cursor.
func (s *AppState) ApplyPage(page domain.AccountPage, fromCache bool) {
	s.Page = page
	s.FromCache = fromCache
	s.LoadingAccounts = false
	if s.SelectedIndex >= len(page.Accounts) {
		s.SelectedIndex = len(page.Accounts) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// CurrentEmail returns the email under the row cursor, or "".
func (s *AppState) CurrentEmail() string {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Page.Accounts) {
		return ""
	}
	return s.Page.Accounts[s.SelectedIndex].Email
}

// LoadedEmails returns the emails of all loaded rows in display order.
func (s *AppState) LoadedEmails() []string {
	emails := make([]string, 0, len(s.Page.Accounts))
	for _, acct := range s.Page.Accounts {
		emails = append(emails, acct.Email)
	}
	return emails
}

// SetToast shows a status toast until the given deadline.
func (s *AppState) SetToast(level ToastLevel, msg string, until time.Time) {
	s.Toast = msg
	s.ToastLevel = level
	s.ToastUntil = until
}

// ExpireToast clears the toast once its deadline passed.
func (s *AppState) ExpireToast(now time.Time) {
	if s.Toast != "" && now.After(s.ToastUntil) {
		s.Toast = ""
	}
}

// MoveCursor moves the row cursor by delta, clamped to the loaded rows.
func (s *AppState) MoveCursor(delta int) {
	n := len(s.Page.Accounts)
	if n == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex += delta
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
}

// ToggleMergeMode flips between the update and skip import strategies.
func (s *AppState) ToggleMergeMode() {
	if s.MergeMode == domain.MergeModeUpdate {
		s.MergeMode = domain.MergeModeSkip
	} else {
		s.MergeMode = domain.MergeModeUpdate
	}
}
