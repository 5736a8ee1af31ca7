//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	mockPassword = "hunter2"
	mockToken    = "tok-e2e"
)

type mockAccount struct {
	Email     string    `json:"email"`
	Tags      []string  `json:"tags"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// mockAPI is an in-process stand-in for the admin server. The app under
// test runs in its own process and reaches it over loopback.
type mockAPI struct {
	mu       sync.Mutex
	accounts []mockAccount

	// call records for assertions
	deletedEmails  []string
	tagRequests    []map[string]interface{}
	rowTagRequests []map[string]interface{}
	loginAttempts  int

	server *httptest.Server
}

func newMockAPI(accounts []mockAccount) *mockAPI {
	m := &mockAPI{accounts: accounts}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", m.handleLogin)
	mux.HandleFunc("/api/verification-code", m.handleVerificationCode)
	mux.HandleFunc("/api/accounts", m.requireAuth(m.handleAccounts))
	mux.HandleFunc("/api/accounts/batch-delete", m.requireAuth(m.handleBatchDelete))
	mux.HandleFunc("/api/accounts/batch-tags", m.requireAuth(m.handleBatchTags))
	mux.HandleFunc("POST /api/accounts/{email}/tags", m.requireAuth(m.handleRowTags))
	mux.HandleFunc("/api/system/config", m.requireAuth(m.handleSystemConfig))
	mux.HandleFunc("/api/system/metrics", m.requireAuth(m.handleMetrics))
	mux.HandleFunc("/api/system/cache/refresh", m.requireAuth(m.handleCacheRefresh))
	m.server = httptest.NewServer(mux)
	return m
}

func (m *mockAPI) URL() string { return m.server.URL }
func (m *mockAPI) Close()      { m.server.Close() }

func (m *mockAPI) DeletedEmails() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletedEmails...)
}

func (m *mockAPI) TagRequests() []map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]interface{}(nil), m.tagRequests...)
}

func (m *mockAPI) RowTagRequests() []map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]interface{}(nil), m.rowTagRequests...)
}

func writeOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": msg,
	})
}

func (m *mockAPI) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+mockToken {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func (m *mockAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	m.mu.Lock()
	m.loginAttempts++
	m.mu.Unlock()

	if body.Password != mockPassword {
		writeErr(w, http.StatusForbidden, "wrong password")
		return
	}
	writeOK(w, map[string]string{"token": mockToken})
}

func (m *mockAPI) handleVerificationCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" {
		writeErr(w, http.StatusBadRequest, "email required")
		return
	}
	writeOK(w, map[string]interface{}{
		"code":        "424242",
		"sender":      "no-reply@example.com",
		"received_at": time.Now().UTC(),
	})
}

func (m *mockAPI) handleAccounts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	search := r.URL.Query().Get("search")
	tag := r.URL.Query().Get("tag")

	m.mu.Lock()
	var filtered []mockAccount
	for _, a := range m.accounts {
		if search != "" && !strings.Contains(a.Email, search) {
			continue
		}
		if tag != "" && !containsTag(a.Tags, tag) {
			continue
		}
		filtered = append(filtered, a)
	}
	m.mu.Unlock()

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeOK(w, map[string]interface{}{
		"accounts":    filtered[start:end],
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	})
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (m *mockAPI) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Emails []string `json:"emails"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	m.mu.Lock()
	m.deletedEmails = append(m.deletedEmails, body.Emails...)
	var remaining []mockAccount
	for _, a := range m.accounts {
		deleted := false
		for _, e := range body.Emails {
			if a.Email == e {
				deleted = true
				break
			}
		}
		if !deleted {
			remaining = append(remaining, a)
		}
	}
	m.accounts = remaining
	m.mu.Unlock()

	writeOK(w, nil)
}

func (m *mockAPI) handleBatchTags(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	m.mu.Lock()
	m.tagRequests = append(m.tagRequests, body)
	m.mu.Unlock()

	writeOK(w, nil)
}

func (m *mockAPI) handleRowTags(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	var body struct {
		Email string   `json:"email"`
		Tags  []string `json:"tags"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	m.mu.Lock()
	m.rowTagRequests = append(m.rowTagRequests, map[string]interface{}{
		"path_email": email,
		"email":      body.Email,
		"tags":       body.Tags,
	})
	for i, a := range m.accounts {
		if a.Email == email {
			m.accounts[i].Tags = body.Tags
			m.accounts[i].UpdatedAt = time.Now().UTC()
		}
	}
	m.mu.Unlock()

	writeOK(w, nil)
}

func (m *mockAPI) handleSystemConfig(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]int{"email_limit": 10})
}

func (m *mockAPI) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]interface{}{
		"cache_hits":      12,
		"cache_misses":    3,
		"clients_reused":  7,
		"clients_created": 2,
	})
}

func (m *mockAPI) handleCacheRefresh(w http.ResponseWriter, r *http.Request) {
	writeOK(w, nil)
}
