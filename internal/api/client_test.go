package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

type memTokens struct {
	token string
}

func (m *memTokens) Token() string             { return m.token }
func (m *memTokens) SetToken(tok string) error { m.token = tok; return nil }
func (m *memTokens) Clear() error              { m.token = ""; return nil }

func okEnvelope(data interface{}) []byte {
	b, _ := json.Marshal(map[string]interface{}{"success": true, "data": data})
	return b
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(okEnvelope(domain.AccountPage{}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{token: "tok-1"}, nil)
	_, err := c.Accounts(context.Background(), domain.AccountQuery{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(okEnvelope(domain.VerificationCode{Code: "123456"}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{}, nil)
	code, err := c.VerificationCode(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "123456", code.Code)
}

func TestAccountsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(okEnvelope(domain.AccountPage{Total: 1}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{token: "t"}, nil)
	q := domain.AccountQuery{Page: 3, PageSize: 50, Search: "vip", Tag: "VIP"}
	page, err := c.Accounts(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"50"}, gotQuery["page_size"])
	assert.Equal(t, []string{"vip"}, gotQuery["search"])
	assert.Equal(t, []string{"VIP"}, gotQuery["tag"])
}

func TestUpdateAccountTagsPathAndBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write(okEnvelope(nil))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{token: "t"}, nil)
	err := c.UpdateAccountTags(context.Background(), "a+b@x.com", []string{"VIP", "Premium"})

	require.NoError(t, err)
	assert.Equal(t, "/api/accounts/a+b@x.com/tags", gotPath)
	assert.Equal(t, "a+b@x.com", gotBody["email"])
	assert.Equal(t, []interface{}{"VIP", "Premium"}, gotBody["tags"])
}

func TestFailedEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "wrong password"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{}, nil)
	err := c.Login(context.Background(), "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "wrong password", apiErr.Message)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write(okEnvelope(map[string]string{"token": "fresh"}))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	c := NewClient(srv.URL, time.Second, tokens, nil)
	require.NoError(t, c.Login(context.Background(), "secret"))
	assert.Equal(t, "fresh", tokens.token)
}

func TestUnauthorizedClearsTokenAndPublishesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	bus := eventbus.New()
	expired := make(chan struct{}, 10)
	bus.Subscribe(eventbus.EventAuthExpired, func(eventbus.DomainEvent) {
		expired <- struct{}{}
	})

	tokens := &memTokens{token: "stale"}
	c := NewClient(srv.URL, time.Second, tokens, bus)

	err := c.BatchDelete(context.Background(), []string{"a@x.com"})
	require.True(t, IsUnauthorized(err))
	assert.Empty(t, tokens.token, "stale token cleared")

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("auth expiry was never announced")
	}

	// A second 401 stays quiet until a new token is stored.
	err = c.RefreshCache(context.Background())
	require.True(t, IsUnauthorized(err))
	select {
	case <-expired:
		t.Fatal("auth expiry announced twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoginReArmsAuthExpiry(t *testing.T) {
	loggedIn := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/login" {
			loggedIn = true
			w.Write(okEnvelope(map[string]string{"token": "fresh"}))
			return
		}
		if !loggedIn {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized) // expire again after login
	}))
	defer srv.Close()

	bus := eventbus.New()
	expired := make(chan struct{}, 10)
	bus.Subscribe(eventbus.EventAuthExpired, func(eventbus.DomainEvent) {
		expired <- struct{}{}
	})

	tokens := &memTokens{token: "stale"}
	c := NewClient(srv.URL, time.Second, tokens, bus)

	_ = c.RefreshCache(context.Background()) // first expiry
	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("first expiry missing")
	}

	require.NoError(t, c.Login(context.Background(), "secret"))

	_ = c.RefreshCache(context.Background()) // expiry after re-login fires again
	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("expiry after re-login was swallowed")
	}
}

func TestNonEnvelopeErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, &memTokens{}, nil)
	err := c.RefreshCache(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, IsUnauthorized(err))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.False(t, IsUnauthorized(errors.New("other")))
	assert.False(t, IsUnauthorized(nil))
}
