package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"outlooker/internal/domain"
)

// Login authenticates with the admin password and stores the returned
// bearer token under the admin_token key.
func (c *Client) Login(ctx context.Context, password string) error {
	var data struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/login", map[string]string{"password": password}, &data)
	if err != nil {
		return err
	}
	if data.Token == "" {
		return &APIError{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}
	return c.storeToken(data.Token)
}

// VerificationCode fetches the latest verification code received by the
// given mailbox. This is the one unauthenticated end-user operation.
func (c *Client) VerificationCode(ctx context.Context, email string) (domain.VerificationCode, error) {
	var code domain.VerificationCode
	err := c.do(ctx, http.MethodPost, "/api/verification-code", map[string]string{"email": email}, &code)
	return code, err
}

// Accounts fetches one page of accounts for the dashboard.
func (c *Client) Accounts(ctx context.Context, q domain.AccountQuery) (domain.AccountPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}

	var page domain.AccountPage
	err := c.do(ctx, http.MethodGet, "/api/accounts?"+params.Encode(), nil, &page)
	return page, err
}

// BatchDelete removes the given accounts. The emails slice is sent as-is;
// callers pass the ordered selection.
func (c *Client) BatchDelete(ctx context.Context, emails []string) error {
	body := map[string]interface{}{"emails": emails}
	return c.do(ctx, http.MethodPost, "/api/accounts/batch-delete", body, nil)
}

// BatchUpdateTags applies tags to every given account according to mode.
func (c *Client) BatchUpdateTags(ctx context.Context, emails []string, tags []string, mode domain.TagMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid tag mode %q", mode)
	}
	body := map[string]interface{}{
		"emails": emails,
		"tags":   tags,
		"mode":   string(mode),
	}
	return c.do(ctx, http.MethodPost, "/api/accounts/batch-tags", body, nil)
}

// UpdateAccountTags replaces the tag list of a single account.
func (c *Client) UpdateAccountTags(ctx context.Context, email string, tags []string) error {
	body := map[string]interface{}{"email": email, "tags": tags}
	return c.do(ctx, http.MethodPost, "/api/accounts/"+url.PathEscape(email)+"/tags", body, nil)
}

// ParseImportText asks the server to parse pasted import text into a
// preview. Nothing is written by this call.
func (c *Client) ParseImportText(ctx context.Context, text string) (domain.ImportPreview, error) {
	var preview domain.ImportPreview
	err := c.do(ctx, http.MethodPost, "/api/parse-import-text", map[string]string{"text": text}, &preview)
	return preview, err
}

// Import commits previously parsed accounts with the given merge mode.
func (c *Client) Import(ctx context.Context, accounts []domain.Account, mode domain.MergeMode) (domain.ImportResult, error) {
	body := map[string]interface{}{
		"accounts":   accounts,
		"merge_mode": string(mode),
	}
	var result domain.ImportResult
	err := c.do(ctx, http.MethodPost, "/api/import", body, &result)
	return result, err
}

// SystemConfig fetches the server-side configuration.
func (c *Client) SystemConfig(ctx context.Context) (domain.SystemConfig, error) {
	var cfg domain.SystemConfig
	err := c.do(ctx, http.MethodGet, "/api/system/config", nil, &cfg)
	return cfg, err
}

// SaveSystemConfig writes the server-side configuration.
func (c *Client) SaveSystemConfig(ctx context.Context, cfg domain.SystemConfig) error {
	return c.do(ctx, http.MethodPost, "/api/system/config", cfg, nil)
}

// RefreshCache triggers a server-side cache refresh.
func (c *Client) RefreshCache(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/cache/refresh", nil, nil)
}

// SystemMetrics fetches the server-reported metrics snapshot.
func (c *Client) SystemMetrics(ctx context.Context) (domain.SystemMetrics, error) {
	var m domain.SystemMetrics
	err := c.do(ctx, http.MethodGet, "/api/system/metrics", nil, &m)
	return m, err
}
