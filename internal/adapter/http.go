package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-study-keeper/internal/config"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

type httpRemoteAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs an HTTP/REST implementation of
// [RemoteAdapter]. It normalises and validates the base URL from
// remoteCfg.BaseURL and configures the underlying resty client with the
// resolved base URL and request timeout. If remoteCfg.Token is set, it is
// stored as the initial bearer token.
//
// Returns an error if remoteCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteAdapter(remoteCfg config.Remote, logger *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(remoteCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout)

	a := &httpRemoteAdapter{client: client, logger: logger}
	if remoteCfg.Token != "" {
		a.SetToken(remoteCfg.Token)
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpRemoteAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// TokenExpired implements [RemoteAdapter]. The token signature is not
// verified here; only the "exp" claim is inspected. Tokens without an "exp"
// claim never expire.
func (h *httpRemoteAdapter) TokenExpired() bool {
	token := h.Token()
	if token == "" {
		return true
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}

// Fetch implements [RemoteAdapter]. It GETs
// GET /api/sync/entities/{type}/{id} and decodes the response into a
// [models.RemoteSnapshot]. Returns [ErrNotFound] (wrapped) on HTTP 404, which
// callers treat as "never seen remotely".
func (h *httpRemoteAdapter) Fetch(ctx context.Context, ref models.EntityRef) (models.RemoteSnapshot, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("type", string(ref.Type)).
		SetPathParam("id", ref.ID).
		Get("/api/sync/entities/{type}/{id}")
	if err != nil {
		return models.RemoteSnapshot{}, fmt.Errorf("fetch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteSnapshot{}, err
	}

	var snapshot models.RemoteSnapshot
	if err = json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return models.RemoteSnapshot{}, fmt.Errorf("decode fetch response: %w", err)
	}

	return snapshot, nil
}

// Apply implements [RemoteAdapter]. It POSTs the operation to
// POST /api/sync/apply and returns the authoritative post-apply version
// vector from the response. Returns [ErrConflict] (wrapped) on HTTP 409 and
// [ErrRejected] (wrapped) on HTTP 422.
func (h *httpRemoteAdapter) Apply(ctx context.Context, op models.SyncOperation) (models.VersionVector, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(op).
		Post("/api/sync/apply")
	if err != nil {
		return nil, fmt.Errorf("apply request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var ack models.ApplyResponse
	if err = json.Unmarshal(resp.Body(), &ack); err != nil {
		return nil, fmt.Errorf("decode apply response: %w", err)
	}
	if ack.Vector == nil {
		return nil, fmt.Errorf("apply response for %s missing vector", op.Ref)
	}

	return ack.Vector, nil
}

func (h *httpRemoteAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
