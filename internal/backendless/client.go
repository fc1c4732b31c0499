// Package backendless is the single translator between internal operations
// and the Backendless REST API. It owns URL construction, token forwarding
// and the normalisation of every remote failure into the closed API error
// set; callers never see vendor-specific errors.
package backendless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/equipo46/horarios-api/internal/models"
	"github.com/equipo46/horarios-api/pkg/config"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
)

// HeaderUserToken carries the opaque session token, both on inbound local
// requests and on forwarded remote calls.
const HeaderUserToken = "user-token"

// Vendor error codes surfaced by Backendless in error bodies.
const (
	vendorInvalidCredentials = 3003
	vendorTokenNotValid      = 3064
	vendorEntityNotFound     = 1000
	vendorTableNotFound      = 1009
	vendorDuplicateValue     = 1155
)

// ListQuery carries paging parameters and an optional where predicate for
// list and count calls.
type ListQuery struct {
	PageSize int
	Offset   int
	Where    string
}

// UpstreamObserver receives one observation per remote call. A zero status
// means the call never produced an HTTP response.
type UpstreamObserver interface {
	ObserveUpstreamCall(op string, status int, elapsed time.Duration)
}

// Client talks to the Backendless REST API. It issues no retries: getById,
// list and delete are safe to retry, create is not, and retry policy
// belongs to callers.
type Client struct {
	httpClient  *http.Client
	basePath    string
	maxPageSize int
	logger      *zap.Logger
	observer    UpstreamObserver
}

// NewClient builds a client from the immutable Backendless configuration.
func NewClient(cfg config.BackendlessConfig, logger *zap.Logger, observer UpstreamObserver) (*Client, error) {
	if cfg.AppID == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("backendless: AppID and APIKey are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxPageSize := cfg.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		basePath:    cfg.BasePath(),
		maxPageSize: maxPageSize,
		logger:      logger,
		observer:    observer,
	}, nil
}

// Login authenticates against the remote store and returns the issued
// session. A remote 401 here means bad credentials, not a stale token.
func (c *Client) Login(ctx context.Context, login, password string) (*models.Session, error) {
	payload := map[string]string{"login": login, "password": password}
	session := &models.Session{}
	err := c.do(ctx, "login", http.MethodPost, "/users/login", nil, "", payload, session)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			appErr := apperrors.FromError(err)
			invalid := apperrors.WithDetails(apperrors.ErrInvalidCredentials, appErr.Details)
			invalid.Err = appErr.Err
			return nil, invalid
		}
		return nil, err
	}
	return session, nil
}

// FindByID fetches a single record and decodes it into out.
func (c *Client) FindByID(ctx context.Context, table, id, token string, out interface{}) error {
	path := fmt.Sprintf("/data/%s/%s", table, url.PathEscape(id))
	return c.do(ctx, "find_by_id", http.MethodGet, path, nil, token, nil, out)
}

// List fetches one page of records and decodes the array into out.
// Paging parameters are clamped before they leave the process: pageSize to
// [1, maxPageSize], offset to >= 0.
func (c *Client) List(ctx context.Context, table string, q ListQuery, token string, out interface{}) error {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(clamp(q.PageSize, 1, c.maxPageSize)))
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	query.Set("offset", strconv.Itoa(offset))
	if q.Where != "" {
		query.Set("where", q.Where)
	}
	return c.do(ctx, "list", http.MethodGet, "/data/"+table, query, token, nil, out)
}

// Count returns the number of records matching the predicate, independent
// of any page slice.
func (c *Client) Count(ctx context.Context, table, where, token string) (int, error) {
	query := url.Values{}
	if where != "" {
		query.Set("where", where)
	}
	var total int
	if err := c.do(ctx, "count", http.MethodGet, "/data/"+table+"/count", query, token, nil, &total); err != nil {
		return 0, err
	}
	return total, nil
}

// Create stores a new record and decodes the stored version, including the
// assigned objectId and timestamps, into out.
func (c *Client) Create(ctx context.Context, table string, payload interface{}, token string, out interface{}) error {
	return c.do(ctx, "create", http.MethodPost, "/data/"+table, nil, token, payload, out)
}

// Update applies a partial patch to an existing record; only fields present
// in payload change remotely.
func (c *Client) Update(ctx context.Context, table, id string, payload interface{}, token string, out interface{}) error {
	path := fmt.Sprintf("/data/%s/%s", table, url.PathEscape(id))
	return c.do(ctx, "update", http.MethodPut, path, nil, token, payload, out)
}

// Delete removes a record. Deleting an absent record surfaces NotFound.
func (c *Client) Delete(ctx context.Context, table, id, token string) error {
	path := fmt.Sprintf("/data/%s/%s", table, url.PathEscape(id))
	return c.do(ctx, "delete", http.MethodDelete, path, nil, token, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to encode remote payload")
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.basePath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to build remote request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(HeaderUserToken, token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, 0, time.Since(start))
		c.logger.Warn("remote call failed", zap.String("op", op), zap.Error(err))
		return apperrors.Wrap(err, apperrors.ErrUpstream.Code, apperrors.ErrUpstream.Status, apperrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.observe(op, resp.StatusCode, time.Since(start))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrUpstream.Code, apperrors.ErrUpstream.Status, apperrors.ErrUpstream.Message)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		appErr := c.normalizeError(resp.StatusCode, raw)
		if appErr.Status >= http.StatusInternalServerError {
			c.logger.Error("remote store error", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("code", appErr.Code))
		} else {
			c.logger.Warn("remote store rejected call", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("code", appErr.Code))
		}
		return appErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperrors.Wrap(err, apperrors.ErrUpstream.Code, apperrors.ErrUpstream.Status, "malformed remote response")
		}
	}
	return nil
}

// vendorError is the error body shape returned by Backendless.
type vendorError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// normalizeError maps an HTTP status plus vendor error body onto the closed
// API taxonomy. The vendor message travels only in the opaque details field.
func (c *Client) normalizeError(status int, body []byte) *apperrors.Error {
	var vendor vendorError
	_ = json.Unmarshal(body, &vendor)

	if status >= http.StatusInternalServerError {
		return apperrors.WithDetails(apperrors.ErrUpstream, vendor.Message)
	}

	switch vendor.Code {
	case vendorInvalidCredentials:
		return apperrors.WithDetails(apperrors.ErrInvalidCredentials, vendor.Message)
	case vendorTokenNotValid:
		return apperrors.WithDetails(apperrors.ErrUnauthorized, vendor.Message)
	case vendorEntityNotFound, vendorTableNotFound:
		return apperrors.WithDetails(apperrors.ErrNotFound, vendor.Message)
	case vendorDuplicateValue:
		return apperrors.WithDetails(apperrors.ErrConflict, vendor.Message)
	}

	switch status {
	case http.StatusUnauthorized:
		return apperrors.WithDetails(apperrors.ErrUnauthorized, vendor.Message)
	case http.StatusForbidden:
		return apperrors.WithDetails(apperrors.ErrForbidden, vendor.Message)
	case http.StatusNotFound:
		return apperrors.WithDetails(apperrors.ErrNotFound, vendor.Message)
	}

	message := strings.ToLower(vendor.Message)
	switch {
	case strings.Contains(message, "not found"):
		return apperrors.WithDetails(apperrors.ErrNotFound, vendor.Message)
	case strings.Contains(message, "duplicate"), strings.Contains(message, "unique"):
		return apperrors.WithDetails(apperrors.ErrConflict, vendor.Message)
	}

	return apperrors.WithDetails(apperrors.ErrValidation, vendor.Message)
}

func (c *Client) observe(op string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstreamCall(op, status, elapsed)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
