package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/emphub/internal/model"
)

// Gateway defines the remote operations the dashboard depends on.
// This interface is implemented by *Client and can be used for testing.
type Gateway interface {
	FetchLeaves(ctx context.Context, userID int64) ([]model.Leave, error)
	ApplyLeave(ctx context.Context, app model.LeaveApplication) (model.Leave, error)
	FetchTimesheets(ctx context.Context, userID int64) ([]model.Timesheet, error)
	SubmitTimesheet(ctx context.Context, sub model.TimesheetSubmission) (model.Timesheet, error)
	FetchProfile(ctx context.Context, userID int64) (model.Profile, error)
	SaveProfile(ctx context.Context, userID int64, p model.Profile) error
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the employee HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	metrics   *metrics
}

const (
	defaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "emphub/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRegisterer registers the gateway metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchLeaves retrieves every leave request of a user.
func (c *Client) FetchLeaves(ctx context.Context, userID int64) ([]model.Leave, error) {
	var payload []wireLeave
	if err := c.do(ctx, http.MethodGet, opFetchLeaves, nil, &payload, "leaves", "user", idSegment(userID)); err != nil {
		return nil, err
	}
	out := make([]model.Leave, 0, len(payload))
	for _, w := range payload {
		out = append(out, w.record())
	}
	return out, nil
}

// ApplyLeave submits a leave request and returns the server's record.
func (c *Client) ApplyLeave(ctx context.Context, app model.LeaveApplication) (model.Leave, error) {
	body := applyLeaveRequest{
		UserID:    app.UserID,
		LeaveType: app.LeaveType,
		StartDate: app.StartDate,
		EndDate:   app.EndDate,
		Reason:    app.Reason,
	}
	var payload leaveEnvelope
	if err := c.do(ctx, http.MethodPost, opApplyLeave, body, &payload, "leaves", "apply"); err != nil {
		return model.Leave{}, err
	}
	if payload.Leave == nil {
		return model.Leave{}, malformed(opApplyLeave, "leave")
	}
	return payload.Leave.record(), nil
}

// FetchTimesheets retrieves every timesheet entry of a user.
func (c *Client) FetchTimesheets(ctx context.Context, userID int64) ([]model.Timesheet, error) {
	var payload []wireTimesheet
	if err := c.do(ctx, http.MethodGet, opFetchTimesheets, nil, &payload, "timesheets", "user", idSegment(userID)); err != nil {
		return nil, err
	}
	out := make([]model.Timesheet, 0, len(payload))
	for _, w := range payload {
		out = append(out, w.record())
	}
	return out, nil
}

// SubmitTimesheet submits a timesheet entry and returns the server's record.
func (c *Client) SubmitTimesheet(ctx context.Context, sub model.TimesheetSubmission) (model.Timesheet, error) {
	body := submitTimesheetRequest{
		UserID:      sub.UserID,
		Date:        sub.Date,
		Project:     sub.Project,
		HoursWorked: sub.HoursWorked,
		Description: sub.Description,
	}
	var payload timesheetEnvelope
	if err := c.do(ctx, http.MethodPost, opSubmitTimesheet, body, &payload, "timesheets", "submit"); err != nil {
		return model.Timesheet{}, err
	}
	if payload.Timesheet == nil {
		return model.Timesheet{}, malformed(opSubmitTimesheet, "timesheet")
	}
	return payload.Timesheet.record(), nil
}

// FetchProfile retrieves the user's profile. A missing profile is empty.
func (c *Client) FetchProfile(ctx context.Context, userID int64) (model.Profile, error) {
	var payload *wireProfile
	err := c.do(ctx, http.MethodGet, opFetchProfile, nil, &payload, "profile", "user", idSegment(userID))
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return model.Profile{}, nil
		}
		return model.Profile{}, err
	}
	if payload == nil {
		return model.Profile{}, nil
	}
	return payload.record(), nil
}

// SaveProfile overwrites the user's profile.
func (c *Client) SaveProfile(ctx context.Context, userID int64, p model.Profile) error {
	body := profileFromRecord(userID, p)
	return c.do(ctx, http.MethodPost, opSaveProfile, body, nil, "profile")
}

// Login checks credentials and returns the authenticated user.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	body := loginRequest{Email: strings.TrimSpace(creds.Email), Password: creds.Password}
	var payload wireUser
	if err := c.do(ctx, http.MethodPost, opLogin, body, &payload, "users", "login"); err != nil {
		return model.User{}, err
	}
	if payload.ID == 0 {
		return model.User{}, malformed(opLogin, "id")
	}
	return payload.record(), nil
}

func (c *Client) do(ctx context.Context, method string, op operation, body, dest any, segments ...string) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(op, outcome(err), time.Since(start))
	}()

	reqURL := c.baseURL.JoinPath(segments...)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op.String(), Message: ConnectionMessage, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Op: op.String(), Message: ConnectionMessage, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return applicationError(op, resp.StatusCode, raw)
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &Error{Kind: KindTransport, Op: op.String(), Status: resp.StatusCode, Message: ConnectionMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func applicationError(op operation, status int, raw []byte) *Error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	message := op.fallback
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case strings.TrimSpace(body.Error) != "":
			message = body.Error
		case strings.TrimSpace(body.Message) != "":
			message = body.Message
		}
	}
	return &Error{
		Kind:    KindApplication,
		Op:      op.String(),
		Status:  status,
		Message: message,
		Err:     fmt.Errorf("api returned status %d", status),
	}
}

func malformed(op operation, field string) *Error {
	return &Error{
		Kind:    KindTransport,
		Op:      op.String(),
		Message: ConnectionMessage,
		Err:     fmt.Errorf("decode response: missing %s", field),
	}
}

func idSegment(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
