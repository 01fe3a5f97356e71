// Package client is a typed HTTP client for the job board API.
//
// It speaks the {status, message, data} envelope, keeps the bearer token of
// the current session and drops that session whenever the server answers 401.
package client

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
	"sync"
	"time"

	"job-board/internal/delivery/http/dto"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:8080/api/v1"
	DefaultTimeout = 15 * time.Second

	maxResponseSize = 4 * 1024 * 1024
)

// ErrNotLoggedIn is returned by authenticated calls made without a session.
var ErrNotLoggedIn = errors.New("not logged in")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("api error (HTTP %d): %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// UserMessage is the text shown to a person, field details included.
func (e *APIError) UserMessage() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return e.Message + " " + strings.Join(parts, ", ")
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return errors.Is(err, ErrNotLoggedIn)
}

// Message extracts the best human-readable text from any client error.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Store   *SessionStore
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *SessionStore

	mu      sync.RWMutex
	session Session
}

// New builds a client and restores any session persisted in cfg.Store.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		store:      cfg.Store,
	}
	if c.store != nil {
		sess, err := c.store.Load()
		if err != nil {
			return c, err
		}
		c.session = sess
	}
	return c, nil
}

func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(res dto.AuthResponse) error {
	sess := Session{
		Token:     res.Token,
		UserID:    res.User.ID.String(),
		Email:     res.User.Email,
		Role:      res.User.Role,
		FirstName: res.User.FirstName,
		LastName:  res.User.LastName,
	}

	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()

	if c.store != nil {
		return c.store.Save(sess)
	}
	return nil
}

// Logout forgets the in-memory session and removes the persisted one.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()

	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.Session().Token
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if len(env.Errors) > 0 {
			_ = json.Unmarshal(env.Errors, &apiErr.Fields)
		}
		if resp.StatusCode == http.StatusUnauthorized && authed {
			_ = c.Logout()
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// Auth

func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (dto.UserResponse, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &res, false); err != nil {
		return dto.UserResponse{}, err
	}
	return res.User, c.setSession(res)
}

func (c *Client) Login(ctx context.Context, email, password string) (dto.UserResponse, error) {
	var res dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &res, false); err != nil {
		return dto.UserResponse{}, err
	}
	return res.User, c.setSession(res)
}

func (c *Client) Me(ctx context.Context) (dto.UserResponse, error) {
	var res dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &res, true)
	return res, err
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error) {
	var res dto.UserResponse
	err := c.do(ctx, http.MethodPut, "/auth/profile", nil, req, &res, true)
	return res, err
}

// Jobs

type JobFilter struct {
	Search     string
	JobType    string
	Location   string
	RemoteOnly bool
	Page       int
	Limit      int
}

func (f JobFilter) values() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if f.JobType != "" {
		q.Set("jobType", f.JobType)
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		q.Set("location", s)
	}
	if f.RemoteOnly {
		q.Set("remoteOk", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *Client) ListJobs(ctx context.Context, f JobFilter) (dto.JobListResponse, error) {
	var res dto.JobListResponse
	err := c.do(ctx, http.MethodGet, "/jobs", f.values(), nil, &res, false)
	return res, err
}

func (c *Client) GetJob(ctx context.Context, id uuid.UUID) (dto.JobResponse, error) {
	var res dto.JobResponse
	err := c.do(ctx, http.MethodGet, "/jobs/"+id.String(), nil, nil, &res, false)
	return res, err
}

func (c *Client) CreateJob(ctx context.Context, req dto.CreateJobRequest) (dto.JobResponse, error) {
	var res dto.JobResponse
	err := c.do(ctx, http.MethodPost, "/jobs", nil, req, &res, true)
	return res, err
}

func (c *Client) MyJobs(ctx context.Context) ([]dto.JobResponse, error) {
	var res []dto.JobResponse
	err := c.do(ctx, http.MethodGet, "/jobs/recruiter/my-jobs", nil, nil, &res, true)
	return res, err
}

func (c *Client) UpdateJob(ctx context.Context, id uuid.UUID, req dto.UpdateJobRequest) (dto.JobResponse, error) {
	var res dto.JobResponse
	err := c.do(ctx, http.MethodPut, "/jobs/"+id.String(), nil, req, &res, true)
	return res, err
}

func (c *Client) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+id.String(), nil, nil, nil, true)
}

// Applications

func (c *Client) Apply(ctx context.Context, jobID uuid.UUID, coverLetter string) (dto.ApplicationResponse, error) {
	var res dto.ApplicationResponse
	req := dto.ApplyRequest{}
	if s := strings.TrimSpace(coverLetter); s != "" {
		req.CoverLetter = &s
	}
	err := c.do(ctx, http.MethodPost, "/jobs/"+jobID.String()+"/apply", nil, req, &res, true)
	return res, err
}

func (c *Client) MyApplications(ctx context.Context) ([]dto.StudentApplicationResponse, error) {
	var res []dto.StudentApplicationResponse
	err := c.do(ctx, http.MethodGet, "/applications/my-applications", nil, nil, &res, true)
	return res, err
}

func (c *Client) CheckApplied(ctx context.Context, jobID uuid.UUID) (dto.CheckApplicationResponse, error) {
	var res dto.CheckApplicationResponse
	err := c.do(ctx, http.MethodGet, "/applications/check/"+jobID.String(), nil, nil, &res, true)
	return res, err
}

func (c *Client) Withdraw(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+id.String(), nil, nil, nil, true)
}

// RecruiterApplications lists applications across the caller's jobs; an
// empty status means all.
func (c *Client) RecruiterApplications(ctx context.Context, status string) ([]dto.RecruiterApplicationResponse, error) {
	var res []dto.RecruiterApplicationResponse
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	err := c.do(ctx, http.MethodGet, "/applications/recruiter/all", q, nil, &res, true)
	return res, err
}

func (c *Client) JobApplications(ctx context.Context, jobID uuid.UUID) (dto.JobApplicationsResponse, error) {
	var res dto.JobApplicationsResponse
	err := c.do(ctx, http.MethodGet, "/applications/job/"+jobID.String(), nil, nil, &res, true)
	return res, err
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, req dto.UpdateApplicationStatusRequest) (dto.ApplicationResponse, error) {
	var res dto.ApplicationResponse
	err := c.do(ctx, http.MethodPut, "/applications/"+id.String()+"/status", nil, req, &res, true)
	return res, err
}
