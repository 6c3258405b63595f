package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/model"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/version"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	loginPath  = "/api/v1/auth/login"
	mePath     = "/api/v1/auth/me"
	logoutPath = "/api/v1/auth/logout"
	uploadPath = "/api/v1/videos/upload"

	authTimeout   = 15 * time.Second
	uploadTimeout = 10 * time.Minute
)

// accessExpiredMarker is the substring the backend places in the error
// detail when the candidate's access window has closed; the UI words
// that case differently from bad credentials.
const accessExpiredMarker = "Access expired"

// APIError is a structured failure payload ({"detail": "..."}) from
// the backend, or a bare status when the body was not parseable.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsAccessExpired reports whether err carries the backend's
// access-expired detail.
func IsAccessExpired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.Detail, accessExpiredMarker)
}

// Client talks to the auth and upload collaborators.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// BaseURLFromEnv resolves the API base URL: explicit value, then the
// INTERVIEW_API_URL environment, then the default.
func BaseURLFromEnv(configured string) string {
	if v := strings.TrimSpace(configured); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("INTERVIEW_API_URL")); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	return DefaultBaseURL
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    BaseURLFromEnv(baseURL),
		HTTPClient: &http.Client{},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "interview-cli/"+version.Value)
	return c.httpClient().Do(req)
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// Login exchanges the candidate's email and access token for a bearer
// token plus the session record.
func (c *Client) Login(ctx context.Context, email, secret string) (model.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("email", email)
	q.Set("password", secret)
	endpoint := c.BaseURL + loginPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return model.AuthResponse{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		if strings.Contains(apiErr.Detail, accessExpiredMarker) {
			return model.AuthResponse{}, apiErr
		}
		return model.AuthResponse{}, &APIError{StatusCode: resp.StatusCode, Detail: "Invalid email or token"}
	}

	var auth model.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return model.AuthResponse{}, fmt.Errorf("parse login response: %w", err)
	}
	if strings.TrimSpace(auth.AccessToken) == "" {
		return model.AuthResponse{}, fmt.Errorf("login response carried no access token")
	}
	return auth, nil
}

// Me fetches the current session for the bearer token. A non-OK
// response surfaces as an APIError; callers clear the stored token.
func (c *Client) Me(ctx context.Context, token string) (model.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+mePath, nil)
	if err != nil {
		return model.Session{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return model.Session{}, fmt.Errorf("session check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Session{}, decodeAPIError(resp)
	}

	var session model.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return model.Session{}, fmt.Errorf("parse session response: %w", err)
	}
	return session, nil
}

// Logout tells the backend to drop the session. Best-effort: the
// caller always clears local state afterwards regardless of outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+logoutPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout failed with status %d", resp.StatusCode)
	}
	return nil
}

// UploadVideo posts the artifact as a single-field multipart body.
func (c *Client) UploadVideo(ctx context.Context, token string, artifact record.Artifact) (model.VideoUpload, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, artifact.Filename))
	header.Set("Content-Type", artifact.MIMEType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return model.VideoUpload{}, fmt.Errorf("prepare upload body: %w", err)
	}
	if _, err := part.Write(artifact.Data); err != nil {
		return model.VideoUpload{}, fmt.Errorf("prepare upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return model.VideoUpload{}, fmt.Errorf("prepare upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+uploadPath, &body)
	if err != nil {
		return model.VideoUpload{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return model.VideoUpload{}, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.VideoUpload{}, decodeAPIError(resp)
	}

	// The pipeline only needs the acknowledgement; the stored record is
	// parsed for display and otherwise discarded.
	var stored model.VideoUpload
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return model.VideoUpload{}, nil
	}
	return stored, nil
}
