package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("email") != "a@b.c" || r.URL.Query().Get("password") != "secret" {
			t.Fatalf("unexpected credentials in query: %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"access_token":"tok123","token_type":"bearer","user":{"user_data":{"id":"u1","email":"a@b.c"}}}`)
	}))
	defer srv.Close()

	auth, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.AccessToken != "tok123" {
		t.Fatalf("unexpected token %q", auth.AccessToken)
	}
	if auth.User.UserData.Email != "a@b.c" {
		t.Fatalf("unexpected user %+v", auth.User.UserData)
	}
}

func TestLoginDistinguishesAccessExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"detail":"Access expired on 2026-08-30"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "secret")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !IsAccessExpired(err) {
		t.Fatalf("expected access-expired classification, got %v", err)
	}
}

func TestLoginOtherFailuresBecomeInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"user not found"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if IsAccessExpired(err) {
		t.Fatal("should not classify as access expired")
	}
	if !strings.Contains(err.Error(), "Invalid email or token") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestMeSendsBearerAndParsesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		io.WriteString(w, `{"user_data":{"id":"u1","email":"a@b.c"},"access_expiry":"2026-09-01T12:00:00Z","video_upload":{"id":"v1","upload_status":"completed"}}`)
	}))
	defer srv.Close()

	session, err := NewClient(srv.URL).Me(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if !session.UploadCompleted() {
		t.Fatal("expected completed upload status")
	}
	if _, ok := session.ExpiryTime(); !ok {
		t.Fatal("expected parseable expiry")
	}
}

func TestMeFailureCarriesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Access expired"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Me(context.Background(), "stale")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !IsAccessExpired(err) {
		t.Fatalf("expected access-expired classification, got %v", err)
	}
}

func TestUploadVideoMultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/videos/upload" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != record.ArtifactFilename {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "videobytes" {
			t.Fatalf("unexpected payload %q", data)
		}
		io.WriteString(w, `{"id":"v1","upload_status":"pending","file_size":10}`)
	}))
	defer srv.Close()

	artifact := record.Artifact{
		Data:      []byte("videobytes"),
		SizeBytes: 10,
		MIMEType:  record.PreferredMIMEType,
		Filename:  record.ArtifactFilename,
	}
	stored, err := NewClient(srv.URL).UploadVideo(context.Background(), "tok123", artifact)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stored.ID != "v1" {
		t.Fatalf("unexpected stored record %+v", stored)
	}
}

func TestUploadVideoFailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":"422: Bad file"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UploadVideo(context.Background(), "tok123", record.Artifact{Filename: "f.mp4"})
	if err == nil {
		t.Fatal("expected upload failure")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Detail != "422: Bad file" {
		t.Fatalf("unexpected detail %q", apiErr.Detail)
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("INTERVIEW_API_URL", "https://env.example.com/")
	if got := BaseURLFromEnv(""); got != "https://env.example.com" {
		t.Fatalf("expected env base URL, got %q", got)
	}
	if got := BaseURLFromEnv("https://explicit.example.com"); got != "https://explicit.example.com" {
		t.Fatalf("explicit base URL should win, got %q", got)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	t.Setenv("INTERVIEW_CLI_HOME", t.TempDir())

	if LoadToken() != "" {
		t.Fatal("expected no token in fresh home")
	}
	if err := SaveToken("tok123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := LoadToken(); got != "tok123" {
		t.Fatalf("expected stored token, got %q", got)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if LoadToken() != "" {
		t.Fatal("expected token cleared")
	}
	// Clearing twice is fine.
	if err := ClearToken(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
