package model

import (
	"strings"
	"time"
)

// UploadStatusCompleted is the terminal upload status reported by the
// backend once a submitted video has been stored and processed.
const UploadStatusCompleted = "completed"

// UserData identifies the authenticated candidate.
type UserData struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Audience         string  `json:"aud,omitempty"`
	Role             *string `json:"role,omitempty"`
	EmailConfirmedAt *string `json:"email_confirmed_at,omitempty"`
}

// VideoUpload is the stored-record payload for a submitted video.
type VideoUpload struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	VideoURL         string `json:"video_url"`
	OriginalFilename string `json:"original_filename"`
	StorageFilename  string `json:"storage_filename"`
	FileSize         int64  `json:"file_size"`
	UploadStatus     string `json:"upload_status"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// Session is the server-issued record of identity, access expiry, and
// prior submission status. The client only ever reads it.
type Session struct {
	UserData         UserData     `json:"user_data"`
	AccessExpiry     *string      `json:"access_expiry,omitempty"`
	MinutesRemaining *float64     `json:"minutes_remaining,omitempty"`
	IsActive         *bool        `json:"is_active,omitempty"`
	VideoUpload      *VideoUpload `json:"video_upload,omitempty"`
}

// AuthResponse is the login payload from the auth collaborator.
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Session `json:"user"`
}

// UploadCompleted reports whether the session already carries a
// completed submission. A nil receiver (no session loaded yet) counts
// as not completed.
func (s *Session) UploadCompleted() bool {
	if s == nil || s.VideoUpload == nil {
		return false
	}
	return s.VideoUpload.UploadStatus == UploadStatusCompleted
}

// ExpiryTime parses the session's access expiry. An absent or malformed
// expiry returns ok=false; callers treat that as "no countdown".
func (s *Session) ExpiryTime() (time.Time, bool) {
	if s == nil || s.AccessExpiry == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(*s.AccessExpiry)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
