package submit

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/model"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

// Hard gate errors: these disable the submit action rather than merely
// report, and never touch the network.
var (
	ErrOversized = errors.New("video file is too large; record a shorter video")
	ErrNoToken   = errors.New("authentication error: please log in again")
)

// GenericFailureMessage is surfaced when the backend gives no usable
// error detail.
const GenericFailureMessage = "There was an error uploading your video. Please try again."

// reconcileDelay is the fixed wait before the single follow-up session
// check when the backend has not yet flipped the upload status.
const reconcileDelay = time.Second

// Backend error details sometimes arrive as "422: Bad file"; the
// numeric prefix is upstream noise, stripped before display.
var numericPrefix = regexp.MustCompile(`^\d+:\s*`)

func CleanMessage(detail string) string {
	return strings.TrimSpace(numericPrefix.ReplaceAllString(detail, ""))
}

// UploadError is a surfaced upload failure. The artifact is retained,
// so submitting again is always safe.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

type Uploader interface {
	UploadVideo(ctx context.Context, token string, artifact record.Artifact) (model.VideoUpload, error)
}

type SessionRefresher interface {
	Me(ctx context.Context, token string) (model.Session, error)
}

// Result is the terminal outcome of one successful submission,
// including the reconciled session state.
type Result struct {
	Session   model.Session
	Refreshed bool
	Completed bool
}

// Pipeline uploads a finished artifact, confirms completion with the
// auth collaborator, and classifies failures.
type Pipeline struct {
	uploader  Uploader
	refresher SessionRefresher
	sleep     func(time.Duration)
}

func New(uploader Uploader, refresher SessionRefresher) *Pipeline {
	return &Pipeline{
		uploader:  uploader,
		refresher: refresher,
		sleep:     time.Sleep,
	}
}

// Submit runs the full protocol: gate checks, upload, session refresh,
// and the one-shot delayed reconciliation check. It never re-uploads.
func (p *Pipeline) Submit(ctx context.Context, token string, artifact record.Artifact) (Result, error) {
	if artifact.Oversized {
		return Result{}, ErrOversized
	}
	if strings.TrimSpace(token) == "" {
		return Result{}, ErrNoToken
	}

	if _, err := p.uploader.UploadVideo(ctx, token, artifact); err != nil {
		return Result{}, classifyUploadError(err)
	}

	session, err := p.refresher.Me(ctx, token)
	if err != nil {
		// Upload already succeeded; confirmation is best-effort and the
		// terminal view reconciles on its own next session load.
		return Result{}, nil
	}
	if session.UploadCompleted() {
		return Result{Session: session, Refreshed: true, Completed: true}, nil
	}

	// Eventual consistency accommodation: exactly one more check after
	// a fixed delay, then stop regardless of outcome.
	p.sleep(reconcileDelay)
	recheck, err := p.refresher.Me(ctx, token)
	if err != nil {
		return Result{Session: session, Refreshed: true}, nil
	}
	return Result{
		Session:   recheck,
		Refreshed: true,
		Completed: recheck.UploadCompleted(),
	}, nil
}

func classifyUploadError(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		msg := CleanMessage(apiErr.Detail)
		if msg == "" {
			msg = GenericFailureMessage
		}
		return &UploadError{Message: msg}
	}
	return &UploadError{Message: GenericFailureMessage}
}
