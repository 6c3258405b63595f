package submit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/model"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) UploadVideo(_ context.Context, _ string, _ record.Artifact) (model.VideoUpload, error) {
	f.calls++
	if f.err != nil {
		return model.VideoUpload{}, f.err
	}
	return model.VideoUpload{ID: "v1", UploadStatus: "pending"}, nil
}

type fakeRefresher struct {
	calls    int
	sessions []model.Session
	errs     []error
}

func (f *fakeRefresher) Me(_ context.Context, _ string) (model.Session, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var session model.Session
	if i < len(f.sessions) {
		session = f.sessions[i]
	}
	return session, err
}

func completedSession() model.Session {
	return model.Session{VideoUpload: &model.VideoUpload{UploadStatus: model.UploadStatusCompleted}}
}

func pendingSession() model.Session {
	return model.Session{VideoUpload: &model.VideoUpload{UploadStatus: "pending"}}
}

func newTestPipeline(u *fakeUploader, r *fakeRefresher) (*Pipeline, *[]time.Duration) {
	p := New(u, r)
	var slept []time.Duration
	p.sleep = func(d time.Duration) { slept = append(slept, d) }
	return p, &slept
}

func goodArtifact() record.Artifact {
	return record.Artifact{Data: []byte("x"), SizeBytes: 1, MIMEType: record.FallbackMIMEType, Filename: record.ArtifactFilename}
}

func TestSubmitRejectsOversizedWithoutNetwork(t *testing.T) {
	uploader := &fakeUploader{}
	p, _ := newTestPipeline(uploader, &fakeRefresher{})

	_, err := p.Submit(context.Background(), "tok", record.Artifact{Oversized: true})
	if !errors.Is(err, ErrOversized) {
		t.Fatalf("expected ErrOversized, got %v", err)
	}
	if uploader.calls != 0 {
		t.Fatal("oversized artifact must not reach the network")
	}
}

func TestSubmitRejectsMissingTokenWithoutNetwork(t *testing.T) {
	uploader := &fakeUploader{}
	p, _ := newTestPipeline(uploader, &fakeRefresher{})

	_, err := p.Submit(context.Background(), "   ", goodArtifact())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if uploader.calls != 0 {
		t.Fatal("missing token must not reach the network")
	}
}

func TestSubmitStripsNumericPrefixFromDetail(t *testing.T) {
	uploader := &fakeUploader{err: &api.APIError{StatusCode: 422, Detail: "422: Bad file"}}
	p, _ := newTestPipeline(uploader, &fakeRefresher{})

	_, err := p.Submit(context.Background(), "tok", goodArtifact())
	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if upErr.Message != "Bad file" {
		t.Fatalf("expected cleaned message %q, got %q", "Bad file", upErr.Message)
	}
}

func TestSubmitFallsBackToGenericMessage(t *testing.T) {
	cases := []error{
		&api.APIError{StatusCode: 500},
		errors.New("dial tcp: connection refused"),
	}
	for _, cause := range cases {
		p, _ := newTestPipeline(&fakeUploader{err: cause}, &fakeRefresher{})
		_, err := p.Submit(context.Background(), "tok", goodArtifact())
		var upErr *UploadError
		if !errors.As(err, &upErr) {
			t.Fatalf("expected UploadError for %v, got %v", cause, err)
		}
		if upErr.Message != GenericFailureMessage {
			t.Fatalf("expected generic message, got %q", upErr.Message)
		}
	}
}

func TestSubmitCompletedOnFirstRefreshSkipsRecheck(t *testing.T) {
	refresher := &fakeRefresher{sessions: []model.Session{completedSession()}}
	p, slept := newTestPipeline(&fakeUploader{}, refresher)

	res, err := p.Submit(context.Background(), "tok", goodArtifact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected completed result")
	}
	if refresher.calls != 1 {
		t.Fatalf("expected exactly one session check, got %d", refresher.calls)
	}
	if len(*slept) != 0 {
		t.Fatal("no delay expected when first refresh confirms")
	}
}

func TestSubmitRechecksExactlyOnceAfterDelay(t *testing.T) {
	refresher := &fakeRefresher{sessions: []model.Session{pendingSession(), pendingSession()}}
	p, slept := newTestPipeline(&fakeUploader{}, refresher)

	res, err := p.Submit(context.Background(), "tok", goodArtifact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Completed {
		t.Fatal("expected still-pending result")
	}
	if refresher.calls != 2 {
		t.Fatalf("expected exactly two session checks, got %d", refresher.calls)
	}
	if len(*slept) != 1 || (*slept)[0] != time.Second {
		t.Fatalf("expected a single 1s delay, got %v", *slept)
	}
}

func TestSubmitRecheckCanConfirmCompletion(t *testing.T) {
	refresher := &fakeRefresher{sessions: []model.Session{pendingSession(), completedSession()}}
	p, _ := newTestPipeline(&fakeUploader{}, refresher)

	res, err := p.Submit(context.Background(), "tok", goodArtifact())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected recheck to confirm completion")
	}
}

func TestSubmitRefreshFailureIsNotAnUploadFailure(t *testing.T) {
	refresher := &fakeRefresher{errs: []error{errors.New("network down")}}
	uploader := &fakeUploader{}
	p, slept := newTestPipeline(uploader, refresher)

	res, err := p.Submit(context.Background(), "tok", goodArtifact())
	if err != nil {
		t.Fatalf("upload succeeded, expected nil error, got %v", err)
	}
	if res.Refreshed || res.Completed {
		t.Fatalf("expected unrefreshed result, got %+v", res)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one upload, got %d", uploader.calls)
	}
	if len(*slept) != 0 {
		t.Fatal("failed first refresh must not schedule a recheck")
	}
}

func TestCleanMessage(t *testing.T) {
	cases := []struct{ in, want string }{
		{"422: Bad file", "Bad file"},
		{"500:   internal", "internal"},
		{"no prefix here", "no prefix here"},
		{"12 items", "12 items"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanMessage(tc.in); got != tc.want {
			t.Fatalf("CleanMessage(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
