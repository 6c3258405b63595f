package record

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	StatusIdle      = "idle"
	StatusRecording = "recording"
	StatusStopped   = "stopped"
)

// Encoding targets for a recording attempt. Constraint application is
// best-effort: the device keeps whatever it actually grants.
const (
	TargetWidth        = 1280
	TargetHeight       = 720
	TargetFrameRate    = 24
	VideoBitsPerSecond = 1_500_000
	AudioBitsPerSecond = 128_000

	PreferredMIMEType = "video/mp4;codecs=h264"
	FallbackMIMEType  = "video/mp4"
)

// MaxDurationSeconds is the hard global cap: 15 minutes, after which
// recording stops exactly as if the candidate had pressed stop.
const MaxDurationSeconds = 900

// MaxArtifactBytes is the client-side size ceiling (100 MiB). A larger
// artifact is kept for display but never offered for submission.
const MaxArtifactBytes = 100 * 1024 * 1024

const ArtifactFilename = "interview-recording.mp4"

// No reverse transitions: a fresh Session is created for every attempt.
var allowedTransitions = map[string]map[string]bool{
	StatusIdle: {
		StatusRecording: true,
	},
	StatusRecording: {
		StatusStopped: true,
	},
	StatusStopped: {},
}

func CanTransition(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// Artifact is the finalized recording. Exactly zero or one exists at a
// time; a new attempt replaces the previous one, never mutates it.
type Artifact struct {
	Data      []byte
	SizeBytes int64
	MIMEType  string
	Filename  string
	Oversized bool
}

// Session drives a single recording attempt: chunked accumulation, a
// per-second elapsed counter, and finalization into an Artifact.
type Session struct {
	id       uuid.UUID
	status   string
	mimeType string
	elapsed  int
	chunks   [][]byte
	artifact *Artifact
}

func NewSession(mimeType string) *Session {
	if mimeType == "" {
		mimeType = FallbackMIMEType
	}
	return &Session{
		id:       uuid.New(),
		status:   StatusIdle,
		mimeType: mimeType,
	}
}

func (s *Session) ID() string {
	return s.id.String()
}

func (s *Session) Status() string {
	return s.status
}

func (s *Session) Elapsed() int {
	return s.elapsed
}

func (s *Session) MIMEType() string {
	return s.mimeType
}

func (s *Session) transition(to string) error {
	if !CanTransition(s.status, to) {
		return fmt.Errorf("invalid recording transition: %q -> %q (session=%s)", s.status, to, s.ID())
	}
	s.status = to
	return nil
}

// Start begins the attempt. Valid only from idle.
func (s *Session) Start() error {
	return s.transition(StatusRecording)
}

// AppendChunk stores one encoded segment in arrival order. Empty
// chunks are dropped. Chunks are only accepted while recording.
func (s *Session) AppendChunk(data []byte) error {
	if s.status != StatusRecording {
		return fmt.Errorf("chunk rejected: session is %s", s.status)
	}
	if len(data) == 0 {
		return nil
	}
	s.chunks = append(s.chunks, data)
	return nil
}

// Tick advances elapsed time by one second and enforces the duration
// cap. It returns true exactly when the cap auto-stops the session;
// the cap check runs on every tick, so elapsed never exceeds
// MaxDurationSeconds.
func (s *Session) Tick() bool {
	if s.status != StatusRecording {
		return false
	}
	s.elapsed++
	if s.elapsed >= MaxDurationSeconds {
		s.finalize()
		return true
	}
	return false
}

// Stop finalizes a manually ended attempt. Valid only from recording.
func (s *Session) Stop() (Artifact, error) {
	if s.status != StatusRecording {
		return Artifact{}, fmt.Errorf("stop rejected: session is %s", s.status)
	}
	s.finalize()
	return *s.artifact, nil
}

// Artifact returns the finalized recording, if any.
func (s *Session) Artifact() (Artifact, bool) {
	if s.artifact == nil {
		return Artifact{}, false
	}
	return *s.artifact, true
}

func (s *Session) finalize() {
	_ = s.transition(StatusStopped)

	var total int
	for _, c := range s.chunks {
		total += len(c)
	}
	data := make([]byte, 0, total)
	for _, c := range s.chunks {
		data = append(data, c...)
	}
	s.chunks = nil

	s.artifact = &Artifact{
		Data:      data,
		SizeBytes: int64(len(data)),
		MIMEType:  s.mimeType,
		Filename:  ArtifactFilename,
		Oversized: int64(len(data)) > MaxArtifactBytes,
	}
}

// FormatElapsed renders a recording counter as M:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
