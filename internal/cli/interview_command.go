package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/capture"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/countdown"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/model"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/questions"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/retry"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/submit"
)

// logoutGrace is how long the expiry notice stays on screen before the
// forced logout runs.
const logoutGrace = 2 * time.Second

type submitter interface {
	Submit(ctx context.Context, token string, artifact record.Artifact) (submit.Result, error)
}

type interviewModel struct {
	client         *api.Client
	pipeline       submitter
	token          string
	theme          theme
	captureOptions capture.Options

	width  int
	height int

	loading  bool
	session  *model.Session
	fatalErr error

	timer    countdown.Timer
	timerGen int
	now      time.Time

	nav questions.Navigator

	acquiring bool
	handle    *capture.Handle
	recording *capture.Recording
	attempt   *record.Session
	recordGen int
	// Set once a manual stop was requested; finalization waits for the
	// chunk channel to drain.
	stopRequested bool

	artifact *record.Artifact
	budget   retry.Budget

	uploading bool
	spin      spinner.Model

	statusMessage string
	statusIsError bool

	expired    bool
	loggingOut bool
	quitting   bool
}

type sessionLoadedMsg struct {
	session model.Session
	err     error
}

type countdownTickMsg struct {
	gen int
	now time.Time
}

type recordTickMsg struct {
	gen int
}

type chunkMsg struct {
	gen  int
	data []byte
	open bool
}

type cameraMsg struct {
	handle *capture.Handle
	err    error
}

type recordingStartedMsg struct {
	recording *capture.Recording
	attempt   *record.Session
	err       error
}

type stopRequestedMsg struct {
	gen int
	err error
}

type uploadDoneMsg struct {
	result submit.Result
	err    error
}

type logoutGraceMsg struct{}

type logoutDoneMsg struct{}

func runInterview(args []string) error {
	fs := flag.NewFlagSet("interview", flag.ContinueOnError)
	themeFlag := fs.String("theme", "", "presentation theme: classic or modern")
	apiURL := fs.String("api-url", "", "override the API base URL")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("interview requires an interactive terminal (TTY)")
	}

	token := api.LoadToken()
	if token == "" {
		return errors.New("not logged in: run `interview-cli login` first")
	}

	settingsPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	themeName := settings.Theme
	if strings.TrimSpace(*themeFlag) != "" {
		themeName = strings.TrimSpace(*themeFlag)
	}

	baseURL := settings.APIBaseURL
	if strings.TrimSpace(*apiURL) != "" {
		baseURL = *apiURL
	}
	client := api.NewClient(baseURL)

	budgetPath, err := retry.DefaultPath()
	if err != nil {
		return err
	}

	m := interviewModel{
		client:         client,
		pipeline:       submit.New(client, client),
		token:          token,
		theme:          themeByName(themeName),
		captureOptions: captureOptionsFromSettings(settings),
		loading:        true,
		nav:            questions.NewNavigator(),
		budget:         retry.Load(budgetPath),
		spin:           newUploadSpinner(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(interviewModel); ok {
		if fm.loggingOut || fm.expired {
			fmt.Println("Session ended. Run `interview-cli login` to sign in again.")
		}
		return fm.fatalErr
	}
	return nil
}

func captureOptionsFromSettings(s config.Settings) capture.Options {
	opts := capture.DefaultOptions()
	if s.VideoFormat != "" {
		opts.VideoFormat = s.VideoFormat
	}
	if s.VideoInput != "" {
		opts.VideoInput = s.VideoInput
	}
	if s.AudioFormat != "" {
		opts.AudioFormat = s.AudioFormat
	}
	if s.AudioInput != "" {
		opts.AudioInput = s.AudioInput
	}
	return opts
}

func newUploadSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return sp
}

func (m interviewModel) Init() tea.Cmd {
	return loadSessionCmd(m.client, m.token)
}

func loadSessionCmd(client *api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		session, err := client.Me(context.Background(), token)
		return sessionLoadedMsg{session: session, err: err}
	}
}

func countdownTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg{gen: gen, now: t}
	})
}

func recordTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return recordTickMsg{gen: gen}
	})
}

func acquireCameraCmd(opts capture.Options) tea.Cmd {
	return func() tea.Msg {
		handle, err := capture.Acquire(context.Background(), opts)
		return cameraMsg{handle: handle, err: err}
	}
}

func startRecordingCmd(handle *capture.Handle) tea.Cmd {
	return func() tea.Msg {
		rec, err := handle.StartRecording(context.Background())
		if err != nil {
			return recordingStartedMsg{err: err}
		}
		attempt := record.NewSession(handle.MIMEType())
		if err := attempt.Start(); err != nil {
			_ = rec.Stop()
			return recordingStartedMsg{err: err}
		}
		return recordingStartedMsg{recording: rec, attempt: attempt}
	}
}

// waitChunkCmd delivers the next encoded segment, or open=false once
// the encoder exits and the channel drains. One listener at a time, so
// arrival order is preserved through the update loop.
func waitChunkCmd(rec *capture.Recording, gen int) tea.Cmd {
	return func() tea.Msg {
		data, open := <-rec.Chunks()
		return chunkMsg{gen: gen, data: data, open: open}
	}
}

func stopRecordingCmd(rec *capture.Recording, gen int) tea.Cmd {
	return func() tea.Msg {
		return stopRequestedMsg{gen: gen, err: rec.Stop()}
	}
}

func uploadCmd(pipeline submitter, token string, artifact record.Artifact) tea.Cmd {
	return func() tea.Msg {
		result, err := pipeline.Submit(context.Background(), token, artifact)
		return uploadDoneMsg{result: result, err: err}
	}
}

func logoutGraceCmd() tea.Cmd {
	return tea.Tick(logoutGrace, func(time.Time) tea.Msg {
		return logoutGraceMsg{}
	})
}

func logoutCmd(client *api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		_ = client.Logout(context.Background(), token)
		_ = api.ClearToken()
		return logoutDoneMsg{}
	}
}

func (m interviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionLoadedMsg:
		return m.handleSessionLoaded(msg)

	case countdownTickMsg:
		return m.handleCountdownTick(msg)

	case recordTickMsg:
		return m.handleRecordTick(msg)

	case chunkMsg:
		return m.handleChunk(msg)

	case cameraMsg:
		m.acquiring = false
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.handle = msg.handle
		m.setStatus("Camera and microphone ready.")
		if !msg.handle.Constrained() {
			m.setStatus("Camera and microphone ready (device defaults; 720p not granted).")
		}
		return m, nil

	case recordingStartedMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		if m.expired || m.quitting {
			_ = msg.recording.Stop()
			return m, nil
		}
		m.recording = msg.recording
		m.attempt = msg.attempt
		m.stopRequested = false
		m.recordGen++
		m.setStatus("Recording started.")
		return m, tea.Batch(
			recordTickCmd(m.recordGen),
			waitChunkCmd(m.recording, m.recordGen),
		)

	case stopRequestedMsg:
		if msg.gen != m.recordGen {
			return m, nil
		}
		if msg.err != nil {
			m.setError(msg.err.Error())
		}
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case logoutGraceMsg:
		if m.loggingOut {
			return m, nil
		}
		m.loggingOut = true
		return m, logoutCmd(m.client, m.token)

	case logoutDoneMsg:
		return m.teardown()

	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleKey(keyMsg)
}

func (m interviewModel) handleSessionLoaded(msg sessionLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		// An invalid or rejected session sends the candidate back to
		// login; the stale token is cleared so the next run starts clean.
		_ = api.ClearToken()
		if api.IsAccessExpired(msg.err) {
			m.fatalErr = errors.New("access expired: your interview window has closed")
		} else {
			m.fatalErr = fmt.Errorf("session check failed: %w", msg.err)
		}
		return m, tea.Quit
	}
	session := msg.session
	m.session = &session

	expiry := ""
	if session.AccessExpiry != nil {
		expiry = *session.AccessExpiry
	}
	m.timer = countdown.New(expiry)
	m.now = time.Now()
	m.timerGen++
	if m.timer.Active() {
		return m, countdownTickCmd(m.timerGen)
	}
	return m, nil
}

func (m interviewModel) handleCountdownTick(msg countdownTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.quitting {
		return m, nil
	}
	m.now = msg.now
	switch m.timer.Tick(msg.now) {
	case countdown.EventWarning:
		m.setError("Session Ending Soon: your session will expire in 5 minutes. Please submit your recording.")
	case countdown.EventExpired:
		return m.handleExpiry()
	}
	if m.timer.Done() {
		return m, nil
	}
	return m, countdownTickCmd(m.timerGen)
}

// handleExpiry shuts capture down, shows the notice, and schedules the
// forced logout after a short grace so the candidate sees why.
func (m interviewModel) handleExpiry() (tea.Model, tea.Cmd) {
	m.expired = true
	m.setError("Session Expired: your access window has closed. You are being signed out.")
	m.recordGen++
	m.attempt = nil
	m.recording = nil
	if m.handle != nil {
		m.handle.Release()
	}
	return m, logoutGraceCmd()
}

func (m interviewModel) handleRecordTick(msg recordTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.recordGen || m.attempt == nil {
		return m, nil
	}
	if m.attempt.Tick() {
		// Duration cap reached; the attempt has finalized itself. Stop
		// the encoder and keep whatever already arrived.
		m.setError(fmt.Sprintf("Recording stopped automatically at the %d-minute limit.", record.MaxDurationSeconds/60))
		return m.finishAttempt()
	}
	return m, recordTickCmd(m.recordGen)
}

func (m interviewModel) handleChunk(msg chunkMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.recordGen || m.recording == nil {
		return m, nil
	}
	if msg.open {
		if m.attempt != nil {
			// Append fails only after finalization; late tail segments
			// past the cap are dropped on purpose.
			_ = m.attempt.AppendChunk(msg.data)
		}
		return m, waitChunkCmd(m.recording, msg.gen)
	}

	// Channel drained and closed: the encoder is gone. Finalize the
	// attempt if a manual stop asked for it, or report an encoder
	// failure if it died on its own mid-recording.
	if m.attempt != nil && m.attempt.Status() == record.StatusRecording {
		if !m.stopRequested {
			m.setError("Recording ended unexpectedly; review the take before uploading.")
		}
		artifact, err := m.attempt.Stop()
		if err == nil {
			m.artifact = &artifact
			m.noteArtifact()
		}
	}
	m.recording = nil
	m.attempt = nil
	m.stopRequested = false
	return m, nil
}

// finishAttempt tears down the encoder for an attempt whose recording
// session has already finalized (the auto-stop path).
func (m interviewModel) finishAttempt() (tea.Model, tea.Cmd) {
	if m.attempt != nil {
		if artifact, ok := m.attempt.Artifact(); ok {
			m.artifact = &artifact
			m.noteArtifact()
		}
	}
	rec := m.recording
	gen := m.recordGen
	m.recordGen++
	m.recording = nil
	m.attempt = nil
	m.stopRequested = false
	if rec != nil {
		return m, stopRecordingCmd(rec, gen)
	}
	return m, nil
}

func (m interviewModel) noteArtifact() {
	if m.artifact == nil {
		return
	}
	if m.artifact.Oversized {
		m.setError("Video file is too large (max 100 MB). Use a retry to record a shorter video.")
		return
	}
	m.setStatus(fmt.Sprintf("Recording ready (%s). Review the details, then upload.", formatBytes(m.artifact.SizeBytes)))
}

func (m interviewModel) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.uploading = false
	if msg.err != nil {
		var uploadErr *submit.UploadError
		if errors.As(msg.err, &uploadErr) {
			m.setError(uploadErr.Message)
		} else {
			m.setError(msg.err.Error())
		}
		return m, nil
	}

	m.artifact = nil
	if msg.result.Refreshed {
		session := msg.result.Session
		m.session = &session
	}
	if msg.result.Completed || m.session.UploadCompleted() {
		m.setStatus("Interview submitted successfully.")
	} else {
		m.setStatus("Upload accepted; confirmation is still pending. Check `interview-cli status` later.")
	}
	return m, nil
}

func (m interviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.teardown()
	}

	if m.loading || m.expired || m.loggingOut || m.session.UploadCompleted() {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.nav.Previous()
		return m, nil
	case "right", "l":
		m.nav.Next()
		return m, nil
	case "c":
		if m.handle != nil && !m.handle.Released() || m.acquiring {
			return m, nil
		}
		m.acquiring = true
		m.setStatus("Requesting camera and microphone...")
		return m, acquireCameraCmd(m.captureOptions)
	case "r":
		if m.handle == nil || m.handle.Released() || m.recording != nil || m.artifact != nil || m.uploading {
			return m, nil
		}
		return m, startRecordingCmd(m.handle)
	case "s":
		if m.recording == nil || m.stopRequested {
			return m, nil
		}
		m.stopRequested = true
		m.setStatus("Stopping recording...")
		return m, stopRecordingCmd(m.recording, m.recordGen)
	case "t":
		return m.handleRetry()
	case "u":
		return m.handleUpload()
	}
	return m, nil
}

func (m interviewModel) handleRetry() (tea.Model, tea.Cmd) {
	if m.artifact == nil || m.uploading || m.recording != nil {
		return m, nil
	}
	if !m.budget.CanRetry() {
		m.setError("No retries remaining. Upload the current recording.")
		return m, nil
	}
	used, err := m.budget.Retry()
	if err != nil {
		m.setError(fmt.Sprintf("Could not record the retry: %v", err))
		return m, nil
	}
	if !used {
		return m, nil
	}
	m.artifact = nil
	m.setStatus(fmt.Sprintf("Retry used. %d left. Record a new take when ready.", m.budget.Remaining()))
	return m, nil
}

func (m interviewModel) handleUpload() (tea.Model, tea.Cmd) {
	if m.artifact == nil || m.uploading || m.recording != nil {
		return m, nil
	}
	if m.artifact.Oversized {
		m.setError("Video file is too large (max 100 MB). Use a retry to record a shorter video.")
		return m, nil
	}
	m.uploading = true
	m.setStatus("Uploading your interview...")
	return m, tea.Batch(
		uploadCmd(m.pipeline, m.token, *m.artifact),
		m.spin.Tick,
	)
}

// teardown releases every held resource and quits. Safe on repeat: the
// capture handle release is idempotent and stale ticks are dropped by
// generation.
func (m interviewModel) teardown() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.timerGen++
	m.recordGen++
	m.recording = nil
	m.attempt = nil
	if m.handle != nil {
		m.handle.Release()
	}
	return m, tea.Quit
}

func (m *interviewModel) setStatus(text string) {
	m.statusMessage = text
	m.statusIsError = false
}

func (m *interviewModel) setError(text string) {
	m.statusMessage = text
	m.statusIsError = true
}
