package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/countdown"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

func (m interviewModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return m.theme.subtle.Render("Loading your interview session...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.session.UploadCompleted() {
		b.WriteString(m.renderCompleted())
		b.WriteString("\n")
		b.WriteString(m.renderStatusLine())
		return b.String()
	}

	b.WriteString(m.renderQuestionPanel())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderCapturePanel(), m.renderSubmitPanel()))
	b.WriteString("\n")
	b.WriteString(m.renderTips())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.theme.keyHint.Render("c camera  r record  s stop  t retry  u upload  ←/→ questions  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m interviewModel) renderHeader() string {
	title := m.theme.title.Render("Video Interview")
	if m.theme.name != "" {
		title += " " + m.theme.subtle.Render("("+m.theme.name+")")
	}
	if !m.timer.Active() && !m.timer.Done() {
		return title
	}

	remaining := m.timer.Remaining(m.now)
	clock := countdown.Format(remaining)
	label := m.theme.accent.Render("Time Remaining: " + clock)
	if m.timer.Done() {
		label = m.theme.bad.Render(clock)
	} else if remaining <= 5*time.Minute {
		label = m.theme.warn.Render("Time Remaining: " + clock)
	}
	return title + "   " + label
}

func (m interviewModel) renderQuestionPanel() string {
	q := m.nav.Current()
	var b strings.Builder
	b.WriteString(m.theme.accent.Render(fmt.Sprintf("Question %d of %d", m.nav.Index()+1, m.nav.Len())))
	b.WriteString("\n")
	b.WriteString(m.theme.title.Render(q.Title))
	b.WriteString("\n")
	b.WriteString(q.Body)
	if q.Tip != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render("Tip: " + q.Tip))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.keyHint.Render(progressDots(m.nav.Index(), m.nav.Len())))
	return m.theme.panel.Render(b.String())
}

func progressDots(index, total int) string {
	dots := make([]string, total)
	for i := range dots {
		if i == index {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return strings.Join(dots, " ")
}

func (m interviewModel) renderCapturePanel() string {
	var b strings.Builder
	b.WriteString(m.theme.accent.Render("Camera"))
	b.WriteString("\n")
	switch {
	case m.recording != nil && m.attempt != nil:
		b.WriteString(m.theme.bad.Render("● REC ") + record.FormatElapsed(m.attempt.Elapsed()))
		b.WriteString(m.theme.subtle.Render(" / " + record.FormatElapsed(record.MaxDurationSeconds)))
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("%s via %s", m.captureOptions.VideoInput, m.captureOptions.VideoFormat)))
	case m.acquiring:
		b.WriteString(m.theme.subtle.Render("Requesting devices..."))
	case m.handle != nil && !m.handle.Released():
		b.WriteString(m.theme.good.Render("Ready"))
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("%s via %s", m.captureOptions.VideoInput, m.captureOptions.VideoFormat)))
		if !m.handle.Constrained() {
			b.WriteString("\n")
			b.WriteString(m.theme.warn.Render("Device defaults in use (720p not granted)"))
		}
	default:
		b.WriteString(m.theme.subtle.Render("Camera off. Press c to enable."))
	}
	return m.theme.panel.Render(b.String())
}

func (m interviewModel) renderSubmitPanel() string {
	var b strings.Builder
	b.WriteString(m.theme.accent.Render("Submission"))
	b.WriteString("\n")
	switch {
	case m.uploading:
		b.WriteString(m.spin.View())
		b.WriteString(" Uploading your interview...")
	case m.artifact != nil:
		b.WriteString(m.artifact.Filename)
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("  %s  %s", formatBytes(m.artifact.SizeBytes), m.artifact.MIMEType)))
		b.WriteString("\n")
		if m.artifact.Oversized {
			b.WriteString(m.theme.bad.Render("Too large to upload (max 100 MB)"))
		} else {
			b.WriteString(m.theme.good.Render("Ready to upload (u)"))
		}
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("Retries left: %d", m.budget.Remaining())))
	default:
		b.WriteString(m.theme.subtle.Render("No recording yet."))
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("Retries left: %d", m.budget.Remaining())))
	}
	return m.theme.panel.Render(b.String())
}

func (m interviewModel) renderTips() string {
	tips := []string{
		"One continuous recording answers all questions in order.",
		fmt.Sprintf("Maximum length is %d minutes; the recorder stops on its own at the limit.", record.MaxDurationSeconds/60),
		"Review your take before uploading. A retry discards it permanently.",
	}
	var b strings.Builder
	b.WriteString(m.theme.accent.Render("Recording Tips"))
	for _, tip := range tips {
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render("- " + tip))
	}
	return m.theme.panel.Render(b.String())
}

func (m interviewModel) renderCompleted() string {
	var b strings.Builder
	b.WriteString(m.theme.good.Render("✓ Interview Submission Complete"))
	b.WriteString("\n")
	b.WriteString("Your video interview has been submitted. No further action is needed.")
	if m.session != nil && m.session.VideoUpload != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.subtle.Render(fmt.Sprintf("%s  %s", m.session.VideoUpload.OriginalFilename, formatBytes(m.session.VideoUpload.FileSize))))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.keyHint.Render("q quit"))
	return m.theme.panel.Render(b.String())
}

func (m interviewModel) renderStatusLine() string {
	if m.statusMessage == "" {
		return ""
	}
	if m.statusIsError {
		return m.theme.bad.Render(m.statusMessage)
	}
	return m.theme.status.Render(m.statusMessage)
}
