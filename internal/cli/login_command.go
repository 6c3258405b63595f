package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/model"
)

type loginModel struct {
	client *api.Client
	theme  theme

	inputs  []textinput.Model
	focus   int
	waiting bool

	errMessage string
	auth       *model.AuthResponse
	fatalErr   error
}

type loginResultMsg struct {
	auth model.AuthResponse
	err  error
}

func runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "candidate email (skips the interactive form)")
	token := fs.String("token", "", "access token issued for your interview")
	apiURL := fs.String("api-url", "", "override the API base URL")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	settingsPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	baseURL := settings.APIBaseURL
	if strings.TrimSpace(*apiURL) != "" {
		baseURL = *apiURL
	}
	client := api.NewClient(baseURL)

	if strings.TrimSpace(*email) != "" || strings.TrimSpace(*token) != "" {
		return loginDirect(client, strings.TrimSpace(*email), strings.TrimSpace(*token))
	}
	if !stdinIsTTY() {
		return errors.New("login requires an interactive terminal (TTY); use --email and --token otherwise")
	}

	m := loginModel{
		client: client,
		theme:  themeByName(settings.Theme),
		inputs: newLoginInputs(),
	}
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := finalModel.(loginModel)
	if !ok {
		return nil
	}
	if fm.fatalErr != nil {
		return fm.fatalErr
	}
	if fm.auth == nil {
		return nil
	}
	return finishLogin(*fm.auth)
}

func loginDirect(client *api.Client, email, secret string) error {
	if email == "" || secret == "" {
		return errors.New("both --email and --token are required")
	}
	auth, err := client.Login(context.Background(), email, secret)
	if err != nil {
		return err
	}
	return finishLogin(auth)
}

func finishLogin(auth model.AuthResponse) error {
	if err := api.SaveToken(auth.AccessToken); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	fmt.Printf("Signed in as %s.\n", auth.User.UserData.Email)
	if auth.User.AccessExpiry != nil {
		fmt.Printf("Your interview access expires at %s.\n", *auth.User.AccessExpiry)
	}
	if auth.User.UploadCompleted() {
		fmt.Println("Your interview has already been submitted.")
	} else {
		fmt.Println("Run `interview-cli brief` to read the rules, then `interview-cli interview`.")
	}
	return nil
}

func newLoginInputs() []textinput.Model {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.Prompt = "Email: "
	emailInput.CharLimit = 254
	emailInput.Focus()

	tokenInput := textinput.New()
	tokenInput.Placeholder = "access token"
	tokenInput.Prompt = "Token: "
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.EchoCharacter = '*'

	return []textinput.Model{emailInput, tokenInput}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func submitLoginCmd(client *api.Client, email, secret string) tea.Cmd {
	return func() tea.Msg {
		auth, err := client.Login(context.Background(), email, secret)
		return loginResultMsg{auth: auth, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.waiting = false
		if msg.err != nil {
			var apiErr *api.APIError
			if errors.As(msg.err, &apiErr) {
				m.errMessage = apiErr.Detail
			} else {
				m.errMessage = msg.err.Error()
			}
			return m, nil
		}
		auth := msg.auth
		m.auth = &auth
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focus--
			} else {
				m.focus++
			}
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			if m.focus >= len(m.inputs) {
				m.focus = 0
			}
			for i := range m.inputs {
				if i == m.focus {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case "enter":
			if m.waiting {
				return m, nil
			}
			if m.focus < len(m.inputs)-1 {
				m.focus++
				m.inputs[m.focus].Focus()
				m.inputs[m.focus-1].Blur()
				return m, nil
			}
			email := strings.TrimSpace(m.inputs[0].Value())
			secret := strings.TrimSpace(m.inputs[1].Value())
			if email == "" || secret == "" {
				m.errMessage = "Enter both your email and your access token."
				return m, nil
			}
			m.waiting = true
			m.errMessage = ""
			return m, submitLoginCmd(m.client, email, secret)
		}
	}

	if m.waiting {
		return m, nil
	}
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Candidate Login"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.waiting {
		b.WriteString(m.theme.subtle.Render("Signing in..."))
	} else if m.errMessage != "" {
		b.WriteString(m.theme.bad.Render(m.errMessage))
	} else {
		b.WriteString(m.theme.keyHint.Render("enter submit  tab switch field  esc cancel"))
	}
	b.WriteString("\n")
	return b.String()
}
