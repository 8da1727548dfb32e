package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for the admin client, the -api flag is enough
	_ = godotenv.Load()

	apiURL := flag.String("api", "http://localhost:8080", "backend API base URL")
	flag.Parse()

	if *apiURL == "" {
		fmt.Println("Please provide the backend API base URL using the -api flag.")
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(*apiURL))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type phase int

const (
	phaseEnterUsername phase = iota
	phaseEnterPassword
	phaseLoggingIn
	phaseFetching
	phaseShowContacts
	phaseFailed
)

type model struct {
	apiURL string
	phase  phase
	errMsg string

	usernameInput textinput.Model
	passwordInput textinput.Model
	spin          spinner.Model

	token    string
	contacts []contactView
	source   string
}

func initialModel(apiURL string) model {
	username := textinput.New()
	username.Placeholder = "admin"
	username.Focus()
	username.CharLimit = 64
	username.Width = 24

	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64
	password.Width = 24

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return model{
		apiURL:        apiURL,
		phase:         phaseEnterUsername,
		usernameInput: username,
		passwordInput: password,
		spin:          spin,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type loginResult struct {
	token string
	err   error
}

type fetchResult struct {
	contacts []contactView
	source   string
	err      error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loginResult:
		if msg.err != nil {
			m.phase = phaseFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.token = msg.token
		m.phase = phaseFetching
		return m, tea.Batch(m.spin.Tick, fetchContactsCmd(m.apiURL, m.token))
	case fetchResult:
		if msg.err != nil {
			m.phase = phaseFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.contacts = msg.contacts
		m.source = msg.source
		m.phase = phaseShowContacts
		return m, nil
	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			switch m.phase {
			case phaseEnterUsername:
				m.phase = phaseEnterPassword
				m.usernameInput.Blur()
				m.passwordInput.Focus()
				return m, textinput.Blink
			case phaseEnterPassword:
				m.phase = phaseLoggingIn
				m.passwordInput.Blur()
				return m, tea.Batch(
					m.spin.Tick,
					loginCmd(m.apiURL, m.usernameInput.Value(), m.passwordInput.Value()),
				)
			case phaseShowContacts, phaseFailed:
				return m, tea.Quit
			}
		case tea.KeyRunes:
			if m.phase == phaseShowContacts && (msg.Runes[0] == 'q' || msg.Runes[0] == 'Q') {
				return m, tea.Quit
			}
		}
	}

	switch m.phase {
	case phaseEnterUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case phaseEnterPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func loginCmd(apiURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := login(apiURL, username, password)
		return loginResult{token: token, err: err}
	}
}

func fetchContactsCmd(apiURL, token string) tea.Cmd {
	return func() tea.Msg {
		contacts, source, err := fetchContacts(apiURL, token)
		return fetchResult{contacts: contacts, source: source, err: err}
	}
}
