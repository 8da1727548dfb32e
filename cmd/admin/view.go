package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db"))
	violetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e056fd"))
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95a5a6"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
)

func (m model) View() string {
	switch m.phase {
	case phaseEnterUsername:
		return fmt.Sprintf("Backend: %s\nAdmin username: %s\n",
			blueStyle.Render(m.apiURL), m.usernameInput.View())
	case phaseEnterPassword:
		return fmt.Sprintf("Backend: %s\nAdmin username: %s\nPassword: %s\n",
			blueStyle.Render(m.apiURL), m.usernameInput.Value(), m.passwordInput.View())
	case phaseLoggingIn:
		return fmt.Sprintf("%s Logging in...\n", m.spin.View())
	case phaseFetching:
		return fmt.Sprintf("%s Fetching contact submissions...\n", m.spin.View())
	case phaseFailed:
		return fmt.Sprintf("%s %s\nPress %s to exit.\n",
			redStyle.Render("Error:"), m.errMsg, violetStyle.Render("Enter"))
	case phaseShowContacts:
		return m.renderContacts()
	}
	return ""
}

func (m model) renderContacts() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Contact submissions (%d), served from the %s tier\n\n",
		len(m.contacts), violetStyle.Render(m.source))

	if len(m.contacts) == 0 {
		b.WriteString(grayStyle.Render("No submissions yet.") + "\n")
	}

	for _, c := range m.contacts {
		phone := "-"
		if c.Phone != nil {
			phone = *c.Phone
		}
		fmt.Fprintf(&b, "%s  %s\n", blueStyle.Render(c.SubmittedAt), statusBadge(c.Status))
		fmt.Fprintf(&b, "  %s <%s> %s\n", c.Name, c.Email, grayStyle.Render(phone))
		fmt.Fprintf(&b, "  %s\n", violetStyle.Render(c.Service))
		fmt.Fprintf(&b, "  %s\n\n", truncate(c.Message, 120))
	}

	b.WriteString(grayStyle.Render("Press q to quit.") + "\n")
	return b.String()
}

func statusBadge(status string) string {
	switch status {
	case "new":
		return redStyle.Render("[new]")
	case "contacted":
		return violetStyle.Render("[contacted]")
	case "completed":
		return grayStyle.Render("[completed]")
	}
	return grayStyle.Render("[" + status + "]")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
