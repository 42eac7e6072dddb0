package people

import (
	"fmt"

	"github.com/bnema/ppl/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	emailErrorText    = "Invalid email address"
	passwordErrorText = "Password must be at least 6 characters"
	loadingText       = "Loading persons..."
	failureText       = "Failed to fetch persons from the internet"
	noPersonsText     = "No persons found"
)

type RenderOptions struct {
	Search string
	Status domain.FetchStatus
}

func renderList(persons []domain.Person, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Persons"),
		s.header.Render(fmt.Sprintf("persons: %d", len(persons))),
	}
	if opts.Search != "" {
		lines = append(lines, s.header.Render(fmt.Sprintf("search: %q", opts.Search)))
	}

	for _, person := range persons {
		lines = append(lines, s.section.Render(renderPerson(person, s)))
	}

	if line := statusLine(opts.Status, len(persons) == 0, "", s); line != "" {
		lines = append(lines, s.section.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPerson(person domain.Person, s styles) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.name.Render(person.Name),
		s.detail.Render(person.Email),
		s.detail.Render(person.Address),
	)
}

// statusLine mirrors the fetch status below the list; it is empty when the
// sequence finished with results.
func statusLine(status domain.FetchStatus, empty bool, spinner string, s styles) string {
	switch status {
	case domain.FetchStatusLoading:
		if spinner == "" {
			return s.empty.Render(loadingText)
		}
		return fmt.Sprintf("%s %s", spinner, s.empty.Render(loadingText))
	case domain.FetchStatusError:
		return s.failure.Render(failureText)
	case domain.FetchStatusDone:
		if empty {
			return s.empty.Render(noPersonsText)
		}
	}

	return ""
}
