// Package personas provides the persona picker view for the TUI.
package personas

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/messages"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/styles"
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
)

// View is the persona picker.
type View struct {
	styles    *styles.Styles
	directory driving.PersonaDirectory

	personas []domain.Persona
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new persona picker view.
func NewView(s *styles.Styles, directory driving.PersonaDirectory) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		directory: directory,
		width:     80,
		height:    24,
	}
}

// Init loads the personas.
func (v *View) Init() tea.Cmd {
	if v.directory != nil {
		v.personas = v.directory.All()
	}
	if v.selected >= len(v.personas) {
		v.selected = 0
	}
	return nil
}

// Update handles messages for the persona picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.personas)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			if len(v.personas) == 0 {
				return v, nil
			}
			chosen := v.personas[v.selected]
			return v, func() tea.Msg {
				return messages.PersonaChosen{Persona: chosen}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the persona picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("SalesMate"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Pick a customer to talk as"))
	b.WriteString("\n\n")

	if len(v.personas) == 0 {
		b.WriteString(v.styles.Error.Render("No personas loaded."))
		b.WriteString("\n")
		return b.String()
	}

	for i := range v.personas {
		p := &v.personas[i]
		line := fmt.Sprintf("%s  %s, %d, %s", p.ID, p.Name, p.Age, p.Occupation)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	sel := &v.personas[v.selected]
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"Budget $%.0f-$%.0f, interested in %s",
		sel.Budget.Min, sel.Budget.Max, strings.Join(sel.CategoriesOfInterest, ", "))))
	b.WriteString("\n")

	return b.String()
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently highlighted persona index.
func (v *View) Selected() int {
	return v.selected
}

// Personas returns the loaded personas.
func (v *View) Personas() []domain.Persona {
	return v.personas
}
