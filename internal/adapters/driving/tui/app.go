package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/keymap"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/messages"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/styles"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/views/chat"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/views/personas"
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// personasView is the persona picker.
	personasView *personas.View

	// chatView is the conversation view.
	chatView *chat.View

	// initialPersona, when set, skips the picker on startup.
	initialPersona *domain.Persona

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		personasView: personas.NewView(s, ports.Personas),
		chatView:     chat.NewView(s, km, ports.Session),
		currentView:  messages.ViewPersonas,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// WithPersona makes the app start a conversation immediately instead of
// showing the picker first.
func (a *App) WithPersona(persona *domain.Persona) *App {
	a.initialPersona = persona
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("SalesMate"),
		a.personasView.Init(),
		a.chatView.Init(),
	}
	if a.initialPersona != nil {
		a.currentView = messages.ViewChat
		cmds = append(cmds, a.chatView.Start(*a.initialPersona))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.personasView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewPersonas:
			a.personasView, cmd = a.personasView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			a.err = a.chatView.Err()
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewPersonas
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.PersonaChosen:
		a.currentView = messages.ViewChat
		return a, a.chatView.Start(msg.Persona)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewPersonas {
			return a, a.personasView.Init()
		}
		return a, nil

	case messages.SessionStarted, messages.ReplyReceived, messages.SessionEnded:
		a.chatView, cmd = a.chatView.Update(msg)
		a.err = a.chatView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPersonas:
		return a.personasView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHelp:
		return a.helpView()
	}
	return ""
}

// helpView renders the keybinding overview.
func (a *App) helpView() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, binding := range a.keymap.ChatHelp() {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("esc to go back"))
	return b.String()
}

// SetDimensions updates the app and view sizes.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.personasView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}

// Ready reports whether the app has received its initial window size.
func (a *App) Ready() bool {
	return a.ready
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}
