// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/components/input"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/components/status"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/keymap"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/messages"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driving/tui/styles"
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driving"
)

// entry is one rendered line group in the transcript.
type entry struct {
	role domain.MessageRole
	text string
}

// View is the conversation view: a transcript, a message input, and a
// status bar. It drives a single conversation through the session service.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.MessageInput
	statusbar *status.Bar

	session driving.SessionService
	ctx     context.Context

	persona      *domain.Persona
	conversation *domain.Conversation
	transcript   []entry
	thinking     bool
	endPending   bool
	ended        bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new conversation view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewMessageInput(s),
		statusbar: status.NewBar(s, km),
		session:   session,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for session calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Start resets the view for the persona and begins a conversation.
func (v *View) Start(persona domain.Persona) tea.Cmd {
	v.persona = &persona
	v.conversation = nil
	v.transcript = nil
	v.thinking = true
	v.endPending = false
	v.ended = false
	v.err = nil
	v.input.Reset()
	v.statusbar.SetState(status.StateThinking)

	return func() tea.Msg {
		conv, err := v.session.Start(v.ctx, &persona)
		return messages.SessionStarted{Conversation: conv, Err: err}
	}
}

// Update handles messages for the conversation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionStarted:
		v.thinking = false
		if msg.Err != nil {
			v.err = msg.Err
			v.endPending = false
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.conversation = msg.Conversation
		for _, m := range msg.Conversation.Messages() {
			if m.Role == domain.RoleAssistant {
				v.transcript = append(v.transcript, entry{role: m.Role, text: m.Content})
			}
		}
		if cmd := v.flushPendingEnd(); cmd != nil {
			return v, cmd
		}
		v.statusbar.SetState(status.StateChat)
		v.statusbar.SetMessage(fmt.Sprintf("%s as %s", msg.Conversation.ID(), v.persona.Name))
		return v, v.input.Focus()

	case messages.ReplyReceived:
		v.thinking = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, v.flushPendingEnd()
		}
		v.err = nil
		v.transcript = append(v.transcript, entry{role: domain.RoleAssistant, text: msg.Reply})
		if cmd := v.flushPendingEnd(); cmd != nil {
			return v, cmd
		}
		v.statusbar.SetState(status.StateChat)
		return v, nil

	case messages.SessionEnded:
		v.thinking = false
		v.ended = true
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.statusbar.SetState(status.StateEnded)
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPersonas}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc ends the conversation and returns to the picker
	if msg.Type == tea.KeyEsc {
		if v.thinking {
			// A session call is in flight; one turn at a time. The end
			// runs once the pending reply lands.
			v.endPending = true
			return v, nil
		}
		if v.conversation == nil || v.ended {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewPersonas}
			}
		}
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.endSession()
	}

	if v.thinking || v.conversation == nil {
		return v, nil
	}

	if msg.String() == "ctrl+r" {
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.requestRecommendations()
	}

	if msg.Type == tea.KeyEnter {
		text := strings.TrimSpace(v.input.Value())
		if text == "" {
			return v, nil
		}
		v.input.Reset()
		if strings.HasPrefix(text, "/") {
			return v.handleSlashCommand(text)
		}
		v.transcript = append(v.transcript, entry{role: domain.RoleUser, text: text})
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.sendMessage(text)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleSlashCommand dispatches /recommend, /similar, /compare, and /end.
func (v *View) handleSlashCommand(text string) (*View, tea.Cmd) {
	fields := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(fields) == 0 {
		return v, nil
	}

	switch fields[0] {
	case "recommend":
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.requestRecommendations()

	case "similar":
		if len(fields) != 2 {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("usage: /similar <product-id>")
			return v, nil
		}
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.requestSimilar(fields[1])

	case "compare":
		if len(fields) < 3 {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("usage: /compare <product-id> <product-id>")
			return v, nil
		}
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.requestComparison(fields[1:])

	case "end":
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.endSession()
	}

	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(fmt.Sprintf("unknown command /%s", fields[0]))
	return v, nil
}

// sendMessage returns a command that processes one user turn.
func (v *View) sendMessage(text string) tea.Cmd {
	conv, persona := v.conversation, v.persona
	return func() tea.Msg {
		reply, err := v.session.ProcessMessage(v.ctx, conv, persona, text)
		return messages.ReplyReceived{Reply: reply, Err: err}
	}
}

// requestRecommendations returns a command that asks for product picks.
func (v *View) requestRecommendations() tea.Cmd {
	conv, persona := v.conversation, v.persona
	return func() tea.Msg {
		reply, err := v.session.Recommend(v.ctx, conv, persona, 0)
		return messages.ReplyReceived{Reply: reply, Err: err}
	}
}

// requestSimilar returns a command that asks for products similar to one.
func (v *View) requestSimilar(productID string) tea.Cmd {
	conv, persona := v.conversation, v.persona
	return func() tea.Msg {
		reply, err := v.session.SimilarTo(v.ctx, conv, persona, productID)
		return messages.ReplyReceived{Reply: reply, Err: err}
	}
}

// requestComparison returns a command that asks for a product comparison.
func (v *View) requestComparison(productIDs []string) tea.Cmd {
	conv, persona := v.conversation, v.persona
	return func() tea.Msg {
		reply, err := v.session.Compare(v.ctx, conv, persona, productIDs)
		return messages.ReplyReceived{Reply: reply, Err: err}
	}
}

// flushPendingEnd issues a deferred end request once no session call is in
// flight. It returns nil when no end was requested.
func (v *View) flushPendingEnd() tea.Cmd {
	if !v.endPending {
		return nil
	}
	v.endPending = false
	v.thinking = true
	v.statusbar.SetState(status.StateThinking)
	return v.endSession()
}

// endSession returns a command that completes the conversation.
func (v *View) endSession() tea.Cmd {
	conv := v.conversation
	return func() tea.Msg {
		return messages.SessionEnded{Err: v.session.End(conv)}
	}
}

// View renders the conversation.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := "SalesMate"
	if v.persona != nil {
		title = fmt.Sprintf("SalesMate  ·  talking as %s", v.persona.Name)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	// Transcript occupies the space between header, input, and status bar.
	transcriptHeight := v.height - 7
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	lines := v.transcriptLines()
	if len(lines) > transcriptHeight {
		lines = lines[len(lines)-transcriptHeight:]
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())

	return b.String()
}

// transcriptLines renders the transcript wrapped to the view width.
func (v *View) transcriptLines() []string {
	wrapWidth := v.width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var lines []string
	for _, e := range v.transcript {
		label := v.styles.Assistant.Render("SalesMate: ")
		style := v.styles.Assistant
		if e.role == domain.RoleUser {
			label = v.styles.Customer.Render("You: ")
			style = v.styles.Normal
		}
		wrapped := wrap(e.text, wrapWidth)
		for i, line := range wrapped {
			if i == 0 {
				lines = append(lines, label+style.Render(line))
			} else {
				lines = append(lines, "  "+style.Render(line))
			}
		}
		lines = append(lines, "")
	}
	if v.thinking {
		lines = append(lines, v.styles.Muted.Render("..."))
	}
	return lines
}

// wrap breaks text into lines no wider than width, splitting on spaces.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			if len(current)+1+len(w) > width {
				lines = append(lines, current)
				current = w
				continue
			}
			current += " " + w
		}
		lines = append(lines, current)
	}
	return lines
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Conversation returns the active conversation, if any.
func (v *View) Conversation() *domain.Conversation {
	return v.conversation
}

// Transcript returns the rendered transcript entries' texts in order.
func (v *View) Transcript() []string {
	out := make([]string, 0, len(v.transcript))
	for _, e := range v.transcript {
		out = append(out, e.text)
	}
	return out
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

// Thinking reports whether a session call is in flight.
func (v *View) Thinking() bool {
	return v.thinking
}
