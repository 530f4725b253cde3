package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type deckKeyMap struct {
	Accept   key.Binding
	Skip     key.Binding
	Favorite key.Binding
	Quit     key.Binding
}

func defaultDeckKeys() deckKeyMap {
	return deckKeyMap{
		Accept:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "accept")),
		Skip:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "skip")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favourite")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k deckKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Skip, k.Favorite, k.Quit}
}

func (k deckKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type deckAction int

const (
	deckAccept deckAction = iota
	deckFavorite
)

// deckResultMsg reports the outcome of a service call made for a card.
type deckResultMsg struct {
	action deckAction
	card   *domain.Activity
	err    error
}

type deckSummary struct {
	accepted, favorited, skipped int
}

// deckModel shows one activity card at a time. Every decision advances to
// the next card; the deck quits after the last one.
type deckModel struct {
	ctx   context.Context
	svc   service.ActivityService
	owner domain.Owner

	cards  []*domain.Activity
	idx    int
	busy   bool
	status string
	width  int

	summary deckSummary
	keys    deckKeyMap
	help    help.Model
}

func newDeckModel(ctx context.Context, svc service.ActivityService, owner domain.Owner, cards []*domain.Activity) *deckModel {
	return &deckModel{
		ctx:   ctx,
		svc:   svc,
		owner: owner,
		cards: cards,
		keys:  defaultDeckKeys(),
		help:  help.New(),
		width: 60,
	}
}

func (m *deckModel) Init() tea.Cmd { return nil }

func (m *deckModel) current() *domain.Activity {
	if m.idx >= len(m.cards) {
		return nil
	}
	return m.cards[m.idx]
}

func (m *deckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width-4, 30), 80)
		m.help.Width = msg.Width
		return m, nil

	case deckResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		switch msg.action {
		case deckAccept:
			m.summary.accepted++
			m.status = formatter.StyleGreen.Render("Accepted " + msg.card.Name)
		case deckFavorite:
			m.summary.favorited++
			m.status = formatter.StyleYellow.Render("★ Favourited " + msg.card.Name)
		}
		return m.advance()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		card := m.current()
		if card == nil || m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.busy = true
			return m, m.call(deckAccept, card)
		case key.Matches(msg, m.keys.Favorite):
			m.busy = true
			return m, m.call(deckFavorite, card)
		case key.Matches(msg, m.keys.Skip):
			m.summary.skipped++
			m.status = formatter.Dim("Skipped " + card.Name)
			return m.advance()
		}
	}
	return m, nil
}

func (m *deckModel) advance() (tea.Model, tea.Cmd) {
	m.idx++
	if m.idx >= len(m.cards) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *deckModel) call(action deckAction, card *domain.Activity) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch action {
		case deckAccept:
			_, err = m.svc.Accept(m.ctx, m.owner, card.ID)
		case deckFavorite:
			_, err = m.svc.ToggleFavorite(m.ctx, m.owner, card.ID)
		}
		return deckResultMsg{action: action, card: card, err: err}
	}
}

func (m *deckModel) View() string {
	var b strings.Builder
	card := m.current()
	if card == nil {
		b.WriteString(formatter.Dim("That's every card.") + "\n")
	} else {
		counter := formatter.Dim(fmt.Sprintf("%d / %d", m.idx+1, len(m.cards)))
		b.WriteString(counter + "\n")
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(1, 2).
			Width(m.width).
			Render(formatter.FormatActivityCard(card)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// runDeck opens the deck full screen and reports what was decided.
func runDeck(ctx context.Context, app *App, cards []*domain.Activity) (deckSummary, error) {
	m := newDeckModel(ctx, app.Activities, app.Owner, cards)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return m.summary, fmt.Errorf("running discover deck: %w", err)
	}
	return m.summary, nil
}
