package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EntryListView ViewState = iota
	TargetView
	BuildView
	ResultView
)

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	toggle  key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "new/existing")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.toggle},
		{k.restart, k.quit},
	}
}

// entryItem wraps [models.Entry] to implement list.Item.
type entryItem struct {
	entry models.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Artist + " " + i.entry.Title }
func (i entryItem) Title() string       { return fmt.Sprintf("%s - %s", i.entry.Artist, i.entry.Title) }
func (i entryItem) Description() string {
	if i.entry.Kind == models.KindTrack {
		return "single"
	}
	return "album"
}

type progressUpdateMsg tasks.ProgressUpdate

type buildCompleteMsg struct {
	result   *tasks.BuildRunResult
	playlist *models.Playlist
	err      error
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.BuildEngine
	entries      []models.Entry
	width        int
	height       int
	entryList    list.Model
	nameInput    textinput.Model
	preExisting  bool
	progressChan chan tasks.ProgressUpdate
	outcome      chan buildCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.BuildRunResult
	playlist     *models.Playlist
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model for the given parsed entries.
func NewModel(ctx context.Context, entries []models.Entry, engine *tasks.BuildEngine) *Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = entryItem{entry: entry}
	}

	entryList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	entryList.Title = fmt.Sprintf("Chart Entries (%d)", len(entries))

	nameInput := textinput.New()
	nameInput.Placeholder = "Playlist name"
	nameInput.CharLimit = 100

	return &Model{
		ctx:       ctx,
		view:      EntryListView,
		engine:    engine,
		entries:   entries,
		entryList: entryList,
		nameInput: nameInput,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entryList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case EntryListView:
			return m.handleEntryListKeys(msg)
		case TargetView:
			return m.handleTargetKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case buildCompleteMsg:
		m.result = msg.result
		m.playlist = msg.playlist
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.outcome = nil
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == EntryListView {
		m.entryList, cmd = m.entryList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case EntryListView:
		return m.renderEntryList()
	case TargetView:
		return m.renderTarget()
	case BuildView:
		return m.renderBuild()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleEntryListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.view = TargetView
		m.nameInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func (m *Model) handleTargetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = EntryListView
		m.nameInput.Blur()
		return m, nil
	case "tab":
		m.preExisting = !m.preExisting
		if m.preExisting {
			m.nameInput.Placeholder = "Existing playlist ID"
		} else {
			m.nameInput.Placeholder = "Playlist name"
		}
		return m, nil
	case "enter":
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			return m, nil
		}
		m.view = BuildView
		return m, m.startBuild()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = EntryListView
		m.result = nil
		m.playlist = nil
		m.err = nil
		m.nameInput.SetValue("")
		return m, nil
	}
	return m, nil
}

// startBuild runs the engine in a goroutine. The goroutine communicates only
// over channels; model fields are assigned when Update consumes the
// buildCompleteMsg, never from the goroutine itself.
func (m *Model) startBuild() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.outcome = make(chan buildCompleteMsg, 1)

	progressChan := m.progressChan
	outcome := m.outcome
	engine := m.engine
	ctx := m.ctx
	entries := m.entries
	target := tasks.PublishTarget{
		NameOrID:    strings.TrimSpace(m.nameInput.Value()),
		PreExisting: m.preExisting,
	}

	go func() {
		result, err := engine.Run(ctx, entries, progressChan)

		var playlist *models.Playlist
		if err == nil && len(result.URIs) > 0 {
			playlist, err = engine.Publish(ctx, target, result.URIs, progressChan)
		}

		outcome <- buildCompleteMsg{result: result, playlist: playlist, err: err}
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	outcome := m.outcome
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		update, ok := <-progressChan
		if !ok {
			return <-outcome
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderEntryList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.entryList.View(), helpView)
}

func (m *Model) renderTarget() string {
	mode := "Create a new playlist"
	if m.preExisting {
		mode = "Append to an existing playlist"
	}

	title := styles.title.Render("Choose Target Playlist")
	helpKeys := []key.Binding{m.keys.enter, m.keys.toggle, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, mode, m.nameInput.View(), helpView)
}

func (m *Model) renderBuild() string {
	title := styles.title.Render("Building Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.SearchCatalog:
		phase = fmt.Sprintf("Resolving entries (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ExpandAlbum:
		phase = "Expanding album tracks..."
	case tasks.CreateList:
		phase = "Creating playlist..."
	case tasks.AppendTracks:
		phase = fmt.Sprintf("Appending tracks (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Build failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Build Complete!")
	target := ""
	if m.playlist != nil {
		target = fmt.Sprintf("\nPlaylist: %s (ID: %s, %d tracks)", m.playlist.Name, m.playlist.ID, m.playlist.TrackCount)
	}
	info := fmt.Sprintf(
		"%s\nEntries: %d\nMatched: %d (%.1f%%)\nNo match: %d\nFailed: %d",
		target,
		m.result.TotalEntries,
		m.result.MatchedCount,
		m.result.MatchPercentage,
		m.result.NoMatchCount,
		m.result.FailedCount,
	)

	var skipped string
	if m.result.NoMatchCount+m.result.FailedCount > 0 {
		skipped = fmt.Sprintf("\n\n%s", styles.warn.Render("Skipped entries:"))
		for _, entry := range m.result.Results {
			if entry.Status != tasks.StatusMatched {
				skipped += fmt.Sprintf("\n  • %s - %s", entry.Entry.Artist, entry.Entry.Title)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, skipped, helpView)
}
