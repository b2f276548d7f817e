package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	VideoListView
	VideoDetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	playlists    models.Reader[*models.Playlist]
	width        int
	height       int
	playlistList list.Model
	videoList    list.Model
	selected     *models.Playlist
	video        *models.Video
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model reading from playlists.
func NewModel(ctx context.Context, playlists models.Reader[*models.Playlist]) *Model {
	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		playlists:    playlists,
		playlistList: newList("Playlists", nil),
		videoList:    newList("Videos", nil),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init loads the playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-6)
		m.videoList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil

	switch msg.kind {
	case MsgPlaylistsFetched:
		playlists := msg.data.([]*models.Playlist)
		cmd := m.playlistList.SetItems(playlistItems(playlists))
		m.playlistList.Title = fmt.Sprintf("Playlists (%d)", len(playlists))
		return m, cmd

	case MsgPlaylistFetched:
		m.selected = msg.data.(*models.Playlist)
		cmd := m.videoList.SetItems(videoItems(m.selected.Videos))
		m.videoList.Title = fmt.Sprintf("Videos in '%s'", m.selected.Name)
		m.videoList.ResetSelected()
		m.view = VideoListView
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}

	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	switch m.view {
	case PlaylistListView:
		switch {
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				return m, m.fetchPlaylist(item.playlist.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.reload):
			return m, m.fetchPlaylists()
		}

	case VideoListView:
		switch {
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.videoList.SelectedItem().(videoItem); ok {
				video := item.video
				m.video = &video
				m.view = VideoDetailView
			}
			return m, nil
		case key.Matches(msg, m.keys.back):
			m.view = PlaylistListView
			m.selected = nil
			return m, nil
		case key.Matches(msg, m.keys.reload):
			return m, m.fetchPlaylist(m.selected.ID)
		}

	case VideoDetailView:
		if key.Matches(msg, m.keys.back) {
			m.view = VideoListView
			m.video = nil
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) filtering() bool {
	switch m.view {
	case PlaylistListView:
		return m.playlistList.FilterState() == list.Filtering
	case VideoListView:
		return m.videoList.FilterState() == list.Filtering
	}
	return false
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case VideoListView:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.playlists.GetAll(m.ctx, true)
		return playlistsFetchedMsg(playlists, err)
	}
}

func (m *Model) fetchPlaylist(id int64) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.playlists.GetOne(m.ctx, id, true)
		return playlistFetchedMsg(playlist, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case PlaylistListView:
		body = m.renderList(m.playlistList, m.keys.enter, m.keys.reload, m.keys.quit)
	case VideoListView:
		body = m.renderList(m.videoList, m.keys.enter, m.keys.back, m.keys.quit)
	case VideoDetailView:
		body = m.renderDetail()
	}

	if m.err != nil {
		body = fmt.Sprintf("%s\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), body)
	}
	return body
}

func (m *Model) renderList(l list.Model, keys ...key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(keys))
}

func (m *Model) renderDetail() string {
	if m.video == nil {
		return styles.warn.Render("No video selected")
	}

	v := m.video
	rows := []struct{ label, value string }{
		{"Video ID", v.VideoID},
		{"Author", v.Author},
		{"URL", v.URL},
		{"Duration", fmt.Sprintf("%s (%s)", v.Duration, shared.FormatDuration(v.Length))},
		{"Thumbnail", v.Thumbnail},
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(v.Title))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render(row.label), row.value))
	}
	if m.selected != nil {
		b.WriteString(fmt.Sprintf("\n%s\n", styles.help.Render("in "+m.selected.Name)))
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	return b.String()
}
