// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/ui/components"
	"github.com/chatguru/chatguru-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

type screen int

const (
	screenLoading screen = iota
	screenOnboarding
	screenProfile
	screenHome
	screenConversation
	screenHistory
	screenSettings
)

// Layout constants.
const (
	defaultWidth  = 80
	defaultHeight = 24
	minViewport   = 3
)

// =============================================================================
// MODEL
// =============================================================================

// Options configure the UI.
type Options struct {
	// Theme is "dark", "light" or "auto".
	Theme string
	// RenderMarkdown renders AI comments with glamour.
	RenderMarkdown bool
	// Copy writes to the clipboard; defaults to clipboard.WriteAll.
	Copy func(string) error
	// Now defaults to time.Now.
	Now func() time.Time
}

// confirmDialog asks a yes/no question before running onYes.
type confirmDialog struct {
	prompt string
	onYes  tea.Cmd
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	svc    Service

	theme  *styles.Theme
	md     *components.Markdown
	keys   KeyMap
	help   help.Model
	copyFn func(string) error
	now    func() time.Time

	width  int
	height int

	screen screen
	prev   screen
	prefs  settings.Preferences

	// Orchestrator state
	state       conversation.State
	states      <-chan conversation.State
	unsubscribe func()
	pending     bool
	spinner     components.Spinner

	// Feedback
	status   string
	level    components.Level
	showTips bool
	confirm  *confirmDialog

	onboarding onboardingView
	profile    profileView
	home       homeView
	chat       chatView
	history    historyView
	settings   settingsView
}

// New creates the root model and subscribes to svc's state. The model
// stops its work when ctx is cancelled or the user quits.
func New(ctx context.Context, svc Service, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	theme := styles.NewTheme(opts.Theme)

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	states, unsubscribe := svc.Subscribe()
	h := help.New()
	h.ShowAll = true

	return Model{
		ctx:         ctx,
		cancel:      cancel,
		svc:         svc,
		theme:       theme,
		md:          components.NewMarkdown(theme.GlamourStyle(), opts.RenderMarkdown),
		keys:        DefaultKeyMap(),
		help:        h,
		copyFn:      copyFn,
		now:         now,
		width:       defaultWidth,
		height:      defaultHeight,
		screen:      screenLoading,
		state:       svc.State(),
		states:      states,
		unsubscribe: unsubscribe,
		spinner:     components.NewSpinner(),
		onboarding:  newOnboardingView(),
		profile:     newProfileView(),
		home:        newHomeView(),
		chat:        newChatView(),
	}
}

// Init loads preferences and starts listening for state.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadPrefsCmd(), waitForState(m.states))
}

// shutdown cancels in-flight work and ends the subscription.
func (m Model) shutdown() {
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// busy reports whether a flow is running or about to start.
func (m Model) busy() bool {
	return m.pending || m.state.Busy()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes a message to the handler for its type.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.home.post.Width = msg.Width - 8
		m.home.image.Width = msg.Width - 8
		m.chat.resize(m.width, m.chatViewportHeight())
		m.chat.refresh(m.theme, m.md)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.screen == screenConversation {
			var cmd tea.Cmd
			m.chat.viewport, cmd = m.chat.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case stateMsg:
		cmd := m.applyState(msg.State)
		return m, tea.Batch(cmd, waitForState(m.states))

	case stateClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case prefsLoadedMsg:
		return m.handlePrefsLoaded(msg)
	case chatLoadedMsg:
		return m.handleChatLoaded(msg)
	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case flowDoneMsg:
		return m.handleFlowDone(msg)
	case onboardingDoneMsg:
		return m.handleOnboardingDone(msg)
	case profileSavedMsg:
		return m.handleProfileSaved(msg)
	case languageSavedMsg:
		return m.handleLanguageSaved(msg)
	case tonesSavedMsg:
		return m.handleTonesSaved(msg)
	case favoriteToggledMsg:
		return m.handleFavoriteToggled(msg)
	case chatDeletedMsg:
		return m.handleChatDeleted(msg)
	case allChatsDeletedMsg:
		return m.handleAllChatsDeleted(msg)
	case appResetMsg:
		return m.handleAppReset(msg)
	case copiedMsg:
		if msg.Err != nil {
			m.setError("Clipboard unavailable", msg.Err)
		} else {
			m.setStatus("Copied to clipboard", components.LevelSuccess)
		}
		return m, nil
	}

	// Cursor blinks and anything else go to the focused input.
	return m.updateFocusedInput(msg)
}

// applyState mirrors the orchestrator state into the spinner and status.
func (m *Model) applyState(s conversation.State) tea.Cmd {
	m.state = s
	switch s.Kind {
	case conversation.KindLoading:
		m.spinner.SetMessage("Generating comment")
		m.setStatus("", components.LevelNone)
		return m.spinner.Start()
	case conversation.KindRetrying:
		m.spinner.SetMessage(fmt.Sprintf("Retrying (attempt %d)", s.Attempt))
		m.setStatus("", components.LevelNone)
		return m.spinner.Start()
	case conversation.KindSuccess:
		m.spinner.Stop()
		m.setStatus("Comment ready", components.LevelSuccess)
	case conversation.KindError:
		m.spinner.Stop()
		m.setStatus(s.Message, components.LevelError)
	default:
		m.spinner.Stop()
	}
	return nil
}

func (m *Model) setStatus(text string, level components.Level) {
	m.status = text
	m.level = level
}

func (m *Model) setError(prefix string, err error) {
	log.Printf("[ui] %s: %v", prefix, err)
	m.setStatus(prefix+": "+err.Error(), components.LevelError)
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return m, tea.Quit
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			cmd := m.confirm.onYes
			m.confirm = nil
			return m, cmd
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = nil
			m.setStatus("Cancelled", components.LevelNone)
		}
		return m, nil
	}

	if m.showTips {
		m.showTips = false
		return m, nil
	}
	if key.Matches(msg, m.keys.Tips) {
		m.showTips = true
		return m, nil
	}

	if m.navigable() {
		switch {
		case key.Matches(msg, m.keys.History) && m.screen != screenHistory:
			return m.openHistory(false)
		case key.Matches(msg, m.keys.Settings) && m.screen != screenSettings:
			m.prev = m.returnScreen()
			m.screen = screenSettings
			m.settings.cursor = 0
			return m, nil
		}
	}

	switch m.screen {
	case screenOnboarding:
		return m.updateOnboarding(msg)
	case screenProfile:
		return m.updateProfile(msg)
	case screenHome:
		return m.updateHome(msg)
	case screenConversation:
		return m.updateChat(msg)
	case screenHistory:
		return m.updateHistory(msg)
	case screenSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// navigable reports whether history and settings can be opened.
func (m Model) navigable() bool {
	switch m.screen {
	case screenHome, screenConversation, screenHistory, screenSettings:
		return true
	case screenProfile:
		return m.profile.fromSettings
	}
	return false
}

// returnScreen is where Esc from history or settings goes back to.
func (m Model) returnScreen() screen {
	switch m.screen {
	case screenHome, screenConversation:
		return m.screen
	case screenHistory, screenSettings:
		return m.prev
	}
	return screenHome
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenProfile:
		m.profile.age, cmd = m.profile.age.Update(msg)
	case screenHome:
		cmd = m.home.updateInput(msg)
	case screenConversation:
		cmd = m.chat.updateInput(msg)
	}
	return m, cmd
}

// =============================================================================
// ROUTING
// =============================================================================

func (m Model) handlePrefsLoaded(msg prefsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not read preferences", msg.Err)
	}
	m.prefs = msg.Prefs
	m.home.setLanguage(m.prefs.Profile.PreferredLanguage)
	return m.route()
}

// route picks the start screen from the onboarding flags.
func (m Model) route() (tea.Model, tea.Cmd) {
	switch {
	case !m.prefs.OnboardingCompleted:
		m.onboarding = newOnboardingView()
		m.screen = screenOnboarding
		return m, nil
	case !m.prefs.ProfileSetupCompleted:
		return m.openProfile(false)
	default:
		return m.goHome()
	}
}

func (m Model) goHome() (tea.Model, tea.Cmd) {
	m.screen = screenHome
	if !m.busy() {
		m.svc.ResetUIState()
	}
	cmd := m.home.focusCurrent()
	return m, cmd
}

func (m Model) openHistory(favorites bool) (tea.Model, tea.Cmd) {
	if m.screen != screenHistory {
		m.prev = m.returnScreen()
	}
	m.screen = screenHistory
	m.history.favorites = favorites
	return m, m.loadHistoryCmd(favorites)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m Model) View() string {
	header := components.Header{Title: m.title(), Badge: m.badge(), Width: m.width}

	var body string
	switch {
	case m.showTips:
		body = m.viewTips()
	default:
		body = m.viewScreen()
	}

	if m.confirm != nil {
		body += "\n\n" + m.theme.PanelHot.Render(
			m.theme.WarnText.Render(m.confirm.prompt)+"\n"+
				m.theme.KeyHint.Render("y")+m.theme.KeyDesc.Render(" yes   ")+
				m.theme.KeyHint.Render("n")+m.theme.KeyDesc.Render(" no"))
	}

	out := header.View(m.theme) + "\n" + body
	if sp := m.spinner.View(); sp != "" {
		out += "\n" + sp
	}
	bar := components.StatusBar{Message: m.status, Level: m.level, Hints: m.hints(), Width: m.width}
	return m.theme.App.Render(out) + "\n" + bar.View(m.theme)
}

func (m Model) viewScreen() string {
	switch m.screen {
	case screenOnboarding:
		return m.viewOnboarding()
	case screenProfile:
		return m.viewProfile()
	case screenHome:
		return m.viewHome()
	case screenConversation:
		return m.viewChat()
	case screenHistory:
		return m.viewHistory()
	case screenSettings:
		return m.viewSettings()
	}
	return m.theme.Muted.Render("Loading...")
}

func (m Model) title() string {
	switch m.screen {
	case screenOnboarding:
		return "Welcome"
	case screenProfile:
		return "Your profile"
	case screenHome:
		return "New comment"
	case screenConversation:
		return m.chat.chat.Title
	case screenHistory:
		if m.history.favorites {
			return "Favorites"
		}
		return "History"
	case screenSettings:
		return "Settings"
	}
	return ""
}

func (m Model) badge() string {
	switch m.screen {
	case screenHome:
		return m.home.language().DisplayName()
	case screenConversation:
		return m.chat.language.DisplayName()
	}
	return ""
}

func (m Model) hints() []key.Binding {
	if m.confirm != nil {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	k := m.keys
	switch m.screen {
	case screenOnboarding:
		return []key.Binding{k.Right, k.Left, k.Quit}
	case screenProfile:
		return []key.Binding{k.Submit, k.NextField, k.Left, k.Right, k.Quit}
	case screenHome:
		return []key.Binding{k.Submit, k.NextField, k.History, k.Settings, k.Tips}
	case screenConversation:
		if m.chat.moodOpen {
			return []key.Binding{k.Submit, k.Back}
		}
		return []key.Binding{k.Submit, k.Regenerate, k.Retry, k.Copy, k.Mood, k.Favorite, k.Back}
	case screenHistory:
		return []key.Binding{k.Open, k.Tab, k.ToggleFav, k.Delete, k.DeleteAll, k.Back}
	case screenSettings:
		return []key.Binding{k.Up, k.Down, k.Open, k.Back}
	}
	return k.ShortHelp()
}

// chatViewportHeight is what remains for messages after the header,
// inputs, spinner and status bar.
func (m Model) chatViewportHeight() int {
	h := m.height - 10
	if h < minViewport {
		return minViewport
	}
	return h
}
