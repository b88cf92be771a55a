// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/sage-tui/internal/ui/components"
	"github.com/jeranaias/sage-tui/internal/ui/styles"
	"github.com/jeranaias/sage-tui/internal/vm"
)

// =============================================================================
// FOCUS AND OVERLAY STATE
// =============================================================================

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusComposer Focus = iota // message input
	FocusSidebar               // chat list
	FocusDocs                  // document chips
)

// Overlay identifies the active modal, if any. While an overlay is open
// it captures all key input.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayNewChat
	OverlayUpload
	OverlayConfirm
	OverlayHelp
)

// pendingAction is the destructive operation awaiting confirmation.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingDeleteChat
	pendingDeleteDoc
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options control presentation and request behavior. Zero values fall
// back to sensible defaults.
type Options struct {
	// Timeout bounds each backend request.
	Timeout time.Duration
	// SidebarWidth is the chat list width in columns.
	SidebarWidth int
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Collaborators
	vm      *vm.ViewModel
	theme   *styles.Theme
	timeout time.Duration

	// Presentation options
	sidebarWidth   int
	showTimestamps bool

	// Dimensions
	width  int
	height int

	// Input routing
	focus   Focus
	overlay Overlay
	keyMap  KeyMap

	// Pending confirm target
	pending   pendingAction
	pendingID string

	// UI components
	viewport   viewport.Model
	composer   textinput.Model
	titleInput textinput.Model
	pathInput  textinput.Model
	spinner    components.Spinner
	header     *components.Header
	sidebar    *components.Sidebar
	chips      *components.DocChips
	statusBar  *components.StatusBar
	confirm    *components.Confirm

	// Markdown rendering for confirmed assistant content
	markdown *glamour.TermRenderer

	// Blocking error, empty when none
	lastError string
}

// New creates the chat model. The view-model must already be wired to
// an authenticated client.
func New(v *vm.ViewModel, theme *styles.Theme, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.SidebarWidth < 16 {
		opts.SidebarWidth = 32
	}

	composer := textinput.New()
	composer.Placeholder = "Type a message..."
	composer.Prompt = "> "
	composer.PromptStyle = theme.InputPrompt
	composer.PlaceholderStyle = theme.InputPlaceholder
	composer.CharLimit = 0
	composer.Focus()

	titleInput := textinput.New()
	titleInput.Placeholder = "Chat title"
	titleInput.Prompt = "> "
	titleInput.CharLimit = 120

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/document.pdf (separate multiple with spaces)"
	pathInput.Prompt = "> "
	pathInput.CharLimit = 0

	m := Model{
		vm:             v,
		theme:          theme,
		timeout:        opts.Timeout,
		sidebarWidth:   opts.SidebarWidth,
		showTimestamps: opts.ShowTimestamps,
		keyMap:         DefaultKeyMap(),
		viewport:       viewport.New(80, 20),
		composer:       composer,
		titleInput:     titleInput,
		pathInput:      pathInput,
		spinner:        components.NewSpinner(theme),
		header:         components.NewHeader(theme),
		sidebar:        components.NewSidebar(theme),
		chips:          components.NewDocChips(theme),
		statusBar:      components.NewStatusBar(theme),
		confirm:        components.NewConfirm(theme),
	}
	m.statusBar.Shortcuts = shortcuts(m.keyMap)
	return m
}

// Init starts the initial loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshChatsCmd(),
		m.loadConversationCmd(),
		textinput.Blink,
	)
}

// setSize propagates a terminal resize to every component.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarWidth := 0
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		sidebarWidth = m.sidebarWidth
	}

	contentWidth := width - sidebarWidth
	m.header.SetWidth(width)
	m.sidebar.SetSize(sidebarWidth, height-4)
	m.chips.SetWidth(contentWidth - 2)
	m.statusBar.SetWidth(width)

	// Header, chips, input, status bar
	m.viewport.Width = contentWidth
	m.viewport.Height = height - 6
	m.composer.Width = contentWidth - 4

	// Glamour wraps at render width; rebuild on resize.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(contentWidth-12, 100)),
	)
	if err == nil {
		m.markdown = renderer
	}
}

// renderMarkdown adapts the glamour renderer to the component signature.
func (m *Model) renderMarkdown(md string) (string, error) {
	if m.markdown == nil {
		return md, nil
	}
	return m.markdown.Render(md)
}

// shortcuts converts the key map's short help into status bar hints.
func shortcuts(k KeyMap) []components.Shortcut {
	var out []components.Shortcut
	for _, b := range k.ShortHelp() {
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
