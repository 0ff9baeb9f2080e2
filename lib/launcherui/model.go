// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launcherui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/pistachio/lib/completion"
	"github.com/bureau-foundation/pistachio/lib/launch"
	"github.com/bureau-foundation/pistachio/lib/pathresolve"
	"github.com/bureau-foundation/pistachio/lib/tui"
)

const (
	// DefaultMenuRows is the number of menu rows shown at once.
	DefaultMenuRows = 10

	// maxTextLength caps the text box. Insertions that would exceed it
	// are ignored.
	maxTextLength = 4096

	// chromeRows is the space taken by the text box and status line.
	chromeRows = 2
)

// Options configures a Model.
type Options struct {
	// MenuSize caps the number of menu entries. Zero selects
	// completion.DefaultMenuSize.
	MenuSize int

	// MenuRows is the number of menu rows shown before scrolling. Zero
	// selects DefaultMenuRows. The terminal height can lower it.
	MenuRows int

	// Styles renders the view. The zero value uses tui.DefaultTheme on
	// the lipgloss default renderer.
	Styles *tui.Styles

	// Keys overrides DefaultKeyMap.
	Keys *KeyMap

	Logger *slog.Logger
}

// Model is the bubbletea model of the launcher.
type Model struct {
	engine *completion.Engine
	parser *launch.Parser
	styles tui.Styles
	keys   KeyMap
	logger *slog.Logger

	menuSize int
	menuRows int

	// Text box.
	text      string
	cursor    int
	highlight int
	menu      tui.Menu

	// errorText is the last rejected submission, cleared by the next
	// key press.
	errorText string

	// notice is the latest log record shown in the status line.
	notice         string
	noticeLevel    slog.Level
	noticeSequence int

	width  int
	height int

	command   launch.Command
	submitted bool
}

// New creates a launcher model with an empty text box.
func New(engine *completion.Engine, parser *launch.Parser, options Options) Model {
	model := Model{
		engine:   engine,
		parser:   parser,
		keys:     DefaultKeyMap,
		logger:   options.Logger,
		menuSize: options.MenuSize,
		menuRows: options.MenuRows,
	}
	if options.Styles != nil {
		model.styles = *options.Styles
	} else {
		model.styles = tui.NewStyles(tui.DefaultTheme, nil)
	}
	if options.Keys != nil {
		model.keys = *options.Keys
	}
	if model.logger == nil {
		model.logger = slog.New(slog.DiscardHandler)
	}
	if model.menuSize <= 0 {
		model.menuSize = completion.DefaultMenuSize
	}
	if model.menuRows <= 0 {
		model.menuRows = DefaultMenuRows
	}
	model.menu = tui.NewMenu(model.menuRows)
	return model
}

// SetText replaces the text box contents and puts the cursor at the
// end, as if the text had been typed.
func (model *Model) SetText(text string) {
	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}
	model.text = text
	model.cursor = len(text)
	model.refreshMenu(true)
}

// Text returns the text box contents.
func (model Model) Text() string { return model.text }

// Cursor returns the cursor position as a byte offset into Text.
func (model Model) Cursor() int { return model.cursor }

// Menu returns the current completion menu.
func (model Model) Menu() tui.Menu { return model.menu }

// Err returns the message of the last rejected submission, or "".
func (model Model) Err() string { return model.errorText }

// Command returns the accepted command. ok is false when the user quit
// without submitting.
func (model Model) Command() (command launch.Command, ok bool) {
	return model.command, model.submitted
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.menu.Visible = max(min(model.menuRows, model.height-chromeRows), 1)
		if model.menu.Selected >= model.menu.Top+model.menu.Visible {
			model.menu.Top = model.menu.Selected - model.menu.Visible + 1
		}

	case logRecordMsg:
		model.noticeSequence++
		model.notice = message.Summary
		model.noticeLevel = message.Level
		sequence := model.noticeSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
		}
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	model.errorText = ""
	text, cursor := model.text, model.cursor
	selecting := model.menu.HasSelection()

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		if !selecting {
			return model, tea.Quit
		}
		model.menu.Reset()

	case key.Matches(message, model.keys.Submit):
		if selecting {
			model.takeSelection()
		}
		return model.submit()

	case key.Matches(message, model.keys.Complete):
		if selecting {
			model.takeSelection()
		} else {
			result := model.engine.AutoComplete(model.text, model.cursor)
			model.text, model.cursor = result.Text, result.Cursor
		}

	case key.Matches(message, model.keys.Up):
		model.menu.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.menu.MoveDown()

	case key.Matches(message, model.keys.Left):
		if !selecting {
			model.cursor = max(model.cursor-1, 0)
		}

	case key.Matches(message, model.keys.Right):
		if selecting {
			model.takeSelection()
		} else {
			model.cursor = min(model.cursor+1, len(model.text))
		}

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		model.cursor = len(model.text)

	case key.Matches(message, model.keys.Backspace):
		if model.cursor > 0 {
			model.text = model.text[:model.cursor-1] + model.text[model.cursor:]
			model.cursor--
		}

	case key.Matches(message, model.keys.Delete):
		if model.cursor < len(model.text) {
			model.text = model.text[:model.cursor] + model.text[model.cursor+1:]
		}

	case message.Type == tea.KeyRunes:
		model.insert(message.Runes)

	case message.Type == tea.KeySpace:
		model.insert([]rune{' '})
	}

	model.refreshMenu(model.text != text || model.cursor != cursor)
	return model, nil
}

// insert adds the printable ASCII characters of runes at the cursor.
func (model *Model) insert(runes []rune) {
	inserted := make([]byte, 0, len(runes))
	for _, character := range runes {
		if character >= ' ' && character <= '~' {
			inserted = append(inserted, byte(character))
		}
	}
	if len(inserted) == 0 || len(model.text)+len(inserted) > maxTextLength {
		return
	}
	model.text = model.text[:model.cursor] + string(inserted) + model.text[model.cursor:]
	model.cursor += len(inserted)
}

// takeSelection completes the token under the cursor with the
// highlighted menu entry.
func (model *Model) takeSelection() {
	item, ok := model.menu.SelectedItem()
	if !ok {
		return
	}
	result := model.engine.Select(model.text, model.cursor, item.Name)
	model.text, model.cursor = result.Text, result.Cursor
	model.menu.Reset()
}

func (model Model) submit() (tea.Model, tea.Cmd) {
	command, err := model.parser.Parse(model.text)
	if err != nil {
		model.errorText = err.Error()
		model.refreshMenu(true)
		return model, nil
	}
	model.logger.Info("command accepted", "command", command.String())
	model.command = command
	model.submitted = true
	return model, tea.Quit
}

// refreshMenu rebuilds the menu for the token under the cursor. The
// selection survives unless reset is set or its row no longer exists.
func (model *Model) refreshMenu(reset bool) {
	enumeration := model.engine.Enumerate(model.text, model.cursor)
	entries := model.engine.MenuEntries(enumeration, model.menuSize)

	items := make([]tui.MenuItem, len(entries))
	for index, entry := range entries {
		items[index] = tui.MenuItem{
			Name:      enumeration.View.Name(entry),
			Directory: enumeration.View.IsDir(entry),
		}
	}
	model.highlight = len(pathresolve.RemoveBackslashes(enumeration.Search))

	selected, top := model.menu.Selected, model.menu.Top
	model.menu.SetItems(items)
	if !reset && selected < len(items) {
		model.menu.Selected, model.menu.Top = selected, top
	}
}
