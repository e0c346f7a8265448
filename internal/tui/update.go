// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/groupby/internal/progress"
)

const (
	defaultWidth            = 80
	defaultHeight           = 20
	reservedLines           = 5 // title, bar, blank, help, blank
	minViewportWidth        = 20
	commandDurationRounding = 100 * time.Millisecond
	ellipsis                = "..."
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// DoneMsg tells the model that every group has been handled.
type DoneMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err

		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// handleKeyPress processes keyboard input. The first ctrl+c stops new groups from starting,
// the second quits the display.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.interrupted {
			return m, tea.Quit
		}

		m.interrupted = true
		if m.cancel != nil {
			m.cancel()
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *Model) updateViewportSize() {
	m.viewport.Width = max(m.width, minViewportWidth)
	m.viewport.Height = max(m.height-reservedLines, 1)
	m.bar.Width = max(m.width-len("100/100 groups  "), minViewportWidth)
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var content strings.Builder

	now := time.Now()
	for _, g := range m.order {
		m.renderGroup(&content, m.nodes[g], now)
	}

	m.viewport.SetContent(content.String())

	var view strings.Builder

	view.WriteString(m.styles.Title.Render("groupby"))
	view.WriteString("\n")
	view.WriteString(fmt.Sprintf("%s %d/%d groups\n", m.bar.ViewAs(m.fraction()), m.finished, len(m.order)))
	view.WriteString(m.viewport.View())
	view.WriteString("\n")

	switch {
	case m.done && m.err != nil:
		view.WriteString(m.styles.Failed.Render("Stopped: " + m.err.Error()))
	case m.done:
		view.WriteString(m.styles.Success.Render("All groups finished"))
	case m.interrupted:
		view.WriteString(m.styles.Warning.Render("Stopping: waiting for running commands, ctrl+c again to leave"))
	default:
		view.WriteString(m.styles.Help.Render("↑/↓ to scroll, ctrl+c to stop starting new groups"))
	}

	view.WriteString("\n")

	return view.String()
}

// renderGroup renders one line for a group.
func (m *Model) renderGroup(b *strings.Builder, n *GroupNode, now time.Time) {
	var icon, name string

	label := n.Name
	if label == "" {
		label = `""`
	}

	switch n.Status {
	case StatusPending, StatusQueued:
		icon = "·"
		name = m.styles.Pending.Render(label)
	case StatusRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(label)
	case StatusSuccess:
		if n.ExitCode != 0 {
			icon = "!"
			name = m.styles.Warning.Render(fmt.Sprintf("%s (exit %d)", label, n.ExitCode))
		} else {
			icon = "✓"
			name = m.styles.Success.Render(label)
		}
	case StatusFailed:
		icon = "✗"
		name = m.styles.Failed.Render(label)
	case StatusSkipped:
		icon = "~"
		name = m.styles.Pending.Render(label + " (skipped)")
	}

	left := fmt.Sprintf("%s %s", icon, name)
	if d := n.Elapsed(now); d > 0 {
		left += m.styles.Output.Render(fmt.Sprintf(" (%v)", d.Round(commandDurationRounding)))
	}

	var right string

	switch {
	case n.Status == StatusFailed && n.ErrorMsg != "":
		right = m.styles.Error.Render(truncate("Error: "+n.ErrorMsg, m.rightWidth()))
	case n.Status == StatusRunning && n.LastOutput != "":
		right = m.styles.Output.Render(truncate(n.LastOutput, m.rightWidth()))
	}

	leftWidth := m.viewport.Width / 2 //nolint:mnd
	if pad := leftWidth - lipgloss.Width(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	b.WriteString(left)
	b.WriteString(right)
	b.WriteString("\n")
}

func (m *Model) rightWidth() int {
	return m.viewport.Width - m.viewport.Width/2 //nolint:mnd
}

// truncate shortens s to at most width runes, ending in an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	if width <= len(ellipsis) {
		return string(r[:max(width, 0)])
	}

	return string(r[:width-len(ellipsis)]) + ellipsis
}
