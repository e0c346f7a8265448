// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"slices"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/groupby/internal/progress"
)

// GroupStatus is the state of one group's command.
type GroupStatus int

const (
	StatusPending GroupStatus = iota
	StatusQueued
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusSkipped
)

// String returns a string representation of the group status.
func (s GroupStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func (s GroupStatus) finished() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusSkipped
}

// GroupNode is the display state of one group.
type GroupNode struct {
	Name       string
	Status     GroupStatus
	Items      int
	StartTime  time.Time
	EndTime    time.Time
	LastOutput string
	ExitCode   int
	ErrorMsg   string
}

// apply updates the node from a progress event.
func (n *GroupNode) apply(event progress.Event) {
	switch event.Type {
	case progress.EventQueued:
		n.Status = StatusQueued
		n.Items = event.Data.Items
	case progress.EventStarted:
		n.Status = StatusRunning
		n.StartTime = event.Timestamp
	case progress.EventOutput:
		n.LastOutput = event.Data.OutputLine
	case progress.EventCompleted:
		n.Status = StatusSuccess
		n.ExitCode = event.Data.ExitCode
		n.EndTime = event.Timestamp
	case progress.EventFailed:
		n.Status = StatusFailed
		n.EndTime = event.Timestamp

		if event.Data.Error != nil {
			n.ErrorMsg = event.Data.Error.Error()
		}
	case progress.EventSkipped:
		n.Status = StatusSkipped
	}
}

// Elapsed returns how long the command has run, or ran.
func (n *GroupNode) Elapsed(now time.Time) time.Duration {
	switch {
	case n.StartTime.IsZero():
		return 0
	case n.EndTime.IsZero():
		return now.Sub(n.StartTime)
	default:
		return n.EndTime.Sub(n.StartTime)
	}
}

// Model is the bubbletea model of a run.
type Model struct {
	cancel      context.CancelFunc
	nodes       map[string]*GroupNode
	order       []string
	finished    int
	spinner     spinner.Model
	bar         bprogress.Model
	viewport    viewport.Model
	width       int
	height      int
	interrupted bool
	done        bool
	err         error
	styles      *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Failed  lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// NewModel creates a model listing groups, in the given order, as pending.
// cancel is called when the user interrupts the run.
func NewModel(groups []string, cancel context.CancelFunc) *Model {
	m := &Model{
		cancel:   cancel,
		nodes:    make(map[string]*GroupNode, len(groups)),
		order:    make([]string, 0, len(groups)),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:      bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithoutPercentage()),
		viewport: viewport.New(defaultWidth, defaultHeight),
		styles:   NewStyles(),
	}

	for _, g := range groups {
		m.node(g)
	}

	return m
}

// node returns the node for group, adding it if it is new.
func (m *Model) node(group string) *GroupNode {
	if n, ok := m.nodes[group]; ok {
		return n
	}

	n := &GroupNode{Name: group}
	m.nodes[group] = n
	m.order = append(m.order, group)

	return n
}

// Node returns the display state of group.
func (m *Model) Node(group string) (GroupNode, bool) {
	n, ok := m.nodes[group]
	if !ok {
		return GroupNode{}, false
	}

	return *n, true
}

// Groups returns the group names in display order.
func (m *Model) Groups() []string {
	return slices.Clone(m.order)
}

// Finished returns how many groups have finished, failed or been skipped.
func (m *Model) Finished() int {
	return m.finished
}

func (m *Model) processProgressEvent(event progress.Event) {
	n := m.node(event.Group)
	was := n.Status.finished()

	n.apply(event)

	if !was && n.Status.finished() {
		m.finished++
	}
}

func (m *Model) fraction() float64 {
	if len(m.order) == 0 {
		return 1
	}

	return float64(m.finished) / float64(len(m.order))
}
