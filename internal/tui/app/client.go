// Package app provides TUI application adapters for command wiring.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	apperrors "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/settings"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/tui/state"
)

// ProgramRunner defines the interface for running a bubbletea program.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs the model full screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CoreBuilder creates a Core reporting load failures to reporter.
type CoreBuilder func(reporter apperrors.ErrorHandler) (*core.Core, error)

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel(ctx context.Context) (tea.Model, error)
	RunProgram(model tea.Model) error
}

// DefaultClient builds the model over a freshly started Core.
type DefaultClient struct {
	build    CoreBuilder
	runner   ProgramRunner
	settings func() settings.Store
	core     *core.Core
}

// ClientOption configures a DefaultClient.
type ClientOption func(*DefaultClient)

// WithSettings persists TUI preferences in the store returned by open. It is
// called when the model is created, after configuration has loaded.
func WithSettings(open func() settings.Store) ClientOption {
	return func(d *DefaultClient) {
		d.settings = open
	}
}

// NewDefaultClient creates a default TUI client adapter. If runner is nil,
// a DefaultProgramRunner is used.
func NewDefaultClient(build CoreBuilder, runner ProgramRunner, opts ...ClientOption) *DefaultClient {
	if build == nil {
		panic("NewDefaultClient: core builder cannot be nil")
	}
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	d := &DefaultClient{build: build, runner: runner}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateModel builds and starts a Core and wraps it in a model. It fails
// when no one is signed in.
func (d *DefaultClient) CreateModel(ctx context.Context) (tea.Model, error) {
	reporter := apperrors.NewTUIHandler(nil)
	c, err := d.build(reporter)
	if err != nil {
		return nil, err
	}
	if _, err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("start: %w", err)
	}
	d.core = c
	var opts []state.Option
	if d.settings != nil {
		opts = append(opts, state.WithSettings(d.settings()))
	}
	return state.NewModel(ctx, c, reporter, opts...), nil
}

// RunProgram runs model and releases the Core once the program exits.
func (d *DefaultClient) RunProgram(model tea.Model) error {
	err := d.runner.Run(model)
	if d.core != nil {
		d.core.Close()
		d.core = nil
	}
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
