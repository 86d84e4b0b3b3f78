package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// TUI implements UI using Bubble Tea for a live view of the run. Listing,
// viewing and the final summary are printed through the embedded SimpleUI.
type TUI struct {
	*SimpleUI

	output   io.Writer
	program  *tea.Program
	group    *errgroup.Group
	failures []m.PipelineResult
}

// NewTUI creates a new TUI writing to the command output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		output:   cmd.OutOrStdout(),
	}
}

// Start launches the Bubble Tea program in run mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := t.SimpleUI.Start(ctx, options...); err != nil {
		return err
	}

	if t.config.mode != ModeRun {
		return nil
	}

	t.failures = nil
	t.program = tea.NewProgram(
		newRunModel(),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.group = &errgroup.Group{}

	program := t.program
	t.group.Go(func() error {
		_, err := program.Run()
		return err
	})

	return nil
}

// Close stops the live view and prints the details of failed cases.
func (t *TUI) Close(ctx context.Context) {
	if t.program == nil {
		t.SimpleUI.Close(ctx)
		return
	}

	t.program.Send(runDoneMsg{})

	if err := t.group.Wait(); err != nil {
		slog.Error("TUI program failed", "error", err)
	}

	t.program = nil

	if t.config.verbose {
		for _, result := range t.failures {
			t.displayDetail(result)
		}
	}
}

// DisplayRunInfo sets the total number of cases on the progress bar.
func (t *TUI) DisplayRunInfo(ctx context.Context, toolchain m.Toolchain, total int) {
	if t.program == nil {
		t.SimpleUI.DisplayRunInfo(ctx, toolchain, total)
		return
	}

	t.program.Send(runInfoMsg{compiler: string(toolchain.Compiler), total: total})
}

// DisplayStartingCase shows the spinner next to the running case.
func (t *TUI) DisplayStartingCase(ctx context.Context, tc m.TestCase, index int, total int) {
	if t.program == nil {
		t.SimpleUI.DisplayStartingCase(ctx, tc, index, total)
		return
	}

	t.program.Send(caseStartedMsg{name: tc.Name})
}

// DisplayCaseResult appends the verdict line to the live view.
func (t *TUI) DisplayCaseResult(ctx context.Context, result m.PipelineResult) {
	if t.program == nil {
		t.SimpleUI.DisplayCaseResult(ctx, result)
		return
	}

	if result.Verdict == m.Failed {
		t.failures = append(t.failures, result)
	}

	t.program.Send(caseDoneMsg{result: result})
}

type runInfoMsg struct {
	compiler string
	total    int
}

type caseStartedMsg struct {
	name string
}

type caseDoneMsg struct {
	result m.PipelineResult
}

type runDoneMsg struct{}

// runModel is the Bubble Tea model for the live run view.
type runModel struct {
	spinner  spinner.Model
	progress progress.Model
	compiler string
	total    int
	done     int
	current  string
	lines    []string
	finished bool
}

func newRunModel() runModel {
	return runModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(currentStyle)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		rm.compiler = msg.compiler
		rm.total = msg.total

		return rm, nil

	case caseStartedMsg:
		rm.current = msg.name

		return rm, nil

	case caseDoneMsg:
		rm.done++
		rm.current = ""
		rm.lines = append(rm.lines, styledCaseLine(msg.result))

		return rm, nil

	case runDoneMsg:
		rm.finished = true

		return rm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.compiler != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("compiler: %s", rm.compiler)))
		b.WriteString("\n")
	}

	for _, line := range rm.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if rm.finished {
		return b.String()
	}

	if rm.current != "" {
		fmt.Fprintf(&b, "%s %s\n", rm.spinner.View(), currentStyle.Render(rm.current))
	}

	fmt.Fprintf(&b, "%s %d/%d\n", rm.progress.ViewAs(rm.percent()), rm.done, rm.total)

	return b.String()
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return float64(rm.done) / float64(rm.total)
}

func styledCaseLine(result m.PipelineResult) string {
	if result.Verdict == m.Passed {
		return passStyle.Render("✓") + " " + caseLine(result)
	}

	return failStyle.Render("✗") + " " + caseLine(result)
}
