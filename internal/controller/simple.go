package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// SimpleUI implements UI by printing plain text to the cobra command output.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start applies the start options.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = StartConfig{}
	for _, option := range options {
		option(&s.config)
	}

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayCases prints the registry as a table.
func (s *SimpleUI) DisplayCases(ctx context.Context, cases []m.TestCase) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Case", "Source", "Golden"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for i, tc := range cases {
		table.Append([]string{fmt.Sprintf("%d", i+1), tc.Name, string(tc.Source), string(tc.Golden)})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total %d", len(cases)), "", ""})
	table.Render()

	s.printf("%s", tableBuffer.String())

	return nil
}

// DisplayRunInfo announces the run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, toolchain m.Toolchain, total int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d case(s) with %s\n", total, toolchain.Compiler)
}

// DisplayStartingCase prints the case being started in verbose mode.
func (s *SimpleUI) DisplayStartingCase(ctx context.Context, tc m.TestCase, index int, total int) {
	if err := ctx.Err(); err != nil || !s.config.verbose {
		return
	}

	s.printf("[%d/%d] %s\n", index+1, total, tc.Source)
}

// DisplayCaseResult prints the verdict line and, in verbose mode, the
// diagnostic of a failed case.
func (s *SimpleUI) DisplayCaseResult(ctx context.Context, result m.PipelineResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", caseLine(result))

	if result.Verdict == m.Failed && s.config.verbose {
		s.displayDetail(result)
	}
}

func (s *SimpleUI) displayDetail(result m.PipelineResult) {
	s.printf("%s", caseDetail(result, s.config.diff))
}

// DisplaySummary prints the per-case table and the overall pass rate.
func (s *SimpleUI) DisplaySummary(ctx context.Context, results []m.PipelineResult, elapsed time.Duration) {
	if err := ctx.Err(); err != nil {
		return
	}

	rows := make([]m.CaseReport, 0, len(results))
	for _, result := range results {
		rows = append(rows, m.NewCaseReport(result))
	}

	s.printf("\n%s", renderResultsTable(rows))
	s.printf("Pass rate: %.2f%% (%s)\n", passRate(results)*100, elapsed.Round(time.Millisecond))
}

// DisplayReport prints a previously saved report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Run %s started %s (%s), took %s\n",
		report.RunID,
		report.StartedAt.Format(time.RFC3339),
		humanize.Time(report.StartedAt),
		report.Duration.Round(time.Millisecond))
	s.printf("\n%s", renderResultsTable(report.Results))

	if s.config.verbose {
		for _, row := range report.Results {
			if row.Verdict == m.Passed.String() {
				continue
			}

			s.printf("=== %s failed at %s\n%s\n", row.Name, row.Stage, strings.TrimRight(row.Output, "\n"))
		}
	}

	return nil
}

func renderResultsTable(rows []m.CaseReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Case", "Verdict", "Stage", "Status", "Output"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	passed := 0

	for _, row := range rows {
		if row.Verdict == m.Passed.String() {
			passed++
		}

		table.Append([]string{row.Name, row.Verdict, row.Stage, row.Status, humanize.Bytes(uint64(len(row.Output)))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(rows)),
		fmt.Sprintf("%d passed", passed),
		fmt.Sprintf("%d failed", len(rows)-passed),
		"",
		"",
	})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
