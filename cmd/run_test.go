package cmd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"uscc.dev/pkg/asmcheck/internal/domain"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Cases) == 0 &&
			args.Reports == m.Path("") &&
			!args.Verbose &&
			!args.Diff
	})).Return(nil)

	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_SelectedCases(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Cases) == 2 && args.Cases[0] == "emit02" && args.Cases[1] == "opt04"
	})).Return(nil)

	cmd.SetArgs([]string{"run", "emit02", "opt04"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Verbose && args.Diff && args.Reports == m.Path("./reports")
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-v", "--diff", "-o", "./reports"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_PropagatesFailures(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: 3 of 21", domain.ErrCasesFailed))

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrCasesFailed)
	assert.Equal(t, exitCasesFailed, exitCode(err))
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()
	assert.Equal(t, "run [cases...]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup(diffFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(isolateFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(execTimeoutFlagName))
}

func TestRunCmd_FailsOnUnreadableConfigFile(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newRunCmd())

	originalConfigErr := configErr
	configErr = fmt.Errorf("failed to read asmcheck.yaml: %s", "yaml: line 2: did not find expected node content")

	t.Cleanup(func() { configErr = originalConfigErr })

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asmcheck.yaml")
	mockWorkflow.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}
