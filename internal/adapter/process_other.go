//go:build !unix

package adapter

import "os/exec"

func configureProcessGroup(_ *exec.Cmd) {}

func signalOf(_ *exec.ExitError) string {
	return ""
}
