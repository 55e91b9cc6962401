package extension

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs an external program to completion. Install depends on
// it for the git and cargo invocations; tests substitute a fake to avoid
// real network and compilation.
type CommandRunner interface {
	Run(name string, args ...string) error
}

// execRunner is the production CommandRunner. It blocks for the full
// duration of the child process and folds combined output into the error.
type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %w\n%s", name, strings.Join(args, " "), err, string(output))
	}
	return nil
}
