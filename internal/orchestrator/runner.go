package orchestrator

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Runner executes one system command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands on the host, optionally through sudo.
type ExecRunner struct {
	Sudo bool
}

// Run executes name with args and waits for it to finish.
// The combined output is attached to the returned error.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.Sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}

	cmdline := name + " " + strings.Join(args, " ")

	log.Debug().Str("cmd", cmdline).Msg("exec")

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", cmdline, bytes.TrimSpace(out))
	}

	return nil
}
