package filters

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// `exec` pipes text through an external command, for example
//
//	script_minifier: [exec, uglifyjs, --compress]
//
// The command reads source from stdin and writes the result to stdout.
// A non-zero exit status fails the filter.

func init() {
	Register("exec", MakeExecFilter)
}

type execFilter struct {
	command string
	args    []string
}

func MakeExecFilter(args []string) (Filter, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("filter exec: missing command")
	}
	return &execFilter{command: args[0], args: args[1:]}, nil
}

func (f *execFilter) Name() string { return fmt.Sprintf("exec %s %q", f.command, f.args) }

func (f *execFilter) Apply(in []byte) (out []byte, err error) {
	cmd := exec.Command(f.command, f.args...)
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", f.command, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", f.command, err)
	}
	return stdout.Bytes(), nil
}
