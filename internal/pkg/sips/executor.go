package sips

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
)

// Runner runs a middleware program and returns its standard output
type Runner interface {
	Run(ctx context.Context, path string, args []string) (string, error)
}

// ExecRunner runs programs with os/exec. A zero Timeout means no limit
// beyond the caller's context.
type ExecRunner struct {
	Timeout time.Duration
}

func (r ExecRunner) Run(ctx context.Context, path string, args []string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", filepath.Base(path), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// execute runs <binpath>/<program> with name=value arguments and splits its
// output on '!' into at most n tokens (n < 0: no limit). The middleware wraps
// its output in '!' delimiters, the outermost pair is dropped.
func (c *Client) execute(ctx context.Context, program string, params gateway.Fields, n int) ([]string, error) {
	if _, ok := params.Lookup("pathfile"); !ok && c.config.PathFile != "" {
		params.Set("pathfile", c.config.PathFile)
	}
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = p.Name + "=" + p.Value
	}
	path := filepath.Join(c.config.BinPath, program)

	logger.FromContext(ctx).Debug().Str("program", path).Strs("params", params.Names()).Msg("executing sips middleware")
	out, err := c.runner.Run(ctx, path, args)
	if err != nil {
		return nil, &gateway.ExternalProcessError{Executable: program, Code: "-1", Message: err.Error()}
	}
	return splitOutput(out, n), nil
}

func splitOutput(out string, n int) []string {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "!")
	out = strings.TrimSuffix(out, "!")
	return strings.SplitN(out, "!", n)
}
