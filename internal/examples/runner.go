package examples

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultTimeout bounds example execution when no timeout is configured.
const DefaultTimeout = 5000 * time.Millisecond

// RunResult is the outcome of executing one example snippet.
type RunResult struct {
	Success  bool          `json:"success"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
}

// Runner executes example code and reports the outcome. A failing example
// is a failed RunResult, never a Go error; runner faults must not
// propagate through the pipeline.
type Runner interface {
	Run(ctx context.Context, code string) RunResult
}

// NodeRunner executes examples in a Node.js subprocess. The subprocess is
// force-killed when the timeout expires and the run is recorded as failed.
type NodeRunner struct {
	Command string        // interpreter, default "node"
	Timeout time.Duration // per-example bound, default DefaultTimeout
}

// NewNodeRunner creates a runner with the given timeout (0 means default).
func NewNodeRunner(timeout time.Duration) *NodeRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NodeRunner{Command: "node", Timeout: timeout}
}

// Run executes the code and captures stdout/stderr/exit/duration.
func (r *NodeRunner) Run(ctx context.Context, code string) RunResult {
	start := time.Now()

	tmp, err := os.CreateTemp("", "docdrift-example-*.js")
	if err != nil {
		return RunResult{
			Stderr:   fmt.Sprintf("failed to stage example: %v", err),
			ExitCode: -1,
			Duration: time.Since(start),
		}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return RunResult{
			Stderr:   fmt.Sprintf("failed to stage example: %v", err),
			ExitCode: -1,
			Duration: time.Since(start),
		}
	}
	tmp.Close()

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	command := r.Command
	if command == "" {
		command = "node"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, command, filepath.Clean(tmp.Name()))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	duration := time.Since(start)

	result := RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.Stderr = fmt.Sprintf("execution timed out after %dms", r.Timeout.Milliseconds())
		result.ExitCode = -1
		return result
	}

	if runErr != nil {
		result.ExitCode = -1
		if cmd.ProcessState != nil {
			result.ExitCode = cmd.ProcessState.ExitCode()
		}
		if result.Stderr == "" {
			result.Stderr = runErr.Error()
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}
