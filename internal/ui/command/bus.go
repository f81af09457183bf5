package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atomicstack/minimenu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
)

// TargetPlaceholder expands to the id of the element a menu was opened on.
const TargetPlaceholder = "{target}"

// Request encapsulates an action invocation for a raised token.
type Request struct {
	Token   string
	Target  string
	Command string
}

// ResultMsg reports the outcome of an action back to the model.
type ResultMsg struct {
	Token    string
	Target   string
	Output   string
	ExitCode int
	Err      error
}

// Runner executes argv and returns its combined output and exit code.
type Runner func(ctx context.Context, argv []string) (string, int, error)

// Bus coordinates the execution of token actions.
type Bus struct {
	run Runner
}

// New initialises a command bus that runs actions as child processes.
func New() *Bus {
	return &Bus{run: execRunner}
}

// NewWithRunner initialises a bus with a custom runner, used by tests.
func NewWithRunner(run Runner) *Bus {
	if run == nil {
		run = execRunner
	}
	return &Bus{run: run}
}

// Expand splits command with shell quoting rules and substitutes the target
// placeholder in every word. The target is never re-split, so ids containing
// spaces or quotes stay a single argument.
func Expand(command, target string) ([]string, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("parse command %q: empty", command)
	}
	for i, w := range words {
		words[i] = strings.ReplaceAll(w, TargetPlaceholder, target)
	}
	return words, nil
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	if strings.TrimSpace(req.Command) == "" {
		events.Command.Skip(req.Token, req.Target)
		return nil
	}
	argv, err := Expand(req.Command, req.Target)
	if err != nil {
		return func() tea.Msg {
			return ResultMsg{Token: req.Token, Target: req.Target, ExitCode: -1, Err: err}
		}
	}
	events.Command.Queue(req.Token, req.Target, argv)
	return func() tea.Msg {
		out, code, err := b.run(ctx, argv)
		events.Command.Result(req.Token, req.Target, code)
		return ResultMsg{
			Token:    req.Token,
			Target:   req.Target,
			Output:   strings.TrimSpace(out),
			ExitCode: code,
			Err:      err,
		}
	}
}

func execRunner(ctx context.Context, argv []string) (string, int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), fmt.Errorf("%s: %w", argv[0], err)
		}
		return string(out), -1, fmt.Errorf("%s: %w", argv[0], err)
	}
	return string(out), 0, nil
}
