// Package uicmd is a small command framework: directories of commands with
// typed parameters, candidate lists and state gates, applied one line at a
// time or from macro files.
package uicmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/units"
)

var (
	ErrCommandNotFound          = fmt.Errorf("command not found")
	ErrIllegalState             = fmt.Errorf("illegal application state")
	ErrParameterOutOfCandidates = fmt.Errorf("parameter out of candidates")
	ErrParameterUnreadable      = fmt.Errorf("parameter unreadable")
	ErrDuplicateCommand         = fmt.Errorf("command already registered")
)

// Manager owns the command tree and the current application state. It is
// driven from a single goroutine.
type Manager struct {
	dirs     map[string]*Directory
	commands map[string]*Command
	state    State
	verbose  int
}

// NewManager returns a manager in the PreInit state.
func NewManager() *Manager {
	return &Manager{
		dirs:     make(map[string]*Directory),
		commands: make(map[string]*Command),
		state:    PreInit,
	}
}

// AddDirectory registers a command directory. path must end with "/".
func (m *Manager) AddDirectory(path, guidance string) (*Directory, error) {
	if !strings.HasPrefix(path, "/") || !strings.HasSuffix(path, "/") {
		return nil, fmt.Errorf("directory path %q must start and end with /", path)
	}
	d := &Directory{Path: path, Guidance: guidance}
	m.dirs[path] = d
	return d, nil
}

// Register attaches cmd to owner.
func (m *Manager) Register(cmd *Command, owner Messenger) error {
	if cmd == nil || !strings.HasPrefix(cmd.Path, "/") {
		return fmt.Errorf("command path must start with /")
	}
	if _, exists := m.commands[cmd.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Path)
	}
	cmd.owner = owner
	m.commands[cmd.Path] = cmd
	return nil
}

// Command looks up a registered command by full path.
func (m *Manager) Command(path string) (*Command, bool) {
	c, ok := m.commands[path]
	return c, ok
}

// Paths returns all registered command paths, sorted.
func (m *Manager) Paths() []string {
	paths := make([]string, 0, len(m.commands))
	for p := range m.commands {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Guidance returns the help text of a command or directory.
func (m *Manager) Guidance(path string) (string, bool) {
	if c, ok := m.commands[path]; ok {
		return c.Guidance, true
	}
	if d, ok := m.dirs[path]; ok {
		return d.Guidance, true
	}
	return "", false
}

func (m *Manager) State() State { return m.state }

func (m *Manager) SetState(s State) { m.state = s }

// Verbose is the macro echo level; 2 or more echoes each macro line.
func (m *Manager) Verbose() int { return m.verbose }

func (m *Manager) SetVerbose(level int) { m.verbose = level }

// Apply parses and executes one command line such as
// "/ne697/geometry/det_radius 40 cm".
func (m *Manager) Apply(line string) error {
	line = strings.TrimSpace(line)
	path, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	cmd, ok := m.commands[path]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCommandNotFound, path)
	}
	if !cmd.IsAvailable(m.state) {
		return fmt.Errorf("%w: %s is not available in %s", ErrIllegalState, path, m.state)
	}

	value, err := normalize(cmd, rest)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if cmd.owner == nil {
		return nil
	}
	return cmd.owner.SetNewValue(cmd, value)
}

func normalize(cmd *Command, raw string) (string, error) {
	if raw == "" && cmd.Kind != KindNone {
		if !cmd.Omittable {
			return "", fmt.Errorf("%w: parameter %s is required", ErrParameterUnreadable, cmd.ParamName)
		}
		raw = cmd.DefaultValue
	}

	switch cmd.Kind {
	case KindNone:
		return "", nil

	case KindDouble:
		fields := strings.Fields(raw)
		if len(fields) == 0 || len(fields) > 2 {
			return "", fmt.Errorf("%w: %q", ErrParameterUnreadable, raw)
		}
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			return "", fmt.Errorf("%w: %q is not a number", ErrParameterUnreadable, fields[0])
		}
		unit := cmd.DefaultUnit
		if len(fields) == 2 {
			unit = fields[1]
		}
		if !units.IsValid(cmd.UnitCategory, unit) {
			return "", fmt.Errorf("%w: unit %q not in [%s]", ErrParameterOutOfCandidates, unit, units.GetValidUnitsString(cmd.UnitCategory))
		}
		return fields[0] + " " + unit, nil

	case KindInt:
		if _, err := strconv.Atoi(raw); err != nil {
			return "", fmt.Errorf("%w: %q is not an integer", ErrParameterUnreadable, raw)
		}
		return raw, nil

	case KindString:
		if len(cmd.Candidates) > 0 && !slices.Contains(cmd.Candidates, raw) {
			return "", fmt.Errorf("%w: %q not in [%s]", ErrParameterOutOfCandidates, raw, strings.Join(cmd.Candidates, " "))
		}
		return raw, nil
	}
	return "", fmt.Errorf("unknown parameter kind %d", cmd.Kind)
}

// ExecuteMacro applies each line read from r, skipping blank lines and lines
// starting with #. Execution stops at the first failing command.
func (m *Manager) ExecuteMacro(ctx context.Context, r io.Reader) error {
	scan := bufio.NewScanner(r)
	lineNo := 0
	for scan.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m.verbose >= 2 {
			monitoring.Logf("%s", line)
		}
		if err := m.Apply(line); err != nil {
			return fmt.Errorf("macro line %d: %w", lineNo, err)
		}
	}
	return scan.Err()
}

// ExecuteMacroFile opens path and runs it through ExecuteMacro.
func (m *Manager) ExecuteMacroFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open macro: %w", err)
	}
	defer f.Close()
	if err := m.ExecuteMacro(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
