package uicmd

import (
	"slices"
	"strings"
)

// Kind is the parameter type a command takes.
type Kind int

const (
	KindNone Kind = iota
	KindDouble
	KindString
	KindInt
)

// Messenger receives validated command values. value is the parameter text
// after defaults have been filled in; for KindDouble it is "<number> <unit>".
type Messenger interface {
	SetNewValue(cmd *Command, value string) error
}

// Directory groups commands under a path prefix ending in "/".
type Directory struct {
	Path     string
	Guidance string
}

// Command describes one UI command. Build it with the New* constructors and
// the chainable setters before registering it with a Manager.
type Command struct {
	Path         string
	Guidance     string
	Kind         Kind
	ParamName    string
	UnitCategory string
	DefaultUnit  string
	DefaultValue string
	Omittable    bool
	Candidates   []string
	Available    []State

	owner Messenger
}

// NewDoubleWithUnit declares a numeric command whose value carries a unit of
// the given category. defaultUnit is used when the operator omits one.
func NewDoubleWithUnit(path, param, category, defaultUnit string) *Command {
	return &Command{Path: path, Kind: KindDouble, ParamName: param, UnitCategory: category, DefaultUnit: defaultUnit}
}

// NewString declares a command taking one string parameter.
func NewString(path, param string) *Command {
	return &Command{Path: path, Kind: KindString, ParamName: param}
}

// NewInt declares a command taking one integer parameter.
func NewInt(path, param string) *Command {
	return &Command{Path: path, Kind: KindInt, ParamName: param}
}

// NewAction declares a command without parameters.
func NewAction(path string) *Command {
	return &Command{Path: path, Kind: KindNone}
}

func (c *Command) WithGuidance(g string) *Command {
	c.Guidance = g
	return c
}

// WithDefault makes the parameter omittable with the given default value.
func (c *Command) WithDefault(value string) *Command {
	c.DefaultValue = value
	c.Omittable = true
	return c
}

// WithCandidates restricts a string parameter to a space-separated list.
func (c *Command) WithCandidates(list string) *Command {
	c.Candidates = strings.Fields(list)
	return c
}

// AvailableIn restricts the command to the given states. A command with no
// states is available everywhere.
func (c *Command) AvailableIn(states ...State) *Command {
	c.Available = append([]State(nil), states...)
	return c
}

// IsAvailable reports whether the command may run in state s.
func (c *Command) IsAvailable(s State) bool {
	return len(c.Available) == 0 || slices.Contains(c.Available, s)
}

// Owner returns the messenger the command is delivered to.
func (c *Command) Owner() Messenger { return c.owner }

// CommandName is the last path element.
func (c *Command) CommandName() string {
	if i := strings.LastIndex(c.Path, "/"); i >= 0 {
		return c.Path[i+1:]
	}
	return c.Path
}
