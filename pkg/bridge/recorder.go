package bridge

import (
	"fmt"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// OpKind classifies a recorded operation.
type OpKind int

const (
	OpWrite OpKind = iota
	OpCommand
	OpFlush
)

// Op is one recorded side effect of a reconciliation pass, in apply order.
type Op struct {
	Kind   OpKind
	Target string // resolved storage location, command line, or port name
	Value  string // written value, for OpWrite only
}

func (o Op) String() string {
	switch o.Kind {
	case OpWrite:
		return fmt.Sprintf("write %s = %s", o.Target, o.Value)
	case OpCommand:
		return "run " + o.Target
	default:
		return "flush addresses on " + o.Target
	}
}

// Recorder captures the ordered operations of a pass without touching the
// kernel. It implements PropertyStore, CommandExecutor and AddrFlusher, and
// backs both the CLI's dry-run preview and the package tests.
//
// Fail, when set, is consulted before each operation; a non-nil return fails
// the operation without recording it.
type Recorder struct {
	Ops    []Op
	Values map[string]string // resolved location → last written value
	Fail   func(op Op) error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Values: make(map[string]string)}
}

func (r *Recorder) record(op Op) error {
	if r.Fail != nil {
		if err := r.Fail(op); err != nil {
			return err
		}
	}
	r.Ops = append(r.Ops, op)
	return nil
}

// Write records a property write and remembers the value for Read.
func (r *Recorder) Write(template string, vars Vars, value string) error {
	location, err := ResolveTemplate(template, vars)
	if err != nil {
		return err
	}
	op := Op{Kind: OpWrite, Target: location, Value: value}
	if err := r.record(op); err != nil {
		return util.NewWriteError(location, err)
	}
	r.Values[location] = value
	return nil
}

// Read returns the last value written to the resolved location.
func (r *Recorder) Read(template string, vars Vars) (string, error) {
	location, err := ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	value, ok := r.Values[location]
	if !ok {
		return "", fmt.Errorf("%s: %w", location, util.ErrNotFound)
	}
	return value, nil
}

// Run records a command invocation.
func (r *Recorder) Run(template string, vars Vars) (string, error) {
	command, err := ResolveTemplate(template, vars)
	if err != nil {
		return "", err
	}
	op := Op{Kind: OpCommand, Target: command}
	if err := r.record(op); err != nil {
		return "", util.NewCommandError(command, "", err)
	}
	return "", nil
}

// FlushAddrs records an address flush.
func (r *Recorder) FlushAddrs(port string) error {
	return r.record(Op{Kind: OpFlush, Target: port})
}
