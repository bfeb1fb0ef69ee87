package wm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
)

// Action names a layout command.
type Action string

const (
	ActionFocus      Action = "focus"
	ActionMove       Action = "move"
	ActionIntegrate  Action = "integrate"
	ActionSwap       Action = "swap"
	ActionMode       Action = "mode"
	ActionWidth      Action = "width"
	ActionHeight     Action = "height"
	ActionSize       Action = "size"
	ActionGrowWidth  Action = "grow-width"
	ActionGrowHeight Action = "grow-height"
	ActionGrow       Action = "grow"
	ActionResetSize  Action = "reset-size"
	ActionMinimize   Action = "minimize"
	ActionClose      Action = "close"
	ActionRetile     Action = "retile"
)

// Focus targets that are not directions.
const (
	FocusNext     = "next"
	FocusPrevious = "previous"
	FocusRecent   = "recent"
	FocusFirst    = "first"
	FocusLast     = "last"
)

// Command is a parsed text command such as "move left" or "grow -40".
type Command struct {
	Action    Action
	Target    string // focus keyword, empty for directional focus
	Direction tiling.Direction
	Mode      tree.AddMode
	Value     int
}

// CommandError reports a command string that could not be parsed.
type CommandError struct {
	Input string
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Input, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
)

// ParseCommand parses one text command.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, &CommandError{Input: input, Err: ErrEmptyCommand}
	}
	fail := func(err error) (Command, error) {
		return Command{}, &CommandError{Input: input, Err: err}
	}

	cmd := Command{Action: Action(fields[0])}
	args := fields[1:]

	switch cmd.Action {
	case ActionFocus:
		if len(args) != 1 {
			return fail(fmt.Errorf("%w: focus takes one target", ErrBadArgument))
		}
		switch args[0] {
		case FocusNext, FocusPrevious, FocusRecent, FocusFirst, FocusLast:
			cmd.Target = args[0]
		default:
			dir, err := tiling.ParseDirection(args[0])
			if err != nil {
				return fail(fmt.Errorf("%w: %v", ErrBadArgument, err))
			}
			cmd.Direction = dir
		}

	case ActionMove, ActionIntegrate, ActionSwap:
		if len(args) != 1 {
			return fail(fmt.Errorf("%w: %s takes a direction", ErrBadArgument, cmd.Action))
		}
		dir, err := tiling.ParseDirection(args[0])
		if err != nil {
			return fail(fmt.Errorf("%w: %v", ErrBadArgument, err))
		}
		cmd.Direction = dir

	case ActionMode:
		if len(args) != 1 {
			return fail(fmt.Errorf("%w: mode takes one value", ErrBadArgument))
		}
		mode, err := tree.ParseAddMode(args[0])
		if err != nil {
			return fail(fmt.Errorf("%w: %v", ErrBadArgument, err))
		}
		cmd.Mode = mode

	case ActionWidth, ActionHeight, ActionSize:
		v, err := intArg(args)
		if err != nil {
			return fail(err)
		}
		if v < 1 {
			return fail(fmt.Errorf("%w: %s must be positive", ErrBadArgument, cmd.Action))
		}
		cmd.Value = v

	case ActionGrowWidth, ActionGrowHeight, ActionGrow:
		v, err := intArg(args)
		if err != nil {
			return fail(err)
		}
		cmd.Value = v

	case ActionResetSize, ActionMinimize, ActionClose, ActionRetile:
		if len(args) != 0 {
			return fail(fmt.Errorf("%w: %s takes no arguments", ErrBadArgument, cmd.Action))
		}

	default:
		return fail(ErrUnknownCommand)
	}
	return cmd, nil
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one number", ErrBadArgument)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArgument, args[0])
	}
	return v, nil
}

func (c Command) String() string {
	switch c.Action {
	case ActionFocus:
		if c.Target != "" {
			return "focus " + c.Target
		}
		return "focus " + c.Direction.String()
	case ActionMove, ActionIntegrate, ActionSwap:
		return string(c.Action) + " " + c.Direction.String()
	case ActionMode:
		return "mode " + c.Mode.String()
	case ActionWidth, ActionHeight, ActionSize, ActionGrowWidth, ActionGrowHeight, ActionGrow:
		return string(c.Action) + " " + strconv.Itoa(c.Value)
	default:
		return string(c.Action)
	}
}
