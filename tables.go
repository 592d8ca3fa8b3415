package opts

import "math"

const (
	colourBlack   = 0
	colourRed     = 1
	colourGreen   = 2
	colourYellow  = 3
	colourBlue    = 4
	colourDefault = 8

	keyNone = -1
)

var (
	choicesBellAction    = []string{"none", "any", "current"}
	choicesKeys          = []string{"emacs", "vi"}
	choicesJustify       = []string{"left", "centre", "right"}
	choicesPosition      = []string{"top", "bottom"}
	choicesClockStyle    = []string{"12", "24"}
	choicesModeMouse     = []string{"off", "on", "copy-mode"}
	choicesDetachDestroy = []string{"off", "on"}
)

// DefaultTables returns fresh copies of the built-in server, session and
// window option tables.
func DefaultTables() Tables {
	return Tables{
		Server:  cloneTable(serverOptionsTable),
		Session: cloneTable(sessionOptionsTable),
		Window:  cloneTable(windowOptionsTable),
	}
}

func cloneTable(table Table) Table {
	out := make(Table, len(table))
	for i, spec := range table {
		spec.Choices = append([]string(nil), spec.Choices...)
		out[i] = spec
	}
	return out
}

var serverOptionsTable = Table{
	{Name: "buffer-limit", Type: TypeNumber, Minimum: 1, Maximum: math.MaxInt32, Default: NumberValue(20)},
	{Name: "escape-time", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(500)},
	{Name: "exit-unattached", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "quiet", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "set-clipboard", Type: TypeFlag, Default: FlagValue(true)},
}

var sessionOptionsTable = Table{
	{Name: "assume-paste-time", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(1)},
	{Name: "base-index", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(0)},
	{Name: "bell-action", Type: TypeChoice, Choices: choicesBellAction, Default: NumberValue(1)},
	{Name: "bell-on-alert", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "default-command", Type: TypeString, Default: StringValue("")},
	{Name: "default-shell", Type: TypeString, Default: StringValue("/bin/sh")},
	{Name: "default-terminal", Type: TypeString, Default: StringValue("screen")},
	{Name: "destroy-unattached", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "detach-on-destroy", Type: TypeChoice, Choices: choicesDetachDestroy, Default: NumberValue(1)},
	{Name: "display-panes-active-colour", Type: TypeColour, Default: NumberValue(colourRed)},
	{Name: "display-panes-colour", Type: TypeColour, Default: NumberValue(colourBlue)},
	{Name: "display-panes-time", Type: TypeNumber, Minimum: 1, Maximum: math.MaxInt32, Default: NumberValue(1000)},
	{Name: "display-time", Type: TypeNumber, Minimum: 1, Maximum: math.MaxInt32, Default: NumberValue(750)},
	{Name: "history-limit", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(2000)},
	{Name: "lock-after-time", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(0)},
	{Name: "lock-command", Type: TypeString, Default: StringValue("lock -np")},
	{Name: "message-bg", Type: TypeColour, Default: NumberValue(colourYellow)},
	{Name: "message-fg", Type: TypeColour, Default: NumberValue(colourBlack)},
	{Name: "message-limit", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(20)},
	{Name: "mouse-resize-pane", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "mouse-select-pane", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "mouse-select-window", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "prefix", Type: TypeKey, Default: NumberValue(0x02)},
	{Name: "prefix2", Type: TypeKey, Default: NumberValue(keyNone)},
	{Name: "renumber-windows", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "repeat-time", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(500)},
	{Name: "set-remain-on-exit", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "set-titles", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "set-titles-string", Type: TypeString, Default: StringValue("#S:#I:#W - \"#T\"")},
	{Name: "status", Type: TypeFlag, Default: FlagValue(true)},
	{Name: "status-bg", Type: TypeColour, Default: NumberValue(colourGreen)},
	{Name: "status-fg", Type: TypeColour, Default: NumberValue(colourBlack)},
	{Name: "status-interval", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(15)},
	{Name: "status-justify", Type: TypeChoice, Choices: choicesJustify, Default: NumberValue(0)},
	{Name: "status-keys", Type: TypeChoice, Choices: choicesKeys, Default: NumberValue(0)},
	{Name: "status-left", Type: TypeString, Default: StringValue("[#S]")},
	{Name: "status-left-length", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(10)},
	{Name: "status-position", Type: TypeChoice, Choices: choicesPosition, Default: NumberValue(1)},
	{Name: "status-right", Type: TypeString, Default: StringValue("\"#22T\" %H:%M %d-%b-%y")},
	{Name: "status-right-length", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(40)},
	{Name: "visual-activity", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "visual-bell", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "visual-silence", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "word-separators", Type: TypeString, Default: StringValue(" -_@")},
}

var windowOptionsTable = Table{
	{Name: "aggressive-resize", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "allow-rename", Type: TypeFlag, Default: FlagValue(true)},
	{Name: "alternate-screen", Type: TypeFlag, Default: FlagValue(true)},
	{Name: "automatic-rename", Type: TypeFlag, Default: FlagValue(true)},
	{Name: "clock-mode-colour", Type: TypeColour, Default: NumberValue(colourBlue)},
	{Name: "clock-mode-style", Type: TypeChoice, Choices: choicesClockStyle, Default: NumberValue(1)},
	{Name: "force-height", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(0)},
	{Name: "force-width", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(0)},
	{Name: "main-pane-height", Type: TypeNumber, Minimum: 1, Maximum: math.MaxInt16, Default: NumberValue(24)},
	{Name: "main-pane-width", Type: TypeNumber, Minimum: 1, Maximum: math.MaxInt16, Default: NumberValue(80)},
	{Name: "mode-bg", Type: TypeColour, Default: NumberValue(colourYellow)},
	{Name: "mode-fg", Type: TypeColour, Default: NumberValue(colourBlack)},
	{Name: "mode-keys", Type: TypeChoice, Choices: choicesKeys, Default: NumberValue(0)},
	{Name: "mode-mouse", Type: TypeChoice, Choices: choicesModeMouse, Default: NumberValue(0)},
	{Name: "monitor-activity", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "monitor-content", Type: TypeString, Default: StringValue("")},
	{Name: "monitor-silence", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt32, Default: NumberValue(0)},
	{Name: "other-pane-height", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(0)},
	{Name: "other-pane-width", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(0)},
	{Name: "pane-base-index", Type: TypeNumber, Minimum: 0, Maximum: math.MaxInt16, Default: NumberValue(0)},
	{Name: "remain-on-exit", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "synchronize-panes", Type: TypeFlag, Default: FlagValue(false)},
	{Name: "window-status-bg", Type: TypeColour, Default: NumberValue(colourDefault)},
	{Name: "window-status-current-bg", Type: TypeColour, Default: NumberValue(colourDefault)},
	{Name: "window-status-current-fg", Type: TypeColour, Default: NumberValue(colourDefault)},
	{Name: "window-status-current-format", Type: TypeString, Default: StringValue("#I:#W#F")},
	{Name: "window-status-fg", Type: TypeColour, Default: NumberValue(colourDefault)},
	{Name: "window-status-format", Type: TypeString, Default: StringValue("#I:#W#F")},
	{Name: "wrap-search", Type: TypeFlag, Default: FlagValue(true)},
	{Name: "xterm-keys", Type: TypeFlag, Default: FlagValue(false)},
}

