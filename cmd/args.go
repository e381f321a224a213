package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments, usually virtual paths
	Args []string

	// Parsed flags keyed by flag name
	Flags map[string]any

	// Raw unparsed arguments
	Raw []string
}

// Bool returns the value of a bool flag, false when unset.
func (a *CommandArgs) Bool(name string) bool {
	v, _ := a.Flags[name].(bool)
	return v
}

// String returns the value of a string flag, the empty string when unset.
func (a *CommandArgs) String(name string) string {
	v, _ := a.Flags[name].(string)
	return v
}

// Int returns the value of an int flag, 0 when unset.
func (a *CommandArgs) Int(name string) int64 {
	v, _ := a.Flags[name].(int64)
	return v
}

// Arg returns the positional argument at i, or def when there are fewer arguments.
func (a *CommandArgs) Arg(i int, def string) string {
	if i < len(a.Args) {
		return a.Args[i]
	}
	return def
}

// Flag types understood by the parser
const (
	FlagTypeBool   = "bool"
	FlagTypeString = "string"
	FlagTypeInt    = "int"
)

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // Long name, e.g. "long"
	Short       string `json:"short"`             // Single-char shorthand, e.g. "l"
	Type        string `json:"type"`              // FlagTypeBool, FlagTypeString or FlagTypeInt
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}
