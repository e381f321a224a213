package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownFlag  = errors.New("cmd: unknown flag")
	ErrMissingValue = errors.New("cmd: flag requires a value")
	ErrRequiredFlag = errors.New("cmd: required flag missing")
	ErrInvalidValue = errors.New("cmd: invalid flag value")
)

// Parser parses raw command arguments into flags and positional arguments.
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = &CommandFlagSet{}
	}

	return &Parser{
		flagSet: flagSet,
	}
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}

		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Args = append(args.Args, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("%w: --%s", ErrUnknownFlag, key)
			}

			flag := cp.flagSet.Flags[flagName]
			switch {
			case flag.Type == FlagTypeBool && !hasValue:
				args.Flags[flagName] = true
				continue
			case hasValue:
			case i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-"):
				value = raw[i+1]
				i++
			default:
				return nil, fmt.Errorf("%w: --%s", ErrMissingValue, key)
			}

			v, err := coerce(value, flag.Type)
			if err != nil {
				return nil, fmt.Errorf("--%s: %w", key, err)
			}
			args.Flags[flagName] = v
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("%w: -%s", ErrUnknownFlag, shortStr)
				}

				flag := cp.flagSet.Flags[flagName]
				if flag.Type == FlagTypeBool {
					args.Flags[flagName] = true
					continue
				}

				// A value flag consumes the rest of the group or the next argument
				var value string
				if j+1 < len(shortFlags) {
					value = shortFlags[j+1:]
				} else if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
					value = raw[i+1]
					i++
				} else {
					return nil, fmt.Errorf("%w: -%s", ErrMissingValue, shortStr)
				}

				v, err := coerce(value, flag.Type)
				if err != nil {
					return nil, fmt.Errorf("-%s: %w", shortStr, err)
				}
				args.Flags[flagName] = v
				break
			}
			continue
		}

		args.Args = append(args.Args, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if !flag.Required {
			continue
		}
		if _, ok := args.Flags[flagName]; ok {
			continue
		}

		if flag.Short != "" {
			return nil, fmt.Errorf("%w: -%s / --%s", ErrRequiredFlag, flag.Short, flag.Name)
		}
		return nil, fmt.Errorf("%w: --%s", ErrRequiredFlag, flag.Name)
	}

	return args, nil
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func coerce(value string, typ string) (any, error) {
	switch typ {
	case FlagTypeInt:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, value)
		}
		return v, nil
	case FlagTypeBool:
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
	default:
		return value, nil
	}
}
