package virtfs

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/mwantia/virtfs/cmd"
	"github.com/mwantia/virtfs/cmd/builtin"
)

// RegisterCommand makes cmd available to Execute.
func (vfs *VirtFs) RegisterCommand(c cmd.Command) error {
	if c == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := c.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	if _, exists := vfs.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	vfs.cmds[name] = c
	return nil
}

// UnregisterCommand removes a command and reports whether it was registered.
func (vfs *VirtFs) UnregisterCommand(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("command name cannot be empty")
	}

	if _, exists := vfs.cmds[name]; !exists {
		return false, nil
	}

	delete(vfs.cmds, name)
	return true, nil
}

// Commands returns the names of all registered commands in sorted order.
func (vfs *VirtFs) Commands() []string {
	names := make([]string, 0, len(vfs.cmds))
	for name := range vfs.cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Execute parses args and runs the named command, writing its output to writer.
// It returns the exit code of the command.
func (vfs *VirtFs) Execute(ctx context.Context, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified")
	}

	c, exists := vfs.cmds[args[0]]
	if !exists {
		return 127, fmt.Errorf("command not found: %s", args[0])
	}

	parsed, err := cmd.NewParser(c.GetFlags()).Parse(args[1:])
	if err != nil {
		return 2, fmt.Errorf("%s: %w", c.Name(), err)
	}

	if err := ctx.Err(); err != nil {
		return 1, err
	}

	vfs.log.Debug("Execute: running %s %v", c.Name(), parsed.Raw)
	return c.Execute(ctx, vfs, parsed, writer)
}

func (vfs *VirtFs) initBuiltinCommands() error {
	for _, c := range builtin.All() {
		if err := vfs.RegisterCommand(c); err != nil {
			return err
		}
	}

	return nil
}
