package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/virtfs/cmd"
)

type MountsCommand struct {
}

func (m *MountsCommand) Name() string {
	return "mounts"
}

func (m *MountsCommand) Description() string {
	return "List the search path in resolution order"
}

func (m *MountsCommand) Usage() string {
	return "mounts"
}

func (m *MountsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	for i, info := range api.Mounts() {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i, info.Type, info.ID, info.Root)
	}

	return 0, nil
}

func (m *MountsCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

// All returns a fresh instance of every builtin command.
func All() []cmd.Command {
	return []cmd.Command{
		&LsCommand{},
		&CatCommand{},
		&StatCommand{},
		&MountsCommand{},
	}
}
