package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/virtfs/cmd"
	"github.com/mwantia/virtfs/data"
)

type LsCommand struct {
}

func (ls *LsCommand) Name() string {
	return "ls"
}

func (ls *LsCommand) Description() string {
	return "List the merged contents of a virtual directory"
}

func (ls *LsCommand) Usage() string {
	return "ls [-l] [-R] [path]"
}

func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	dir := args.Arg(0, "")

	isDir, err := api.IsDirectory(dir)
	if err != nil {
		return 1, err
	}
	if !isDir {
		return 1, fmt.Errorf("ls: %s: not a directory", dir)
	}

	var names []string
	if args.Bool("recursive") {
		names, err = api.GetFilesRecursive(dir)
	} else {
		names, err = api.EnumerateFiles(dir)
	}
	if err != nil {
		return 1, err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return 1, err
		}

		if !args.Bool("long") {
			fmt.Fprintln(writer, name)
			continue
		}

		info, err := api.Stat(data.Join(data.Normalize(dir), name))
		if err != nil {
			return 1, err
		}
		fmt.Fprintf(writer, "%-9s %10d %s %s\n", info.Type, info.Size, info.ModifyTime.Format("2006-01-02 15:04"), name)
	}

	return 0, nil
}

func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"long": {
				Name:        "long",
				Short:       "l",
				Type:        cmd.FlagTypeBool,
				Description: "Show type, size and modification time",
			},
			"recursive": {
				Name:        "recursive",
				Short:       "R",
				Type:        cmd.FlagTypeBool,
				Description: "List every file below the directory",
			},
		},
	}
}
