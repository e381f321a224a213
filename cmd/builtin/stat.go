package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/virtfs/cmd"
)

type StatCommand struct {
}

func (s *StatCommand) Name() string {
	return "stat"
}

func (s *StatCommand) Description() string {
	return "Show which mount resolves a path"
}

func (s *StatCommand) Usage() string {
	return "stat [--json] <path>"
}

func (s *StatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 2, fmt.Errorf("usage: %s", s.Usage())
	}

	info, err := api.Stat(args.Args[0])
	if err != nil {
		return 1, err
	}

	if args.Bool("json") {
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return 1, err
		}
		return 0, nil
	}

	fmt.Fprintf(writer, "  Path: %s\n", info.Path)
	fmt.Fprintf(writer, "  Type: %s\n", info.Type)
	fmt.Fprintf(writer, "  Size: %d\n", info.Size)
	fmt.Fprintf(writer, "  Real: %s\n", info.RealDir)
	fmt.Fprintf(writer, " Mount: %s\n", info.MountID)
	if info.ContentType != "" {
		fmt.Fprintf(writer, "  Mime: %s\n", info.ContentType)
	}
	if !info.ModifyTime.IsZero() {
		fmt.Fprintf(writer, "Modify: %s\n", info.ModifyTime.Format(time.RFC3339))
	}

	return 0, nil
}

func (s *StatCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"json": {
				Name:        "json",
				Type:        cmd.FlagTypeBool,
				Description: "Print the result as JSON",
			},
		},
	}
}
