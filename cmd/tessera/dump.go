package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"tessera/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <image> [func...]",
	Short: "Print the IR of an image as text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("flatten", false, "hoist nested index expressions before printing")
}

func runDump(cmd *cobra.Command, args []string) error {
	flatten, err := cmd.Flags().GetBool("flatten")
	if err != nil {
		return fmt.Errorf("failed to get flatten flag: %w", err)
	}
	img, err := mustLoad(cmd.Context(), cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	prog := img.prog
	if len(args) > 1 {
		prog = &ir.Program{}
		for _, name := range args[1:] {
			f, ok := img.prog.Lookup(name)
			if !ok {
				return fmt.Errorf("function %s is not defined in %s", name, img.path)
			}
			prog.Funcs = append(prog.Funcs, f)
		}
	}
	if flatten {
		flat := &ir.Program{Funcs: make([]*ir.Func, len(prog.Funcs))}
		for i, f := range prog.Funcs {
			cp := *f
			cp.Body = ir.Flatten(f.Body, append(slices.Clone(f.Args), f.Results...)...)
			flat.Funcs[i] = &cp
		}
		prog = flat
	}
	return ir.Fprint(cmd.OutOrStdout(), prog)
}
