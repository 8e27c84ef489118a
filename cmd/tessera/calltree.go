package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tessera/internal/ir"
	"tessera/internal/textutil"
)

var calltreeCmd = &cobra.Command{
	Use:   "calltree [flags] <image> [func...]",
	Short: "Print the call tree of functions (default: the configured entry points)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCalltree,
}

func init() {
	calltreeCmd.Flags().Bool("nested", false, "indent callees under their first caller")
	calltreeCmd.Flags().Bool("unreachable", false, "list functions no root reaches instead")
}

func runCalltree(cmd *cobra.Command, args []string) error {
	nested, err := cmd.Flags().GetBool("nested")
	if err != nil {
		return fmt.Errorf("failed to get nested flag: %w", err)
	}
	unreachable, err := cmd.Flags().GetBool("unreachable")
	if err != nil {
		return fmt.Errorf("failed to get unreachable flag: %w", err)
	}

	img, err := mustLoad(cmd.Context(), cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}
	names := args[1:]
	if len(names) == 0 {
		names = settings.Analysis.Entry
	}
	roots := make([]*ir.Func, 0, len(names))
	for _, name := range names {
		f, ok := img.prog.Lookup(name)
		if !ok {
			return fmt.Errorf("function %s is not defined in %s", name, img.path)
		}
		roots = append(roots, f)
	}

	out := cmd.OutOrStdout()
	if unreachable {
		funcs, err := img.prog.Unreachable(roots...)
		if err != nil {
			return err
		}
		for _, f := range funcs {
			fmt.Fprintln(out, f.Name)
		}
		return nil
	}
	for _, root := range roots {
		if nested {
			fmt.Fprint(out, nestedTree(root))
			continue
		}
		tree := ir.GetCallTree(root)
		parts := make([]string, len(tree))
		for i, f := range tree {
			parts[i] = f.Name
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	return nil
}

// nestedTree renders the call tree of root with each callee indented under
// the caller that first reaches it. Already listed functions are not
// expanded again.
func nestedTree(root *ir.Func) string {
	seen := make(map[*ir.Func]bool)
	var render func(f *ir.Func) string
	render = func(f *ir.Func) string {
		if seen[f] {
			return f.Name + " ...\n"
		}
		seen[f] = true
		var b strings.Builder
		b.WriteString(f.Name + "\n")
		for _, c := range ir.Callees(f) {
			b.WriteString(textutil.Indent(render(c), 2))
		}
		return b.String()
	}
	return render(root)
}
