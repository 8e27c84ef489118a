package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tessera/internal/irfile"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Re-encode an IR image; formats follow the file extensions (.yaml, .msgpack)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	// Loading validates the image so a broken file is never re-encoded.
	img, err := mustLoad(cmd.Context(), cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}
	if err := irfile.WriteFile(args[1], img.file); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d functions)\n", args[1], len(img.prog.Funcs))
	return nil
}
