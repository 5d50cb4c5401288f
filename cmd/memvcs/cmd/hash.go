// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oneconcern/memvcs/pkg/area"
	"github.com/oneconcern/memvcs/pkg/cafs"
)

// hashCmd computes the id of some content without committing it
var hashCmd = &cobra.Command{
	Use:   "hash <path=content>...",
	Short: "Compute the content id of some entries",
	Long: `Compute the id a commit holding these entries would get.

Each argument is a path and its content, separated by the first "=".
With no argument, the id of an empty area is printed.`,
	Example: `% memvcs hash /=Hello\ World`,
	Run: func(cmd *cobra.Command, args []string) {
		a := area.NewStrings()
		for _, arg := range args {
			pth, value, ok := strings.Cut(arg, "=")
			if !ok {
				wrapFatalln(fmt.Sprintf("expected path=content, got %q", arg), nil)
				return
			}
			a.Put(pth, value)
		}

		hasher := cafs.NewHasher(cafs.WithAlgorithm(cfg.Hash))
		fmt.Fprintln(out, hasher.Sum(a.Snapshot().Entries()))
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
