// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the config of memvcs",
	Long: `The namespace for managing config settings of memvcs.

Settings are read from a memvcs.yaml file (or the file set by MEMVCS_CONFIG),
then overridden by MEMVCS_* environment variables and flags.`,
}

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the config used",
	Long:  `Print the config used by the invocation of the memvcs command`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := render(cmd, cfg); err != nil {
			wrapFatalln("print config", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(dumpCmd)
	addFormatFlag(dumpCmd, "yaml")
}
