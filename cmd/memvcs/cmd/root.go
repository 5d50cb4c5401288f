// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/memvcs/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memvcs",
	Short: "memvcs versions content in memory",
	Long: `memvcs is a content-addressable version control engine, held in memory.

Content is staged in an area, then frozen into commits identified by the hash of their content.
Branches point to commits.

Since nothing is persisted, work is described as a script of steps, replayed against a fresh repository.
`,
	SilenceUsage: true,
}

var cfg config.Config

var (
	// used to patch over the file system and outputs during test
	appFs  afero.Fs  = afero.NewOsFs()
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(errOut, err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	fls := rootCmd.PersistentFlags()
	fls.String("loglevel", "", "The logging level: debug, info, warn, error or none")
	fls.String("hash", "", "The hash algorithm computing commit ids: blake2b or xxh3")
	fls.Bool("metrics", false, "Collects and reports metrics")
	for _, key := range []string{"loglevel", "hash", "metrics"} {
		_ = viper.BindPFlag(key, fls.Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("MEMVCS_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("MEMVCS_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.memvcs")
		viper.SetConfigName("memvcs")
	}
	viper.SetFs(appFs)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	cfg, err = config.Load(viper.GetViper())
	if err != nil {
		wrapFatalln("load configuration", err)
	}
}
