package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Formatter renders the result of a command
type Formatter interface {
	Format(io.Writer, interface{}) error
}

// FormatterFunc turns a function into a Formatter
type FormatterFunc func(io.Writer, interface{}) error

// Format the data
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func defaultFormatters() map[string]Formatter {
	return map[string]Formatter{
		"yaml": FormatterFunc(func(w io.Writer, data interface{}) error {
			b, err := yaml.Marshal(data)
			if err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		}),
		"json": FormatterFunc(func(w io.Writer, data interface{}) error {
			b, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(b))
			return err
		}),
	}
}

// formatFlag holds the formatters a command supports, and the one selected
type formatFlag struct {
	name       string
	formatters map[string]Formatter
}

var formats = map[*cobra.Command]*formatFlag{}

// addFormatFlag adds a --format flag to a command, with yaml and json always available
func addFormatFlag(cmd *cobra.Command, defaultFormat string, extra ...map[string]Formatter) {
	f := &formatFlag{formatters: defaultFormatters()}
	for _, m := range extra {
		for k, v := range m {
			f.formatters[k] = v
		}
	}
	if defaultFormat == "" {
		defaultFormat = "yaml"
	}
	names := make([]string, 0, len(f.formatters))
	for k := range f.formatters {
		names = append(names, k)
	}
	slices.Sort(names)

	cmd.Flags().StringVarP(&f.name, "format", "o", defaultFormat, "The output format: "+strings.Join(names, ", "))
	formats[cmd] = f
}

// render data with the format selected for a command
func render(cmd *cobra.Command, data interface{}) error {
	f, ok := formats[cmd]
	if !ok {
		return defaultFormatters()["yaml"].Format(out, data)
	}
	formatter, ok := f.formatters[f.name]
	if !ok {
		return fmt.Errorf("unsupported format %q", f.name)
	}
	return formatter.Format(out, data)
}
