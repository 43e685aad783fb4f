/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jt05610/statespace"
	"github.com/jt05610/statespace/env"
	"github.com/jt05610/statespace/petrifile"
	"github.com/jt05610/statespace/petrifile/json"
	"github.com/jt05610/statespace/petrifile/yaml"
	"github.com/jt05610/statespace/statespace"
)

var (
	inputFile string
	envFile   string
	maxStates int
	logLevel  string
	searchDir []string
	logger    = zap.NewNop()
	config    = env.Default()
)

var rootCmd = &cobra.Command{
	Use:   "statespace",
	Short: "Compute the reachability graph of a colored petri net",
	Long: `Compute the reachability graph of a colored petri net. Nets are read from
YAML or JSON net files; settings come from a .env file and STATESPACE_* variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		config = env.LoadEnv(nil, files...)
		if cmd.Flags().Changed("max-states") {
			config.MaxStates = maxStates
		}
		if cmd.Flags().Changed("log-level") {
			config.LogLevel = logLevel
		}
		l, err := newLogger(config.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func registry() *petrifile.Registry {
	return petrifile.NewRegistry(".").
		WithSearchDirs(searchDir...).
		WithService(&yaml.Service{Logger: logger}, "yaml", "yml").
		WithService(&json.Service{Logger: logger}, "json")
}

func loadNet(ctx context.Context) (*petri.Net, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("no net file given, use --input")
	}
	return registry().Build(ctx, inputFile)
}

func explore(ctx context.Context, net *petri.Net) (*statespace.Result, error) {
	res, err := statespace.NewExplorer(net,
		statespace.WithLogger(logger),
		statespace.WithMaxStates(config.MaxStates),
	).Explore(ctx)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		logger.Warn("graph is partial", zap.Error(err))
	}
	return res, nil
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "net file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", ".env file to load")
	rootCmd.PersistentFlags().IntVar(&maxStates, "max-states", 0, "state budget")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringSliceVar(&searchDir, "search", nil, "extra directories to look for net files in")
}
