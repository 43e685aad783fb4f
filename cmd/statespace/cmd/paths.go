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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jt05610/statespace/analysis"
)

var (
	from     int
	to       int
	shortest bool
)

func joinPath(p []int) string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " -> ")
}

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the paths between two states",
	Long: `List every simple path between two states of the reachability graph.
The search is exhaustive, so use --shortest on large graphs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		net, err := loadNet(ctx)
		if err != nil {
			return err
		}
		res, err := explore(ctx, net)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if shortest {
			p, ok := analysis.ShortestPath(res.Graph, from, to)
			if !ok {
				return fmt.Errorf("state %d is not reachable from state %d", to, from)
			}
			fmt.Fprintln(out, joinPath(p))
			return nil
		}
		for _, p := range res.Graph.AllPathsBetween(from, to) {
			fmt.Fprintln(out, joinPath(p))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.Flags().IntVar(&from, "from", 1, "start state")
	pathsCmd.Flags().IntVar(&to, "to", 1, "end state")
	pathsCmd.Flags().BoolVar(&shortest, "shortest", false, "only print one shortest path")
}
