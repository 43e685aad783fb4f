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
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/jt05610/statespace/analysis"
)

var incidence bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize the reachability graph of a net",
	Long: `Summarize the reachability graph of a net: deadlocks, terminal strongly
connected components, place bounds and transitions that never fire.`,
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
		r := analysis.Analyze(net, res)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "states: %d\nedges: %d\nsaturated: %t\n", r.States, r.Edges, r.Saturated)
		fmt.Fprintf(out, "deadlocks: %v\n", r.Deadlocks)
		fmt.Fprintf(out, "terminal: %v\n", r.Terminal)
		places := make([]int, 0, len(r.Bounds))
		for p := range r.Bounds {
			places = append(places, p)
		}
		sort.Ints(places)
		for _, p := range places {
			fmt.Fprintf(out, "bound P%d: %d\n", p, r.Bounds[p])
		}
		fmt.Fprintf(out, "unfired: %v\n", r.Unfired)
		if incidence {
			fmt.Fprintf(out, "incidence:\n%v\n", mat.Formatted(analysis.Incidence(net), mat.Squeeze()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&incidence, "incidence", false, "print the incidence matrix")
}
