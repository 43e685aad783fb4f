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

	"github.com/spf13/cobra"

	"github.com/jt05610/statespace/store"
)

var (
	save    bool
	dbPath  string
	verbose bool
)

// exploreCmd represents the explore command
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the state space of a net",
	Long: `Explore the state space of a net and print the number of states and edges.
With --save the graph is stored in the SQLite database for later queries.`,
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
		g := res.Graph
		fmt.Fprintf(out, "states: %d\nedges: %d\nsaturated: %t\n", g.Len(), len(g.Edges()), res.Saturated)
		if verbose {
			for _, id := range g.Nodes() {
				st, _ := g.State(id)
				fmt.Fprintf(out, "s%d %s\n", id, st.Key)
			}
			for _, e := range g.Edges() {
				fmt.Fprintln(out, e)
			}
		}
		if !save {
			return nil
		}
		path := dbPath
		if path == "" {
			path = config.DB
		}
		s, err := store.Open(path, store.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() {
			_ = s.Close()
		}()
		id, err := s.Save(ctx, net.Name, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().BoolVarP(&save, "save", "s", false, "store the graph")
	exploreCmd.Flags().StringVar(&dbPath, "db", "", "database file, defaults to STATESPACE_DB")
	exploreCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list states and edges")
}
