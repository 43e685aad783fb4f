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

	"github.com/jt05610/statespace/query"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [filter]",
	Short: "Print the states matching a filter",
	Long: `Print the states matching a filter expression. Filters see ID, Key,
Initial, Dead, Out, Size, Count[place] and Tokens[place], for example

  statespace query -i net.yaml 'Dead && Count[2] > 0'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := query.Compile(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		net, err := loadNet(ctx)
		if err != nil {
			return err
		}
		res, err := explore(ctx, net)
		if err != nil {
			return err
		}
		ids, err := f.Select(res.Graph)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, id := range ids {
			st, _ := res.Graph.State(id)
			fmt.Fprintf(out, "s%d %s\n", id, st.Key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
