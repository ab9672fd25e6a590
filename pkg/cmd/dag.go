// Copyright The go-qwire Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quantaleap/go-qwire/pkg/circuit"
)

var dagCmd = &cobra.Command{
	Use:   "dag [flags] circuit_file",
	Short: "Show the dependency graph of a circuit.",
	Long: `Convert a circuit file into its dependency-graph representation and list
	 its nodes in topological order, one per line.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		circ := readCircuitFile(args[0])
		//
		graph, err := circ.ToDAG(circuit.Standard())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		terminals := GetFlag(cmd, "terminals")
		//
		for _, id := range graph.TopologicalOrder() {
			node := graph.Node(id)
			//
			if node.IsOperation() || terminals {
				fmt.Printf("%s: %s\n", id, node)
			}
		}
		//
		if GetFlag(cmd, "stats") {
			printStats(graph.Size(), graph.Depth(), graph.CountOps())
		}
	},
}

func printStats(size uint, depth uint, counts map[string]uint) {
	names := make([]string, 0, len(counts))
	//
	for name := range counts {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	fmt.Printf("%d operation(s), depth %d\n", size, depth)
	//
	for _, name := range names {
		fmt.Printf("\t%s: %d\n", name, counts[name])
	}
}

func init() {
	rootCmd.AddCommand(dagCmd)
	dagCmd.Flags().Bool("terminals", false, "include input / output terminals")
	dagCmd.Flags().Bool("stats", false, "report operation counts and depth")
}
