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

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] circuit_file",
	Short: "Summarise a circuit file.",
	Long: `Summarise the registers and instructions of a circuit file, clamping each
	 line to the terminal width when attached to one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		circ := readCircuitFile(args[0])
		width := lineWidth()
		//
		for _, reg := range circ.Registers() {
			fmt.Println(clamp(fmt.Sprintf("%s %s", reg.Kind(), reg), width))
		}
		//
		for i, instruction := range circ.Instructions() {
			fmt.Println(clamp(fmt.Sprintf("%4d: %s", i, instruction), width))
		}
	},
}

// lineWidth determines how wide printed lines may be, based on the attached
// terminal (if any).
func lineWidth() int {
	if term.IsTerminal(0) {
		if width, _, err := term.GetSize(0); err == nil {
			return width
		}
	}
	//
	return 80
}

func clamp(line string, width int) string {
	if len(line) > width {
		return line[:width]
	}
	//
	return line
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
