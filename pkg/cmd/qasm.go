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

	"github.com/spf13/cobra"
)

var qasmCmd = &cobra.Command{
	Use:   "qasm [flags] circuit_file",
	Short: "Emit the OpenQASM text of a circuit.",
	Long: `Emit the OpenQASM 2.0 text of a circuit file: the header, each register
	 declaration in insertion order, then each instruction in program order.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		circ := readCircuitFile(args[0])
		output := GetString(cmd, "output")
		//
		if output == "" {
			fmt.Print(circ.Qasm())
		} else if err := os.WriteFile(output, []byte(circ.Qasm()), 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(qasmCmd)
	qasmCmd.Flags().StringP("output", "o", "", "write program text to file")
}
