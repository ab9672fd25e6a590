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

// Package converter provides the two conversions between the linear circuit
// representation and the dependency-graph representation.  Converting in
// either direction allocates fresh register and instruction objects; the
// source representation is never aliased, so the two can evolve independently
// after conversion.
package converter

import (
	log "github.com/sirupsen/logrus"

	"github.com/quantaleap/go-qwire/pkg/circuit"
	"github.com/quantaleap/go-qwire/pkg/dag"
	"github.com/quantaleap/go-qwire/pkg/register"
)

// ToDAG converts a circuit into its dependency-graph representation, taking
// gate arities and definitions from the given registry.
func ToDAG(circ *circuit.Circuit, defs *circuit.Registry) (*dag.DAG, error) {
	return circ.ToDAG(defs)
}

// ToCircuit rebuilds a circuit from a dependency graph.  Registers are
// recreated fresh with the graph's names, sizes and kinds; operation nodes
// are visited in a topological order (deterministic, but only as close to the
// original program order as the dependency edges constrain) and each becomes
// a brand-new instruction attached in visitation order.
func ToCircuit(graph *dag.DAG) (*circuit.Circuit, error) {
	var regs []*register.Register
	//
	for _, reg := range graph.QuantumRegisters() {
		regs = append(regs, register.NewQuantum(reg.Name(), reg.Size()))
	}
	//
	for _, reg := range graph.ClassicalRegisters() {
		regs = append(regs, register.NewClassical(reg.Name(), reg.Size()))
	}
	//
	circ, err := circuit.New(regs...)
	if err != nil {
		return nil, err
	}
	//
	for _, id := range graph.TopologicalOrder() {
		node := graph.Node(id)
		//
		if !node.IsOperation() {
			continue
		}
		//
		op := node.Op()
		// Apply rebinds every operand (and the condition, if any) onto the
		// freshly created registers by name and index.
		if _, err := circ.Apply(op.Name, op.Params, op.Qargs, op.Cargs,
			op.Condition); err != nil {
			return nil, err
		}
	}
	//
	log.Debugf("converted dag (%d nodes) into circuit (%d instructions)",
		graph.NumNodes(), circ.Len())
	//
	return circ, nil
}
