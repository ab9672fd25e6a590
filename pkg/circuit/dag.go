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
package circuit

import (
	"fmt"

	"github.com/quantaleap/go-qwire/pkg/dag"
	log "github.com/sirupsen/logrus"
)

// ToDAG converts this circuit into its dependency-graph representation.  The
// DAG receives fresh register objects mirroring this circuit's registers, so
// the two representations can evolve independently afterwards.  Gates of the
// registry holding a decomposition are registered in the DAG's basis (with
// their definition) up front; opaque primitives enter the basis on first use.
// No gate is expanded: per bit, the resulting graph orders exactly the
// operations of this circuit in program order.
func (p *Circuit) ToDAG(defs *Registry) (*dag.DAG, error) {
	graph := dag.New()
	// Mirror registers.
	for _, reg := range p.order {
		var err error
		//
		if reg.IsQuantum() {
			err = graph.DeclareQuantumRegister(reg.Name(), reg.Size())
		} else {
			err = graph.DeclareClassicalRegister(reg.Name(), reg.Size())
		}
		//
		if err != nil {
			return nil, err
		}
	}
	// Register gate definitions ahead of any instruction referencing them.
	for _, name := range defs.Names() {
		template, err := defs.Decomposition(name)
		//
		if err != nil {
			return nil, err
		} else if template == nil {
			// Opaque primitive; declared on demand below.
			continue
		}
		//
		def, _ := defs.Definition(name)
		//
		if err := graph.DeclareBasisElement(name, def.Qubits, def.Clbits,
			def.Params); err != nil {
			return nil, err
		} else if err := graph.RegisterGateDefinition(name, template); err != nil {
			return nil, err
		}
	}
	// Append instructions in program order.
	for _, instruction := range p.data {
		if _, ok := graph.BasisElement(instruction.name); !ok {
			def, ok := defs.Definition(instruction.name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGate, instruction.name)
			}
			//
			if err := graph.DeclareBasisElement(instruction.name, def.Qubits,
				def.Clbits, def.Params); err != nil {
				return nil, err
			}
		}
		//
		if _, err := graph.AppendOperation(instruction.name, instruction.qargs,
			instruction.cargs, instruction.params,
			instruction.condition); err != nil {
			return nil, err
		}
	}
	//
	log.Debugf("converted circuit (%d instructions) into dag (%d nodes)",
		p.Len(), graph.NumNodes())
	//
	return graph, nil
}

// Decompose returns the decomposition template of this instruction's gate: a
// fixed small DAG over a placeholder register expressing it in terms of more
// primitive named operations.  Templates are built once per distinct gate
// name and cached in the registry; opaque primitives yield nil.
func (p *Instruction) Decompose(defs *Registry) (*dag.DAG, error) {
	return defs.Decomposition(p.name)
}

// Inverse produces a new circuit over the same registers applying the inverse
// of every instruction in reverse order.  It fails if any instruction is
// irreversible (measurement, reset, barrier).
func (p *Circuit) Inverse(defs *Registry) (*Circuit, error) {
	inverted, err := New(p.order...)
	if err != nil {
		return nil, err
	}
	//
	for i := len(p.data); i > 0; i-- {
		instruction, err := p.data[i-1].Inverse(defs)
		//
		if err != nil {
			return nil, err
		}
		//
		if _, err := instruction.Reapply(inverted); err != nil {
			return nil, err
		}
	}
	//
	return inverted, nil
}
