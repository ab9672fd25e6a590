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
package dag

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/quantaleap/go-qwire/pkg/register"
)

// AppendOperation appends an operation at the end of the program this DAG
// represents.  The new node gains an in-edge from the current last writer of
// every bit it touches, which includes every bit of the condition register
// (a classical control reads the whole register).  Operand references are
// resolved by register name against this DAG's own registers, so the caller's
// references may point at registers of another representation.  Validation is
// eager: on failure no node is created and the graph is unchanged.
func (p *DAG) AppendOperation(name string, qargs []register.BitRef,
	cargs []register.BitRef, params []float64,
	condition *register.Condition) (NodeId, error) {
	//
	elem, ok := p.basis[name]
	if !ok {
		return NodeId{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	// Check operand and parameter counts against the basis declaration.
	if err := p.checkArity(elem, qargs, cargs, params); err != nil {
		return NodeId{}, err
	}
	// Resolve operands against our own registers.
	seen := make(map[string]*bitset.BitSet)
	//
	boundQargs, err := p.resolveArgs(qargs, register.QUANTUM, seen)
	if err != nil {
		return NodeId{}, err
	}
	//
	boundCargs, err := p.resolveArgs(cargs, register.CLASSICAL, seen)
	if err != nil {
		return NodeId{}, err
	}
	//
	boundCondition, err := p.resolveCondition(condition)
	if err != nil {
		return NodeId{}, err
	}
	// Determine the full set of touched wires.
	wires := touchedWires(boundQargs, boundCargs, boundCondition, seen)
	// Validation complete; materialise the node.  Parameters are copied so
	// the node never shares a backing array with the caller.
	op := &Operation{name, append([]float64(nil), params...), boundQargs,
		boundCargs, boundCondition}
	id := p.allocate(Node{kind: OPERATION, op: op})
	// Splice the node in front of every touched wire's output terminal.
	for _, w := range wires {
		out := p.outputs[w]
		last := p.nodes[out.index].preds[0]
		//
		p.disconnect(last, out)
		p.connect(last, id)
		p.connect(id, out)
	}
	//
	return id, nil
}

// checkArity checks operand and parameter counts against a basis declaration.
func (p *DAG) checkArity(elem BasisElement, qargs []register.BitRef,
	cargs []register.BitRef, params []float64) error {
	//
	if !elem.IsVariadic() && len(qargs) != elem.Qubits {
		return fmt.Errorf("%w: %q expects %d qubit(s), got %d",
			ErrArityMismatch, elem.Name, elem.Qubits, len(qargs))
	} else if uint(len(cargs)) != elem.Clbits {
		return fmt.Errorf("%w: %q expects %d classical bit(s), got %d",
			ErrArityMismatch, elem.Name, elem.Clbits, len(cargs))
	} else if uint(len(params)) != elem.Params {
		return fmt.Errorf("%w: %q expects %d parameter(s), got %d",
			ErrArityMismatch, elem.Name, elem.Params, len(params))
	}
	//
	return nil
}

// resolveArgs rebinds the given bit references onto this DAG's registers of
// matching name, checking register kind and bit range.  The seen map tracks
// bits already used by this operation, both to reject duplicate qubit
// operands and to avoid double-wiring condition bits later.
func (p *DAG) resolveArgs(args []register.BitRef, kind register.Kind,
	seen map[string]*bitset.BitSet) ([]register.BitRef, error) {
	//
	var bound []register.BitRef
	//
	for _, arg := range args {
		if arg.Register() == nil {
			return nil, fmt.Errorf("%w: operand has no register",
				register.ErrExpectedRegister)
		}
		//
		name := arg.Register().Name()
		//
		reg, ok := p.regmap[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", register.ErrUnknownRegister, name)
		} else if reg.Kind() != kind {
			return nil, fmt.Errorf("%w: %q is %s, expected %s",
				register.ErrWrongRegisterKind, name, reg.Kind(), kind)
		} else if err := reg.CheckRange(arg.Index()); err != nil {
			return nil, err
		}
		//
		bits, ok := seen[name]
		if !ok {
			bits = bitset.New(reg.Size())
			seen[name] = bits
		}
		//
		if bits.Test(arg.Index()) {
			return nil, fmt.Errorf("%w: %s[%d]",
				register.ErrDuplicateQubitArgument, name, arg.Index())
		}
		//
		bits.Set(arg.Index())
		bound = append(bound, reg.MustBit(arg.Index()))
	}
	//
	return bound, nil
}

// resolveCondition rebinds a classical control onto this DAG's register of
// matching name.
func (p *DAG) resolveCondition(condition *register.Condition) (*register.Condition, error) {
	if condition == nil {
		return nil, nil
	}
	//
	name := condition.Register().Name()
	//
	reg, ok := p.regmap[name]
	if !ok {
		return nil, fmt.Errorf("%w: condition register %q",
			register.ErrUnknownRegister, name)
	}
	//
	return register.NewCondition(reg, condition.Value())
}

// touchedWires collects the wires an operation depends on: its quantum and
// classical operands, plus every bit of the condition register not already
// listed as a classical operand.
func touchedWires(qargs []register.BitRef, cargs []register.BitRef,
	condition *register.Condition, seen map[string]*bitset.BitSet) []wire {
	//
	var wires []wire
	//
	for _, arg := range qargs {
		wires = append(wires, wire{arg.Register().Name(), arg.Index()})
	}
	//
	for _, arg := range cargs {
		wires = append(wires, wire{arg.Register().Name(), arg.Index()})
	}
	//
	if condition != nil {
		reg := condition.Register()
		used := seen[reg.Name()]
		//
		for i := uint(0); i < reg.Size(); i++ {
			if used == nil || !used.Test(i) {
				wires = append(wires, wire{reg.Name(), i})
			}
		}
	}
	//
	return wires
}
