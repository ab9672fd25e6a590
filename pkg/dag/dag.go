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

// Package dag provides the dependency-graph representation of a quantum
// program.  Nodes are operations (plus one synthetic input / output terminal
// pair per declared bit) and edges encode per-bit chronological dependency:
// for every bit, the operations touching it form a single chain from its
// input terminal to its output terminal.  Cross-bit ordering is therefore
// only as strict as shared bits force it to be.
package dag

import (
	"errors"
	"fmt"

	"github.com/quantaleap/go-qwire/pkg/register"
)

// Failures specific to the graph representation, complementing the kinds
// shared with the circuit representation (see pkg/register).
var (
	// ErrUnknownOperation signals an operation whose name is not declared in
	// the basis table of the target DAG.
	ErrUnknownOperation = errors.New("operation not in basis")
	// ErrBasisConflict signals a basis element re-declared with an arity
	// incompatible with its existing declaration.
	ErrBasisConflict = errors.New("basis element arity conflict")
	// ErrArityMismatch signals an operation applied with an operand or
	// parameter count differing from its basis declaration.
	ErrArityMismatch = errors.New("operation arity mismatch")
)

// Variadic marks a basis element accepting any number of qubit operands (the
// barrier primitive).
const Variadic int = -1

// BasisElement declares a named operation with fixed arity recognised by a
// DAG, with or without an associated gate definition.
type BasisElement struct {
	// Name of the operation.
	Name string
	// Number of qubit operands, or Variadic.
	Qubits int
	// Number of classical operands.
	Clbits uint
	// Number of real-valued parameters.
	Params uint
}

// IsVariadic determines whether this element accepts any number of qubit
// operands.
func (p BasisElement) IsVariadic() bool {
	return p.Qubits < 0
}

func (p BasisElement) String() string {
	if p.IsVariadic() {
		return fmt.Sprintf("%s(*q,%dc,%dp)", p.Name, p.Clbits, p.Params)
	}
	//
	return fmt.Sprintf("%s(%dq,%dc,%dp)", p.Name, p.Qubits, p.Clbits, p.Params)
}

// DAG is the dependency-graph form of a quantum program.  It owns fresh
// register objects (declared via DeclareQuantumRegister and friends), a basis
// table mapping operation names to arities and optional gate definitions, and
// an arena of nodes indexed by NodeId.
type DAG struct {
	// Quantum registers in declaration order.
	qregs []*register.Register
	// Classical registers in declaration order.
	cregs []*register.Register
	// All registers, by name.
	regmap map[string]*register.Register
	// Basis table, by operation name.
	basis map[string]BasisElement
	// Basis names in declaration order.
	basisOrder []string
	// Gate definitions (decomposition templates), by operation name.
	gates map[string]*DAG
	// Node arena.  A NodeId is an index into this slice.
	nodes []Node
	// Input terminal of every declared bit.
	inputs map[wire]NodeId
	// Output terminal of every declared bit.
	outputs map[wire]NodeId
}

// New constructs an empty DAG with no registers and an empty basis.
func New() *DAG {
	return &DAG{
		regmap:  make(map[string]*register.Register),
		basis:   make(map[string]BasisElement),
		gates:   make(map[string]*DAG),
		inputs:  make(map[wire]NodeId),
		outputs: make(map[wire]NodeId),
	}
}

// DeclareQuantumRegister declares a fresh quantum register with the given
// name and size, creating an input / output terminal pair for each of its
// bits.
func (p *DAG) DeclareQuantumRegister(name string, size uint) error {
	return p.declareRegister(register.NewQuantum(name, size))
}

// DeclareClassicalRegister declares a fresh classical register with the given
// name and size, creating an input / output terminal pair for each of its
// bits.
func (p *DAG) DeclareClassicalRegister(name string, size uint) error {
	return p.declareRegister(register.NewClassical(name, size))
}

func (p *DAG) declareRegister(reg *register.Register) error {
	if _, ok := p.regmap[reg.Name()]; ok {
		return fmt.Errorf("%w: %q", register.ErrDuplicateRegisterName, reg.Name())
	}
	//
	p.regmap[reg.Name()] = reg
	//
	if reg.IsQuantum() {
		p.qregs = append(p.qregs, reg)
	} else {
		p.cregs = append(p.cregs, reg)
	}
	// Allocate terminal chains
	for i := uint(0); i < reg.Size(); i++ {
		w := wire{reg.Name(), i}
		in := p.allocate(Node{kind: INPUT, wire: w})
		out := p.allocate(Node{kind: OUTPUT, wire: w})
		// Initially every bit flows straight from its input terminal to its
		// output terminal; appended operations splice themselves in between.
		p.connect(in, out)
		p.inputs[w] = in
		p.outputs[w] = out
	}
	//
	return nil
}

// QuantumRegisters returns the declared quantum registers in declaration
// order.
func (p *DAG) QuantumRegisters() []*register.Register {
	return append([]*register.Register(nil), p.qregs...)
}

// ClassicalRegisters returns the declared classical registers in declaration
// order.
func (p *DAG) ClassicalRegisters() []*register.Register {
	return append([]*register.Register(nil), p.cregs...)
}

// Register returns the declared register of the given name, if any.
func (p *DAG) Register(name string) (*register.Register, bool) {
	reg, ok := p.regmap[name]
	return reg, ok
}

// DeclareBasisElement adds a named operation with the given arity to the
// basis table.  Re-declaring an existing name with an identical arity is a
// no-op; re-declaring with a different arity fails, since silently overriding
// an arity would invalidate nodes already appended under the old declaration.
func (p *DAG) DeclareBasisElement(name string, qubits int, clbits uint, params uint) error {
	elem := BasisElement{name, qubits, clbits, params}
	//
	if existing, ok := p.basis[name]; ok {
		if existing == elem {
			return nil
		}
		//
		return fmt.Errorf("%w: %q declared as %s, redeclared as %s",
			ErrBasisConflict, name, existing, elem)
	}
	//
	p.basis[name] = elem
	p.basisOrder = append(p.basisOrder, name)
	//
	return nil
}

// BasisElement returns the basis declaration of the given operation name, if
// any.
func (p *DAG) BasisElement(name string) (BasisElement, bool) {
	elem, ok := p.basis[name]
	return elem, ok
}

// BasisElements returns all basis declarations in declaration order.
func (p *DAG) BasisElements() []BasisElement {
	elems := make([]BasisElement, len(p.basisOrder))
	for i, name := range p.basisOrder {
		elems[i] = p.basis[name]
	}
	//
	return elems
}

// RegisterGateDefinition associates a decomposition template with a basis
// element already declared in this DAG.  Registering the same name twice is a
// no-op (the first definition wins).
func (p *DAG) RegisterGateDefinition(name string, template *DAG) error {
	if _, ok := p.basis[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	} else if _, ok := p.gates[name]; !ok {
		p.gates[name] = template
	}
	//
	return nil
}

// GateDefinition returns the decomposition template registered for the given
// operation name, if any.
func (p *DAG) GateDefinition(name string) (*DAG, bool) {
	template, ok := p.gates[name]
	return template, ok
}

// Node returns the node with the given id.  Observe the returned pointer must
// be treated as read-only; mutating a node corrupts the graph.
func (p *DAG) Node(id NodeId) *Node {
	return &p.nodes[id.index]
}

// NumNodes returns the total number of nodes, terminals included.
func (p *DAG) NumNodes() uint {
	return uint(len(p.nodes))
}

// Size returns the number of operation nodes.
func (p *DAG) Size() uint {
	var count uint
	//
	for i := range p.nodes {
		if p.nodes[i].kind == OPERATION {
			count++
		}
	}
	//
	return count
}

// OpNodes returns the ids of all operation nodes in insertion order.
func (p *DAG) OpNodes() []NodeId {
	var ids []NodeId
	//
	for i := range p.nodes {
		if p.nodes[i].kind == OPERATION {
			ids = append(ids, NodeId{uint(i)})
		}
	}
	//
	return ids
}

// CountOps returns the number of operation nodes per basis element name.
func (p *DAG) CountOps() map[string]uint {
	counts := make(map[string]uint)
	//
	for i := range p.nodes {
		if p.nodes[i].kind == OPERATION {
			counts[p.nodes[i].op.Name]++
		}
	}
	//
	return counts
}

// allocate places a node in the arena, returning its id.
func (p *DAG) allocate(n Node) NodeId {
	id := NodeId{uint(len(p.nodes))}
	p.nodes = append(p.nodes, n)
	//
	return id
}

// connect adds a dependency edge from one node to another.
func (p *DAG) connect(from NodeId, to NodeId) {
	p.nodes[from.index].succs = append(p.nodes[from.index].succs, to)
	p.nodes[to.index].preds = append(p.nodes[to.index].preds, from)
}

// disconnect removes the dependency edge from one node to another.
func (p *DAG) disconnect(from NodeId, to NodeId) {
	p.nodes[from.index].succs = remove(p.nodes[from.index].succs, to)
	p.nodes[to.index].preds = remove(p.nodes[to.index].preds, from)
}

func remove(ids []NodeId, id NodeId) []NodeId {
	for i, ith := range ids {
		if ith == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	//
	return ids
}
