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

	"github.com/quantaleap/go-qwire/pkg/register"
)

// NodeId captures the notion of a node index within a DAG.  Every node is
// allocated a given index starting from 0.  The purpose of the wrapper is to
// avoid confusion between raw uint values and things which are expected to
// identify nodes.
type NodeId struct {
	index uint
}

// NewNodeId constructs a new node ID from a given raw index.
func NewNodeId(index uint) NodeId {
	return NodeId{index}
}

// Unwrap returns the underlying node index.
func (p NodeId) Unwrap() uint {
	return p.index
}

func (p NodeId) String() string {
	return fmt.Sprintf("n%d", p.index)
}

// NodeKind captures the kind of a given node: a synthetic input terminal, a
// synthetic output terminal, or an operation proper.
type NodeKind struct {
	kind uint8
}

var (
	// INPUT signals the synthetic source terminal of a bit's dependency
	// chain.
	INPUT = NodeKind{uint8(0)}
	// OUTPUT signals the synthetic sink terminal of a bit's dependency
	// chain.
	OUTPUT = NodeKind{uint8(1)}
	// OPERATION signals a node holding an operation payload.
	OPERATION = NodeKind{uint8(2)}
)

func (p NodeKind) String() string {
	switch p {
	case INPUT:
		return "in"
	case OUTPUT:
		return "out"
	default:
		return "op"
	}
}

// Operation is the payload of an operation node.  It mirrors a circuit
// instruction: a basis element name, real-valued parameters, quantum and
// classical operands, and an optional classical control.  All bit references
// point at registers owned by the enclosing DAG, never at registers of the
// circuit the operation came from.
type Operation struct {
	// Basis element this operation instantiates.
	Name string
	// Real-valued parameters (gate angles).
	Params []float64
	// Quantum operands.
	Qargs []register.BitRef
	// Classical operands (non-empty only for measurement-like operations).
	Cargs []register.BitRef
	// Optional classical control.
	Condition *register.Condition
}

func (p *Operation) String() string {
	str := p.Name
	//
	for i, arg := range p.Qargs {
		if i != 0 {
			str += ","
		} else {
			str += " "
		}
		//
		str += arg.String()
	}
	//
	for _, arg := range p.Cargs {
		str += " -> " + arg.String()
	}
	//
	if p.Condition != nil {
		str = p.Condition.String() + " " + str
	}
	//
	return str
}

// wire keys one bit's dependency chain.  Register names are unique within a
// DAG across both kinds, hence (name, index) identifies a bit.
type wire struct {
	name  string
	index uint
}

// Node represents one vertex of the dependency graph: either a terminal for a
// given bit, or an operation.
type Node struct {
	kind NodeKind
	// Bit this terminal belongs to (terminals only).
	wire wire
	// Operation payload (operation nodes only).
	op *Operation
	// Adjacency, in edge insertion order.
	preds []NodeId
	succs []NodeId
}

// Kind returns the kind of this node.
func (p *Node) Kind() NodeKind {
	return p.kind
}

// IsOperation determines whether or not this node holds an operation payload.
func (p *Node) IsOperation() bool {
	return p.kind == OPERATION
}

// Op returns the operation payload of this node, or nil for a terminal.
func (p *Node) Op() *Operation {
	return p.op
}

// Predecessors returns the nodes this node depends on.
func (p *Node) Predecessors() []NodeId {
	return append([]NodeId(nil), p.preds...)
}

// Successors returns the nodes depending on this node.
func (p *Node) Successors() []NodeId {
	return append([]NodeId(nil), p.succs...)
}

func (p *Node) String() string {
	if p.kind == OPERATION {
		return p.op.String()
	}
	//
	return fmt.Sprintf("%s(%s[%d])", p.kind, p.wire.name, p.wire.index)
}
