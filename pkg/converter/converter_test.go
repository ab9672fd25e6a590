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
package converter

import (
	"testing"

	"github.com/quantaleap/go-qwire/pkg/circuit"
	"github.com/quantaleap/go-qwire/pkg/register"
)

// roundTrip converts a circuit to its graph form and back.
func roundTrip(t *testing.T, circ *circuit.Circuit) *circuit.Circuit {
	t.Helper()
	//
	graph, err := ToDAG(circ, circuit.Standard())
	if err != nil {
		t.Fatal(err)
	}
	//
	rebuilt, err := ToCircuit(graph)
	if err != nil {
		t.Fatal(err)
	}
	//
	return rebuilt
}

func Test_RoundTrip_Registers(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := circuit.New(q, c)
	//
	rebuilt := roundTrip(t, circ)
	// Registers are recreated exactly (name, size, kind)...
	regs := rebuilt.Registers()
	if len(regs) != 2 || !regs[0].Equals(q) || !regs[1].Equals(c) {
		t.Fatalf("registers not reproduced: %v", regs)
	}
	// ...but never aliased across the conversion boundary.
	if regs[0] == q || regs[1] == c {
		t.Errorf("conversion aliased a register")
	}
}

func Test_RoundTrip_Chain(t *testing.T) {
	q := register.NewQuantum("q", 2)
	circ, _ := circuit.New(q)
	// Every consecutive pair shares a bit, so the graph is a chain and the
	// original sequence is the unique topological order.
	circ.H(q.MustBit(0))
	circ.Cx(q.MustBit(0), q.MustBit(1))
	circ.H(q.MustBit(1))
	circ.Cx(q.MustBit(1), q.MustBit(0))
	//
	rebuilt := roundTrip(t, circ)
	//
	if rebuilt.Len() != circ.Len() {
		t.Fatalf("expected %d instructions, got %d", circ.Len(), rebuilt.Len())
	}
	//
	for i := uint(0); i < circ.Len(); i++ {
		if circ.At(i).Qasm() != rebuilt.At(i).Qasm() {
			t.Errorf("instruction %d: %q became %q", i, circ.At(i).Qasm(),
				rebuilt.At(i).Qasm())
		}
	}
}

func Test_RoundTrip_BitDisjoint(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := circuit.New(q, c)
	//
	circ.Cx(q.MustBit(0), q.MustBit(1))
	circ.Measure(q, c)
	//
	rebuilt := roundTrip(t, circ)
	if rebuilt.Len() != 3 {
		t.Fatalf("expected 3 instructions, got %d", rebuilt.Len())
	}
	// The controlled operation must come first; the two measurements are
	// bit-disjoint, so either interleaving is valid.
	if rebuilt.At(0).Name() != "cx" {
		t.Errorf("controlled operation must precede both measurements")
	}
	//
	measured := make(map[uint]uint)
	//
	for i := uint(1); i < 3; i++ {
		instruction := rebuilt.At(i)
		//
		if instruction.Name() != "measure" {
			t.Fatalf("unexpected instruction %s", instruction)
		}
		//
		measured[instruction.Qargs()[0].Index()] = instruction.Cargs()[0].Index()
	}
	//
	if measured[0] != 0 || measured[1] != 1 {
		t.Errorf("measurement pairing broken: %v", measured)
	}
}

func Test_RoundTrip_Condition(t *testing.T) {
	q := register.NewQuantum("q", 1)
	c := register.NewClassical("c", 2)
	circ, _ := circuit.New(q, c)
	//
	set, err := circ.X(q.MustBit(0))
	if err != nil {
		t.Fatal(err)
	} else if err := set.CIf(c, 3); err != nil {
		t.Fatal(err)
	}
	//
	rebuilt := roundTrip(t, circ)
	//
	condition := rebuilt.At(0).Condition()
	if condition == nil || condition.Register().Name() != "c" ||
		condition.Value() != 3 {
		t.Fatalf("condition not reproduced: %v", condition)
	}
	// The rebuilt condition must bind the rebuilt circuit's register.
	if condition.Register() == c {
		t.Errorf("condition aliased the source register")
	}
}

func Test_ToDAG_Basis(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := circuit.New(q, c)
	//
	circ.H(q.MustBit(0))
	circ.Measure(q.MustBit(0), c.MustBit(0))
	//
	graph, err := ToDAG(circ, circuit.Standard())
	if err != nil {
		t.Fatal(err)
	}
	// Gates with definitions are registered eagerly, builtins on demand.
	if _, ok := graph.BasisElement("h"); !ok {
		t.Errorf("gate h missing from basis")
	}
	//
	if _, ok := graph.GateDefinition("h"); !ok {
		t.Errorf("gate h has no registered definition")
	}
	//
	if elem, ok := graph.BasisElement("measure"); !ok || elem.Clbits != 1 {
		t.Errorf("builtin measure not declared on demand")
	}
}

func Test_ToDAG_UnknownGate(t *testing.T) {
	q := register.NewQuantum("q", 1)
	circ, _ := circuit.New(q)
	// Attach an operation the registry knows nothing about.
	if _, err := circ.Apply("mystery", nil,
		[]register.BitRef{q.MustBit(0)}, nil, nil); err != nil {
		t.Fatal(err)
	}
	//
	if _, err := ToDAG(circ, circuit.Standard()); err == nil {
		t.Errorf("expected unknown-gate failure")
	}
}

func Test_ToDAG_Fresh(t *testing.T) {
	q := register.NewQuantum("q", 1)
	circ, _ := circuit.New(q)
	circ.H(q.MustBit(0))
	//
	graph, err := ToDAG(circ, circuit.Standard())
	if err != nil {
		t.Fatal(err)
	}
	// The graph owns fresh registers; mutating the circuit afterwards must
	// not disturb the graph.
	reg, ok := graph.Register("q")
	if !ok || reg == q {
		t.Errorf("graph aliased the circuit's register")
	}
	//
	circ.H(q.MustBit(0))
	//
	if graph.Size() != 1 {
		t.Errorf("graph changed after circuit mutation")
	}
}
