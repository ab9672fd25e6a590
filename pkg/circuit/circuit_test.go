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
	"errors"
	"strings"
	"testing"

	"github.com/quantaleap/go-qwire/pkg/register"
)

func Test_Circuit_Add(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	//
	circ, err := New(q, c)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(circ.Registers()) != 2 {
		t.Errorf("expected 2 registers, got %d", len(circ.Registers()))
	}
	// Name collision, including against an equal register object.
	if err := circ.Add(register.NewQuantum("q", 2)); !errors.Is(err,
		register.ErrDuplicateRegisterName) {
		t.Errorf("expected duplicate-name error, got %v", err)
	}
	//
	if err := circ.Add(nil); !errors.Is(err, register.ErrExpectedRegister) {
		t.Errorf("expected expected-register error, got %v", err)
	}
	// A failing Add attaches nothing.
	if err := circ.Add(register.NewQuantum("r", 1),
		register.NewQuantum("q", 2)); err == nil {
		t.Fatal("expected duplicate-name error")
	} else if circ.HasRegister(register.NewQuantum("r", 1)) {
		t.Errorf("failed Add left a register behind")
	}
}

func Test_Circuit_HasRegister(t *testing.T) {
	q := register.NewQuantum("q", 2)
	//
	circ, err := New(q)
	if err != nil {
		t.Fatal(err)
	}
	// Compatibility is name + size + kind, not identity.
	if !circ.HasRegister(register.NewQuantum("q", 2)) {
		t.Errorf("equal register must be present")
	}
	//
	if circ.HasRegister(register.NewQuantum("q", 3)) ||
		circ.HasRegister(register.NewClassical("q", 2)) ||
		circ.HasRegister(nil) {
		t.Errorf("incompatible register reported present")
	}
}

func Test_Circuit_Measure_Scalar(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := New(q, c)
	//
	set, err := circ.Measure(q.MustBit(0), c.MustBit(1))
	if err != nil {
		t.Fatal(err)
	}
	//
	if set.Len() != 1 || circ.Len() != 1 {
		t.Fatalf("expected exactly one instruction")
	}
	//
	instruction := set.First()
	if instruction.Name() != "measure" {
		t.Errorf("unexpected name %q", instruction.Name())
	}
	//
	if instruction.Qasm() != "measure q[0] -> c[1];" {
		t.Errorf("unexpected statement %q", instruction.Qasm())
	}
}

func Test_Circuit_Measure_Broadcast(t *testing.T) {
	q := register.NewQuantum("q", 3)
	c := register.NewClassical("c", 3)
	circ, _ := New(q, c)
	//
	set, err := circ.Measure(q, c)
	if err != nil {
		t.Fatal(err)
	}
	// One measurement per index, qubit i paired with classical bit i.
	if set.Len() != 3 {
		t.Fatalf("expected 3 measurements, got %d", set.Len())
	}
	//
	for i := uint(0); i < 3; i++ {
		instruction := set.At(i)
		//
		if instruction.Qargs()[0].Index() != i ||
			instruction.Cargs()[0].Index() != i {
			t.Errorf("index %d paired as %s", i, instruction)
		}
	}
}

func Test_Circuit_Measure_SizeMismatch(t *testing.T) {
	q := register.NewQuantum("q", 3)
	c := register.NewClassical("c", 2)
	circ, _ := New(q, c)
	//
	if _, err := circ.Measure(q, c); !errors.Is(err, register.ErrSizeMismatch) {
		t.Errorf("expected size-mismatch error, got %v", err)
	}
	//
	if circ.Len() != 0 {
		t.Errorf("failed broadcast attached %d instructions", circ.Len())
	}
}

func Test_Circuit_Measure_KindChecks(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := New(q, c)
	// Quantum and classical operands swapped.
	if _, err := circ.Measure(c.MustBit(0), q.MustBit(0)); !errors.Is(err,
		register.ErrWrongRegisterKind) {
		t.Errorf("expected wrong-kind error, got %v", err)
	}
	// Operand register not attached to the circuit.
	other := register.NewQuantum("r", 2)
	if _, err := circ.Measure(other.MustBit(0), c.MustBit(0)); !errors.Is(err,
		register.ErrUnknownRegister) {
		t.Errorf("expected unknown-register error, got %v", err)
	}
}

func Test_Circuit_DuplicateQubit(t *testing.T) {
	q := register.NewQuantum("q", 2)
	circ, _ := New(q)
	//
	if _, err := circ.CX(q.MustBit(0), q.MustBit(0)); !errors.Is(err,
		register.ErrDuplicateQubitArgument) {
		t.Errorf("expected duplicate-argument error, got %v", err)
	}
	//
	if circ.Len() != 0 {
		t.Errorf("rejected instruction was attached")
	}
}

func Test_Circuit_Reset_Broadcast(t *testing.T) {
	q := register.NewQuantum("q", 2)
	circ, _ := New(q)
	//
	set, err := circ.Reset(q)
	if err != nil {
		t.Fatal(err)
	}
	//
	if set.Len() != 2 || circ.Len() != 2 {
		t.Errorf("expected one reset per qubit")
	}
}

func Test_Circuit_Barrier(t *testing.T) {
	q := register.NewQuantum("q", 2)
	r := register.NewQuantum("r", 3)
	circ, _ := New(q, r)
	// One barrier spanning all bits, not a fan-out.
	set, err := circ.Barrier(q, r.MustBit(0))
	if err != nil {
		t.Fatal(err)
	}
	//
	if set.Len() != 1 {
		t.Fatalf("expected a single barrier, got %d", set.Len())
	}
	//
	if len(set.First().Qargs()) != 3 {
		t.Errorf("expected barrier over 3 bits, got %d", len(set.First().Qargs()))
	}
}

func Test_Circuit_Combine(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	//
	c1, _ := New(q, c)
	c1.H(q.MustBit(0))
	c1.CX(q.MustBit(0), q.MustBit(1))
	//
	c2, _ := New(register.NewQuantum("q", 2), register.NewClassical("c", 2))
	c2.Measure(register.NewQuantum("q", 2), register.NewClassical("c", 2))
	//
	combined, err := c1.Combine(c2)
	if err != nil {
		t.Fatal(err)
	}
	// Receiver's instructions precede the operand's.
	if combined.Len() != c1.Len()+c2.Len() {
		t.Fatalf("expected %d instructions, got %d", c1.Len()+c2.Len(),
			combined.Len())
	}
	//
	if combined.At(0).Name() != "h" || combined.At(2).Name() != "measure" {
		t.Errorf("combined instructions out of order")
	}
	// Neither operand may be modified.
	if c1.Len() != 2 || c2.Len() != 2 {
		t.Errorf("combine modified an operand")
	}
	// Instructions are replayed, never aliased.
	if combined.At(0) == c1.At(0) {
		t.Errorf("combine aliased an instruction")
	}
}

func Test_Circuit_Combine_Incompatible(t *testing.T) {
	c1, _ := New(register.NewQuantum("q", 2))
	//
	c2, _ := New(register.NewQuantum("r", 2))
	c2.H(register.NewQuantum("r", 2).MustBit(0))
	//
	if _, err := c1.Combine(c2); !errors.Is(err,
		register.ErrIncompatibleRegisters) {
		t.Errorf("expected incompatibility error, got %v", err)
	}
	//
	if c1.Len() != 0 || c2.Len() != 1 {
		t.Errorf("failed combine modified an operand")
	}
}

func Test_Circuit_Extend(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c1, _ := New(q)
	c1.H(q.MustBit(0))
	//
	c2, _ := New(register.NewQuantum("q", 2))
	c2.X(register.NewQuantum("q", 2).MustBit(1))
	//
	result, err := c1.Extend(c2)
	if err != nil {
		t.Fatal(err)
	}
	// Extend replays in place and returns the receiver.
	if result != c1 || c1.Len() != 2 {
		t.Errorf("extend must modify and return the receiver")
	}
	//
	if c2.Len() != 1 {
		t.Errorf("extend modified its operand")
	}
}

func Test_Circuit_Extend_Incompatible(t *testing.T) {
	c1, _ := New(register.NewQuantum("q", 2))
	//
	c2, _ := New(register.NewQuantum("q", 3))
	c2.H(register.NewQuantum("q", 3).MustBit(0))
	//
	if _, err := c1.Extend(c2); !errors.Is(err,
		register.ErrIncompatibleRegisters) {
		t.Errorf("expected incompatibility error, got %v", err)
	}
	//
	if c1.Len() != 0 {
		t.Errorf("failed extend modified the receiver")
	}
}

func Test_Circuit_CIf(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := New(q, c)
	//
	set, err := circ.X(q)
	if err != nil {
		t.Fatal(err)
	}
	// Shared condition over the whole batch.
	if err := set.CIf(c, 3); err != nil {
		t.Fatal(err)
	}
	//
	for i := uint(0); i < set.Len(); i++ {
		condition := set.At(i).Condition()
		//
		if condition == nil || condition.Value() != 3 {
			t.Errorf("condition not applied to instruction %d", i)
		}
	}
	//
	if !strings.Contains(set.First().Qasm(), "if(c==3)") {
		t.Errorf("unexpected statement %q", set.First().Qasm())
	}
}

func Test_Circuit_CIf_Errors(t *testing.T) {
	q := register.NewQuantum("q", 1)
	circ, _ := New(q)
	//
	set, _ := circ.X(q.MustBit(0))
	// Condition register must be classical.
	if err := set.CIf(q, 1); !errors.Is(err, register.ErrWrongRegisterKind) {
		t.Errorf("expected wrong-kind error, got %v", err)
	}
	// Condition register must belong to the circuit.
	other := register.NewClassical("c", 1)
	if err := set.CIf(other, 1); !errors.Is(err, register.ErrUnknownRegister) {
		t.Errorf("expected unknown-register error, got %v", err)
	}
}

func Test_Circuit_Qasm(t *testing.T) {
	q := register.NewQuantum("q", 2)
	c := register.NewClassical("c", 2)
	circ, _ := New(q, c)
	//
	circ.H(q.MustBit(0))
	circ.CX(q.MustBit(0), q.MustBit(1))
	circ.Measure(q, c)
	//
	expected := Header + "\n" +
		"qreg q[2];\n" +
		"creg c[2];\n" +
		"h q[0];\n" +
		"CX q[0],q[1];\n" +
		"measure q[0] -> c[0];\n" +
		"measure q[1] -> c[1];\n"
	//
	if circ.Qasm() != expected {
		t.Errorf("unexpected program text:\n%s", circ.Qasm())
	}
}

func Test_Circuit_Indexing(t *testing.T) {
	q := register.NewQuantum("q", 2)
	circ, _ := New(q)
	//
	circ.H(q.MustBit(0))
	circ.X(q.MustBit(1))
	//
	if circ.Len() != 2 || circ.At(0).Name() != "h" || circ.At(1).Name() != "x" {
		t.Errorf("positional access broken")
	}
}
