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

	"github.com/quantaleap/go-qwire/pkg/register"
)

// Builders for the builtin primitives and the standard gate library.  Every
// builder accepts operands in either scalar form (a single bit reference) or
// broadcast form (a whole register, fanning out index-wise); all registers
// supplied in broadcast form within one call must have equal size.  A builder
// returns the batch of instructions it attached; a scalar call yields a batch
// of exactly one.

// U applies the generic single-qubit unitary with the given Euler angles.
func (p *Circuit) U(theta float64, phi float64, lambda float64,
	qubit register.Operand) (*InstructionSet, error) {
	return p.gate("U", []float64{theta, phi, lambda}, qubit)
}

// CX applies the two-qubit controlled-NOT primitive.
func (p *Circuit) CX(control register.Operand, target register.Operand) (*InstructionSet, error) {
	return p.gate("CX", nil, control, target)
}

// Cx applies the controlled-NOT gate (the standard-library gate, which
// decomposes into the CX primitive).
func (p *Circuit) Cx(control register.Operand, target register.Operand) (*InstructionSet, error) {
	return p.gate("cx", nil, control, target)
}

// X applies the Pauli X (bit-flip) gate.
func (p *Circuit) X(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("x", nil, qubit)
}

// Y applies the Pauli Y gate.
func (p *Circuit) Y(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("y", nil, qubit)
}

// Z applies the Pauli Z (phase-flip) gate.
func (p *Circuit) Z(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("z", nil, qubit)
}

// H applies the Hadamard gate.
func (p *Circuit) H(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("h", nil, qubit)
}

// S applies the S (sqrt-Z) gate.
func (p *Circuit) S(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("s", nil, qubit)
}

// Sdg applies the inverse of the S gate.
func (p *Circuit) Sdg(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("sdg", nil, qubit)
}

// T applies the T (pi/8) gate.
func (p *Circuit) T(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("t", nil, qubit)
}

// Tdg applies the inverse of the T gate.
func (p *Circuit) Tdg(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("tdg", nil, qubit)
}

// Rz applies a rotation about the Z axis by the given angle.
func (p *Circuit) Rz(phi float64, qubit register.Operand) (*InstructionSet, error) {
	return p.gate("rz", []float64{phi}, qubit)
}

// Measure measures a quantum bit into a classical bit.  In broadcast form it
// measures every qubit of a quantum register into the same-index bit of an
// equal-size classical register.
func (p *Circuit) Measure(qubit register.Operand, clbit register.Operand) (*InstructionSet, error) {
	width, err := broadcastWidth(qubit, clbit)
	if err != nil {
		return nil, err
	}
	//
	built := make([]*Instruction, width)
	//
	for i := uint(0); i < width; i++ {
		built[i], err = p.build("measure", nil,
			[]register.BitRef{qubit.Select(i)},
			[]register.BitRef{clbit.Select(i)}, nil)
		//
		if err != nil {
			return nil, err
		}
	}
	//
	return p.attachAll(built), nil
}

// Reset forces a quantum bit (or, in broadcast form, every bit of a quantum
// register) back to the zero state.
func (p *Circuit) Reset(qubit register.Operand) (*InstructionSet, error) {
	return p.gate("reset", nil, qubit)
}

// Barrier attaches a single barrier instruction spanning every bit of the
// given operands.  Unlike the other builders, a register operand contributes
// all of its bits to one instruction rather than fanning out.
func (p *Circuit) Barrier(operands ...register.Operand) (*InstructionSet, error) {
	var qargs []register.BitRef
	//
	for _, operand := range operands {
		if operand == nil {
			return nil, fmt.Errorf("%w: got nil", register.ErrExpectedRegister)
		}
		//
		for i := uint(0); i < operand.Width(); i++ {
			qargs = append(qargs, operand.Select(i))
		}
	}
	//
	instruction, err := p.build("barrier", nil, qargs, nil, nil)
	if err != nil {
		return nil, err
	}
	//
	return p.attachAll([]*Instruction{instruction}), nil
}

// gate fans a purely-quantum operation out over its operands and attaches the
// resulting batch.  Attachment happens only after every index has validated,
// so a failing broadcast attaches nothing.
func (p *Circuit) gate(name string, params []float64,
	operands ...register.Operand) (*InstructionSet, error) {
	//
	width, err := broadcastWidth(operands...)
	if err != nil {
		return nil, err
	}
	//
	built := make([]*Instruction, width)
	//
	for i := uint(0); i < width; i++ {
		qargs := make([]register.BitRef, len(operands))
		//
		for j, operand := range operands {
			qargs[j] = operand.Select(i)
		}
		//
		built[i], err = p.build(name, params, qargs, nil, nil)
		if err != nil {
			return nil, err
		}
	}
	//
	return p.attachAll(built), nil
}

// broadcastWidth determines the fan-out width of one application: the common
// size of all register-form operands, or one if every operand is scalar.
func broadcastWidth(operands ...register.Operand) (uint, error) {
	width := uint(0)
	//
	for _, operand := range operands {
		if operand == nil {
			return 0, fmt.Errorf("%w: got nil", register.ErrExpectedRegister)
		}
		//
		if reg, ok := operand.(*register.Register); ok {
			if width == 0 {
				width = reg.Size()
			} else if width != reg.Size() {
				return 0, fmt.Errorf("%w: %d vs %d",
					register.ErrSizeMismatch, width, reg.Size())
			}
		}
	}
	//
	if width == 0 {
		width = 1
	}
	//
	return width, nil
}
