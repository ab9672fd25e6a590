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
	"strconv"
	"strings"

	"github.com/quantaleap/go-qwire/pkg/register"
)

// Instruction represents one operation attached to a circuit: a named gate or
// structural primitive, its real-valued parameters, its quantum and classical
// operands, and an optional classical control.  Instructions are owned by the
// circuit they were attached to; Reapply clones an instruction into another
// circuit rather than aliasing it.
type Instruction struct {
	name   string
	params []float64
	qargs  []register.BitRef
	cargs  []register.BitRef
	// Optional classical control.
	condition *register.Condition
	// Circuit this instruction is attached to.
	circuit *Circuit
}

// Name returns the operation name of this instruction.
func (p *Instruction) Name() string {
	return p.name
}

// Params returns the real-valued parameters of this instruction.
func (p *Instruction) Params() []float64 {
	return append([]float64(nil), p.params...)
}

// Qargs returns the quantum operands of this instruction.
func (p *Instruction) Qargs() []register.BitRef {
	return append([]register.BitRef(nil), p.qargs...)
}

// Cargs returns the classical operands of this instruction.
func (p *Instruction) Cargs() []register.BitRef {
	return append([]register.BitRef(nil), p.cargs...)
}

// Condition returns the classical control of this instruction, or nil.
func (p *Instruction) Condition() *register.Condition {
	return p.condition
}

// CIf binds a classical control to this instruction: it executes only when
// the given classical register holds the given value.  The register must be
// declared in the circuit this instruction is attached to.
func (p *Instruction) CIf(creg *register.Register, value uint64) error {
	if p.circuit == nil {
		return fmt.Errorf("%w: instruction not attached to a circuit",
			register.ErrUnknownRegister)
	} else if creg == nil {
		return fmt.Errorf("%w: condition register", register.ErrExpectedRegister)
	} else if !creg.IsClassical() {
		return fmt.Errorf("%w: condition register %q must be classical",
			register.ErrWrongRegisterKind, creg.Name())
	} else if !p.circuit.HasRegister(creg) {
		return fmt.Errorf("%w: condition register %q",
			register.ErrUnknownRegister, creg.Name())
	}
	// Bind against the circuit's own register object.
	bound, _ := p.circuit.lookup(creg.Name())
	condition, err := register.NewCondition(bound, value)
	//
	if err != nil {
		return err
	}
	//
	p.condition = condition
	//
	return nil
}

// Inverse constructs the inverse of this instruction, looking up the
// inversion rule of its gate in the given registry.  The result is a fresh,
// unattached instruction over the same operands; measurements, resets and
// barriers have no inverse.
func (p *Instruction) Inverse(defs *Registry) (*Instruction, error) {
	def, ok := defs.Definition(p.name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGate, p.name)
	} else if def.Inverse == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotInvertible, p.name)
	}
	//
	name, params, err := def.Inverse(p.params)
	if err != nil {
		return nil, err
	}
	//
	return &Instruction{
		name:      name,
		params:    params,
		qargs:     append([]register.BitRef(nil), p.qargs...),
		cargs:     append([]register.BitRef(nil), p.cargs...),
		condition: p.condition,
	}, nil
}

// Reapply clones this instruction's name, parameters and condition, rebinds
// its operands onto registers of matching name in the target circuit, and
// attaches the clone there.
func (p *Instruction) Reapply(target *Circuit) (*Instruction, error) {
	return target.Apply(p.name, p.Params(), p.qargs, p.cargs, p.condition)
}

// Qasm returns the OpenQASM 2.0 statement for this instruction.
func (p *Instruction) Qasm() string {
	var builder strings.Builder
	//
	if p.condition != nil {
		fmt.Fprintf(&builder, "if(%s==%d) ",
			p.condition.Register().Name(), p.condition.Value())
	}
	//
	builder.WriteString(p.name)
	//
	if len(p.params) > 0 {
		builder.WriteString("(")
		//
		for i, param := range p.params {
			if i != 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(strconv.FormatFloat(param, 'g', -1, 64))
		}
		//
		builder.WriteString(")")
	}
	//
	for i, arg := range p.qargs {
		if i != 0 {
			builder.WriteString(",")
		} else {
			builder.WriteString(" ")
		}
		//
		fmt.Fprintf(&builder, "%s[%d]", arg.Register().Name(), arg.Index())
	}
	// Measurements direct their result into a classical operand.
	for _, arg := range p.cargs {
		fmt.Fprintf(&builder, " -> %s[%d]", arg.Register().Name(), arg.Index())
	}
	//
	builder.WriteString(";")
	//
	return builder.String()
}

func (p *Instruction) String() string {
	return p.Qasm()
}

// InstructionSet aggregates the instructions produced by one broadcast
// application, e.g. measuring every qubit of one register into every bit of a
// same-size classical register.  It lets a caller apply a uniform modifier to
// the whole batch after the fact.
type InstructionSet struct {
	instructions []*Instruction
}

// Add appends an instruction to this set.
func (p *InstructionSet) Add(instruction *Instruction) {
	p.instructions = append(p.instructions, instruction)
}

// Len returns the number of instructions in this set.
func (p *InstructionSet) Len() uint {
	return uint(len(p.instructions))
}

// At returns the ith instruction of this set.
func (p *InstructionSet) At(index uint) *Instruction {
	return p.instructions[index]
}

// First returns the first instruction of this set.  This is a convenience for
// scalar applications, which produce a set of exactly one instruction.
func (p *InstructionSet) First() *Instruction {
	return p.instructions[0]
}

// CIf binds a shared classical control to every instruction in this set.
func (p *InstructionSet) CIf(creg *register.Register, value uint64) error {
	for _, instruction := range p.instructions {
		if err := instruction.CIf(creg, value); err != nil {
			return err
		}
	}
	//
	return nil
}
