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

// Package circuit provides the linear (authoring) representation of a quantum
// program: an ordered instruction list over a set of named registers.  The
// companion package dag provides the dependency-graph representation; both
// preserve registers, per-bit operation order and classical-control bindings
// across conversion.
package circuit

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/quantaleap/go-qwire/pkg/register"
)

// Header emitted at the top of every serialised program.
const Header = "OPENQASM 2.0;"

// Circuit is an ordered instruction list plus the registers it is defined
// over.  The register map is append-only through Add; instructions are
// attached in program order through the gate builders, Measure, Reset and
// Apply.
type Circuit struct {
	// Registers in insertion order.
	order []*register.Register
	// Registers by name.
	regs map[string]*register.Register
	// Instructions in program order.
	data []*Instruction
}

// New constructs a circuit over the given registers.
func New(regs ...*register.Register) (*Circuit, error) {
	p := &Circuit{regs: make(map[string]*register.Register)}
	//
	if err := p.Add(regs...); err != nil {
		return nil, err
	}
	//
	return p, nil
}

// Add attaches the given registers to this circuit.  On any failure (nil
// register, or a name collision either with this circuit or within the
// arguments themselves) no register is attached.
func (p *Circuit) Add(regs ...*register.Register) error {
	seen := make(map[string]bool)
	//
	for _, reg := range regs {
		if reg == nil {
			return fmt.Errorf("%w: got nil", register.ErrExpectedRegister)
		} else if _, ok := p.regs[reg.Name()]; ok || seen[reg.Name()] {
			return fmt.Errorf("%w: %q", register.ErrDuplicateRegisterName,
				reg.Name())
		}
		//
		seen[reg.Name()] = true
	}
	//
	for _, reg := range regs {
		p.regs[reg.Name()] = reg
		p.order = append(p.order, reg)
	}
	//
	return nil
}

// HasRegister determines whether this circuit holds a register considered the
// same as the given one, i.e. matching by name, size and kind rather than
// identity.
func (p *Circuit) HasRegister(reg *register.Register) bool {
	if reg == nil {
		return false
	}
	//
	existing, ok := p.regs[reg.Name()]
	//
	return ok && existing.Equals(reg)
}

// Registers returns all registers of this circuit in insertion order.
func (p *Circuit) Registers() []*register.Register {
	return append([]*register.Register(nil), p.order...)
}

// QuantumRegisters returns the quantum registers of this circuit in insertion
// order.
func (p *Circuit) QuantumRegisters() []*register.Register {
	var regs []*register.Register
	//
	for _, reg := range p.order {
		if reg.IsQuantum() {
			regs = append(regs, reg)
		}
	}
	//
	return regs
}

// ClassicalRegisters returns the classical registers of this circuit in
// insertion order.
func (p *Circuit) ClassicalRegisters() []*register.Register {
	var regs []*register.Register
	//
	for _, reg := range p.order {
		if reg.IsClassical() {
			regs = append(regs, reg)
		}
	}
	//
	return regs
}

// Len returns the number of instructions in this circuit.
func (p *Circuit) Len() uint {
	return uint(len(p.data))
}

// At returns the ith instruction of this circuit.
func (p *Circuit) At(index uint) *Instruction {
	return p.data[index]
}

// Instructions returns the instructions of this circuit in program order.
func (p *Circuit) Instructions() []*Instruction {
	return append([]*Instruction(nil), p.data...)
}

// Combine produces a new circuit over this circuit's registers holding this
// circuit's instructions followed by the other circuit's instructions, both
// replayed as fresh clones.  Every register of the other circuit must be
// present in this one; on failure neither operand is modified.
func (p *Circuit) Combine(other *Circuit) (*Circuit, error) {
	if err := p.checkCompatible(other); err != nil {
		return nil, err
	}
	//
	combined, err := New(p.order...)
	if err != nil {
		return nil, err
	}
	//
	for _, instruction := range p.data {
		if _, err := instruction.Reapply(combined); err != nil {
			return nil, err
		}
	}
	//
	for _, instruction := range other.data {
		if _, err := instruction.Reapply(combined); err != nil {
			return nil, err
		}
	}
	//
	return combined, nil
}

// Extend replays the other circuit's instructions onto this circuit in place,
// returning this circuit.  Every register of the other circuit must be
// present in this one.  Compatibility is checked up front, and compatibility
// is the only way a replay can fail, hence a failed Extend leaves this
// circuit unmodified.
func (p *Circuit) Extend(other *Circuit) (*Circuit, error) {
	if err := p.checkCompatible(other); err != nil {
		return nil, err
	}
	//
	for _, instruction := range other.data {
		if _, err := instruction.Reapply(p); err != nil {
			return nil, err
		}
	}
	//
	return p, nil
}

func (p *Circuit) checkCompatible(other *Circuit) error {
	for _, reg := range other.order {
		if !p.HasRegister(reg) {
			return fmt.Errorf("%w: missing register %s",
				register.ErrIncompatibleRegisters, reg)
		}
	}
	//
	return nil
}

// Apply validates and attaches one instruction with the given name,
// parameters, operands and optional classical control.  Operand references
// are rebound by register name onto this circuit's own registers, so the
// given references may point at registers of another representation (this is
// what Reapply and the DAG converter rely on).  Validation is eager: on
// failure nothing is attached.
func (p *Circuit) Apply(name string, params []float64, qargs []register.BitRef,
	cargs []register.BitRef, condition *register.Condition) (*Instruction, error) {
	//
	instruction, err := p.build(name, params, qargs, cargs, condition)
	if err != nil {
		return nil, err
	}
	//
	p.data = append(p.data, instruction)
	//
	return instruction, nil
}

// build validates and constructs one instruction without attaching it.  The
// broadcast builders validate a whole batch through here before attaching any
// of it.
func (p *Circuit) build(name string, params []float64, qargs []register.BitRef,
	cargs []register.BitRef, condition *register.Condition) (*Instruction, error) {
	//
	seen := make(map[string]*bitset.BitSet)
	//
	boundQargs, err := p.resolveArgs(qargs, register.QUANTUM, seen)
	if err != nil {
		return nil, err
	}
	//
	boundCargs, err := p.resolveArgs(cargs, register.CLASSICAL, seen)
	if err != nil {
		return nil, err
	}
	//
	boundCondition, err := p.resolveCondition(condition)
	if err != nil {
		return nil, err
	}
	//
	return &Instruction{
		name:      name,
		params:    append([]float64(nil), params...),
		qargs:     boundQargs,
		cargs:     boundCargs,
		condition: boundCondition,
		circuit:   p,
	}, nil
}

// attachAll attaches an already validated batch of instructions in order.
func (p *Circuit) attachAll(built []*Instruction) *InstructionSet {
	set := &InstructionSet{}
	//
	for _, instruction := range built {
		p.data = append(p.data, instruction)
		set.Add(instruction)
	}
	//
	return set
}

// resolveArgs rebinds the given bit references onto this circuit's registers
// of matching name, checking register kind, compatibility and bit range, and
// rejecting duplicate operands.
func (p *Circuit) resolveArgs(args []register.BitRef, kind register.Kind,
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
		reg, ok := p.regs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q not in this circuit",
				register.ErrUnknownRegister, name)
		} else if !reg.Equals(arg.Register()) {
			return nil, fmt.Errorf("%w: register %s differs from %s",
				register.ErrIncompatibleRegisters, arg.Register(), reg)
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

// resolveCondition rebinds a classical control onto this circuit's register
// of matching name.
func (p *Circuit) resolveCondition(condition *register.Condition) (*register.Condition, error) {
	if condition == nil {
		return nil, nil
	}
	//
	name := condition.Register().Name()
	//
	reg, ok := p.regs[name]
	if !ok {
		return nil, fmt.Errorf("%w: condition register %q",
			register.ErrUnknownRegister, name)
	} else if !reg.Equals(condition.Register()) {
		return nil, fmt.Errorf("%w: register %s differs from %s",
			register.ErrIncompatibleRegisters, condition.Register(), reg)
	}
	//
	return register.NewCondition(reg, condition.Value())
}

// lookup returns this circuit's register of the given name, if any.
func (p *Circuit) lookup(name string) (*register.Register, bool) {
	reg, ok := p.regs[name]
	return reg, ok
}

// Qasm returns the OpenQASM 2.0 text of this circuit: the header, each
// register declaration in insertion order, then each instruction in program
// order.
func (p *Circuit) Qasm() string {
	var builder strings.Builder
	//
	builder.WriteString(Header)
	builder.WriteString("\n")
	//
	for _, reg := range p.order {
		builder.WriteString(reg.Qasm())
		builder.WriteString("\n")
	}
	//
	for _, instruction := range p.data {
		builder.WriteString(instruction.Qasm())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func (p *Circuit) String() string {
	return p.Qasm()
}
