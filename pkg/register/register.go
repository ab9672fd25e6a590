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
package register

import (
	"fmt"
)

// Kind distinguishes quantum registers from classical registers.  The purpose
// of the wrapper is to avoid confusion between raw uint8 values and things
// which are expected to identify a register kind.
type Kind struct {
	kind uint8
}

var (
	// QUANTUM signals a register whose bits are qubits.
	QUANTUM = Kind{uint8(0)}
	// CLASSICAL signals a register whose bits are classical bits.
	CLASSICAL = Kind{uint8(1)}
)

// IsQuantum determines whether or not this is the quantum kind.
func (p Kind) IsQuantum() bool {
	return p == QUANTUM
}

// IsClassical determines whether or not this is the classical kind.
func (p Kind) IsClassical() bool {
	return p == CLASSICAL
}

func (p Kind) String() string {
	if p.IsQuantum() {
		return "quantum"
	}
	//
	return "classical"
}

// Register represents a named, sized, ordered collection of bits of one kind.
// Registers are immutable after creation; a register added to a circuit (or
// declared in a DAG) is referenced by every bit reference that uses it, never
// copied.
type Register struct {
	// Given name of this register.
	name string
	// Number of bits held in this register.
	size uint
	// Kind of register (quantum / classical).
	kind Kind
}

// New constructs a new register of the given kind with the given name and
// size.  An empty register is malformed, hence size must be strictly positive.
func New(name string, size uint, kind Kind) *Register {
	if size == 0 {
		panic(fmt.Sprintf("register %q has zero size", name))
	}
	//
	return &Register{name, size, kind}
}

// NewQuantum constructs a new quantum register with the given name and size.
func NewQuantum(name string, size uint) *Register {
	return New(name, size, QUANTUM)
}

// NewClassical constructs a new classical register with the given name and
// size.
func NewClassical(name string, size uint) *Register {
	return New(name, size, CLASSICAL)
}

// Name returns the given name of this register.
func (p *Register) Name() string {
	return p.name
}

// Size returns the number of bits held in this register.
func (p *Register) Size() uint {
	return p.size
}

// Kind returns the kind (quantum / classical) of this register.
func (p *Register) Kind() Kind {
	return p.kind
}

// IsQuantum determines whether or not this is a quantum register.
func (p *Register) IsQuantum() bool {
	return p.kind.IsQuantum()
}

// IsClassical determines whether or not this is a classical register.
func (p *Register) IsClassical() bool {
	return p.kind.IsClassical()
}

// Equals determines whether two registers are considered the same register for
// compatibility purposes.  Observe this compares name, size and kind rather
// than identity, since two representations of the same program hold distinct
// register objects describing the same register.
func (p *Register) Equals(other *Register) bool {
	return other != nil && p.name == other.name && p.size == other.size &&
		p.kind == other.kind
}

// CheckRange checks that a given bit index lies within this register.
func (p *Register) CheckRange(index uint) error {
	if index >= p.size {
		return fmt.Errorf("%w: %s[%d] (size %d)", ErrOutOfRangeBit,
			p.name, index, p.size)
	}
	//
	return nil
}

// Bit constructs a reference to the given bit of this register, failing if the
// index is out of range.
func (p *Register) Bit(index uint) (BitRef, error) {
	if err := p.CheckRange(index); err != nil {
		return BitRef{}, err
	}
	//
	return BitRef{p, index}, nil
}

// MustBit constructs a reference to the given bit of this register, panicking
// if the index is out of range.  This is intended for indices already known to
// be valid, such as broadcast expansion.
func (p *Register) MustBit(index uint) BitRef {
	ref, err := p.Bit(index)
	if err != nil {
		panic(err.Error())
	}
	//
	return ref
}

// Qasm returns the OpenQASM 2.0 declaration of this register.
func (p *Register) Qasm() string {
	if p.IsQuantum() {
		return fmt.Sprintf("qreg %s[%d];", p.name, p.size)
	}
	//
	return fmt.Sprintf("creg %s[%d];", p.name, p.size)
}

func (p *Register) String() string {
	return fmt.Sprintf("%s[%d]", p.name, p.size)
}
