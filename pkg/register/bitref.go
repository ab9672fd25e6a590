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

import "fmt"

// BitRef identifies one bit of a register as a (register, index) pair.  This
// is a weak reference: the bit reference neither owns the register, nor pins
// the register to any particular circuit or DAG.
type BitRef struct {
	register *Register
	index    uint
}

// NewBitRef constructs a bit reference without checking the index against the
// register bounds.  Use Register.Bit for a checked construction.
func NewBitRef(register *Register, index uint) BitRef {
	return BitRef{register, index}
}

// Register returns the register this reference points into.
func (p BitRef) Register() *Register {
	return p.register
}

// Index returns the bit index within the register.
func (p BitRef) Index() uint {
	return p.index
}

// Check validates this reference, ensuring it points at a register and the
// index lies within that register's bounds.
func (p BitRef) Check() error {
	if p.register == nil {
		return fmt.Errorf("%w: bit reference has no register", ErrExpectedRegister)
	}
	//
	return p.register.CheckRange(p.index)
}

func (p BitRef) String() string {
	if p.register == nil {
		return fmt.Sprintf("?[%d]", p.index)
	}
	//
	return fmt.Sprintf("%s[%d]", p.register.Name(), p.index)
}

// Condition represents a classical control binding: the conditioned operation
// executes only when the current value of the given classical register equals
// the given value.
type Condition struct {
	register *Register
	value    uint64
}

// NewCondition constructs a classical control binding over the given classical
// register.
func NewCondition(register *Register, value uint64) (*Condition, error) {
	if register == nil {
		return nil, fmt.Errorf("%w: condition has no register", ErrExpectedRegister)
	} else if !register.IsClassical() {
		return nil, fmt.Errorf("%w: condition register %s must be classical",
			ErrWrongRegisterKind, register.Name())
	}
	//
	return &Condition{register, value}, nil
}

// Register returns the classical register being tested.
func (p *Condition) Register() *Register {
	return p.register
}

// Value returns the value the classical register is tested against.
func (p *Condition) Value() uint64 {
	return p.value
}

func (p *Condition) String() string {
	return fmt.Sprintf("if(%s==%d)", p.register.Name(), p.value)
}

// Operand abstracts the two forms an operand of a circuit-building call can
// take: a single bit reference (scalar form), or a whole register (broadcast
// form, which fans out index-wise).  This is a closed union.
type Operand interface {
	// Width returns the number of bits this operand fans out over (one for a
	// scalar bit reference).
	Width() uint
	// Select returns the ith bit reference of this operand.
	Select(index uint) BitRef
}

// Width of a scalar operand is always one.
func (p BitRef) Width() uint {
	return uint(1)
}

// Select on a scalar operand ignores the index and returns the reference
// itself.
func (p BitRef) Select(uint) BitRef {
	return p
}

// Width of a register operand is the register size.
func (p *Register) Width() uint {
	return p.size
}

// Select on a register operand returns a reference to its ith bit.
func (p *Register) Select(index uint) BitRef {
	return BitRef{p, index}
}
