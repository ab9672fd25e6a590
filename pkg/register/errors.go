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

import "errors"

// Validation failures surfaced when building or combining circuits and DAGs.
// All validation is eager: an operation either succeeds completely, or fails
// with one of these kinds (wrapped with context) and leaves prior state
// untouched.  Callers discriminate with errors.Is.
var (
	// ErrDuplicateRegisterName signals an add / declare using a name already
	// present in the target circuit or DAG.
	ErrDuplicateRegisterName = errors.New("register name already exists")
	// ErrExpectedRegister signals a non-register value supplied where a
	// register is required.
	ErrExpectedRegister = errors.New("expected a register")
	// ErrIncompatibleRegisters signals a combine / extend against a circuit
	// whose registers are not all present (by name, size and kind) in the
	// receiver.
	ErrIncompatibleRegisters = errors.New("circuits are not compatible")
	// ErrUnknownRegister signals a bit reference or condition naming a
	// register not declared in the target representation.
	ErrUnknownRegister = errors.New("register not declared")
	// ErrWrongRegisterKind signals a quantum operand supplied where a
	// classical one is required, or vice versa.
	ErrWrongRegisterKind = errors.New("wrong register kind")
	// ErrOutOfRangeBit signals a bit index outside the register bounds.
	ErrOutOfRangeBit = errors.New("bit index out of range")
	// ErrDuplicateQubitArgument signals a repeated bit reference within one
	// instruction's quantum operands.
	ErrDuplicateQubitArgument = errors.New("duplicate qubit arguments")
	// ErrSizeMismatch signals a broadcast application over registers of
	// unequal size.
	ErrSizeMismatch = errors.New("register sizes do not match")
)
