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

// Package binfile provides the JSON circuit file format used by the command
// line tools.  This is a tooling format for moving circuits between
// invocations; it is not a program text format (OpenQASM emission lives on
// the circuit itself).
package binfile

import (
	"errors"
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/quantaleap/go-qwire/pkg/circuit"
	"github.com/quantaleap/go-qwire/pkg/register"
)

// ErrMalformedFile indicates a circuit file whose register declarations are
// structurally invalid (zero size, unknown kind).
var ErrMalformedFile = errors.New("malformed circuit file")

type jsonRegister struct {
	Name string `json:"name"`
	Size uint   `json:"size"`
	Kind string `json:"kind"`
}

type jsonBit struct {
	Register string `json:"register"`
	Index    uint   `json:"index"`
}

type jsonCondition struct {
	Register string `json:"register"`
	Value    uint64 `json:"value"`
}

type jsonInstruction struct {
	Name      string         `json:"name"`
	Params    []float64      `json:"params,omitempty"`
	Qargs     []jsonBit      `json:"qargs"`
	Cargs     []jsonBit      `json:"cargs,omitempty"`
	Condition *jsonCondition `json:"condition,omitempty"`
}

type jsonCircuit struct {
	Registers    []jsonRegister    `json:"registers"`
	Instructions []jsonInstruction `json:"instructions"`
}

// Encode serialises a circuit: its registers in insertion order, then its
// instructions in program order.
func Encode(circ *circuit.Circuit) ([]byte, error) {
	var file jsonCircuit
	//
	for _, reg := range circ.Registers() {
		file.Registers = append(file.Registers, jsonRegister{
			reg.Name(), reg.Size(), reg.Kind().String()})
	}
	//
	for _, instruction := range circ.Instructions() {
		jinst := jsonInstruction{
			Name:   instruction.Name(),
			Params: instruction.Params(),
			Qargs:  encodeBits(instruction.Qargs()),
			Cargs:  encodeBits(instruction.Cargs()),
		}
		//
		if condition := instruction.Condition(); condition != nil {
			jinst.Condition = &jsonCondition{
				condition.Register().Name(), condition.Value()}
		}
		//
		file.Instructions = append(file.Instructions, jinst)
	}
	//
	return json.MarshalIndent(file, "", "  ")
}

// Decode rebuilds a circuit from its serialised form, revalidating every
// instruction as it is attached.
func Decode(data []byte) (*circuit.Circuit, error) {
	var file jsonCircuit
	//
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	//
	circ, err := circuit.New()
	if err != nil {
		return nil, err
	}
	//
	regs := make(map[string]*register.Register)
	//
	for _, jreg := range file.Registers {
		var reg *register.Register
		//
		if jreg.Size == 0 {
			return nil, fmt.Errorf("%w: register %q has zero size",
				ErrMalformedFile, jreg.Name)
		}
		//
		switch jreg.Kind {
		case "quantum":
			reg = register.NewQuantum(jreg.Name, jreg.Size)
		case "classical":
			reg = register.NewClassical(jreg.Name, jreg.Size)
		default:
			return nil, fmt.Errorf("%w: unknown kind %q for register %q",
				ErrMalformedFile, jreg.Kind, jreg.Name)
		}
		//
		if err := circ.Add(reg); err != nil {
			return nil, err
		}
		//
		regs[reg.Name()] = reg
	}
	//
	for _, jinst := range file.Instructions {
		qargs, err := decodeBits(jinst.Qargs, regs)
		if err != nil {
			return nil, err
		}
		//
		cargs, err := decodeBits(jinst.Cargs, regs)
		if err != nil {
			return nil, err
		}
		//
		var condition *register.Condition
		//
		if jinst.Condition != nil {
			reg, ok := regs[jinst.Condition.Register]
			if !ok {
				return nil, fmt.Errorf("%w: condition register %q",
					register.ErrUnknownRegister, jinst.Condition.Register)
			}
			//
			if condition, err = register.NewCondition(reg,
				jinst.Condition.Value); err != nil {
				return nil, err
			}
		}
		//
		if _, err := circ.Apply(jinst.Name, jinst.Params, qargs, cargs,
			condition); err != nil {
			return nil, err
		}
	}
	//
	return circ, nil
}

func encodeBits(refs []register.BitRef) []jsonBit {
	var bits []jsonBit
	//
	for _, ref := range refs {
		bits = append(bits, jsonBit{ref.Register().Name(), ref.Index()})
	}
	//
	return bits
}

func decodeBits(bits []jsonBit, regs map[string]*register.Register) ([]register.BitRef, error) {
	var refs []register.BitRef
	//
	for _, bit := range bits {
		reg, ok := regs[bit.Register]
		if !ok {
			return nil, fmt.Errorf("%w: %q", register.ErrUnknownRegister,
				bit.Register)
		}
		//
		refs = append(refs, register.NewBitRef(reg, bit.Index))
	}
	//
	return refs, nil
}
