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
	"fmt"
	"math"

	"github.com/quantaleap/go-qwire/pkg/dag"
	"github.com/quantaleap/go-qwire/pkg/register"
)

var (
	// ErrUnknownGate signals a gate name with no definition in the registry
	// consulted.
	ErrUnknownGate = errors.New("unknown gate")
	// ErrNotInvertible signals an inversion request against an irreversible
	// operation (measurement, reset, barrier).
	ErrNotInvertible = errors.New("operation is not invertible")
)

// Definition describes one named operation: its fixed arity, its inversion
// rule, and an optional builder for its decomposition template.  A definition
// without a decomposition builder is an opaque primitive (the builtin set).
type Definition struct {
	// Number of qubit operands, or dag.Variadic.
	Qubits int
	// Number of classical operands.
	Clbits uint
	// Number of real-valued parameters.
	Params uint
	// Inverse maps this gate's parameters to the name and parameters of its
	// inverse.  A nil rule marks an irreversible operation.
	Inverse func(params []float64) (string, []float64, error)
	// Decompose builds the decomposition template: a fixed small DAG over a
	// placeholder register expressing this gate in terms of more primitive
	// named operations.  Parameters appearing in the template are
	// placeholders, bound at instantiation.
	Decompose func() (*dag.DAG, error)
}

// Registry maps gate names to their definitions, and memoises decomposition
// templates so each is computed once per distinct gate name.  Conversions
// take an explicit registry handle; there is no process-global table.
type Registry struct {
	defs map[string]Definition
	// Names in definition order.
	order []string
	// Lazily built decomposition templates.
	templates map[string]*dag.DAG
}

// NewRegistry constructs an empty gate registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:      make(map[string]Definition),
		templates: make(map[string]*dag.DAG),
	}
}

// Define adds a gate definition under the given name.  Redefining an existing
// name fails.
func (p *Registry) Define(name string, def Definition) error {
	if _, ok := p.defs[name]; ok {
		return fmt.Errorf("gate %q already defined", name)
	}
	//
	p.defs[name] = def
	p.order = append(p.order, name)
	//
	return nil
}

// Definition returns the definition registered under the given name, if any.
func (p *Registry) Definition(name string) (Definition, bool) {
	def, ok := p.defs[name]
	return def, ok
}

// Names returns all defined gate names in definition order.
func (p *Registry) Names() []string {
	return append([]string(nil), p.order...)
}

// Decomposition returns the decomposition template of the given gate,
// building it on first use and returning the cached template thereafter.  An
// opaque primitive yields a nil template.
func (p *Registry) Decomposition(name string) (*dag.DAG, error) {
	def, ok := p.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	} else if def.Decompose == nil {
		return nil, nil
	}
	//
	if template, ok := p.templates[name]; ok {
		return template, nil
	}
	//
	template, err := def.Decompose()
	if err != nil {
		return nil, err
	}
	//
	p.templates[name] = template
	//
	return template, nil
}

// selfInverse is the inversion rule of gates which are their own inverse.
func selfInverse(name string) func([]float64) (string, []float64, error) {
	return func(params []float64) (string, []float64, error) {
		return name, append([]float64(nil), params...), nil
	}
}

// dagger is the inversion rule of parameter-free gates whose inverse is a
// different named gate.
func dagger(name string) func([]float64) (string, []float64, error) {
	return func([]float64) (string, []float64, error) {
		return name, nil, nil
	}
}

// uInverse inverts the generic single-qubit unitary: the inverse of
// U(theta, phi, lambda) is U(-theta, -lambda, -phi).
func uInverse(params []float64) (string, []float64, error) {
	return "U", []float64{-params[0], -params[2], -params[1]}, nil
}

// unitary builds a single-qubit decomposition template applying U with the
// given placeholder angles.
func unitary(theta float64, phi float64, lambda float64) func() (*dag.DAG, error) {
	return func() (*dag.DAG, error) {
		template := dag.New()
		//
		if err := template.DeclareQuantumRegister("q", 1); err != nil {
			return nil, err
		} else if err := template.DeclareBasisElement("U", 1, 0, 3); err != nil {
			return nil, err
		}
		//
		q, _ := template.Register("q")
		_, err := template.AppendOperation("U", []register.BitRef{q.MustBit(0)},
			nil, []float64{theta, phi, lambda}, nil)
		//
		return template, err
	}
}

// controlledNot builds the two-qubit decomposition template of the cx gate in
// terms of the CX primitive.
func controlledNot() (*dag.DAG, error) {
	template := dag.New()
	//
	if err := template.DeclareQuantumRegister("q", 2); err != nil {
		return nil, err
	} else if err := template.DeclareBasisElement("CX", 2, 0, 0); err != nil {
		return nil, err
	}
	//
	q, _ := template.Register("q")
	_, err := template.AppendOperation("CX",
		[]register.BitRef{q.MustBit(0), q.MustBit(1)}, nil, nil, nil)
	//
	return template, err
}

// Standard returns a registry holding the builtin structural primitives (the
// minimal always-available set: U, CX, measure, reset and barrier) together
// with the standard gate library defined over them.
func Standard() *Registry {
	p := NewRegistry()
	// Builtin primitives.  These are opaque: they have no decomposition.
	p.mustDefine("U", Definition{1, 0, 3, uInverse, nil})
	p.mustDefine("CX", Definition{2, 0, 0, selfInverse("CX"), nil})
	p.mustDefine("measure", Definition{1, 1, 0, nil, nil})
	p.mustDefine("reset", Definition{1, 0, 0, nil, nil})
	p.mustDefine("barrier", Definition{dag.Variadic, 0, 0, nil, nil})
	// Standard gates.
	p.mustDefine("cx", Definition{2, 0, 0, selfInverse("cx"), controlledNot})
	p.mustDefine("x", Definition{1, 0, 0, selfInverse("x"),
		unitary(math.Pi, 0, math.Pi)})
	p.mustDefine("y", Definition{1, 0, 0, selfInverse("y"),
		unitary(math.Pi, math.Pi/2, math.Pi/2)})
	p.mustDefine("z", Definition{1, 0, 0, selfInverse("z"),
		unitary(0, 0, math.Pi)})
	p.mustDefine("h", Definition{1, 0, 0, selfInverse("h"),
		unitary(math.Pi/2, 0, math.Pi)})
	p.mustDefine("s", Definition{1, 0, 0, dagger("sdg"),
		unitary(0, 0, math.Pi/2)})
	p.mustDefine("sdg", Definition{1, 0, 0, dagger("s"),
		unitary(0, 0, -math.Pi/2)})
	p.mustDefine("t", Definition{1, 0, 0, dagger("tdg"),
		unitary(0, 0, math.Pi/4)})
	p.mustDefine("tdg", Definition{1, 0, 0, dagger("t"),
		unitary(0, 0, -math.Pi/4)})
	p.mustDefine("rz", Definition{1, 0, 1, rzInverse, unitary(0, 0, 0)})
	//
	return p
}

// rzInverse inverts a z-rotation by negating its angle.
func rzInverse(params []float64) (string, []float64, error) {
	return "rz", []float64{-params[0]}, nil
}

func (p *Registry) mustDefine(name string, def Definition) {
	if err := p.Define(name, def); err != nil {
		panic(err.Error())
	}
}
