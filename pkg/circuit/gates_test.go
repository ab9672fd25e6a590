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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantaleap/go-qwire/pkg/register"
)

func TestStandardRegistry(t *testing.T) {
	defs := Standard()
	//
	tests := []struct {
		name   string
		qubits int
		clbits uint
		params uint
	}{
		{"U", 1, 0, 3},
		{"CX", 2, 0, 0},
		{"measure", 1, 1, 0},
		{"reset", 1, 0, 0},
		{"barrier", -1, 0, 0},
		{"cx", 2, 0, 0},
		{"h", 1, 0, 0},
		{"rz", 1, 0, 1},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := defs.Definition(tt.name)
			assert.True(t, ok, "missing definition")
			assert.Equal(t, tt.qubits, def.Qubits)
			assert.Equal(t, tt.clbits, def.Clbits)
			assert.Equal(t, tt.params, def.Params)
		})
	}
}

func TestDecompositionLazyCaching(t *testing.T) {
	defs := Standard()
	// Builtins are opaque.
	template, err := defs.Decomposition("U")
	assert.NoError(t, err)
	assert.Nil(t, template)
	// Standard gates decompose, and the template is built once per name.
	first, err := defs.Decomposition("cx")
	assert.NoError(t, err)
	assert.NotNil(t, first)
	//
	second, err := defs.Decomposition("cx")
	assert.NoError(t, err)
	assert.Same(t, first, second, "template must be cached")
	// Unknown names fail.
	_, err = defs.Decomposition("nope")
	assert.ErrorIs(t, err, ErrUnknownGate)
}

func TestDecompositionTemplates(t *testing.T) {
	defs := Standard()
	// cx decomposes into exactly one CX over a two-qubit placeholder.
	template, err := defs.Decomposition("cx")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), template.Size())
	//
	ops := template.OpNodes()
	assert.Equal(t, "CX", template.Node(ops[0]).Op().Name)
	// h decomposes into U(pi/2, 0, pi).
	template, err = defs.Decomposition("h")
	assert.NoError(t, err)
	//
	ops = template.OpNodes()
	op := template.Node(ops[0]).Op()
	assert.Equal(t, "U", op.Name)
	assert.Equal(t, []float64{math.Pi / 2, 0, math.Pi}, op.Params)
}

func TestInverse_SelfInverse(t *testing.T) {
	defs := Standard()
	q := register.NewQuantum("q", 2)
	circ, _ := New(q)
	//
	set, err := circ.Cx(q.MustBit(0), q.MustBit(1))
	assert.NoError(t, err)
	//
	inverse, err := set.First().Inverse(defs)
	assert.NoError(t, err)
	assert.Equal(t, "cx", inverse.Name())
	assert.Equal(t, set.First().Qargs(), inverse.Qargs())
}

func TestInverse_Unitary(t *testing.T) {
	defs := Standard()
	q := register.NewQuantum("q", 1)
	circ, _ := New(q)
	//
	set, err := circ.U(0.1, 0.2, 0.3, q.MustBit(0))
	assert.NoError(t, err)
	// U(theta, phi, lambda)^-1 = U(-theta, -lambda, -phi).
	inverse, err := set.First().Inverse(defs)
	assert.NoError(t, err)
	assert.Equal(t, "U", inverse.Name())
	assert.Equal(t, []float64{-0.1, -0.3, -0.2}, inverse.Params())
}

func TestInverse_Dagger(t *testing.T) {
	defs := Standard()
	q := register.NewQuantum("q", 1)
	circ, _ := New(q)
	//
	set, _ := circ.S(q.MustBit(0))
	//
	inverse, err := set.First().Inverse(defs)
	assert.NoError(t, err)
	assert.Equal(t, "sdg", inverse.Name())
	//
	set, _ = circ.Rz(0.5, q.MustBit(0))
	inverse, err = set.First().Inverse(defs)
	assert.NoError(t, err)
	assert.Equal(t, []float64{-0.5}, inverse.Params())
}

func TestInverse_Irreversible(t *testing.T) {
	defs := Standard()
	q := register.NewQuantum("q", 1)
	c := register.NewClassical("c", 1)
	circ, _ := New(q, c)
	//
	set, err := circ.Measure(q.MustBit(0), c.MustBit(0))
	assert.NoError(t, err)
	//
	_, err = set.First().Inverse(defs)
	assert.ErrorIs(t, err, ErrNotInvertible)
}

func TestCircuitInverse(t *testing.T) {
	defs := Standard()
	q := register.NewQuantum("q", 2)
	circ, _ := New(q)
	//
	circ.H(q.MustBit(0))
	circ.S(q.MustBit(0))
	circ.Cx(q.MustBit(0), q.MustBit(1))
	// Inverse applies inverted gates in reverse order.
	inverted, err := circ.Inverse(defs)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), inverted.Len())
	assert.Equal(t, "cx", inverted.At(0).Name())
	assert.Equal(t, "sdg", inverted.At(1).Name())
	assert.Equal(t, "h", inverted.At(2).Name())
	// The receiver is untouched.
	assert.Equal(t, uint(3), circ.Len())
	assert.Equal(t, "h", circ.At(0).Name())
}

func TestRegistryDefine(t *testing.T) {
	defs := NewRegistry()
	//
	err := defs.Define("g", Definition{Qubits: 1})
	assert.NoError(t, err)
	// Redefinition fails.
	err = defs.Define("g", Definition{Qubits: 2})
	assert.Error(t, err)
	//
	def, ok := defs.Definition("g")
	assert.True(t, ok)
	assert.Equal(t, 1, def.Qubits)
}
