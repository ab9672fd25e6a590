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
package dag

import "container/heap"

// TopologicalOrder returns the ids of all nodes (terminals included) in a
// linear order consistent with every dependency edge.  Ties are broken by
// smallest node id, which makes the order deterministic and, since ids are
// allocated in append order, reproduces the original program order whenever
// the edges permit it.
func (p *DAG) TopologicalOrder() []NodeId {
	var (
		order   = make([]NodeId, 0, len(p.nodes))
		pending = make([]uint, len(p.nodes))
		ready   idHeap
	)
	// Seed with nodes having no dependencies.
	for i := range p.nodes {
		pending[i] = uint(len(p.nodes[i].preds))
		//
		if pending[i] == 0 {
			ready = append(ready, NodeId{uint(i)})
		}
	}
	//
	heap.Init(&ready)
	//
	for ready.Len() > 0 {
		id := heap.Pop(&ready).(NodeId)
		order = append(order, id)
		//
		for _, succ := range p.nodes[id.index].succs {
			pending[succ.index]--
			//
			if pending[succ.index] == 0 {
				heap.Push(&ready, succ)
			}
		}
	}
	// Graphs built through AppendOperation are acyclic by construction.
	if len(order) != len(p.nodes) {
		panic("dependency graph contains a cycle")
	}
	//
	return order
}

// Depth returns the length of the longest operation chain, i.e. the number of
// layers a perfectly parallel scheduler would need.
func (p *DAG) Depth() uint {
	var (
		depth  = make([]uint, len(p.nodes))
		result uint
	)
	//
	for _, id := range p.TopologicalOrder() {
		d := depth[id.index]
		//
		if p.nodes[id.index].kind == OPERATION {
			d++
			result = max(result, d)
		}
		//
		for _, succ := range p.nodes[id.index].succs {
			depth[succ.index] = max(depth[succ.index], d)
		}
	}
	//
	return result
}

// idHeap is a min-heap of node ids.
type idHeap []NodeId

func (p idHeap) Len() int           { return len(p) }
func (p idHeap) Less(i, j int) bool { return p[i].index < p[j].index }
func (p idHeap) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *idHeap) Push(x any) {
	*p = append(*p, x.(NodeId))
}

func (p *idHeap) Pop() any {
	old := *p
	n := len(old)
	id := old[n-1]
	*p = old[:n-1]
	//
	return id
}
