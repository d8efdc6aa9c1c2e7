// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mesh

// CycleBasis returns a cycle basis of g: one simple cycle per non-tree edge
// of a depth-first spanning forest (Paton's algorithm). Each cycle lists its
// vertex ids in loop order.
//
// Roots are taken from the highest unvisited id downwards and neighbours are
// visited in insertion order, so the result only depends on the input order.
func CycleBasis(g *Graph) [][]int {
	n := g.NumVertices()
	visited := make([]bool, n+1)
	var cycles [][]int

	for root := n; root >= 1; root-- {
		if visited[root] {
			continue
		}
		pred := map[int]int{root: root}
		used := map[int]map[int]bool{root: {}}
		stack := []int{root}

		for len(stack) > 0 {
			z := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			zused := used[z]
			for _, nbr := range g.Neighbors(z) {
				nused, seen := used[nbr]
				switch {
				case !seen:
					pred[nbr] = z
					stack = append(stack, nbr)
					used[nbr] = map[int]bool{z: true}
				case !zused[nbr]:
					// Close the loop nbr -> z -> ... -> p, where p is the
					// first ancestor of z that has already reached nbr.
					cycle := []int{nbr, z}
					p := pred[z]
					for !nused[p] {
						cycle = append(cycle, p)
						p = pred[p]
					}
					cycle = append(cycle, p)
					cycles = append(cycles, cycle)
					nused[z] = true
				}
			}
		}
		for v := range pred {
			visited[v] = true
		}
	}
	return cycles
}
