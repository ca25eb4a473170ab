package midi

import "container/heap"

// lanePool is the set of lane ids not sounding any pitch, smallest id first.
type lanePool []int

func (p lanePool) Len() int            { return len(p) }
func (p lanePool) Less(i, j int) bool  { return p[i] < p[j] }
func (p lanePool) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *lanePool) Push(x interface{}) { *p = append(*p, x.(int)) }

func (p *lanePool) Pop() interface{} {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}

func (p *lanePool) put(id int) {
	heap.Push(p, id)
}

func (p *lanePool) take() int {
	return heap.Pop(p).(int)
}
