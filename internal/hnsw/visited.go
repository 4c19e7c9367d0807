package hnsw

// visitMarks records which node ids a search has reached. A node counts as
// visited when its mark equals the current round, so starting a new round
// is a single increment instead of a clear.
type visitMarks struct {
	marks []uint32
	round uint32
}

// begin starts a new round covering ids [0, n).
func (v *visitMarks) begin(n int) {
	if n > len(v.marks) {
		v.marks = append(v.marks, make([]uint32, n-len(v.marks))...)
	}

	v.round++
	if v.round == 0 {
		// Wrapped: stale marks from 2^32 rounds ago would read as current.
		clear(v.marks)
		v.round = 1
	}
}

func (v *visitMarks) visit(id uint32) {
	v.marks[id] = v.round
}

func (v *visitMarks) seen(id uint32) bool {
	return int(id) < len(v.marks) && v.marks[id] == v.round
}
