package usecase

import (
	"sync/atomic"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/clause"
)

// ClauseIndexHolder hands a read-only clause index to concurrent query
// paths. Rebuilds swap in a complete replacement index; readers never
// observe a partially built one.
type ClauseIndexHolder struct {
	ptr atomic.Pointer[clause.Index]
}

func NewClauseIndexHolder(initial *clause.Index) *ClauseIndexHolder {
	h := &ClauseIndexHolder{}
	if initial == nil {
		initial = clause.NewIndex(nil)
	}
	h.ptr.Store(initial)
	return h
}

func (h *ClauseIndexHolder) Get() *clause.Index {
	return h.ptr.Load()
}

func (h *ClauseIndexHolder) Swap(next *clause.Index) {
	if next == nil {
		return
	}
	h.ptr.Store(next)
}
