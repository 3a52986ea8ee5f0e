package store

import "github.com/abisalde/povertyline-client/internal/model"

// ResourceTable is the normalized resource cache every view reads from.
// It is copy-on-write: writers get a fresh map and older snapshots keep
// theirs.
type ResourceTable struct {
	byID map[int64]model.Resource
}

func (t ResourceTable) Get(id int64) (model.Resource, bool) {
	r, ok := t.byID[id]
	if !ok {
		return model.Resource{}, false
	}
	return r.Clone(), true
}

func (t ResourceTable) Len() int { return len(t.byID) }

func (t ResourceTable) clone(extra int) map[int64]model.Resource {
	m := make(map[int64]model.Resource, len(t.byID)+extra)
	for k, v := range t.byID {
		m[k] = v
	}
	return m
}

func (t ResourceTable) with(resources ...model.Resource) ResourceTable {
	if len(resources) == 0 {
		return t
	}
	m := t.clone(len(resources))
	for _, r := range resources {
		m[r.ID] = r.Clone()
	}
	return ResourceTable{byID: m}
}

func (t ResourceTable) without(ids ...int64) ResourceTable {
	m := t.clone(0)
	for _, id := range ids {
		delete(m, id)
	}
	return ResourceTable{byID: m}
}

// retain keeps only the ids in keep.
func (t ResourceTable) retain(keep map[int64]struct{}) ResourceTable {
	m := make(map[int64]model.Resource, len(keep))
	for id := range keep {
		if r, ok := t.byID[id]; ok {
			m[id] = r
		}
	}
	if len(m) == len(t.byID) {
		return t
	}
	return ResourceTable{byID: m}
}

// resolve materializes a view. Ids missing from the table are skipped.
func (t ResourceTable) resolve(ids []int64) []model.Resource {
	out := make([]model.Resource, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.byID[id]; ok {
			out = append(out, r.Clone())
		}
	}
	return out
}

func idsOf(resources []model.Resource) []int64 {
	ids := make([]int64, 0, len(resources))
	seen := make(map[int64]struct{}, len(resources))
	for _, r := range resources {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	return ids
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendID(ids []int64, id int64) []int64 {
	if containsID(ids, id) {
		return ids
	}
	out := make([]int64, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

func removeID(ids []int64, id int64) []int64 {
	if !containsID(ids, id) {
		return ids
	}
	out := make([]int64, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// filterIDs returns ids whose entity exists and satisfies keep. The input
// is returned untouched when nothing is dropped.
func (t ResourceTable) filterIDs(ids []int64, keep func(model.Resource) bool) []int64 {
	drop := false
	for _, id := range ids {
		r, ok := t.byID[id]
		if !ok || !keep(r) {
			drop = true
			break
		}
	}
	if !drop {
		return ids
	}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.byID[id]; ok && keep(r) {
			out = append(out, id)
		}
	}
	return out
}
