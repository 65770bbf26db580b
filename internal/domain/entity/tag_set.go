package entity

// TagSet is a duplicate-free list of tag ids. Order is kept for display
// but carries no meaning.
type TagSet []string

// NewTagSet builds a set from ids, dropping empty and repeated entries
func NewTagSet(ids ...string) TagSet {
	out := make(TagSet, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is in the set
func (s TagSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of s with id removed
func (s TagSet) Without(id string) TagSet {
	out := make(TagSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle returns s with id removed if present, appended otherwise
func (s TagSet) Toggle(id string) TagSet {
	if s.Contains(id) {
		return s.Without(id)
	}
	out := make(TagSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, id)
}

// Intersects reports whether s and other share at least one id
func (s TagSet) Intersects(other TagSet) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	lookup := make(map[string]struct{}, len(other))
	for _, v := range other {
		lookup[v] = struct{}{}
	}
	for _, v := range s {
		if _, ok := lookup[v]; ok {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (s TagSet) Clone() TagSet {
	if s == nil {
		return TagSet{}
	}
	out := make(TagSet, len(s))
	copy(out, s)
	return out
}
