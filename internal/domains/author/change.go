package author

import (
	"sort"

	"github.com/google/uuid"
)

// EqualContent reports whether two authors agree on every mutable
// field. The book list is compared as a strict multiset: order is
// ignored, duplicates are not.
func (a *Author) EqualContent(b *Author) bool {
	return a.Name == b.Name &&
		a.Age == b.Age &&
		a.Nationality == b.Nationality &&
		equalIDSet(a.Books, b.Books)
}

func equalIDSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	as := sortedIDs(a)
	bs := sortedIDs(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sortedIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	sort.Strings(out)
	return out
}
