package diff

import (
	"sort"

	"github.com/oneconcern/datagit/pkg/errors"
	"github.com/oneconcern/datagit/pkg/value"
)

// ErrIncompatiblePatch is returned when a patch does not fit the value it is applied to
var ErrIncompatiblePatch = errors.New("patch is incompatible with base value")

// Apply a diff to a base value, returning the patched value.
//
// Removed entries are dropped first (list positions from the highest down),
// then updates are applied, then appended entries are inserted (list positions in
// ascending order, past the end of the list meaning append).
//
// Removing an entry which is already absent is a no-op.
func Apply(base value.Value, d Diff) (value.Value, error) {
	switch d.Kind {
	case NoChange:
		return base, nil
	case Replace:
		return d.Value, nil
	case Composite:
	default:
		return value.Value{}, ErrIncompatiblePatch.Wrapf("unknown diff kind %d", d.Kind)
	}

	if base.Kind() != d.Container {
		return value.Value{}, ErrIncompatiblePatch.Wrapf("expected a %s, got a %s", d.Container, base.Kind())
	}

	if d.Container == value.KindList {
		return applyList(base, d)
	}
	return applyMap(base, d)
}

func applyMap(base value.Value, d Diff) (value.Value, error) {
	entries := base.Entries()

	for s := range d.Removed {
		if s.IsIndex() {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot remove index %s from a map", s)
		}
		delete(entries, s.Key())
	}

	for s, nested := range d.Updated {
		if s.IsIndex() {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot update index %s in a map", s)
		}
		current, ok := entries[s.Key()]
		if !ok {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot update missing key %s", s)
		}
		patched, err := Apply(current, nested)
		if err != nil {
			return value.Value{}, err
		}
		entries[s.Key()] = patched
	}

	for s, v := range d.Appended {
		if s.IsIndex() {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot append index %s to a map", s)
		}
		entries[s.Key()] = v
	}

	return value.Map(entries), nil
}

func applyList(base value.Value, d Diff) (value.Value, error) {
	items := base.Items()

	removed, err := indices(d.Removed)
	if err != nil {
		return value.Value{}, err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))
	for _, i := range removed {
		if i >= len(items) {
			continue
		}
		items = append(items[:i], items[i+1:]...)
	}

	for s, nested := range d.Updated {
		if !s.IsIndex() {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot update key %s in a list", s)
		}
		i := s.Index()
		if i < 0 || i >= len(items) {
			return value.Value{}, ErrIncompatiblePatch.Wrapf("cannot update index %d in a list of length %d", i, len(items))
		}
		patched, err := Apply(items[i], nested)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = patched
	}

	appended, err := indices(d.Appended)
	if err != nil {
		return value.Value{}, err
	}
	sort.Ints(appended)
	for _, i := range appended {
		v := d.Appended[Index(i)]
		if i >= len(items) {
			items = append(items, v)
			continue
		}
		items = append(items, value.Value{})
		copy(items[i+1:], items[i:])
		items[i] = v
	}

	return value.List(items...), nil
}

func indices(m map[Step]value.Value) ([]int, error) {
	out := make([]int, 0, len(m))
	for s := range m {
		if !s.IsIndex() || s.Index() < 0 {
			return nil, ErrIncompatiblePatch.Wrapf("invalid list position %s", s)
		}
		out = append(out, s.Index())
	}
	return out, nil
}

// Subtract drops from d the edits that applied performs identically.
//
// Two diffs computed against the same base and free of conflicts are folded by
// applying the first, then the second minus the first: edits made on both sides
// land once.
func Subtract(d, applied Diff) Diff {
	switch {
	case d.IsNoChange() || applied.IsNoChange():
		return d
	case d.Kind == Replace || applied.Kind == Replace:
		if d.Equal(applied) {
			return None()
		}
		return d
	case d.Container != applied.Container:
		return d
	}

	rest := NewComposite(d.Container)
	for s, v := range d.Appended {
		if done, ok := applied.Appended[s]; ok && value.Equal(v, done) {
			continue
		}
		rest.Appended[s] = v
	}
	for s, v := range d.Removed {
		if done, ok := applied.Removed[s]; ok && value.Equal(v, done) {
			continue
		}
		rest.Removed[s] = v
	}
	for s, nested := range d.Updated {
		if done, ok := applied.Updated[s]; ok {
			nested = Subtract(nested, done)
		}
		if !nested.IsNoChange() {
			rest.Updated[s] = nested
		}
	}

	if rest.Empty() {
		return None()
	}
	return rest
}
