package value

// With returns a copy of a map with the entry set
func (v Value) With(key string, entry Value) (Value, error) {
	if v.kind != KindMap {
		return Value{}, ErrKindMismatch.Wrapf("cannot set key %q on a %s", key, v.kind)
	}
	m := v.Entries()
	m[key] = entry
	return Value{kind: KindMap, m: m}, nil
}

// Without returns a copy of a map without the entry. Removing a missing key is a no-op.
func (v Value) Without(key string) (Value, error) {
	if v.kind != KindMap {
		return Value{}, ErrKindMismatch.Wrapf("cannot remove key %q from a %s", key, v.kind)
	}
	m := v.Entries()
	delete(m, key)
	return Value{kind: KindMap, m: m}, nil
}

// Append returns a copy of a list with items appended
func (v Value) Append(items ...Value) (Value, error) {
	if v.kind != KindList {
		return Value{}, ErrKindMismatch.Wrapf("cannot append to a %s", v.kind)
	}
	l := make([]Value, 0, len(v.list)+len(items))
	l = append(l, v.list...)
	l = append(l, items...)
	return Value{kind: KindList, list: l}, nil
}

// SetIndex returns a copy of a list with the i-th item replaced
func (v Value) SetIndex(i int, item Value) (Value, error) {
	if v.kind != KindList {
		return Value{}, ErrKindMismatch.Wrapf("cannot set index %d on a %s", i, v.kind)
	}
	if i < 0 || i >= len(v.list) {
		return Value{}, ErrKindMismatch.Wrapf("index %d out of range [0:%d]", i, len(v.list))
	}
	l := v.Items()
	l[i] = item
	return Value{kind: KindList, list: l}, nil
}

// RemoveIndex returns a copy of a list without the i-th item
func (v Value) RemoveIndex(i int) (Value, error) {
	if v.kind != KindList {
		return Value{}, ErrKindMismatch.Wrapf("cannot remove index %d from a %s", i, v.kind)
	}
	if i < 0 || i >= len(v.list) {
		return Value{}, ErrKindMismatch.Wrapf("index %d out of range [0:%d]", i, len(v.list))
	}
	l := make([]Value, 0, len(v.list)-1)
	l = append(l, v.list[:i]...)
	l = append(l, v.list[i+1:]...)
	return Value{kind: KindList, list: l}, nil
}

// InsertIndex returns a copy of a list with an item inserted at position i.
// Positions past the end append.
func (v Value) InsertIndex(i int, item Value) (Value, error) {
	if v.kind != KindList {
		return Value{}, ErrKindMismatch.Wrapf("cannot insert index %d into a %s", i, v.kind)
	}
	if i < 0 {
		return Value{}, ErrKindMismatch.Wrapf("negative index %d", i)
	}
	if i > len(v.list) {
		i = len(v.list)
	}
	l := make([]Value, 0, len(v.list)+1)
	l = append(l, v.list[:i]...)
	l = append(l, item)
	l = append(l, v.list[i:]...)
	return Value{kind: KindList, list: l}, nil
}
