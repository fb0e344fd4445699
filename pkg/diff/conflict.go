package diff

import (
	"github.com/oneconcern/datagit/pkg/value"
	"github.com/samber/lo"
)

// Operation performed by a diff on some path
type Operation uint8

const (
	// OpReplace replaces a whole value
	OpReplace Operation = iota
	// OpAppend adds an entry to a container
	OpAppend
	// OpUpdate patches an existing entry
	OpUpdate
	// OpRemove drops an entry from a container
	OpRemove
)

func (o Operation) String() string {
	switch o {
	case OpReplace:
		return "replace"
	case OpAppend:
		return "append"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Side is the effect of one diff at a conflicting path.
//
// An absent side means this diff did not perform the operation the other side did.
type Side struct {
	Absent bool
	Op     Operation
	Value  value.Value
	Patch  *Diff
}

// Pair holds both sides of a conflicting edit
type Pair struct {
	This  Side
	Other Side
}

// Conflict mirrors the shape of a Diff, with pairs of sides as leaves.
//
// Pair is set when the whole value at this path conflicts.
type Conflict struct {
	Pair     *Pair
	Appended map[Step]*Pair
	Updated  map[Step]*Conflict
	Removed  map[Step]*Pair
}

func newConflict() *Conflict {
	return &Conflict{
		Appended: make(map[Step]*Pair),
		Updated:  make(map[Step]*Conflict),
		Removed:  make(map[Step]*Pair),
	}
}

// Empty tells if no leaf conflict was found
func (c *Conflict) Empty() bool {
	return c == nil || (c.Pair == nil && len(c.Appended) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0)
}

// Leaf is a conflicting pair located by its path from the root value
type Leaf struct {
	Path []Step
	Op   Operation
	Pair *Pair
}

// Leaves flattens a conflict into its conflicting pairs, sorted by path
func (c *Conflict) Leaves() []Leaf {
	var leaves []Leaf
	c.walk(nil, OpReplace, &leaves)
	return leaves
}

func (c *Conflict) walk(path []Step, op Operation, leaves *[]Leaf) {
	if c.Empty() {
		return
	}
	if c.Pair != nil {
		*leaves = append(*leaves, Leaf{Path: path, Op: op, Pair: c.Pair})
	}
	steps := make([]Step, 0, len(c.Appended)+len(c.Updated)+len(c.Removed))
	for s := range c.Appended {
		steps = append(steps, s)
	}
	for s := range c.Updated {
		steps = append(steps, s)
	}
	for s := range c.Removed {
		steps = append(steps, s)
	}
	seen := make(map[Step]struct{}, len(steps))
	for _, s := range sortSteps(steps) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sub := append(append([]Step(nil), path...), s)
		if p, ok := c.Appended[s]; ok {
			*leaves = append(*leaves, Leaf{Path: sub, Op: OpAppend, Pair: p})
		}
		if nested, ok := c.Updated[s]; ok {
			nested.walk(sub, OpUpdate, leaves)
		}
		if p, ok := c.Removed[s]; ok {
			*leaves = append(*leaves, Leaf{Path: sub, Op: OpRemove, Pair: p})
		}
	}
}

// Detect conflicts between two diffs computed against the same base value.
//
// Returns nil when both diffs can be folded onto the base without loss.
// Swapping d1 and d2 swaps the sides of every pair.
func Detect(d1, d2 Diff) *Conflict {
	if d1.IsNoChange() || d2.IsNoChange() {
		return nil
	}

	if d1.Kind == Replace || d2.Kind == Replace || d1.Container != d2.Container {
		if d1.Kind == Replace && d2.Kind == Replace && value.Equal(d1.Value, d2.Value) {
			return nil
		}
		return &Conflict{Pair: &Pair{This: wholeSide(d1), Other: wholeSide(d2)}}
	}

	c := newConflict()
	for _, s := range unionSteps(d1.Steps(), d2.Steps()) {
		for _, e1 := range d1.at(s) {
			for _, e2 := range d2.at(s) {
				c.compare(s, e1, e2)
			}
		}
	}

	if c.Empty() {
		return nil
	}
	return c
}

func (c *Conflict) compare(s Step, this, other Side) {
	if this.Op != other.Op {
		c.record(s, this.Op, &Pair{This: this, Other: Side{Absent: true, Op: this.Op}})
		c.record(s, other.Op, &Pair{This: Side{Absent: true, Op: other.Op}, Other: other})
		return
	}

	switch this.Op {
	case OpUpdate:
		if nested := Detect(*this.Patch, *other.Patch); nested != nil {
			c.Updated[s] = nested
		}
	default:
		if !value.Equal(this.Value, other.Value) {
			c.record(s, this.Op, &Pair{This: this, Other: other})
		}
	}
}

func (c *Conflict) record(s Step, op Operation, p *Pair) {
	switch op {
	case OpAppend:
		c.Appended[s] = p
	case OpRemove:
		c.Removed[s] = p
	case OpUpdate:
		c.Updated[s] = &Conflict{Pair: p}
	}
}

// at lists the operations performed by a composite diff at some step
func (d Diff) at(s Step) []Side {
	var sides []Side
	if v, ok := d.Appended[s]; ok {
		sides = append(sides, Side{Op: OpAppend, Value: v})
	}
	if nested, ok := d.Updated[s]; ok {
		patch := nested
		sides = append(sides, Side{Op: OpUpdate, Patch: &patch})
	}
	if v, ok := d.Removed[s]; ok {
		sides = append(sides, Side{Op: OpRemove, Value: v})
	}
	return sides
}

func wholeSide(d Diff) Side {
	if d.Kind == Replace {
		return Side{Op: OpReplace, Value: d.Value}
	}
	patch := d
	return Side{Op: OpUpdate, Patch: &patch}
}

func unionSteps(a, b []Step) []Step {
	return sortSteps(lo.Union(a, b))
}
