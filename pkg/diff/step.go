package diff

import (
	"sort"
	"strconv"
)

// Step addresses an entry in a container: a map key or a list index
type Step struct {
	key     string
	index   int
	isIndex bool
}

// Key step into a map
func Key(k string) Step { return Step{key: k} }

// Index step into a list
func Index(i int) Step { return Step{index: i, isIndex: true} }

// IsIndex tells if this step is a list index
func (s Step) IsIndex() bool { return s.isIndex }

// Key of a map step
func (s Step) Key() string { return s.key }

// Index of a list step
func (s Step) Index() int { return s.index }

func (s Step) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return strconv.Quote(s.key)
}

func less(a, b Step) bool {
	if a.isIndex != b.isIndex {
		return a.isIndex
	}
	if a.isIndex {
		return a.index < b.index
	}
	return a.key < b.key
}

func sortSteps(steps []Step) []Step {
	sort.Slice(steps, func(i, j int) bool { return less(steps[i], steps[j]) })
	return steps
}
