package diff

import (
	"strconv"
)

// Interface renders a diff as plain go values, for display.
//
// NoChange renders as nil, Replace as {"replace": value} and a Composite as
// {"append": {...}, "update": {...}, "remove": {...}} keyed by map key or list position.
func (d Diff) Interface() interface{} {
	switch d.Kind {
	case Replace:
		return map[string]interface{}{"replace": d.Value.Interface()}
	case Composite:
		out := make(map[string]interface{}, 3)
		if len(d.Appended) > 0 {
			m := make(map[string]interface{}, len(d.Appended))
			for s, v := range d.Appended {
				m[stepLabel(s)] = v.Interface()
			}
			out["append"] = m
		}
		if len(d.Updated) > 0 {
			m := make(map[string]interface{}, len(d.Updated))
			for s, nested := range d.Updated {
				m[stepLabel(s)] = nested.Interface()
			}
			out["update"] = m
		}
		if len(d.Removed) > 0 {
			m := make(map[string]interface{}, len(d.Removed))
			for s, v := range d.Removed {
				m[stepLabel(s)] = v.Interface()
			}
			out["remove"] = m
		}
		return out
	default:
		return nil
	}
}

// Interface renders a conflict as plain go values, for display
func (c *Conflict) Interface() interface{} {
	if c.Empty() {
		return nil
	}
	if c.Pair != nil && len(c.Appended) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0 {
		return c.Pair.Interface()
	}
	out := make(map[string]interface{}, 4)
	if c.Pair != nil {
		out["replace"] = c.Pair.Interface()
	}
	if len(c.Appended) > 0 {
		out["append"] = pairsInterface(c.Appended)
	}
	if len(c.Updated) > 0 {
		m := make(map[string]interface{}, len(c.Updated))
		for s, nested := range c.Updated {
			m[stepLabel(s)] = nested.Interface()
		}
		out["update"] = m
	}
	if len(c.Removed) > 0 {
		out["remove"] = pairsInterface(c.Removed)
	}
	return out
}

// Interface renders both sides of a pair
func (p *Pair) Interface() interface{} {
	return map[string]interface{}{
		"this":  p.This.Interface(),
		"other": p.Other.Interface(),
	}
}

// Interface renders one side of a conflict
func (s Side) Interface() interface{} {
	switch {
	case s.Absent:
		return nil
	case s.Patch != nil:
		return map[string]interface{}{s.Op.String(): s.Patch.Interface()}
	default:
		return map[string]interface{}{s.Op.String(): s.Value.Interface()}
	}
}

func pairsInterface(pairs map[Step]*Pair) map[string]interface{} {
	m := make(map[string]interface{}, len(pairs))
	for s, p := range pairs {
		m[stepLabel(s)] = p.Interface()
	}
	return m
}

func stepLabel(s Step) string {
	if s.IsIndex() {
		return strconv.Itoa(s.Index())
	}
	return s.Key()
}
