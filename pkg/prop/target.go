package prop

// IdealInt returns the value c prefers: the exact or ideal value, the
// Ideal of a range, or the first listed option.
func IdealInt(c IntConstraint) (int, bool) {
	switch v := c.(type) {
	case nil:
		return 0, false
	case IntRanged:
		if v.Ideal != 0 {
			return v.Ideal, true
		}
		return 0, false
	case IntOneOf:
		if len(v) > 0 {
			return v[0], true
		}
		return 0, false
	default:
		return c.Value()
	}
}

// MaxInt returns the upper bound of c, if it has one.
func MaxInt(c IntConstraint) (int, bool) {
	switch v := c.(type) {
	case nil:
		return 0, false
	case IntRanged:
		return v.Max, v.Max != 0
	case IntExact:
		return int(v), true
	case IntOneOf:
		var max int
		for _, i := range v {
			if i > max {
				max = i
			}
		}
		return max, max != 0
	default:
		return 0, false
	}
}

// IdealFloat returns the value c prefers: the exact or ideal value, the
// Ideal of a range, or the first listed option.
func IdealFloat(c FloatConstraint) (float32, bool) {
	switch v := c.(type) {
	case nil:
		return 0, false
	case FloatRanged:
		if v.Ideal != 0 {
			return v.Ideal, true
		}
		return 0, false
	case FloatOneOf:
		if len(v) > 0 {
			return v[0], true
		}
		return 0, false
	default:
		return c.Value()
	}
}

// MaxFloat returns the upper bound of c, if it has one.
func MaxFloat(c FloatConstraint) (float32, bool) {
	switch v := c.(type) {
	case nil:
		return 0, false
	case FloatRanged:
		return v.Max, v.Max != 0
	case FloatExact:
		return float32(v), true
	default:
		return 0, false
	}
}
