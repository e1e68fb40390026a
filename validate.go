package ke220

import "cmp"

// InRange reports whether min <= v <= max.
func InRange[T cmp.Ordered](v, min, max T) bool {
	return v >= min && v <= max
}

// ValidateChannel reports whether ch is a channel the module accepts.
func ValidateChannel(ch int) bool {
	return InRange(ch, 0, MaxChannel)
}
