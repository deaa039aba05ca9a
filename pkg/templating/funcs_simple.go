package templating

import "reflect"

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}

// isSet returns true if a value is not its zero value. A nil pointer is not
// set, a pointer to a zero value is.
func isSet(val any) bool {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return false
	}
	return !v.IsZero()
}
