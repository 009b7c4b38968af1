package utils

import "github.com/spf13/cast"

// ToBool reports a value's truthiness for flags such as draft, accepting
// booleans and their common string spellings.
func ToBool(a any) bool {
	v, err := cast.ToBoolE(a)
	return err == nil && v
}

// ToString returns a as a string, or "" for non-string values.
func ToString(a any) string {
	v, ok := a.(string)
	if !ok {
		return ""
	}
	return v
}
