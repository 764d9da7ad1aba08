package util

import (
	"strconv"
)

// ParseUint converts s to an unsigned integer.
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
