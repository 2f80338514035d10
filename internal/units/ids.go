package units

import "strconv"

// ParseHeight reports whether id is a plain non-negative block height, as
// opposed to a block hash.
func ParseHeight(id string) (int64, bool) {
	if id == "" || len(id) > 19 {
		return 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	h, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
