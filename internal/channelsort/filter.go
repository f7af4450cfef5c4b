package channelsort

import "github.com/ginjaninja78/rtsort/internal/types"

// HasData reports whether a row carries anything beyond its row-index
// cell. Rows without data are dropped before sorting.
func HasData(row types.Row) bool {
	if len(row) < 2 {
		return false
	}
	for _, value := range row[1:] {
		if value != "" {
			return true
		}
	}
	return false
}
