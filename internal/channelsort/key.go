package channelsort

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/rtsort/internal/types"
)

// Record is a data row together with its derived sort key. A Record owns
// its row until it is emitted.
type Record struct {
	Row types.Row
	Key types.SortKey
}

// Equal reports whether two records hold the same cells and belong to the
// same service channel.
func (r Record) Equal(other Record) bool {
	return slices.Equal(r.Row, other.Row) &&
		r.Key.Group == other.Key.Group &&
		r.Key.Channel == other.Key.Channel
}

// DeriveKey computes the sort key of a row.
//
// The name cell is split on single spaces. When it has at least two words
// and the first is one of serviceNames, the row is a service record: its
// group is the service name and its channel is the second word parsed as
// an integer. Every other row gets an empty group and channel 0.
func DeriveKey(row types.Row, fields types.FieldIndexSet, serviceNames []string) (types.SortKey, error) {
	name, err := cell(row, fields.NameField)
	if err != nil {
		return types.SortKey{}, err
	}
	sortValue, err := cell(row, fields.SortField)
	if err != nil {
		return types.SortKey{}, err
	}

	key := types.SortKey{SortValue: sortValue}

	words := strings.Split(name, " ")
	if len(words) >= 2 && slices.Contains(serviceNames, words[0]) {
		channel, err := strconv.Atoi(words[1])
		if err != nil {
			return types.SortKey{}, &ConfigurationError{
				Field: "service channel",
				Value: name,
				Err:   err,
			}
		}
		key.Group = words[0]
		key.Channel = channel
	}

	return key, nil
}

// CompareKeys orders two keys. Ordinary records come before service
// records; service records order by service name, then channel number;
// ties fall back to the sort value.
//
// Group names and sort values compare in their space-padded form, which
// matches the fixed-width composite ordering for well-formed exports.
func CompareKeys(a, b types.SortKey) int {
	if c := compareBool(a.IsService(), b.IsService()); c != 0 {
		return c
	}
	if c := comparePadded(a.Group, b.Group, types.GroupWidth); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Channel, b.Channel); c != 0 {
		return c
	}
	return comparePadded(a.SortValue, b.SortValue, types.SortValueWidth)
}

// comparePadded compares a and b as if both were passed through
// types.PadRight with width, without building the padded strings.
func comparePadded(a, b string, width int) int {
	aLen := len(a) + padding(a, width)
	bLen := len(b) + padding(b, width)
	for i := 0; i < aLen && i < bLen; i++ {
		if c := cmp.Compare(paddedByte(a, i), paddedByte(b, i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(aLen, bLen)
}

func padding(s string, width int) int {
	return max(0, width-utf8.RuneCountInString(s))
}

func paddedByte(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return ' '
}

// CompareRecords orders records by their keys.
func CompareRecords(a, b Record) int {
	return CompareKeys(a.Key, b.Key)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func cell(row types.Row, index int) (string, error) {
	if index < 0 || index >= len(row) {
		return "", &MalformedInputError{Index: index, Columns: len(row)}
	}
	return row[index], nil
}
