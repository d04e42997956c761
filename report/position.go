package report

import (
	"sort"
	"strings"
)

// Index precomputes line starts for a document so byte offsets convert to
// line and column positions in O(log n).
type Index struct {
	starts []int
	length int
}

// NewIndex builds an [Index] over src.
func NewIndex(src string) *Index {
	starts := []int{0}

	for i := 0; i < len(src); {
		next := strings.IndexByte(src[i:], '\n')
		if next < 0 {
			break
		}

		i += next + 1
		starts = append(starts, i)
	}

	return &Index{starts: starts, length: len(src)}
}

// Position converts a byte offset to 1-based line and column. Columns
// count bytes, matching how hosts address comment block text. Offsets
// outside the document clamp to its bounds.
func (ix *Index) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}

	if offset > ix.length {
		offset = ix.length
	}

	// The greatest line start at or before offset.
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1

	return i + 1, offset - ix.starts[i] + 1
}
