package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luketych/luke-linter/report"
)

func TestIndex_Position(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src      string
		offset   int
		wantLine int
		wantCol  int
	}{
		"empty document":        {src: "", offset: 0, wantLine: 1, wantCol: 1},
		"start of single line":  {src: "abc", offset: 0, wantLine: 1, wantCol: 1},
		"middle of single line": {src: "abc", offset: 2, wantLine: 1, wantCol: 3},
		"end of document":       {src: "abc", offset: 3, wantLine: 1, wantCol: 4},
		"newline belongs to its line": {
			src: "ab\ncd", offset: 2, wantLine: 1, wantCol: 3,
		},
		"first byte after newline": {
			src: "ab\ncd", offset: 3, wantLine: 2, wantCol: 1,
		},
		"second line interior": {
			src: "ab\ncd\n", offset: 4, wantLine: 2, wantCol: 2,
		},
		"line after trailing newline": {
			src: "ab\ncd\n", offset: 6, wantLine: 3, wantCol: 1,
		},
		"carriage return counts as a byte": {
			src: "a\r\nb", offset: 3, wantLine: 2, wantCol: 1,
		},
		"negative offset clamps": {
			src: "abc", offset: -5, wantLine: 1, wantCol: 1,
		},
		"past-end offset clamps": {
			src: "ab\ncd", offset: 99, wantLine: 2, wantCol: 3,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			line, col := report.NewIndex(tc.src).Position(tc.offset)
			assert.Equal(t, tc.wantLine, line)
			assert.Equal(t, tc.wantCol, col)
		})
	}
}
