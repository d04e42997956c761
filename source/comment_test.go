package source_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luketych/luke-linter/source"
	"github.com/luketych/luke-linter/stringtest"
)

func TestFirstBlock(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lang     source.Language
		input    string
		wantText string
		wantNone bool
	}{
		"no comments": {
			lang:     source.CStyle,
			input:    "function add(a, b) { return a + b; }",
			wantNone: true,
		},
		"single block": {
			lang:     source.CStyle,
			input:    "/* header */\nfunction add(a, b) {}",
			wantText: "/* header */",
		},
		"earliest of several": {
			lang: source.CStyle,
			input: stringtest.JoinLF(
				"/* first */",
				"code();",
				"/* second */",
			),
			wantText: "/* first */",
		},
		"unclosed opener yields none": {
			lang:     source.CStyle,
			input:    "/* never closed\nfunction add(a, b) {}",
			wantNone: true,
		},
		"line comments are not blocks": {
			lang:     source.CStyle,
			input:    "// not a block\nfunction add(a, b) {}",
			wantNone: true,
		},
		"python docstring": {
			lang:     source.Python,
			input:    `"""module header"""` + "\ndef add(a, b):\n    pass",
			wantText: `"""module header"""`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := source.FirstBlock(tc.input, tc.lang)

			if tc.wantNone {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tc.wantText, got.Text)
			assert.Equal(t, strings.Index(tc.input, tc.wantText), got.Start)
			assert.Equal(t, got.Start+len(tc.wantText), got.End)
		})
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinLF(
		"/* one */",
		"code();",
		"/* two",
		"   spans lines */",
		"more();",
		"/* unclosed",
	)

	blocks := source.Blocks(input, source.CStyle)

	require.Len(t, blocks, 2)
	assert.Equal(t, "/* one */", blocks[0].Text)
	assert.Equal(t, "/* two\n   spans lines */", blocks[1].Text)

	// Offsets always slice back to the block text, delimiters included.
	for _, b := range blocks {
		assert.Equal(t, b.Text, input[b.Start:b.End])
	}

	assert.Less(t, blocks[0].End, blocks[1].Start)
}

func TestPrecedingBlock(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		anchor   string
		wantText string
		wantNone bool
	}{
		"block directly above": {
			input: stringtest.JoinLF(
				"/* doc */",
				"function add(a, b) {}",
			),
			anchor:   "function add",
			wantText: "/* doc */",
		},
		"blank lines between are fine": {
			input: stringtest.JoinLF(
				"/* doc */",
				"",
				"",
				"function add(a, b) {}",
			),
			anchor:   "function add",
			wantText: "/* doc */",
		},
		"code between forfeits": {
			input: stringtest.JoinLF(
				"/* doc */",
				"const x = 1;",
				"function add(a, b) {}",
			),
			anchor:   "function add",
			wantNone: true,
		},
		"nearest of several wins": {
			input: stringtest.JoinLF(
				"/* far */",
				"",
				"/* near */",
				"function add(a, b) {}",
			),
			anchor:   "function add",
			wantText: "/* near */",
		},
		"no block before declaration": {
			input: stringtest.JoinLF(
				"function add(a, b) {}",
				"/* after */",
			),
			anchor:   "function add",
			wantNone: true,
		},
		"file header doubles as first declaration block": {
			input: stringtest.JoinLF(
				"/* header */",
				"function add(a, b) {}",
			),
			anchor:   "function add",
			wantText: "/* header */",
		},
		"intervening declaration forfeits": {
			input: stringtest.JoinLF(
				"/* doc */",
				"function first() {}",
				"function second() {}",
			),
			anchor:   "function second",
			wantNone: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			anchor := strings.Index(tc.input, tc.anchor)
			require.GreaterOrEqual(t, anchor, 0)

			got := source.PrecedingBlock(tc.input, anchor, source.CStyle)

			if tc.wantNone {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tc.wantText, got.Text)
		})
	}
}

func TestPrecedingBlock_OutOfRange(t *testing.T) {
	t.Parallel()

	input := "/* doc */\nfunction add(a, b) {}"

	assert.Nil(t, source.PrecedingBlock(input, -1, source.CStyle))
	assert.Nil(t, source.PrecedingBlock(input, len(input)+10, source.CStyle))
}
