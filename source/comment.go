package source

import "strings"

// CommentBlock is one contiguous block-style comment. Text includes the
// delimiters. Start and End are absolute document offsets bounding the
// delimiters, so an offset relative to Text maps to an absolute offset by
// adding Start.
//
// Blocks are owned transiently by a single analysis pass and never
// persisted or cached across edits.
type CommentBlock struct {
	Text  string
	Start int
	End   int
}

// nextBlock returns the first closed block comment starting at or after
// from. An opener without a closer yields no block.
func nextBlock(text string, from int, lang Language) (CommentBlock, bool) {
	i := strings.Index(text[from:], lang.BlockOpen)
	if i < 0 {
		return CommentBlock{}, false
	}

	start := from + i
	inner := start + len(lang.BlockOpen)

	j := strings.Index(text[inner:], lang.BlockClose)
	if j < 0 {
		return CommentBlock{}, false
	}

	end := inner + j + len(lang.BlockClose)

	return CommentBlock{
		Text:  text[start:end],
		Start: start,
		End:   end,
	}, true
}

// FirstBlock returns the earliest block comment in text, or nil. Later
// comments are never file-level candidates; the scan stops at the first
// match.
func FirstBlock(text string, lang Language) *CommentBlock {
	b, ok := nextBlock(text, 0, lang)
	if !ok {
		return nil
	}

	return &b
}

// Blocks returns every closed block comment in text, in document order.
func Blocks(text string, lang Language) []CommentBlock {
	var blocks []CommentBlock

	pos := 0
	for {
		b, ok := nextBlock(text, pos, lang)
		if !ok {
			break
		}

		blocks = append(blocks, b)
		pos = b.End
	}

	return blocks
}

// PrecedingBlock returns the nearest block comment ending at or before
// functionStart with nothing but whitespace between the comment and the
// declaration. Any other token in the gap forfeits the association, which
// also guarantees a block is never shared between two declarations: an
// intervening declaration is itself a non-whitespace token.
func PrecedingBlock(text string, functionStart int, lang Language) *CommentBlock {
	if functionStart < 0 || functionStart > len(text) {
		return nil
	}

	var nearest *CommentBlock

	pos := 0
	for {
		b, ok := nextBlock(text, pos, lang)
		if !ok || b.End > functionStart {
			break
		}

		nearest = &b
		pos = b.End
	}

	if nearest == nil {
		return nil
	}

	if strings.TrimSpace(text[nearest.End:functionStart]) != "" {
		return nil
	}

	return nearest
}
