package proptag

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

// Marker literals. These exact forms appear in annotated documents and must
// not change.
const (
	openPrefix   = "[[OPEN:"
	closePrefix  = "[[CLOSE:"
	markerSuffix = "]]"
)

var (
	// markerRegex matches a single open or close marker, capturing the
	// marker kind and the tag name.
	markerRegex = regexp.MustCompile(`\[\[(OPEN|CLOSE):([A-Za-z0-9_]+)\]\]`)

	// nameRegex is the tag name alphabet.
	nameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ValidName reports whether name can appear in a marker. Names outside the
// marker alphabet could never be scanned back out of a document.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// OpenMarker returns the open marker literal for name.
func OpenMarker(name string) string {
	return openPrefix + name + markerSuffix
}

// CloseMarker returns the close marker literal for name.
func CloseMarker(name string) string {
	return closePrefix + name + markerSuffix
}

// Tag is one matched open/close marker pair.
//
// Start and End bound the full marker-to-marker span relative to the
// scanned text: Start is the first byte of the open marker, End is one past
// the last byte of the close marker. Content is the text strictly between
// the markers with exactly one leading and one trailing newline removed;
// interior whitespace is preserved.
type Tag struct {
	Name    string
	Content string
	Start   int
	End     int
}

// Mapping holds the tags scanned from one block of text, keyed by name.
//
// Names keep the order in which each name first matched. When a name
// repeats within the same text, the later pair's tag replaces the stored
// value without moving its position.
//
// Create instances with [Scan].
type Mapping struct {
	tags  map[string]Tag
	names []string
}

// Get returns the tag stored under name.
func (m Mapping) Get(name string) (Tag, bool) {
	t, ok := m.tags[name]

	return t, ok
}

// Has reports whether a tag named name was matched.
func (m Mapping) Has(name string) bool {
	_, ok := m.tags[name]

	return ok
}

// Names returns the matched tag names in first-match order. The returned
// slice must not be modified.
func (m Mapping) Names() []string {
	return m.names
}

// Len returns the number of distinct tag names matched.
func (m Mapping) Len() int {
	return len(m.tags)
}

func (m *Mapping) put(t Tag) {
	if _, ok := m.tags[t.Name]; !ok {
		m.names = append(m.names, t.Name)
	}

	m.tags[t.Name] = t
}

// marker is one marker occurrence within the scanned text.
type marker struct {
	name  string
	start int
	end   int
	open  bool
}

// Scan extracts all property tags from text. It never fails; malformed
// input degrades to a partial [Mapping].
//
// Pairing is per name: an open marker pairs with the first following close
// marker of the same name. Another open marker of the same name in between
// leaves the earlier open unmatched and restarts pairing at the later one.
// Markers of other names are transparent, so tags of different names match
// independently even when their spans interleave. Within one name, pairing
// resumes after each matched close, so same-name spans never overlap.
// Unmatched markers produce no tag.
//
// All state is local to the call, so Scan is safe for concurrent and
// repeated use on shared input.
func Scan(text string) Mapping {
	lanes := make(map[string][]marker)

	for _, idx := range markerRegex.FindAllStringSubmatchIndex(text, -1) {
		name := text[idx[4]:idx[5]]

		lanes[name] = append(lanes[name], marker{
			name:  name,
			start: idx[0],
			end:   idx[1],
			open:  text[idx[2]:idx[3]] == "OPEN",
		})
	}

	var tags []Tag
	for _, lane := range lanes {
		tags = append(tags, pairLane(text, lane)...)
	}

	// Insert in document order so first-match ordering holds no matter how
	// the lanes iterated.
	slices.SortFunc(tags, func(a, b Tag) int {
		return a.Start - b.Start
	})

	m := Mapping{tags: make(map[string]Tag, len(tags))}
	for _, t := range tags {
		m.put(t)
	}

	return m
}

// pairLane pairs the markers of a single tag name, in order of occurrence.
// The lane holds only same-name markers, so the pairing rule reduces to:
// an open followed immediately (within the lane) by a close is a match;
// anything else is unmatched.
func pairLane(text string, lane []marker) []Tag {
	var tags []Tag

	for i := 0; i < len(lane); i++ {
		mk := lane[i]
		if !mk.open {
			slog.Debug("close marker without matching open, ignored",
				slog.String("tag", mk.name),
				slog.Int("offset", mk.start),
			)

			continue
		}

		if i+1 >= len(lane) || lane[i+1].open {
			slog.Debug("open marker without matching close, tag absent",
				slog.String("tag", mk.name),
				slog.Int("offset", mk.start),
			)

			continue
		}

		end := lane[i+1]
		tags = append(tags, Tag{
			Name:    mk.name,
			Content: trimContent(text[mk.end:end.start]),
			Start:   mk.start,
			End:     end.end,
		})

		i++ // consume the close
	}

	return tags
}

// trimContent removes exactly one leading and one trailing newline. A CRLF
// counts as one newline. All other whitespace is preserved.
func trimContent(s string) string {
	if rest, ok := strings.CutPrefix(s, "\r\n"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "\n"); ok {
		s = rest
	}

	if rest, ok := strings.CutSuffix(s, "\r\n"); ok {
		s = rest
	} else if rest, ok := strings.CutSuffix(s, "\n"); ok {
		s = rest
	}

	return s
}
