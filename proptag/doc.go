// Package proptag scans delimited property tags out of comment text.
//
// A property tag is a named span of free-form text wrapped in literal
// markers:
//
//	[[OPEN:description]]
//	Adds two numbers and returns the sum.
//	[[CLOSE:description]]
//
// Tag names are restricted to letters, digits, and underscore. The marker
// syntax is a compatibility surface for existing annotated documents and is
// preserved exactly.
//
// [Scan] turns a block of text into an ordered [Mapping] of tags. Scanning
// never fails: unmatched or mismatched markers are recovered locally and
// simply produce no tag, leaving callers to report absence however they
// see fit.
package proptag
