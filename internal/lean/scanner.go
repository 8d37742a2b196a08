package lean

import (
	"regexp"
	"strings"
)

var (
	// declRegex matches the header line of a Lean declaration, with
	// optional visibility and noncomputable modifiers.
	declRegex = regexp.MustCompile(
		`^(private|protected)?\s*(noncomputable)?\s*` +
			`(theorem|lemma|def|instance|example|opaque|abbrev|inductive|structure)\s+`)

	// nameRegex extracts the declaration name from a header line. The
	// name ends at whitespace, an opening paren or brace, or a colon.
	nameRegex = regexp.MustCompile(
		`^.*?(?:theorem|lemma|def|instance|example|opaque|abbrev|inductive|structure)\s+` +
			`([^\s({:]+)`)
)

// Scan finds every unresolved `sorry` marker in a Lean source file and
// returns one Obligation per occurrence, in line order. A marker that
// appears after a `--` line comment on the same line is ignored.
//
// The returned obligations carry no import context; the caller attaches
// it after resolving the file's imports.
func Scan(path, content string) []Obligation {
	lines := strings.Split(content, "\n")

	var found []Obligation
	declHeader := ""
	declLine := 0

	for i, line := range lines {
		lineNum := i + 1

		// Track the most recent declaration header. A marker is
		// attributed to the declaration whose header last preceded it.
		if declRegex.MatchString(line) {
			declHeader = strings.TrimSpace(line)
			declLine = lineNum
		}

		sorryPos := strings.Index(line, "sorry")
		if sorryPos < 0 {
			continue
		}
		if commentPos := strings.Index(line, "--"); commentPos >= 0 && sorryPos > commentPos {
			continue
		}

		declName := ""
		if m := nameRegex.FindStringSubmatch(declHeader); m != nil {
			declName = m[1]
		}

		start := declLine
		if start == 0 {
			start = lineNum
		}

		found = append(found, Obligation{
			File:        path,
			Line:        lineNum,
			DeclName:    declName,
			Snippet:     strings.Join(lines[start-1:lineNum], "\n"),
			FileContent: content,
		})
	}
	return found
}
