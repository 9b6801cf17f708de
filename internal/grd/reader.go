package grd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// GRD tag prefixes. Tag matching is prefix-based and checked in a fixed
// order per line; the first matching check wins.
const (
	tagBodyStart    = "#START"
	tagCommentStart = "#START comment"
	tagCommentEnd   = "#END comment"
	tagAxisStart    = "#START axis description"
	tagAxisEnd      = "#END axis description"
	tagCurveDesc    = "#START Curve description"
	tagCurveDate    = "#START Date:"
	tagCurveTime    = "#START Time:"
	tagCurveLegend  = "#START Curve Legend "
	tagCurveData    = "#START Curve Data"

	tagSampleName   = " Sample name :"
	tagDate         = " Date        :"
	tagSpecificInfo = " Specific inf:"
	tagUserInfo     = " User info   :"
)

// axisMaxSplits bounds the whitespace split of an axis-description line:
// at most 11 tokens, with the channel name as the final token and the unit
// as the one before it.
const axisMaxSplits = 10

// ParseError reports a malformed value inside a recognized data-bearing
// line (a numeric data row, a curve time tag, a curve number or point
// count). The parse aborts on the first such error; there is no partial
// recovery.
type ParseError struct {
	Line int    // 1-based line number in the input
	Text string // offending token or line fragment
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("grd: line %d: cannot parse %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parseState carries the per-block parse flags through the line loop. The
// flags are independent toggles, not a transition graph: together they
// determine how the current line is interpreted.
type parseState struct {
	inPreamble  bool // until the first body-start tag
	inComment   bool // between comment start and end tags
	axisIndex   int  // line index inside the axis block; -1 when outside
	readingData bool // between curve-data start and end tags
}

// ReadFile reads and parses the GRD file at path. The whole file is read
// into memory before parsing begins and the handle is released as soon as
// the read completes.
func ReadFile(path string) (*GraphData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grd: read %s: %w", path, err)
	}
	return parseLines(splitLines(string(raw)))
}

// Read parses GRD content from r.
func Read(r io.Reader) (*GraphData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("grd: read input: %w", err)
	}
	return parseLines(splitLines(string(raw)))
}

func parseLines(lines []string) (*GraphData, error) {
	g := &GraphData{}
	st := parseState{inPreamble: true, axisIndex: -1}

	for i, line := range lines {
		lineno := i + 1

		// Preamble metadata is only recognized before the first body tag.
		if strings.HasPrefix(line, tagBodyStart) {
			st.inPreamble = false
		} else if st.inPreamble {
			switch {
			case strings.HasPrefix(line, tagSampleName):
				g.SampleName = afterColon(line)
			case strings.HasPrefix(line, tagDate):
				g.Date = afterColon(line)
			case strings.HasPrefix(line, tagSpecificInfo):
				g.SpecificInfo = afterColon(line)
			case strings.HasPrefix(line, tagUserInfo):
				g.UserInfo = afterColon(line)
			}
		}

		// Comment block: every line inside is captured verbatim (trimmed)
		// and never re-interpreted as another tag.
		if strings.HasPrefix(line, tagCommentStart) {
			st.inComment = true
			continue
		} else if st.inComment {
			if strings.HasPrefix(line, tagCommentEnd) {
				st.inComment = false
				// A block whose only line was blank means "no comment".
				if len(g.Comment) == 1 && g.Comment[0] == "" {
					g.Comment = nil
				}
			} else {
				g.Comment = append(g.Comment, strings.TrimSpace(line))
			}
			continue
		}

		// Axis description: first line inside the block is a header and
		// is skipped; each following line carries unit and channel name
		// in its last two whitespace tokens.
		if strings.HasPrefix(line, tagAxisStart) {
			st.axisIndex = 0
			continue
		}
		if st.axisIndex != -1 {
			if strings.HasPrefix(line, tagAxisEnd) {
				st.axisIndex = -1
				continue
			}
			if st.axisIndex > 0 {
				if toks := splitMax(line, axisMaxSplits); len(toks) > 0 {
					name := strings.TrimSpace(toks[len(toks)-1])
					g.Names = append(g.Names, strings.ReplaceAll(name, " ", "_"))
					unit := ""
					if len(toks) > 1 && len(strings.Fields(line)) > axisMaxSplits {
						unit = strings.TrimSpace(toks[len(toks)-2])
					}
					g.Units = append(g.Units, unit)
				}
			}
			st.axisIndex++
			continue
		}

		// Curve description opens a new curve; the 4th whitespace token
		// is the curve number.
		if strings.HasPrefix(line, tagCurveDesc) {
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, &ParseError{Line: lineno, Text: line, Err: errors.New("missing curve number")}
			}
			number, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, &ParseError{Line: lineno, Text: fields[3], Err: err}
			}
			g.Curves = append(g.Curves, &Curve{Number: number})
			st.readingData = false
			continue
		}

		// The remaining tags are curve-scoped; without a current curve
		// they are skipped like any other unrecognized line.
		cur := g.latest()

		if strings.HasPrefix(line, tagCurveDate) {
			if cur != nil {
				cur.StartDate = afterColon(line)
			}
			continue
		}
		if strings.HasPrefix(line, tagCurveTime) {
			if cur != nil {
				if err := parseCurveTime(cur, line, lineno); err != nil {
					return nil, err
				}
			}
			continue
		}
		if strings.HasPrefix(line, tagCurveLegend) {
			if cur != nil {
				cur.Key = afterColon(line)
			}
			continue
		}

		// "#START Curve {N} ... = {points}" declares the point count for
		// the current curve N.
		if cur != nil && cur.Number != 0 &&
			strings.HasPrefix(line, fmt.Sprintf("#START Curve %d", cur.Number)) &&
			strings.Contains(line, "=") {
			text := strings.TrimSpace(line[strings.Index(line, "=")+1:])
			points, err := strconv.Atoi(text)
			if err != nil {
				return nil, &ParseError{Line: lineno, Text: text, Err: err}
			}
			cur.Points = points
			continue
		}

		if strings.HasPrefix(line, tagCurveData) {
			st.readingData = true
			continue
		} else if st.readingData {
			if cur != nil && cur.Number != 0 &&
				strings.HasPrefix(line, fmt.Sprintf("#END Curve %d -", cur.Number)) {
				st.readingData = false
				continue
			}
			if cur != nil {
				row, err := parseDataRow(line, lineno)
				if err != nil {
					return nil, err
				}
				if row != nil {
					cur.Data = append(cur.Data, row)
				}
			}
			continue
		}

		// Anything else outside an active block is ignored; the format is
		// lenient toward unknown tags.
	}

	return g, nil
}

// parseCurveTime sets the curve duration from a "#START Time:" tag. The
// text between the first and second colon holds two space-separated clock
// values; duration is end minus start.
func parseCurveTime(c *Curve, line string, lineno int) error {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return &ParseError{Line: lineno, Text: line, Err: errors.New("missing time values")}
	}
	times := strings.Fields(parts[1])
	if len(times) < 2 {
		return &ParseError{Line: lineno, Text: parts[1], Err: errors.New("expected two time values")}
	}
	start, err := parseFloat(times[0])
	if err != nil {
		return &ParseError{Line: lineno, Text: times[0], Err: err}
	}
	end, err := parseFloat(times[1])
	if err != nil {
		return &ParseError{Line: lineno, Text: times[1], Err: err}
	}
	c.Duration = end - start
	return nil
}

// parseDataRow tokenizes one numeric line of a curve-data block. Blank
// lines yield a nil row and are skipped by the caller.
func parseDataRow(line string, lineno int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	row := make([]float64, len(fields))
	for i, tok := range fields {
		v, err := parseFloat(tok)
		if err != nil {
			return nil, &ParseError{Line: lineno, Text: tok, Err: err}
		}
		row[i] = v
	}
	return row, nil
}

// parseFloat parses a numeric token, accepting comma as well as dot for
// the decimal separator.
func parseFloat(tok string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
}

// afterColon returns the text after the first colon of a tag line, or ""
// when the line carries no colon.
func afterColon(line string) string {
	if _, rest, ok := strings.Cut(line, ":"); ok {
		return rest
	}
	return ""
}

// latest returns the most recently appended curve, or nil before the first
// curve-description tag.
func (g *GraphData) latest() *Curve {
	if len(g.Curves) == 0 {
		return nil
	}
	return g.Curves[len(g.Curves)-1]
}

// splitLines splits text into lines, accepting LF and CRLF endings. A
// trailing newline does not produce a final empty line.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitMax splits s on runs of whitespace into at most maxSplits+1 tokens.
// The final token is the remaining text after the last split with its
// internal spacing intact, matching the axis-description layout where the
// channel name may itself contain spaces.
func splitMax(s string, maxSplits int) []string {
	var out []string
	i := 0
	for len(out) < maxSplits {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return out
		}
		j := i
		for j < len(s) && !isSpace(s[j]) {
			j++
		}
		out = append(out, s[i:j])
		i = j
	}
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) {
		out = append(out, s[i:])
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r'
}
