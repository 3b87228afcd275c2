package hinfo

// parseOutcome is the classification of one request line: a route candidate
// with status 200, or a final error status.
type parseOutcome struct {
	statusCode int
	path       string
}

func isLineSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func skipLineSpace(line []byte, i int) int {
	for i < len(line) && isLineSpace(line[i]) {
		i++
	}
	return i
}

// parseRequestLine interprets a captured request line. Classification
// precedence is fixed: method first (405), then separating whitespace (400),
// then target length (414), then version (505). Every fixed-width read is
// bounds-checked; a line too short for the field it should contain is
// malformed (400).
func parseRequestLine(line []byte) (out parseOutcome) {
	if len(line) < maxMethodLen {
		out.statusCode = 400
		return
	}
	if string(line[:maxMethodLen]) != "GET" {
		out.statusCode = 405
		return
	}

	i := skipLineSpace(line, maxMethodLen)
	if i == maxMethodLen {
		out.statusCode = 400
		return
	}

	j := i
	for j < len(line) && j-i < maxTargetLen && !isLineSpace(line[j]) {
		j++
	}
	if j >= len(line) {
		out.statusCode = 400
		return
	}
	if !isLineSpace(line[j]) {
		out.statusCode = 414
		return
	}
	path := string(line[i:j])

	i = skipLineSpace(line, j)
	if len(line)-i < maxVersionLen {
		out.statusCode = 400
		return
	}
	if string(line[i:i+maxVersionLen]) != "HTTP/1.1" {
		out.statusCode = 505
		return
	}

	out = parseOutcome{
		statusCode: 200,
		path:       path,
	}
	return
}
