package hinfo

import (
	"bufio"
	"io"
)

// headState enumerates the states of the request-head reader.
type headState int

const (
	stateFirstLine headState = iota
	stateHeaderName
	stateHeaderColonSpace
	stateHeaderValue
	stateEnd
	stateDone
)

// readRequestHead consumes bytes one at a time until a complete,
// structurally valid request head (request line plus header lines up to the
// terminating empty line) has been read. Header values are validated for
// framing only, never interpreted.
//
// On success it returns the request line without its trailing CRLF. When the
// first line exhausts its budget before a line feed, it returns the captured
// prefix together with errRequestLineBudget so the caller can still classify
// it. Any other protocol violation, including the peer closing mid-head,
// yields a "protocol" error; a failed read yields a "communication" error.
func readRequestHead(br *bufio.Reader) (line []byte, err error) {
	line = make([]byte, 0, maxRequestLineLen)
	st := stateFirstLine
	for st != stateDone {
		b, e := br.ReadByte()
		if e != nil {
			if e == io.EOF {
				err = newHTTPError("protocol", "connection closed before end of request head")
			} else {
				err = wrapHTTPError("communication", e)
			}
			return
		}
		switch st {
		case stateFirstLine:
			if b == '\n' {
				if n := len(line); n > 0 && line[n-1] == '\r' {
					line = line[:n-1]
				}
				st = stateHeaderName
				break
			}
			if len(line) >= maxRequestLineLen {
				err = errRequestLineBudget
				return
			}
			line = append(line, b)
		case stateHeaderName:
			switch {
			case b == ':':
				st = stateHeaderColonSpace
			case b == '\r':
				st = stateEnd
			case b == '-',
				b >= '0' && b <= '9',
				b >= 'A' && b <= 'Z',
				b >= 'a' && b <= 'z':
			default:
				err = newHTTPError("protocol", "invalid character in header name")
				return
			}
		case stateHeaderColonSpace:
			if b == ' ' || b == '\t' {
				break
			}
			st = stateHeaderValue
			fallthrough
		case stateHeaderValue:
			if b == '\n' {
				st = stateHeaderName
			}
		case stateEnd:
			if b != '\n' {
				err = newHTTPError("protocol", "missing line feed at end of request head")
				return
			}
			st = stateDone
		}
	}
	return
}
