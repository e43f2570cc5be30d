package parse

import "bytes"

type (
	Spaces uint64
)

var SpaceAll = NewSpaces(' ', '\t', '\r', '\n')

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) && b[i] < 64 && s&(1<<b[i]) != 0 {
		i++
	}

	return
}

// skipComments skips spaces, // line and /* block */ comments.
// Unterminated block comment is left in place for the tokenizer to report.
func skipComments(b []byte, st int) (i int) {
	i = st

	for {
		i = SpaceAll.Skip(b, i)

		if i+1 >= len(b) || b[i] != '/' {
			return i
		}

		switch b[i+1] {
		case '/':
			for i < len(b) && b[i] != '\n' {
				i++
			}
		case '*':
			end := bytes.Index(b[i+2:], []byte("*/"))
			if end < 0 {
				return i
			}

			i += 2 + end + 2
		default:
			return i
		}
	}
}
