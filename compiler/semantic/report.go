package semantic

import (
	"io"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
)

// AsDiagnostic finds semantic diagnostic in the err chain.
func AsDiagnostic(err error) (d Diagnostic, ok bool) {
	var u UndeclaredError
	if errors.As(err, &u) {
		return u, true
	}

	var dup DuplicateError
	if errors.As(err, &dup) {
		return dup, true
	}

	return nil, false
}

func Status(err error) int {
	if err != nil {
		return 1
	}

	return 0
}

// Report writes exactly one line describing err to w and returns process exit status.
// Nothing is written for nil error.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var b []byte

	if d, ok := AsDiagnostic(err); ok {
		b = hfmt.Appendf(b, "%v\n", d)
	} else {
		b = hfmt.Appendf(b, "error: %v\n", err)
	}

	_, _ = w.Write(b)

	return Status(err)
}
