package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// classify maps an os error into the shared taxonomy
func classify(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", op, name, errs.ErrFileNotFound)
	}
	return fmt.Errorf("%s %s: %v: %w", op, name, err, errs.ErrIO)
}

// decodeText accepts any valid UTF-8. Content sniffing only names what
// the data is when it fails to decode.
func decodeText(name string, data []byte) error {
	if utf8.Valid(data) {
		return nil
	}

	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return fmt.Errorf("read %s: cannot decode %s content as text: %w", name, mtype.String(), errs.ErrIO)
	}

	charset := "unknown"
	if best, err := chardet.NewTextDetector().DetectBest(data); err == nil && best.Charset != "" {
		charset = best.Charset
	}
	return fmt.Errorf("read %s: content is not valid utf-8 (detected %s): %w", name, charset, errs.ErrIO)
}

// isText walks the mimetype hierarchy looking for text/plain
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") || strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}
