package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	ErrToolNotFound = errors.New("clipboard tool not found")
	ErrEmpty        = errors.New("nothing to copy")
)

// Swapped in tests; atotto/clipboard decides support once at init.
var (
	unsupported = func() bool { return clipboard.Unsupported }
	writeAll    = clipboard.WriteAll
)

func Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	if unsupported() {
		return ErrToolNotFound
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
