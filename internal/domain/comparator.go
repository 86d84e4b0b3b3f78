package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparator checks captured program output against a golden reference.
type Comparator interface {
	// Compare reports whether actual matches expected exactly. When it does
	// not, the returned diagnostic contains both full texts.
	Compare(expected, actual string) (bool, string)
}

type exactComparator struct{}

// NewComparator returns the byte-exact Comparator. No whitespace trimming or
// line-ending normalization is applied.
func NewComparator() Comparator {
	return exactComparator{}
}

func (exactComparator) Compare(expected, actual string) (bool, string) {
	if expected == actual {
		return true, ""
	}

	return false, mismatchDiagnostic(expected, actual)
}

func mismatchDiagnostic(expected, actual string) string {
	var b strings.Builder

	b.WriteString("output does not match golden file\n")
	fmt.Fprintf(&b, "--- expected (%s)\n", byteCount(len(expected)))
	writeBlock(&b, expected)
	fmt.Fprintf(&b, "--- actual (%s)\n", byteCount(len(actual)))
	writeBlock(&b, actual)
	b.WriteString("--- end\n")

	return b.String()
}

// writeBlock writes text one quoted line per row, so trailing newlines,
// carriage returns and other invisible bytes show up in the diagnostic.
func writeBlock(b *strings.Builder, text string) {
	if text == "" {
		b.WriteString("(empty)\n")
		return
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}

		b.WriteString(strconv.Quote(line))
		b.WriteString("\n")
	}
}

func byteCount(n int) string {
	if n == 1 {
		return "1 byte"
	}

	return fmt.Sprintf("%d bytes", n)
}
