package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// fixtureEntry is one line of the CLI's tab-separated book fixture
// format: a definition name and the hex bytes of its encoded net. This
// is a human-typable test harness format, not a textual net syntax —
// the library itself only ever reads and writes binary.
type fixtureEntry struct {
	name string
	data []byte
}

func readFixture(r io.Reader) ([]fixtureEntry, error) {
	var entries []fixtureEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("netcodec: fixture line %d: expected name\\thex, got %q", lineNo, line)
		}
		data, err := hex.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("netcodec: fixture line %d: %w", lineNo, err)
		}
		entries = append(entries, fixtureEntry{name: parts[0], data: data})
	}
	return entries, scanner.Err()
}

func writeFixture(w io.Writer, entries []fixtureEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.name, hex.EncodeToString(e.data)); err != nil {
			return err
		}
	}
	return nil
}
