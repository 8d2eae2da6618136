package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/veridian-systems/sixtick/internal/system"
)

// readHexProgram reads one line of whitespace-separated hex byte pairs
// ("A9 05 AA A9 03 8A 00") from r and turns it into a Program with no
// register oracle; hand-entered programs are judged by their console
// output and register dump, not an automatic PASS/FAIL.
func readHexProgram(r *bufio.Reader) (system.Program, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return system.Program{}, err
	}

	fields := strings.Fields(line)
	code := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return system.Program{}, fmt.Errorf("invalid hex byte %q: %w", f, err)
		}
		code = append(code, byte(v))
	}

	if len(code) == 0 {
		return system.Program{}, fmt.Errorf("no bytes entered")
	}

	return system.Program{Name: "hand-entered", Code: code}, nil
}
