package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veridian-systems/sixtick/internal/system"
)

// chooseProgram prints the bundled-sample menu plus the file and
// hex-entry options, reads one line of input, and resolves it to a
// Program. It is the only place in the CLI that talks to the terminal
// before the System itself takes over stdin for keystroke interrupts.
func chooseProgram(in *bufio.Reader) (system.Program, error) {
	fmt.Println("microsim - pick a program:")
	for i, p := range samplePrograms {
		fmt.Printf("  %d) %s\n", i+1, p.Name)
	}
	fmt.Printf("  %d) load from file\n", len(samplePrograms)+1)
	fmt.Printf("  %d) enter hex bytes\n", len(samplePrograms)+2)
	fmt.Print("> ")

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return system.Program{}, err
	}
	choice := strings.TrimSpace(line)

	n, err := strconv.Atoi(choice)
	if err != nil {
		return system.Program{}, fmt.Errorf("invalid selection %q", choice)
	}

	switch {
	case n >= 1 && n <= len(samplePrograms):
		return samplePrograms[n-1], nil
	case n == len(samplePrograms)+1:
		fmt.Print("path: ")
		pathLine, err := in.ReadString('\n')
		if err != nil && pathLine == "" {
			return system.Program{}, err
		}
		path := strings.TrimSpace(pathLine)
		code, err := os.ReadFile(path)
		if err != nil {
			return system.Program{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return system.Program{Name: path, Code: code}, nil
	case n == len(samplePrograms)+2:
		fmt.Println("enter hex bytes, space separated, one line:")
		return readHexProgram(in)
	default:
		return system.Program{}, fmt.Errorf("selection %d out of range", n)
	}
}
