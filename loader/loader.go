// Package loader reads and writes the JSON program image the assembler
// produces and the simulator consumes.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// ReadProgramFrom decodes a program image from a reader.
func ReadProgramFrom(r io.Reader) (*isa.CompiledProgram, error) {
	var program isa.CompiledProgram
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&program); err != nil {
		return nil, fmt.Errorf("malformed program image: %w", err)
	}
	return &program, nil
}

// ReadProgram reads a program image from a file.
func ReadProgram(path string) (*isa.CompiledProgram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	program, err := ReadProgramFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

// WriteProgramTo encodes a program image to a writer.
func WriteProgramTo(w io.Writer, program *isa.CompiledProgram) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(program)
}

// WriteProgram writes a program image to a file, replacing it if present.
func WriteProgram(path string, program *isa.CompiledProgram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteProgramTo(f, program); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
