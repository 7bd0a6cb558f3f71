package vm

import (
	"fmt"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// Memory is the dense cell array of the machine. Every 16-bit address is
// valid; cells a program never touched read as Data(0).
type Memory struct {
	cells []isa.MemoryItem
}

// NewMemory creates empty memory.
func NewMemory() *Memory {
	return &Memory{cells: make([]isa.MemoryItem, isa.MemorySize)}
}

// Burn creates memory with the program image written into it. Sections are
// written in order at their start addresses; a section reaching past the
// end of the address space is a compiler fault and panics.
func Burn(program *isa.CompiledProgram) *Memory {
	memory := NewMemory()
	for _, section := range program.Sections {
		memory.burnSection(section)
	}
	return memory
}

func (m *Memory) burnSection(section isa.CompiledSection) {
	start := int(section.StartAddress)
	if start+len(section.Items) > isa.MemorySize {
		panic(fmt.Sprintf("section at 0x%04X with %d items runs past the end of memory",
			section.StartAddress, len(section.Items)))
	}
	copy(m.cells[start:], section.Items)
}

// Read returns the cell at the address.
func (m *Memory) Read(address isa.RawAddress) isa.MemoryItem {
	return m.cells[address]
}

// Write replaces the cell at the address.
func (m *Memory) Write(address isa.RawAddress, item isa.MemoryItem) {
	m.cells[address] = item
}
