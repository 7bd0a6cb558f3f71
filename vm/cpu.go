// Package vm simulates the microcoded accumulator machine: a datapath of
// registers around an ALU with a shifter, driven by a control unit stepping
// through an immutable microcode table, against cell memory and a
// port-addressed I/O controller.
package vm

import (
	"fmt"
	"strings"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// Registers is the architectural register file. The command register holds
// the decoded instruction rather than raw bits; feeding it a data cell is a
// fatal fault.
type Registers struct {
	Accumulator    uint32
	Data           isa.MemoryItem
	Command        isa.CompiledCommand
	ProgramCounter isa.RawAddress
	Address        isa.RawAddress
}

func (r Registers) String() string {
	return fmt.Sprintf("AC=%08X PC=%04X ADDR=%04X DR=%v CR=%v",
		r.Accumulator, r.ProgramCounter, r.Address, r.Data, r.Command)
}

// Status holds the condition flags. All registers reset to zero, so the
// zero flag starts set.
type Status struct {
	Zero  bool
	Carry bool
}

func (s Status) String() string {
	var flags []string
	if s.Zero {
		flags = append(flags, "ZERO")
	}
	if s.Carry {
		flags = append(flags, "CARRY")
	}
	return strings.Join(flags, ", ")
}
