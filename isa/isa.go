// Package isa defines the wire-level instruction set of the accumulator
// machine: opcodes, operand types, compiled commands, memory items and the
// sectioned program image produced by the assembler and consumed by the
// simulator.
package isa

import "fmt"

// Fundamental machine word sizes.
type (
	// RawOperand is the 16-bit operand carried by every command.
	RawOperand = uint16
	// RawAddress indexes a memory cell.
	RawAddress = uint16
	// RawPort addresses an I/O device.
	RawPort = uint8
	// MemoryDataType is the payload of a data cell.
	MemoryDataType = uint32
)

const (
	// MemorySize is the number of addressable cells.
	MemorySize = int(^RawAddress(0)) + 1

	// StartAddress is the conventional load address for user programs.
	StartAddress RawAddress = 0x10
)

// Opcode enumerates every architectural instruction.
type Opcode uint8

const (
	OpIn Opcode = iota
	OpOut
	OpLoad
	OpStore
	OpAdd
	OpInc
	OpAnd
	OpCmp
	OpShiftLeft
	OpShiftRight
	OpJzc
	OpJzs
	OpJcs
	OpJcc
	OpJump
	OpNop
	OpHalt
)

var opcodeNames = map[Opcode]string{
	OpIn:         "IN",
	OpOut:        "OUT",
	OpLoad:       "LOAD",
	OpStore:      "STORE",
	OpAdd:        "ADD",
	OpInc:        "INC",
	OpAnd:        "AND",
	OpCmp:        "CMP",
	OpShiftLeft:  "SHIFT_LEFT",
	OpShiftRight: "SHIFT_RIGHT",
	OpJzc:        "JZC",
	OpJzs:        "JZS",
	OpJcs:        "JCS",
	OpJcc:        "JCC",
	OpJump:       "JUMP",
	OpNop:        "NOP",
	OpHalt:       "HALT",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// ParseOpcode maps an uppercase opcode name back to its value.
func ParseOpcode(name string) (Opcode, error) {
	for op, n := range opcodeNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown opcode %q", name)
}

// OperandType is the addressing mode tag carried alongside an operand.
type OperandType uint8

const (
	OperandNone OperandType = iota
	OperandImmediate
	OperandAbsolute
	OperandRelative
	OperandIndirect
)

var operandTypeNames = map[OperandType]string{
	OperandNone:      "NONE",
	OperandImmediate: "IMMEDIATE",
	OperandAbsolute:  "ABSOLUTE",
	OperandRelative:  "RELATIVE",
	OperandIndirect:  "INDIRECT",
}

func (t OperandType) String() string {
	if name, ok := operandTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("OperandType(%d)", uint8(t))
}

// ParseOperandType maps an uppercase operand type name back to its value.
func ParseOperandType(name string) (OperandType, error) {
	for ot, n := range operandTypeNames {
		if n == name {
			return ot, nil
		}
	}
	return 0, fmt.Errorf("unknown operand type %q", name)
}

// Operand pairs a 16-bit value with its addressing mode.
type Operand struct {
	Value RawOperand
	Type  OperandType
}

// CompiledCommand is one fully lowered instruction.
type CompiledCommand struct {
	Opcode  Opcode
	Operand Operand
}

func (c CompiledCommand) String() string {
	return fmt.Sprintf("%s %d (%s)", c.Opcode, c.Operand.Value, c.Operand.Type)
}

// MemoryItem is one memory cell: either a raw data word or a compiled
// command. The tag is fixed at compile time; the zero value is Data(0),
// which is what uninitialised memory reads as.
type MemoryItem struct {
	isCommand bool
	data      MemoryDataType
	command   CompiledCommand
}

// DataItem wraps a raw data word.
func DataItem(value MemoryDataType) MemoryItem {
	return MemoryItem{data: value}
}

// CommandItem wraps a compiled command.
func CommandItem(command CompiledCommand) MemoryItem {
	return MemoryItem{isCommand: true, command: command}
}

// IsCommand reports whether the cell holds a command.
func (m MemoryItem) IsCommand() bool {
	return m.isCommand
}

// UnwrapData returns the data payload. Commands have no binary
// representation, so decoding one as data is a fatal fault.
func (m MemoryItem) UnwrapData() MemoryDataType {
	if m.isCommand {
		panic(fmt.Sprintf("command %v accessed as data: commands have no binary representation", m.command))
	}
	return m.data
}

// UnwrapCommand returns the command payload. Feeding a data cell to the
// command register is a fatal fault.
func (m MemoryItem) UnwrapCommand() CompiledCommand {
	if !m.isCommand {
		panic(fmt.Sprintf("data cell 0x%X accessed as command", m.data))
	}
	return m.command
}

func (m MemoryItem) String() string {
	if m.isCommand {
		return fmt.Sprintf("Command(%v)", m.command)
	}
	return fmt.Sprintf("Data(0x%X)", m.data)
}

// CompiledSection is a contiguous run of cells sharing a base address.
type CompiledSection struct {
	StartAddress RawAddress   `json:"start_address"`
	Items        []MemoryItem `json:"items"`
}

// SectionAt returns an empty section starting at the given address.
func SectionAt(address RawAddress) CompiledSection {
	return CompiledSection{StartAddress: address}
}

// CompiledProgram is the ordered list of sections forming a program image.
type CompiledProgram struct {
	Sections []CompiledSection `json:"sections"`
}
