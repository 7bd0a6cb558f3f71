package isa

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The program image is persisted as JSON. A data cell serialises as a bare
// unsigned integer; a command serialises as an object with the opcode and
// operand type spelled as uppercase enum names.

type commandJSON struct {
	Opcode      string     `json:"opcode"`
	Operand     RawOperand `json:"operand"`
	OperandType string     `json:"operand_type"`
}

// MarshalJSON implements json.Marshaler for MemoryItem.
func (m MemoryItem) MarshalJSON() ([]byte, error) {
	if !m.isCommand {
		return json.Marshal(m.data)
	}
	return json.Marshal(commandJSON{
		Opcode:      m.command.Opcode.String(),
		Operand:     m.command.Operand.Value,
		OperandType: m.command.Operand.Type.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler for MemoryItem. The item shape
// selects the tag: a number is a data cell, an object is a command.
func (m *MemoryItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty memory item")
	}

	if trimmed[0] != '{' {
		var value MemoryDataType
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return fmt.Errorf("malformed data cell: %w", err)
		}
		*m = DataItem(value)
		return nil
	}

	var cmd commandJSON
	if err := json.Unmarshal(trimmed, &cmd); err != nil {
		return fmt.Errorf("malformed command: %w", err)
	}

	opcode, err := ParseOpcode(cmd.Opcode)
	if err != nil {
		return err
	}
	operandType, err := ParseOperandType(cmd.OperandType)
	if err != nil {
		return err
	}

	*m = CommandItem(CompiledCommand{
		Opcode: opcode,
		Operand: Operand{
			Value: cmd.Operand,
			Type:  operandType,
		},
	})
	return nil
}
