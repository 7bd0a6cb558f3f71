package isa_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

func TestMemoryItemJSONShapes(t *testing.T) {
	data, err := json.Marshal(isa.DataItem(42))
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("data cell must serialise as a bare number, got %s", data)
	}

	command := isa.CommandItem(isa.CompiledCommand{
		Opcode:  isa.OpShiftLeft,
		Operand: isa.Operand{Value: 0x12, Type: isa.OperandAbsolute},
	})
	encoded, err := json.Marshal(command)
	if err != nil {
		t.Fatalf("marshal command: %v", err)
	}

	expected := `{"opcode":"SHIFT_LEFT","operand":18,"operand_type":"ABSOLUTE"}`
	if string(encoded) != expected {
		t.Errorf("expected %s, got %s", expected, encoded)
	}
}

func TestProgramRoundTrip(t *testing.T) {
	program := isa.CompiledProgram{
		Sections: []isa.CompiledSection{
			{
				StartAddress: 0x10,
				Items: []isa.MemoryItem{
					isa.CommandItem(isa.CompiledCommand{
						Opcode:  isa.OpLoad,
						Operand: isa.Operand{Value: 0x12, Type: isa.OperandAbsolute},
					}),
					isa.CommandItem(isa.CompiledCommand{
						Opcode:  isa.OpHalt,
						Operand: isa.Operand{Type: isa.OperandNone},
					}),
					isa.DataItem(3),
				},
			},
			{StartAddress: 0x40, Items: []isa.MemoryItem{isa.DataItem(0xFFFFFFFF)}},
		},
	}

	encoded, err := json.Marshal(program)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded isa.CompiledProgram
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(program, decoded) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", program, decoded)
	}
}

func TestUnmarshalRejectsUnknownNames(t *testing.T) {
	var item isa.MemoryItem
	err := json.Unmarshal([]byte(`{"opcode":"FLY","operand":0,"operand_type":"NONE"}`), &item)
	if err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}

	err = json.Unmarshal([]byte(`{"opcode":"NOP","operand":0,"operand_type":"SIDEWAYS"}`), &item)
	if err == nil {
		t.Fatal("expected an error for an unknown operand type")
	}
}

func TestUnwrapMismatchPanics(t *testing.T) {
	assertPanics := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected a panic", name)
			}
		}()
		f()
	}

	assertPanics("data as command", func() {
		isa.DataItem(1).UnwrapCommand()
	})
	assertPanics("command as data", func() {
		isa.CommandItem(isa.CompiledCommand{Opcode: isa.OpNop}).UnwrapData()
	})
}
