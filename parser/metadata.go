package parser

import (
	"strings"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// CommandMetadata ties a mnemonic to its opcode and the parser for the
// argument shape the command accepts.
type CommandMetadata struct {
	Opcode        isa.Opcode
	parseArgument func(*TokenStream) (Argument, error)
}

// commandMetadata is the fixed mnemonic table. JZ and JC alias the
// flag-set jumps; ANDI is AND with an immediate operand.
var commandMetadata = map[string]*CommandMetadata{
	"IN":          {Opcode: isa.OpIn, parseArgument: parsePort},
	"OUT":         {Opcode: isa.OpOut, parseArgument: parsePort},
	"LOAD":        {Opcode: isa.OpLoad, parseArgument: parseAddress},
	"STORE":       {Opcode: isa.OpStore, parseArgument: parseAddress},
	"ADD":         {Opcode: isa.OpAdd, parseArgument: parseAddress},
	"INC":         {Opcode: isa.OpInc, parseArgument: parseNone},
	"AND":         {Opcode: isa.OpAnd, parseArgument: parseAddress},
	"ANDI":        {Opcode: isa.OpAnd, parseArgument: parseImmediate},
	"CMP":         {Opcode: isa.OpCmp, parseArgument: parseAddress},
	"SHIFT_LEFT":  {Opcode: isa.OpShiftLeft, parseArgument: parseNone},
	"SHIFT_RIGHT": {Opcode: isa.OpShiftRight, parseArgument: parseNone},
	"JZC":         {Opcode: isa.OpJzc, parseArgument: parseAddress},
	"JZS":         {Opcode: isa.OpJzs, parseArgument: parseAddress},
	"JZ":          {Opcode: isa.OpJzs, parseArgument: parseAddress},
	"JCC":         {Opcode: isa.OpJcc, parseArgument: parseAddress},
	"JCS":         {Opcode: isa.OpJcs, parseArgument: parseAddress},
	"JC":          {Opcode: isa.OpJcs, parseArgument: parseAddress},
	"JUMP":        {Opcode: isa.OpJump, parseArgument: parseAddress},
	"NOP":         {Opcode: isa.OpNop, parseArgument: parseNone},
	"HALT":        {Opcode: isa.OpHalt, parseArgument: parseNone},
}

// MetadataByMnemonic looks up a mnemonic case-insensitively.
func MetadataByMnemonic(mnemonic string) (*CommandMetadata, error) {
	metadata, ok := commandMetadata[strings.ToUpper(mnemonic)]
	if !ok {
		return nil, &UnknownCommandError{Mnemonic: mnemonic}
	}
	return metadata, nil
}

func parseNone(*TokenStream) (Argument, error) {
	return Argument{Kind: ArgNone}, nil
}

func parsePort(stream *TokenStream) (Argument, error) {
	port, err := stream.NextNumber()
	if err != nil {
		return Argument{}, err
	}
	if port > 0xFF {
		return Argument{}, ErrCouldNotParseArgument
	}
	return Argument{Kind: ArgPort, Port: isa.RawPort(port)}, nil
}

func parseImmediate(stream *TokenStream) (Argument, error) {
	value, err := stream.NextNumber()
	if err != nil {
		return Argument{}, err
	}
	return Argument{Kind: ArgImmediate, Immediate: value}, nil
}

// parseAddress recognises the three addressing modes: !ref is absolute,
// (ref) is indirect, a bare ref is relative. A parenthesis without its
// counterpart is a syntax error.
func parseAddress(stream *TokenStream) (Argument, error) {
	mode, err := parseMode(stream)
	if err != nil {
		return Argument{}, err
	}

	ref, err := parseReference(stream)
	if err != nil {
		return Argument{}, err
	}

	if mode == ModeIndirect {
		if err := stream.NextSpecialSymbol(')'); err != nil {
			return Argument{}, err
		}
	}

	return Argument{Kind: ArgAddress, Address: AddressWithMode{Mode: mode, Ref: ref}}, nil
}

func parseMode(stream *TokenStream) (AddressingMode, error) {
	if stream.NextSpecialSymbol('!') == nil {
		return ModeAbsolute, nil
	}

	opened := stream.NextSpecialSymbol('(') == nil
	next, err := stream.Peek(2)
	closed := err == nil && next.Kind == TokenSpecialSymbol && next.Symbol == ')'

	if opened != closed {
		return 0, &SyntaxError{Detail: "no matching parenthesis found"}
	}
	if opened {
		return ModeIndirect, nil
	}
	return ModeRelative, nil
}

func parseReference(stream *TokenStream) (Reference, error) {
	if address, err := stream.NextNumber(); err == nil {
		return RawAddressRef(address), nil
	}

	label, err := stream.NextWord()
	if err != nil {
		return Reference{}, ErrCouldNotParseArgument
	}
	return LabelRef(label), nil
}
