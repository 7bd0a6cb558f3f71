package parser

import "github.com/owl-from-hogvarts/csa-lab3/isa"

// Label names a position in the item list.
type Label = string

// AddressingMode selects how an address argument reaches memory.
type AddressingMode int

const (
	ModeAbsolute AddressingMode = iota // !ref
	ModeRelative                       // ref
	ModeIndirect                       // (ref)
)

// OperandType maps the source-level mode onto the compiled operand tag.
func (m AddressingMode) OperandType() isa.OperandType {
	switch m {
	case ModeAbsolute:
		return isa.OperandAbsolute
	case ModeIndirect:
		return isa.OperandIndirect
	default:
		return isa.OperandRelative
	}
}

// Reference is either a raw address or a label to resolve at compile time.
type Reference struct {
	Label   Label
	Address isa.RawAddress
	IsLabel bool
}

// RawAddressRef builds a reference to a concrete address.
func RawAddressRef(address isa.RawAddress) Reference {
	return Reference{Address: address}
}

// LabelRef builds a reference to a label.
func LabelRef(label Label) Reference {
	return Reference{Label: label, IsLabel: true}
}

// AddressWithMode is a source-level address argument.
type AddressWithMode struct {
	Mode AddressingMode
	Ref  Reference
}

// ArgumentKind discriminates command arguments. Argument is the source-code
// notion; the compiled counterpart is the operand.
type ArgumentKind int

const (
	ArgNone ArgumentKind = iota
	ArgPort
	ArgImmediate
	ArgAddress
)

// Argument is the parsed argument of one command.
type Argument struct {
	Kind      ArgumentKind
	Port      isa.RawPort
	Immediate isa.RawOperand
	Address   AddressWithMode
}

// SourceCommand is a parsed instruction before lowering.
type SourceCommand struct {
	Metadata *CommandMetadata
	Argument Argument
}

// DirectiveKind discriminates compiler directives.
type DirectiveKind int

const (
	// DirectiveData emits raw data cells (WORD n1 n2 ...).
	DirectiveData DirectiveKind = iota
	// DirectivePointer emits one cell holding a label's address (WORD label).
	DirectivePointer
	// DirectiveSetAddress relocates subsequent items (ORG addr).
	DirectiveSetAddress
)

// CompilerDirective is a parsed directive.
type CompilerDirective struct {
	Kind    DirectiveKind
	Data    []uint32       // DirectiveData
	Label   Label          // DirectivePointer
	Address isa.RawAddress // DirectiveSetAddress
}

// SourceCodeItem is one parsed statement: a command or a directive.
type SourceCodeItem struct {
	IsDirective bool
	Command     SourceCommand
	Directive   CompilerDirective
}

// CommandItem wraps a command into an item.
func CommandItem(command SourceCommand) SourceCodeItem {
	return SourceCodeItem{Command: command}
}

// DirectiveItem wraps a directive into an item.
func DirectiveItem(directive CompilerDirective) SourceCodeItem {
	return SourceCodeItem{IsDirective: true, Directive: directive}
}

// Size returns how many memory cells the item occupies.
func (i SourceCodeItem) Size() isa.RawAddress {
	if !i.IsDirective {
		return 1
	}
	switch i.Directive.Kind {
	case DirectiveData:
		return isa.RawAddress(len(i.Directive.Data))
	case DirectivePointer:
		return 1
	default: // DirectiveSetAddress occupies no cells
		return 0
	}
}

// ParsedProgram is the ordered item list plus the label table. Labels map
// to item indices; a label on the last line with nothing after it indexes
// one past the final item.
type ParsedProgram struct {
	Items  []SourceCodeItem
	Labels map[Label]int
}
