package compiler

import (
	"github.com/owl-from-hogvarts/csa-lab3/isa"
	"github.com/owl-from-hogvarts/csa-lab3/parser"
)

// lowerArgument turns a source argument into the compiled operand. Relative
// and indirect operands encode the displacement from the address past the
// current command, because at fetch time the program counter has already
// advanced; the subtraction wraps in 16 bits.
func lowerArgument(argument parser.Argument, current isa.RawAddress, labels resolvedLabels) (isa.Operand, error) {
	switch argument.Kind {
	case parser.ArgPort:
		return isa.Operand{Value: isa.RawOperand(argument.Port), Type: isa.OperandImmediate}, nil

	case parser.ArgImmediate:
		return isa.Operand{Value: argument.Immediate, Type: isa.OperandImmediate}, nil

	case parser.ArgAddress:
		address := argument.Address
		target := address.Ref.Address
		if address.Ref.IsLabel {
			resolved, ok := labels[address.Ref.Label]
			if !ok {
				return isa.Operand{}, &LabelError{Label: address.Ref.Label}
			}
			target = resolved
		}

		value := target
		if address.Mode != parser.ModeAbsolute {
			value = target - (current + 1)
		}
		return isa.Operand{Value: value, Type: address.Mode.OperandType()}, nil

	default:
		return isa.Operand{Value: 0, Type: isa.OperandNone}, nil
	}
}
