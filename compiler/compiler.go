// Package compiler lowers a parsed program to a binary image: it assigns an
// absolute address to every item, resolves labels to those addresses, and
// emits items into sections delimited by ORG directives.
package compiler

import (
	"github.com/owl-from-hogvarts/csa-lab3/isa"
	"github.com/owl-from-hogvarts/csa-lab3/parser"
)

type resolvedLabels map[parser.Label]isa.RawAddress

// Compile translates a parsed program into its compiled image.
func Compile(program *parser.ParsedProgram) (*isa.CompiledProgram, error) {
	addresses, end, err := assignAddresses(program.Items)
	if err != nil {
		return nil, err
	}

	labels := resolveLabels(program.Labels, addresses, end)

	return emit(program.Items, addresses, labels)
}

// assignAddresses walks the items once, maintaining the address cursor. A
// SetAddress directive moves the cursor and itself sits at the new address;
// every other item occupies its size in cells. The cursor after the final
// item is returned for trailing labels.
func assignAddresses(items []parser.SourceCodeItem) ([]isa.RawAddress, isa.RawAddress, error) {
	addresses := make([]isa.RawAddress, len(items))

	sectionStart := 0
	cursor := 0
	for index, item := range items {
		if item.IsDirective && item.Directive.Kind == parser.DirectiveSetAddress {
			next := int(item.Directive.Address)
			if cursor > next {
				return nil, 0, &SectionTooLargeError{
					Start:  sectionStart,
					Next:   next,
					Actual: cursor - sectionStart,
				}
			}
			sectionStart = next
			cursor = next
			addresses[index] = isa.RawAddress(next)
			continue
		}

		addresses[index] = isa.RawAddress(cursor)
		cursor += int(item.Size())
		if cursor > isa.MemorySize {
			return nil, 0, &SectionTooLargeError{
				Start:  sectionStart,
				Next:   isa.MemorySize,
				Actual: cursor - sectionStart,
			}
		}
	}

	return addresses, isa.RawAddress(cursor), nil
}

// resolveLabels turns item indices into addresses. A label indexing one
// past the last item resolves to the cursor after it.
func resolveLabels(labels map[parser.Label]int, addresses []isa.RawAddress, end isa.RawAddress) resolvedLabels {
	resolved := make(resolvedLabels, len(labels))
	for label, index := range labels {
		if index < len(addresses) {
			resolved[label] = addresses[index]
		} else {
			resolved[label] = end
		}
	}
	return resolved
}

// emit distributes items into sections. The base section starts at zero;
// each SetAddress directive finalises the current section and opens a new
// one, emitting nothing itself. A SetAddress reached while the current
// section is still empty moves that section's start instead.
func emit(items []parser.SourceCodeItem, addresses []isa.RawAddress, labels resolvedLabels) (*isa.CompiledProgram, error) {
	sections := []isa.CompiledSection{isa.SectionAt(0)}
	current := &sections[0]

	for index, item := range items {
		if item.IsDirective {
			directive := item.Directive
			switch directive.Kind {
			case parser.DirectiveSetAddress:
				// an ORG before anything was emitted just moves the
				// current section instead of leaving an empty one behind
				if len(current.Items) == 0 {
					current.StartAddress = directive.Address
				} else {
					sections = append(sections, isa.SectionAt(directive.Address))
					current = &sections[len(sections)-1]
				}

			case parser.DirectiveData:
				for _, value := range directive.Data {
					current.Items = append(current.Items, isa.DataItem(value))
				}

			case parser.DirectivePointer:
				address, ok := labels[directive.Label]
				if !ok {
					return nil, &LabelError{Label: directive.Label}
				}
				current.Items = append(current.Items, isa.DataItem(uint32(address)))
			}
			continue
		}

		operand, err := lowerArgument(item.Command.Argument, addresses[index], labels)
		if err != nil {
			return nil, err
		}
		current.Items = append(current.Items, isa.CommandItem(isa.CompiledCommand{
			Opcode:  item.Command.Metadata.Opcode,
			Operand: operand,
		}))
	}

	return &isa.CompiledProgram{Sections: sections}, nil
}
