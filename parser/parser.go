// Package parser turns assembly source text into an ordered list of source
// items plus a label table. Each line holds at most one statement; parsing
// is per-line recursive descent over a token stream with peek-commit
// consumption.
package parser

import "strings"

// Parse parses a whole source file. It stops at the first error, wrapped
// with its 1-based line number.
func Parse(input string) (*ParsedProgram, error) {
	program := &ParsedProgram{
		Labels: make(map[Label]int),
	}

	for number, line := range strings.Split(input, "\n") {
		if start := strings.Index(line, "//"); start >= 0 {
			line = line[:start]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := program.parseLine(Tokenize(line)); err != nil {
			return nil, &LineError{Line: number + 1, Err: err}
		}
	}

	return program, nil
}

// parseLine consumes one statement: an optional label, then a directive or
// command, then end of input.
func (p *ParsedProgram) parseLine(stream *TokenStream) error {
	if err := p.parseLabel(stream); err != nil {
		return err
	}

	// a line may carry a label alone
	if next, err := stream.Peek(1); err == nil && next.Kind == TokenEndOfInput {
		return nil
	}

	item, err := p.parseStatement(stream)
	if err != nil {
		return err
	}
	p.Items = append(p.Items, item)

	return stream.NextEndOfInput()
}

// parseLabel recognises `word ':'` by look-ahead and commits only on a
// full match. The label records the index of the item that follows it.
func (p *ParsedProgram) parseLabel(stream *TokenStream) error {
	first, err := stream.Peek(1)
	if err != nil || first.Kind != TokenWord {
		return nil
	}
	second, err := stream.Peek(2)
	if err != nil || second.Kind != TokenSpecialSymbol || second.Symbol != ':' {
		return nil
	}

	label, _ := stream.NextWord()
	if err := stream.NextSpecialSymbol(':'); err != nil {
		return err
	}

	if _, defined := p.Labels[label]; defined {
		return &MultipleDefinitionsError{Label: label}
	}
	p.Labels[label] = len(p.Items)
	return nil
}

func (p *ParsedProgram) parseStatement(stream *TokenStream) (SourceCodeItem, error) {
	directive, err := parseDirective(stream)
	if err != nil {
		return SourceCodeItem{}, err
	}
	if directive != nil {
		return DirectiveItem(*directive), nil
	}

	command, err := parseCommand(stream)
	if err != nil {
		return SourceCodeItem{}, err
	}
	return CommandItem(command), nil
}

// parseDirective dispatches on an uppercased first word. A non-directive
// word leaves the stream untouched so command parsing sees it.
func parseDirective(stream *TokenStream) (*CompilerDirective, error) {
	first, err := stream.Peek(1)
	if err != nil || first.Kind != TokenWord {
		return nil, nil
	}

	switch strings.ToUpper(first.Text) {
	case "WORD":
		// advance stream on match only
		if _, err := stream.NextWord(); err != nil {
			return nil, err
		}
		return parseWordDirective(stream)

	case "ORG":
		if _, err := stream.NextWord(); err != nil {
			return nil, err
		}
		address, err := stream.NextNumber()
		if err != nil {
			return nil, err
		}
		return &CompilerDirective{Kind: DirectiveSetAddress, Address: address}, nil
	}

	return nil, nil
}

// parseWordDirective handles both forms of WORD: a single label produces a
// pointer cell, one or more numeric literals produce data cells.
func parseWordDirective(stream *TokenStream) (*CompilerDirective, error) {
	if label, err := stream.NextWord(); err == nil {
		return &CompilerDirective{Kind: DirectivePointer, Label: label}, nil
	}

	var data []uint32
	for {
		value, err := stream.NextLongNumber()
		if err != nil {
			break
		}
		data = append(data, value)
	}

	if len(data) == 0 {
		next, _ := stream.Peek(1)
		return nil, &UnexpectedTokenError{Actual: next}
	}
	return &CompilerDirective{Kind: DirectiveData, Data: data}, nil
}

func parseCommand(stream *TokenStream) (SourceCommand, error) {
	mnemonic, err := stream.NextWord()
	if err != nil {
		return SourceCommand{}, err
	}

	metadata, err := MetadataByMnemonic(mnemonic)
	if err != nil {
		return SourceCommand{}, err
	}

	argument, err := metadata.parseArgument(stream)
	if err != nil {
		return SourceCommand{}, err
	}

	return SourceCommand{Metadata: metadata, Argument: argument}, nil
}
