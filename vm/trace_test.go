package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

func TestTraceRecordsSteps(t *testing.T) {
	memory := Burn(&isa.CompiledProgram{
		Sections: []isa.CompiledSection{{
			StartAddress: 0,
			Items:        []isa.MemoryItem{command(isa.OpNop, 0, isa.OperandNone), halt()},
		}},
	})

	var log bytes.Buffer
	cu := NewControlUnit(memory, NewIOController())
	cu.Trace = NewExecutionTrace(&log)
	if err := cu.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(log.String(), "\n"), "\n")
	// every executed micro-step logs one line, plus the summary
	if uint64(len(lines)) != cu.MicroStepCount()+1 {
		t.Errorf("expected %d lines, got %d", cu.MicroStepCount()+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "uPC=") {
		t.Errorf("unexpected trace line: %s", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "instructions:") {
		t.Errorf("expected a summary line, got: %s", lines[len(lines)-1])
	}
}

func TestTraceMaxEntries(t *testing.T) {
	var log bytes.Buffer
	trace := NewExecutionTrace(&log)
	trace.MaxEntries = 2

	for i := 0; i < 5; i++ {
		trace.RecordStep(i, Registers{}, Status{})
	}

	lines := strings.Split(strings.TrimRight(log.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestDisabledTraceWritesNothing(t *testing.T) {
	var log bytes.Buffer
	trace := NewExecutionTrace(&log)
	trace.Enabled = false

	trace.RecordStep(0, Registers{}, Status{})
	trace.RecordSummary(1, 2)

	if log.Len() != 0 {
		t.Errorf("expected no output, got %q", log.String())
	}
}
