package vm

import (
	"fmt"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// DefaultMaxMicroSteps bounds a run so a wild program fails instead of
// spinning forever.
const DefaultMaxMicroSteps = 1_000_000

// ControlUnit drives the datapath through the microcode table. Each step
// has a rise phase (device/memory writes, ALU) and a fall phase (register
// latches), then the next micro-address is selected.
type ControlUnit struct {
	Registers Registers
	Status    Status
	Memory    *Memory
	IO        *IOController
	Trace     *ExecutionTrace

	// MaxMicroSteps aborts the run when exceeded; zero means the default.
	MaxMicroSteps uint64

	mpc          int
	instructions uint64
	microSteps   uint64
}

// NewControlUnit builds a control unit over burned memory and a device
// controller. All registers start at zero, so the zero flag starts set.
func NewControlUnit(memory *Memory, io *IOController) *ControlUnit {
	return &ControlUnit{
		Status: Status{Zero: true},
		Memory: memory,
		IO:     io,
	}
}

// InstructionCount reports completed architectural instructions.
func (cu *ControlUnit) InstructionCount() uint64 {
	return cu.instructions
}

// MicroStepCount reports executed micro-instructions.
func (cu *ControlUnit) MicroStepCount() uint64 {
	return cu.microSteps
}

// Run executes micro-instructions until HALT. It returns an error when the
// micro-step budget runs out.
func (cu *ControlUnit) Run() error {
	budget := cu.MaxMicroSteps
	if budget == 0 {
		budget = DefaultMaxMicroSteps
	}

	for {
		mi := microcode[cu.mpc]
		if mi.Has(SignalHalt) {
			break
		}
		if cu.microSteps >= budget {
			return fmt.Errorf("halt not reached after %d micro-steps", budget)
		}

		cu.step(mi)
	}

	cu.Trace.RecordSummary(cu.instructions, cu.microSteps)
	return nil
}

// deviceAddress is read lazily: the data register may well hold a command
// while no I/O signal is asserted, and unwrapping it then would trap.
func (cu *ControlUnit) deviceAddress() isa.RawPort {
	return isa.RawPort(cu.Registers.Data.UnwrapData())
}

func (cu *ControlUnit) step(mi Microinstruction) {
	// rise: device write, memory write, ALU
	isIO := mi.Has(SignalIO)
	if isIO && mi.Has(SignalWriteIO) {
		cu.IO.Write(cu.deviceAddress(), byte(cu.Registers.Accumulator))
	}

	if mi.Has(SignalWriteMem) {
		cu.Memory.Write(cu.Registers.Address, cu.Registers.Data)
	}

	var left uint32
	switch {
	case mi.Has(SignalZeroLeft):
		left = 0
	case mi.Has(SignalSelectPC):
		left = uint32(cu.Registers.ProgramCounter)
	default:
		left = cu.Registers.Accumulator
	}

	var right uint32
	rightSelector := 0
	if mi.Has(SignalSelectRightData) {
		rightSelector |= 0b01
	}
	if mi.Has(SignalSelectRightCmdOperand) {
		rightSelector |= 0b10
	}
	switch rightSelector {
	case 0b01:
		right = cu.Registers.Data.UnwrapData()
	case 0b10:
		right = uint32(cu.Registers.Command.Operand.Value)
	case 0b11:
		right = uint32(cu.Registers.Address)
	}

	shift := ShiftNone
	if mi.Has(SignalShiftLeft) {
		shift = ShiftLeft
	} else if mi.Has(SignalShiftRight) {
		shift = ShiftRight
	}

	output := RunALU(ALUConfig{
		Left:     left,
		Right:    right,
		And:      mi.Has(SignalAnd),
		NotLeft:  mi.Has(SignalNotLeft),
		NotRight: mi.Has(SignalNotRight),
		Inc:      mi.Has(SignalInc),
		Shift:    shift,
	})

	// fall: latch registers from values sampled at rise
	if mi.Has(SignalWriteStatus) {
		cu.Status = Status{Zero: output.Zero, Carry: output.Carry}
	}

	if mi.Has(SignalWriteAccumulator) {
		if isIO {
			// device read, zero-extended
			cu.Registers.Accumulator = uint32(cu.IO.Read(cu.deviceAddress()))
		} else {
			cu.Registers.Accumulator = output.Value
		}
	}

	if mi.Has(SignalWriteProgramCounter) {
		cu.Registers.ProgramCounter = isa.RawAddress(output.Value)
	}

	// guarded writes fire when the flag matches the sense; with both Z and
	// C guards asserted either match writes
	invert := mi.Has(SignalWriteProgramCounterClear)
	if mi.Has(SignalWriteProgramCounterZ) && cu.Status.Zero != invert {
		cu.Registers.ProgramCounter = isa.RawAddress(output.Value)
	}
	if mi.Has(SignalWriteProgramCounterC) && cu.Status.Carry != invert {
		cu.Registers.ProgramCounter = isa.RawAddress(output.Value)
	}

	if mi.Has(SignalWriteCommand) {
		// traps when the cell is data: executing data is a fatal fault
		cu.Registers.Command = cu.Registers.Data.UnwrapCommand()
	}

	selectMem := mi.Has(SignalSelectMem)
	if mi.Has(SignalWriteData) {
		if selectMem {
			cu.Registers.Data = cu.Memory.Read(cu.Registers.Address)
		} else {
			cu.Registers.Data = isa.DataItem(output.Value)
		}
	}

	// the address latch is suppressed while the data register samples
	// memory, otherwise the read would race the address update
	if mi.Has(SignalWriteAddress) && !selectMem {
		cu.Registers.Address = isa.RawAddress(output.Value)
	}

	cu.Trace.RecordStep(cu.mpc, cu.Registers, cu.Status)

	selector := 0
	if mi.Has(SignalSelectMC0) {
		selector |= 0b01
	}
	if mi.Has(SignalSelectMC1) {
		selector |= 0b10
	}
	switch selector {
	case 0b00:
		cu.mpc++
	case 0b01:
		cu.mpc = mcFetch
	case 0b10:
		cu.mpc = operandEntry(cu.Registers.Command.Operand.Type)
	case 0b11:
		cu.mpc = opcodeEntry(cu.Registers.Command.Opcode)
	}

	if cu.mpc == mcFetch {
		cu.instructions++
	}
	cu.microSteps++
}
