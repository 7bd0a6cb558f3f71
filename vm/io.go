package vm

import (
	"io"
	"os"

	"github.com/owl-from-hogvarts/csa-lab3/isa"
)

// Device is the contract an I/O device exposes to the controller. Read may
// mutate the device, e.g. advance an input cursor.
type Device interface {
	Read() byte
	Write(payload byte)
}

// IOController maps ports to devices. Reading an unmapped port returns
// zero; writing to one is a no-op.
type IOController struct {
	devices map[isa.RawPort]Device
}

// NewIOController creates a controller with no devices attached.
func NewIOController() *IOController {
	return &IOController{devices: make(map[isa.RawPort]Device)}
}

// Connect attaches a device to a port and returns the controller for
// chaining.
func (c *IOController) Connect(port isa.RawPort, device Device) *IOController {
	c.devices[port] = device
	return c
}

// Read reads one byte from the device at the port.
func (c *IOController) Read(port isa.RawPort) byte {
	device, ok := c.devices[port]
	if !ok {
		return 0
	}
	return device.Read()
}

// Write writes one byte to the device at the port.
func (c *IOController) Write(port isa.RawPort, payload byte) {
	if device, ok := c.devices[port]; ok {
		device.Write(payload)
	}
}

// BufferedDevice is the reference device: it serves a length-prefixed input
// buffer byte by byte and forwards written bytes to an output writer.
type BufferedDevice struct {
	buffer []byte
	cursor int
	output io.Writer
}

// NewBufferedDevice builds the device from the input payload. The buffer
// starts with the payload length capped at 255, followed by the payload
// bytes. Output defaults to the host standard output when writer is nil.
func NewBufferedDevice(input string, output io.Writer) *BufferedDevice {
	if output == nil {
		output = os.Stdout
	}

	length := len(input)
	if length > 0xFF {
		length = 0xFF
	}

	buffer := make([]byte, 0, len(input)+1)
	buffer = append(buffer, byte(length))
	buffer = append(buffer, input...)

	return &BufferedDevice{buffer: buffer, output: output}
}

// Read serves the next buffered byte, or zero once the buffer is drained.
func (d *BufferedDevice) Read() byte {
	if d.cursor >= len(d.buffer) {
		return 0
	}
	payload := d.buffer[d.cursor]
	d.cursor++
	return payload
}

// Write forwards the byte to the output writer.
func (d *BufferedDevice) Write(payload byte) {
	d.output.Write([]byte{payload})
}
