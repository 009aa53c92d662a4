// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend    string `flag:"frontend" usage:"frontend: window, terminal, headless" default:"window"`
	Binary      bool   `flag:"binary" usage:"load input as raw binary regardless of file extension"`
	Disassemble bool   `flag:"disasm" usage:"print a disassembly listing of the ROM and exit"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction and halt on invalid instructions"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains timing and display options of the machine.
type MachineFlags struct {
	Cycles int    `flag:"cycles" usage:"instructions executed per timer tick" default:"10"`
	Rate   int    `flag:"rate" usage:"timer ticks per second" default:"60"`
	Scale  int    `flag:"scale" usage:"window pixels per screen pixel" default:"10"`
	Seed   uint64 `flag:"seed" usage:"random number generator seed (default: random)"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	MachineFlags
}

// Supported frontends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}
