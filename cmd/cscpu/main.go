// cscpu executes a compiled program image against the reference I/O
// device, writing a rolling execution log.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/owl-from-hogvarts/csa-lab3/config"
	"github.com/owl-from-hogvarts/csa-lab3/loader"
	"github.com/owl-from-hogvarts/csa-lab3/vm"
)

func main() {
	app := cli.NewApp()
	app.Name = "cscpu"
	app.Usage = "run a compiled program image"
	app.ArgsUsage = "program.json io-input.txt"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a TOML configuration file",
		},
		cli.StringFlag{
			Name:  "log",
			Usage: "execution log file (overrides the configured path)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return err
	}

	programPath, err := fileArgument(c, 0, "program path")
	if err != nil {
		return err
	}
	inputPath, err := fileArgument(c, 1, "io device input")
	if err != nil {
		return err
	}

	program, err := loader.ReadProgram(programPath)
	if err != nil {
		return err
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	logPath := cfg.Trace.OutputFile
	if path := c.String("log"); path != "" {
		logPath = path
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	trace := vm.NewExecutionTrace(logFile)
	trace.Enabled = cfg.Trace.Enabled
	trace.MaxEntries = cfg.Trace.MaxEntries

	memory := vm.Burn(program)
	devices := vm.NewIOController().
		Connect(0, vm.NewBufferedDevice(string(input), os.Stdout))

	cu := vm.NewControlUnit(memory, devices)
	cu.Trace = trace
	cu.MaxMicroSteps = cfg.Execution.MaxMicroSteps

	return cu.Run()
}

// fileArgument fetches a positional argument and checks it names a regular
// file.
func fileArgument(c *cli.Context, position int, name string) (string, error) {
	if c.NArg() <= position {
		return "", fmt.Errorf("argument expected but not provided: %s", name)
	}
	path := c.Args().Get(position)
	if path == "" {
		return "", fmt.Errorf("argument at position %d is empty", position+1)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is not a file", path)
	}
	return path, nil
}
