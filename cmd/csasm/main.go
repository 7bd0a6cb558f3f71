// csasm translates assembly source into a JSON program image.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/owl-from-hogvarts/csa-lab3/compiler"
	"github.com/owl-from-hogvarts/csa-lab3/config"
	"github.com/owl-from-hogvarts/csa-lab3/loader"
	"github.com/owl-from-hogvarts/csa-lab3/parser"
)

func main() {
	app := cli.NewApp()
	app.Name = "csasm"
	app.Usage = "assemble a source file into a program image"
	app.ArgsUsage = "input.asm [output.json]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a TOML configuration file",
		},
	}
	app.Action = assemble

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func assemble(c *cli.Context) error {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return err
	}

	inputPath, err := fileArgument(c, 0, "input")
	if err != nil {
		return err
	}

	outputPath := c.Args().Get(1)
	if outputPath == "" {
		stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = stem + cfg.Assembler.OutputExtension
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	parsed, err := parser.Parse(string(source))
	if err != nil {
		return err
	}

	program, err := compiler.Compile(parsed)
	if err != nil {
		return err
	}

	return loader.WriteProgram(outputPath, program)
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
