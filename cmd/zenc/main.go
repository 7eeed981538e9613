// ==============================================================================================
// FILE: cmd/zenc/main.go
// ==============================================================================================
// PURPOSE: Thin CLI driver over the session package. Temp-file management and linker invocation
//          for a real `--emit=obj` output are intentionally out of scope; this wires the core
//          compiler's public API to a command line, nothing more.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"zen/session"
)

func main() {
	app := &cli.App{
		Name:  "zenc",
		Usage: "compile a Zen source file to LLVM IR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "emit",
				Value: "llvm-ir",
				Usage: "output format: llvm-ir or obj",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write output to this path instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "jit",
				Usage: "not yet implemented: run the program in-process instead of emitting IR",
			},
		},
		ArgsUsage: "<file.zen>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("zenc: expected exactly one source file", 2)
	}
	path := c.Args().Get(0)

	switch c.String("emit") {
	case "llvm-ir":
	case "obj":
		return cli.Exit("zenc: --emit=obj requires a linker invocation this driver does not implement", 1)
	default:
		return cli.Exit(fmt.Sprintf("zenc: unknown --emit value %q", c.String("emit")), 2)
	}

	if c.Bool("jit") {
		return cli.Exit("zenc: --jit is not implemented", 1)
	}

	result, err := session.CompileFile(path)
	if err != nil {
		for _, stage := range result.Stages {
			if stage.Bag.HasErrors() {
				fmt.Fprint(os.Stderr, stage.Bag.Format())
			}
		}
		return cli.Exit(err.Error(), 1)
	}

	if out := c.String("output"); out != "" {
		return os.WriteFile(out, []byte(result.IR), 0644)
	}
	fmt.Print(result.IR)
	return nil
}
