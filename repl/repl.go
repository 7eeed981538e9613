// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: An IR-dump REPL. Zen has no runtime to evaluate expressions against, so each submitted
//          line is compiled as a standalone program through the full session pipeline and its
//          LLVM IR (or the diagnostics that stopped it) is printed, rather than a computed value.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"zen/lexer"
	"zen/session"
	"zen/token"
)

const (
	PROMPT = "zen> "
	LOGO   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃ Zen — an ahead-of-time compiler for a small,        ┃
┃ statically-typed, expression-oriented language      ┃
┃ lowering to LLVM IR.                                ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// Start launches the REPL. Each non-command line read from in is
// compiled as a complete one-line program and its IR is written to out;
// there is no persistent evaluation environment since compilation, not
// evaluation, is what this REPL demonstrates.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	debugMode := false

	fmt.Fprint(out, LOGO)
	printHelp(out)

	for {
		fmt.Fprint(out, Yellow+PROMPT+Reset)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".exit":
				fmt.Fprintln(out, Yellow+"Goodbye!"+Reset)
				return
			case ".debug":
				debugMode = !debugMode
				status := "DISABLED"
				if debugMode {
					status = "ENABLED"
				}
				fmt.Fprintf(out, Gray+"Debug mode %s\n"+Reset, status)
				continue
			case ".help":
				printHelp(out)
				continue
			default:
				fmt.Fprintf(out, Red+"Unknown command: %s. Type .help for info.\n"+Reset, line)
				continue
			}
		}

		if debugMode {
			printTokens(out, line)
		}

		result, err := session.New("<repl>").Compile(line)
		if debugMode {
			printStages(out, result.Stages)
		}
		if err != nil {
			fmt.Fprintf(out, Red+Bold+"%s\n"+Reset, err)
			for _, stage := range result.Stages {
				if stage.Bag.HasErrors() {
					fmt.Fprint(out, Red+stage.Bag.Format()+Reset)
				}
			}
			continue
		}

		fmt.Fprintln(out, Green+result.IR+Reset)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, Gray+"Commands:")
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .debug  Toggle token/stage dumps")
	fmt.Fprintln(out, "  .help   Show this message"+Reset)
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, line string) {
	fmt.Fprintln(out, Gray+"┌── [ TOKENS ] ──────────────────────────────────────────┐"+Reset)
	l := lexer.New(line)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		fmt.Fprintf(out, "│ %-15s : %s\n", tok.Type, tok.Literal)
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printStages(out io.Writer, stages []session.StageReport) {
	fmt.Fprintln(out, Gray+"┌── [ STAGES ] ──────────────────────────────────────────┐"+Reset)
	for _, stage := range stages {
		fmt.Fprintf(out, "│ %-10s : %d diagnostic(s)\n", stage.Stage, stage.Bag.Len())
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}
