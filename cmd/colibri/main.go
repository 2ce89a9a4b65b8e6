package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"colibri/pkg/builtins"
	"colibri/pkg/driver"
	"colibri/pkg/vm"
)

func main() {
	exprFlag := flag.String("e", "", "Evaluate the given expression and exit")
	profileFlag := flag.String("profile", "full", "Build profile: full or compact")

	flag.Parse()

	profile, err := parseProfile(*profileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(64) // command line usage error
	}

	engine := driver.New(driver.Options{Profile: profile})
	defer engine.Close()

	if *exprFlag != "" {
		result := driver.DescribeResult(evaluate(engine, *exprFlag))
		fmt.Println(result)
		return
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Usage: colibri [-profile full|compact] [-e \"expression\"]\n")
		os.Exit(64)
	}

	runRepl(engine)
}

func parseProfile(name string) (builtins.Profile, error) {
	switch name {
	case "full":
		return builtins.FullProfile, nil
	case "compact":
		return builtins.CompactProfile, nil
	}
	return builtins.FullProfile, fmt.Errorf("unknown profile %q (want full or compact)", name)
}

// runRepl starts the Read-Eval-Print Loop over built-in expressions.
func runRepl(engine *driver.Engine) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	reader := bufio.NewReader(os.Stdin)

	if interactive {
		fmt.Printf("Colibri (%s profile, Ctrl+D to exit)\n", engine.Registry().Profile())
	}

	for {
		if interactive {
			fmt.Print("> ")
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if interactive {
					fmt.Println()
				}
				return
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Println(driver.DescribeResult(evaluate(engine, line)))
	}
}

// evaluate handles the CLI's small expression surface: a dotted property
// path, an optional call or construction with literal arguments.
//
//	Math.PI
//	Math.pow(2, 10)
//	new Date(0)
func evaluate(engine *driver.Engine, expr string) (vm.Value, error) {
	expr = strings.TrimSpace(expr)

	construct := false
	if rest, ok := strings.CutPrefix(expr, "new "); ok {
		construct = true
		expr = strings.TrimSpace(rest)
	}

	open := strings.IndexByte(expr, '(')
	if open < 0 {
		if construct {
			return engine.Construct(expr)
		}
		return engine.Lookup(expr)
	}

	if !strings.HasSuffix(expr, ")") {
		return vm.Undefined, fmt.Errorf("unbalanced call in %q", expr)
	}
	path := strings.TrimSpace(expr[:open])
	args, err := parseArguments(expr[open+1 : len(expr)-1])
	if err != nil {
		return vm.Undefined, err
	}

	if construct {
		return engine.Construct(path, args...)
	}
	return engine.Call(path, args...)
}

// parseArguments parses a comma-separated literal argument list: numbers,
// double-quoted strings, true, false, null, undefined.
func parseArguments(list string) ([]vm.Value, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}

	var args []vm.Value
	for _, raw := range splitArguments(list) {
		arg, err := parseLiteral(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// splitArguments splits on commas outside double quotes.
func splitArguments(list string) []string {
	var parts []string
	inString := false
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '"':
			if !inString || i == 0 || list[i-1] != '\\' {
				inString = !inString
			}
		case ',':
			if !inString {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, list[start:])
	return parts
}

func parseLiteral(text string) (vm.Value, error) {
	switch text {
	case "true":
		return vm.True, nil
	case "false":
		return vm.False, nil
	case "null":
		return vm.Null, nil
	case "undefined":
		return vm.Undefined, nil
	}
	if strings.HasPrefix(text, "\"") {
		s, err := strconv.Unquote(text)
		if err != nil {
			return vm.Undefined, fmt.Errorf("bad string literal %s", text)
		}
		return vm.StringValue(s), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return vm.Undefined, fmt.Errorf("bad literal %q", text)
	}
	return vm.NumberValue(f), nil
}
