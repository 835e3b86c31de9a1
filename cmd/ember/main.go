package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	ember "github.com/emberlang/go-ember"
)

const (
	appName     = "ember"
	historyFile = ".ember_history"
	prompt      = "> "
)

func main() {
	if os.Getenv("EMBER_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "disasm":
		os.Exit(cmdDisasm(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s run <file>       Compile and evaluate an expression file.
  %s disasm <file>    Compile an expression file and dump its bytecode.
  %s repl             Start the interactive evaluator.

Set EMBER_DEBUG=1 for compiler debug logging.
`, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file>\n", appName)
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		logrus.Error(err)
		return 1
	}
	val, err := ember.Eval(string(data))
	if err != nil {
		if !errors.Is(err, ember.ErrCompile) {
			logrus.Error(err)
		}
		return 1
	}
	fmt.Println(formatNumber(val))
	return 0
}

func cmdDisasm(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s disasm <file>\n", appName)
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		logrus.Error(err)
		return 1
	}
	script, err := ember.Compile(string(data))
	if err != nil {
		return 1
	}
	if err := script.Disassemble(filepath.Base(args[0]), os.Stdout); err != nil {
		logrus.Error(err)
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Println("ember expression evaluator. Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			logrus.Error(err)
			return 1
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			if strings.EqualFold(code, ":quit") {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		val, err := ember.Eval(code)
		if err != nil {
			// compiler diagnostics already went to stderr
			if !errors.Is(err, ember.ErrCompile) {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		fmt.Println(formatNumber(val))
		ln.AppendHistory(code)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
