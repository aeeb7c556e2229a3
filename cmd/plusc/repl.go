package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/plusc"
)

const (
	historyFile = ".plusc_history"
	prompt      = "plusc> "
	replHelp    = `Enter statements to see their C translation.
  :ast      toggle printing of the parsed tree
  :reset    forget declared variables
  :quit     exit
`
)

// runREPL reads statements line by line and prints their translation.
// Variables stay declared across lines.
func runREPL(logger *slog.Logger) int {
	fmt.Printf("plusc %s interactive mode. Type :help for commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := plusc.NewSession(&plusc.Config{Logger: logger})
	showAST := false

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// Ctrl-C aborts the prompt; anything else (Ctrl-D) ends the line first
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return 0
		}

		cmd := strings.TrimSpace(line)
		switch cmd {
		case "":
			continue
		case ":quit", ":q":
			return 0
		case ":help":
			fmt.Print(replHelp)
			continue
		case ":ast":
			showAST = !showAST
			fmt.Printf("AST printing %s\n", onOff(showAST))
			continue
		case ":reset":
			session.Reset()
			continue
		}
		if strings.HasPrefix(cmd, ":") {
			fmt.Println("unknown command. Type :help for commands.")
			continue
		}
		ln.AppendHistory(line)

		lines, prog, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if showAST {
			fmt.Print(prog.Dump())
		}
		for _, l := range lines {
			fmt.Println(l)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
