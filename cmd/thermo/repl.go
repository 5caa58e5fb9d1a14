package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/thermo/catalog"
	"github.com/peterh/liner"
)

const historyFile = ".thermo_history"

// replCommands are the words accepted at the start of a repl line.
var replCommands = []string{"calc", "dome", "fluids", "help", "info", "quit", "show"}

const replHelp = `commands:
  calc [-json] <fluid> <pair> <v1> <v2>
  dome [-json] [-out file] <fluid>
  show <file>
  info [-json] <fluid>
  fluids [-json]
  quit`

func (a *app) repl(ctx context.Context) error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetCtrlCAborts(true)

	if c, err := catalog.Load(a.cfg); err == nil {
		lin.SetWordCompleter(completer(c))
	} else {
		a.logger.Debug("fluid completion disabled", "error", err)
	}

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		_, _ = lin.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = lin.WriteHistory(f)
			f.Close()
		}
	}()

	for ctx.Err() == nil {
		line, err := lin.Prompt("thermo> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.stdout)
				return nil
			}
			return fmt.Errorf("read prompt: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lin.AppendHistory(line)
		if done := a.replLine(ctx, fields); done {
			return nil
		}
	}
	return nil
}

// replLine runs one repl command and reports whether the session is over.
// Errors are rendered, never returned.
func (a *app) replLine(ctx context.Context, fields []string) bool {
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(a.stdout, replHelp)
		return false
	}
	if err := a.exec(ctx, fields[0], fields[1:]); err != nil {
		_ = a.out.Error(err)
	}
	return false
}

// completer completes command names in the first word and fluid names in
// every later word. pos is a rune offset.
func completer(c catalog.Catalog) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		r := []rune(line)
		head, tail := string(r[:pos]), string(r[pos:])
		start := strings.LastIndexByte(head, ' ') + 1
		word := head[start:]
		head = head[:start]

		if strings.TrimSpace(head) == "" {
			var out []string
			for _, cmd := range replCommands {
				if strings.HasPrefix(cmd, word) {
					out = append(out, cmd)
				}
			}
			return head, out, tail
		}
		if strings.HasPrefix(word, "-") {
			return head, nil, tail
		}
		return head, c.Complete(word), tail
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
