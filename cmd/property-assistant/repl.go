package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/property-assistant-go/pkg/assistant"
	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
)

const questionPrompt = "Enter a question, or type 'exit' to end: "

// asker answers one question against the uploaded document.
type asker interface {
	Ask(ctx context.Context, question string) (assistant.Turn, error)
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
}

// runREPL reads questions until "exit" (any case) or end of input. The
// scanner is shared with the address prompts so buffered input is not lost.
func runREPL(ctx context.Context, session asker, opts replOptions, scanner *bufio.Scanner, out io.Writer) error {
	if session == nil {
		return errors.New("assistant session is required")
	}
	if scanner == nil {
		return errors.New("input scanner is required")
	}
	if out == nil {
		out = io.Discard
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", nil)

	questions := 0
	for {
		_, _ = fmt.Fprint(out, questionPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.ToLower(input) == "exit" {
			break
		}

		if _, err := session.Ask(ctx, input); err != nil {
			loggerpkg.Error(opts.Logger, "question failed", map[string]any{"error": err.Error()})
			return err
		}
		questions++
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl end", map[string]any{"questions": questions})
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
