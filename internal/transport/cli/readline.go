package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/pkg/log"
)

const defaultSessionID = "cli-local"

type chatHandler interface {
	Handle(ctx context.Context, sessionID, text string) (string, error)
}

type ReadLine struct {
	chat   chatHandler
	rl     *readline.Instance
	onExit func()
}

// NewReadLine builds the terminal chat. onExit runs when the user leaves
// the prompt and may be nil.
func NewReadLine(cfg core.AppConfig, chat chatHandler, onExit func()) (*ReadLine, error) {
	runtimePath := cfg.GetRuntimePath()
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you › ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	if onExit == nil {
		onExit = func() {}
	}

	return &ReadLine{
		chat:   chat,
		rl:     rl,
		onExit: onExit,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	defer r.onExit()

	logger := log.FromCtx(ctx)
	fmt.Fprintf(r.rl.Stdout(), "%s is listening. Type /help for commands, 'exit' to quit.\n", core.SaoriName)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		out, err := r.chat.Handle(ctx, defaultSessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("chat failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(r.rl.Stdout(), "%s › %s\n", strings.ToLower(core.SaoriName), out)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
