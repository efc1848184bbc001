// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/ui"
)

const shellHelp = `Type a title and press Enter for recommendations.
  ?<text>   suggest titles as if <text> was typed
  :<n>      pick suggestion <n>
  :help     show this help
  :q        quit`

func NewShellCmd(api apiFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive recommendation prompt",
		Long: `Start an interactive prompt with debounced title suggestions,
recommendations and catalog insights.`,
		Args: cobra.NoArgs,
		RunE: makeShellRunner(api),
	}

	cmd.Flags().Duration("debounce", 0, "Suggestion delay (overrides client.debounce)")
	cmd.Flags().Bool("no-insights", false, "Do not load catalog insights on start")
	return cmd
}

func makeShellRunner(api apiFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		c, cfg, err := api(cmd)
		if err != nil {
			return err
		}

		opts := ui.Options{
			Delay:          cfg.Client.Debounce,
			MinQueryLength: cfg.Client.MinQueryLength,
		}
		if cmd.Flags().Changed("debounce") {
			opts.Delay, _ = cmd.Flags().GetDuration("debounce")
		}
		noInsights, _ := cmd.Flags().GetBool("no-insights")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sh := newShell(cmd.OutOrStdout())
		app := ui.NewApp(ctx, c, sh.views(), opts, commandLogger(cmd))

		done := make(chan error, 1)
		go func() { done <- app.Run(ctx) }()

		if !noInsights {
			app.Start()
		}
		sh.println(shellHelp)

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if quit := sh.handle(app, scanner.Text()); quit {
				break
			}
		}

		// Let the last cycle render before the loop goes away.
		if err := app.Drain(ctx); err != nil &&
			!errors.Is(err, context.Canceled) && !errors.Is(err, ui.ErrLoopStopped) {
			return err
		}
		app.Stop()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return scanner.Err()
	}
}

// shell is the terminal presentation of ui.App. View methods run on the
// App's loop goroutine while handle runs on the reader goroutine.
type shell struct {
	mu          sync.Mutex
	out         io.Writer
	value       string
	suggestions []string
}

func newShell(out io.Writer) *shell {
	return &shell{out: out}
}

func (s *shell) views() ui.Views {
	return ui.Views{
		Input:          s,
		Results:        shellResults{s},
		Suggestions:    shellSuggestions{s},
		Visualizations: shellInsights{s},
	}
}

// handle processes one input line and reports whether the shell should exit.
func (s *shell) handle(app *ui.App, line string) bool {
	switch {
	case line == ":q" || line == ":quit":
		return true
	case line == ":help":
		s.println(shellHelp)
	case strings.HasPrefix(line, ":"):
		n, err := strconv.Atoi(strings.TrimPrefix(line, ":"))
		if err != nil {
			s.println("unknown command " + line + ", try :help")
			return false
		}
		title, ok := s.suggestion(n)
		if !ok {
			s.println(fmt.Sprintf("no suggestion %d", n))
			return false
		}
		app.SelectSuggestion(title)
	case strings.HasPrefix(line, "?"):
		text := strings.TrimPrefix(line, "?")
		s.SetValue(text)
		app.Input(text)
	default:
		s.SetValue(line)
		app.KeyUp(ui.KeyEnter, line)
	}
	return false
}

func (s *shell) suggestion(n int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.suggestions) {
		return "", false
	}
	return s.suggestions[n-1], true
}

func (s *shell) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *shell) SetValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}

func (s *shell) println(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, text)
}

func (s *shell) message(kind ui.MessageKind, text string) {
	if kind == ui.MessageError {
		text = "error: " + text
	}
	s.println(text)
}

type shellResults struct{ *shell }

func (r shellResults) ShowLoading() { r.println("...") }

func (r shellResults) ShowMessage(kind ui.MessageKind, text string) { r.message(kind, text) }

func (r shellResults) ShowRecommendations(heading string, items []ui.ResultItem) {
	var b strings.Builder
	b.WriteString(heading)
	for i, item := range items {
		fmt.Fprintf(&b, "\n%3d. %s", i+1, item.Title)
		if item.Badge != "" {
			fmt.Fprintf(&b, "  [%s]", item.Badge)
		}
	}
	r.println(b.String())
}

type shellSuggestions struct{ *shell }

func (s shellSuggestions) ShowSuggestions(titles []string) {
	s.mu.Lock()
	s.suggestions = append(s.suggestions[:0], titles...)
	s.mu.Unlock()
	if len(titles) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("suggestions:")
	for i, title := range titles {
		fmt.Fprintf(&b, "\n  :%d %s", i+1, title)
	}
	s.println(b.String())
}

func (s shellSuggestions) ClearSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
}

type shellInsights struct{ *shell }

func (v shellInsights) ShowLoading() { v.println("loading insights...") }

func (v shellInsights) ShowMessage(kind ui.MessageKind, text string) { v.message(kind, text) }

func (v shellInsights) RenderCharts(heading string, charts []ui.Chart) error {
	var b strings.Builder
	printCharts(&b, heading, charts)
	v.println(strings.TrimRight(b.String(), "\n"))
	return nil
}
