package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ultitrack/recorder/internal/dispatcher"
	"github.com/ultitrack/recorder/internal/parser"
)

const prompt = "> "

// normalizeCommand maps "tap", "new-game" and "lineup_toggle" onto the
// dispatcher's ":TAP:", ":NEW:GAME:" and ":LINEUP:TOGGLE:" form.
func normalizeCommand(cmd string) string {
	if strings.HasPrefix(cmd, ":") && strings.HasSuffix(cmd, ":") && len(cmd) > 1 {
		return cmd
	}
	cmd = strings.Trim(cmd, ":")
	cmd = strings.NewReplacer("-", ":", "_", ":").Replace(strings.ToUpper(cmd))
	return ":" + cmd + ":"
}

func isQuit(cmd string) bool {
	return cmd == ":QUIT:" || cmd == ":EXIT:"
}

// runLines feeds each input line through the dispatcher and writes results
// to out. Errors are printed and the loop continues. Blank lines and lines
// starting with # are skipped. With interactive set a prompt is shown;
// otherwise each command is echoed.
func runLines(d *dispatcher.Dispatcher, p *parser.Parser, in io.Reader, out io.Writer, interactive bool) (int, error) {
	failures := 0
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !interactive {
			fmt.Fprintf(out, "%s%s\n", prompt, line)
		}

		cmd, args, err := p.SplitLine(line)
		if err != nil {
			failures++
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		cmd = normalizeCommand(cmd)
		if isQuit(cmd) {
			break
		}

		result, err := d.Dispatch(dispatcher.Event{Command: cmd, Args: args})
		if err != nil {
			failures++
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if text, ok := result.(string); ok && text != "" {
			fmt.Fprintln(out, text)
		}
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return failures, scanner.Err()
}
