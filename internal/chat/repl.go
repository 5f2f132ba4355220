package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// REPL reads queries line by line from in and writes replies to out until
// EOF, "exit" or "quit", or until ctx is cancelled.
func REPL(ctx context.Context, in io.Reader, out io.Writer, svc *Service, sessionID string, ui UI) error {
	fmt.Fprintln(out, ui.Heading())
	fmt.Fprintf(out, "Session %s. Type \"exit\" to quit.\n", sessionID)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, _ := svc.Ask(ctx, sessionID, line)
		fmt.Fprintln(out, reply)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
