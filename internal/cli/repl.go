package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/orderlookup/internal/core"
)

// Prompt is printed before each interactive query.
const Prompt = "Customer name (first or last, \"quit\" to exit): "

// Looker runs a lookup. *core.Service satisfies it.
type Looker interface {
	Lookup(ctx context.Context, query string) (core.LookupResult, error)
}

// Client runs lookups and writes results to Out.
type Client struct {
	Looker Looker
	Out    io.Writer
}

// Query runs one lookup and prints the result.
func (c *Client) Query(ctx context.Context, query string) error {
	result, err := c.Looker.Lookup(ctx, query)
	if err != nil {
		return err
	}
	return RenderResult(c.Out, result)
}

// Run answers the query given in args, or when args is empty reads queries
// line by line from in until EOF or "quit". Lines are searched as typed;
// blank lines are skipped. A lookup error stops the loop.
func (c *Client) Run(ctx context.Context, in io.Reader, args []string) error {
	if len(args) > 0 {
		return c.Query(ctx, strings.Join(args, " "))
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(c.Out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(c.Out)
			return scanner.Err()
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Query(ctx, line); err != nil {
			return err
		}
	}
}
