package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"clinic-admin/internal/reconcile"
)

// Toaster prints notifications as single lines.
type Toaster struct {
	mu  sync.Mutex
	out io.Writer
}

func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

func (t *Toaster) Notify(n reconcile.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	mark := "✔"
	if n.Severity == reconcile.SeverityError {
		mark = "✖"
	}
	fmt.Fprintf(t.out, "%s %s: %s\n", mark, n.Summary, n.Detail)
}

// Prompter asks yes/no questions on a terminal. Anything but an explicit
// yes, including EOF, is a no.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(p.out, "Confirmación: %s [s/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

// AssumeYes accepts every confirmation (the --yes flag).
var AssumeYes = reconcile.ConfirmerFunc(func(context.Context, string) bool { return true })
