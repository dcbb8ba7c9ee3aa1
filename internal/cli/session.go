package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

const prompt = "jobs> "

// Browser is the slice of the listing controller the REPL drives.
type Browser interface {
	Mount(ctx context.Context, params url.Values)
	Unmount()
	Apply(a browse.Action) error
	Snapshot() browse.View
	Wait(ctx context.Context) error
}

// Session is one interactive browsing session over a single controller.
type Session struct {
	browser Browser
	ui      *UI
	link    *LinkLocation
	in      io.Reader
}

// NewSession reads commands from in, drives browser and reports through ui.
// link supplies the shareable link shown under each page.
func NewSession(browser Browser, ui *UI, link *LinkLocation, in io.Reader) *Session {
	return &Session{browser: browser, ui: ui, link: link, in: in}
}

// Run mounts the view from params, renders the first page and then reads
// commands until quit, end of input or ctx is canceled.
func (s *Session) Run(ctx context.Context, params url.Values) error {
	s.browser.Mount(ctx, params)
	defer s.browser.Unmount()

	if err := s.settle(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		s.ui.Printf("%s", prompt)

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				s.ui.Printf("\n")
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one input line. It reports whether the session should end.
// Parse and validation problems are printed and do not end the session.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.ui.Errorf("%v", err)
		return false, nil
	}

	switch cmd.Kind {
	case KindNone:
		return false, nil
	case KindQuit:
		return true, nil
	case KindHelp:
		s.ui.Printf("%s", helpText)
		return false, nil
	case KindShow:
		s.render()
		return false, nil
	}

	if err := s.browser.Apply(cmd.Action); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			s.ui.Errorf("%s", ve.Error())
			return false, nil
		}
		return false, err
	}

	if cmd.Action.Op == browse.OpSetSearch {
		s.ui.Infof("search text set to %q, type submit to search", s.browser.Snapshot().Query.Search)
		return false, nil
	}

	return false, s.settle(ctx)
}

func (s *Session) settle(ctx context.Context) error {
	if err := s.browser.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for listing: %w", err)
	}
	s.render()
	return nil
}

func (s *Session) render() {
	Render(s.ui, s.browser.Snapshot(), s.link.Link())
}

// WarnNotifier prints notifications as warning lines on the error stream.
type WarnNotifier struct {
	ui *UI
}

// NewWarnNotifier returns a notifier that reports through ui.
func NewWarnNotifier(ui *UI) *WarnNotifier {
	return &WarnNotifier{ui: ui}
}

// Notify prints errors as warnings on Err and anything else as info on Out.
func (n *WarnNotifier) Notify(_ context.Context, note ports.Notification) {
	if note.Level == ports.LevelError {
		n.ui.Warnf("! %s", note.Message)
		return
	}
	n.ui.Infof("%s", note.Message)
}

// LinkLocation keeps the shareable link of the view: a base page URL plus
// the query string the controller writes.
type LinkLocation struct {
	mu    sync.Mutex
	base  string
	query string
}

// NewLinkLocation starts with an empty query on base, e.g.
// "https://marketplace.example.com/all-jobs".
func NewLinkLocation(base string) *LinkLocation {
	return &LinkLocation{base: base}
}

// ReplaceQuery records the query string the controller wrote.
func (l *LinkLocation) ReplaceQuery(rawQuery string) {
	l.mu.Lock()
	l.query = rawQuery
	l.mu.Unlock()
}

// Query returns the last query string written.
func (l *LinkLocation) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Link returns base, followed by "?" and the query when one is set.
func (l *LinkLocation) Link() string {
	q := l.Query()
	if q == "" {
		return l.base
	}
	return l.base + "?" + q
}

// ParseInitialQuery accepts either a bare query string or a full link and
// returns its parameters.
func ParseInitialQuery(s string) (url.Values, error) {
	s = strings.TrimSpace(s)
	if _, after, ok := strings.Cut(s, "?"); ok {
		s = after
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	values, err := url.ParseQuery(s)
	if err != nil {
		return nil, fmt.Errorf("parsing query %q: %w", s, err)
	}
	return values, nil
}
