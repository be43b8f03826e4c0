package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/codewandler/chronostore-go/core/engine"
	"github.com/codewandler/chronostore-go/ports/kv"
)

const prompt = "chronostore > "

const helpText = `  SET   <key> <value> [EX <seconds>]   store a value, optionally expiring
  GET   <key>                          fetch a value
  DEL   <key>                          delete a key
  TTL   <key>                          seconds remaining
  KEYS                                 list keys, most recent first
  FLUSH                                remove all keys
  STATS                                engine counters
  SAVE  [path]                         write a snapshot
  LOAD  [path]                         replace state from a snapshot
  HELP                                 this text
  EXIT                                 save and quit
`

// repl executes parsed commands against a store and renders the replies.
type repl struct {
	store    kv.Store
	out      io.Writer
	snapshot string // default path, for messages only
	log      *slog.Logger
}

// exec runs one command and reports whether the session should end.
func (r *repl) exec(cmd command) (quit bool) {
	switch cmd.verb {
	case verbSet:
		var opts []engine.SetOption
		if cmd.ttl > 0 {
			opts = append(opts, engine.WithTTLSeconds(cmd.ttl))
		}
		evicted, ok := r.store.Set(cmd.key, cmd.value, opts...)
		line := "  OK"
		if ok {
			line += fmt.Sprintf("  [evicted: %s]", evicted)
		}
		if cmd.ttl > 0 {
			line += fmt.Sprintf("  [TTL: %ds]", cmd.ttl)
		}
		r.println(line)
	case verbGet:
		if v, ok := r.store.Get(cmd.key); ok {
			r.printf("  %q\n", v)
		} else {
			r.println("  (nil)")
		}
	case verbDel:
		if r.store.Del(cmd.key) {
			r.println("  (deleted)")
		} else {
			r.println("  (key not found)")
		}
	case verbTTL:
		switch t := r.store.TTL(cmd.key); t {
		case kv.TTLMissing:
			r.println("  (key does not exist)")
		case kv.TTLNoExpiry:
			r.println("  -1 (no expiry)")
		default:
			r.printf("  %ds remaining\n", t)
		}
	case verbKeys:
		keys := r.store.Keys()
		if len(keys) == 0 {
			r.println("  (empty)")
			break
		}
		r.printf("  %d key(s):\n", len(keys))
		for i, k := range keys {
			r.printf("    %d) %s\n", i+1, k)
		}
	case verbFlush:
		r.store.Flush()
		r.println("  (all keys flushed)")
	case verbStats:
		r.printStats(r.store.Stats())
	case verbSave:
		if err := r.store.Save(cmd.path); err != nil {
			r.printf("  (error) %v\n", err)
			break
		}
		r.printf("  Snapshot saved to %q\n", r.pathOrDefault(cmd.path))
	case verbLoad:
		if err := r.store.Load(cmd.path); err != nil {
			r.printf("  (error) %v\n", err)
			break
		}
		r.printf("  Snapshot loaded from %q (%d keys)\n", r.pathOrDefault(cmd.path), r.store.Size())
	case verbHelp:
		_, _ = io.WriteString(r.out, helpText)
	case verbExit:
		return true
	default:
		if cmd.raw != "" {
			r.printf("  Unknown command: %q. Type HELP.\n", cmd.raw)
		}
	}
	return false
}

func (r *repl) printStats(s engine.Stats) {
	r.println("  +-----------------+------------+")
	row := func(name string, v any) { r.printf("  | %-15s | %10v |\n", name, v) }
	row("Keys", fmt.Sprintf("%d/%d", s.Size, s.Capacity))
	row("Hits", s.Hits)
	row("Misses", s.Misses)
	row("Hit ratio", fmt.Sprintf("%.1f%%", s.HitRatio()*100))
	row("Sets", s.Sets)
	row("Deletes", s.Dels)
	row("Evictions", s.Evictions)
	row("Expirations", s.Expirations)
	r.println("  +-----------------+------------+")
}

func (r *repl) pathOrDefault(p string) string {
	if p == "" {
		return r.snapshot
	}
	return p
}

func (r *repl) println(s string) { _, _ = fmt.Fprintln(r.out, s) }

func (r *repl) printf(format string, args ...any) { _, _ = fmt.Fprintf(r.out, format, args...) }

// serve reads commands from in until EXIT, EOF or ctx is done, then saves a
// final snapshot to the default path.
func (r *repl) serve(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	var err error
loop:
	for {
		_, _ = io.WriteString(r.out, prompt)
		select {
		case <-ctx.Done():
			r.println("")
			break loop
		case line, ok := <-lines:
			if !ok {
				r.println("")
				// nothing is sent when the reader stopped on ctx
				select {
				case sErr := <-scanErr:
					if sErr != nil {
						err = fmt.Errorf("read input: %w", sErr)
					}
				default:
				}
				break loop
			}
			cmd, pErr := parseCommand(line)
			if pErr != nil {
				r.printf("  (error) %v\n", pErr)
				continue
			}
			if r.exec(cmd) {
				break loop
			}
		}
	}

	if sErr := r.store.Save(""); sErr != nil {
		r.log.Warn("final snapshot failed", slog.Any("error", sErr))
		r.println("  Could not save. Goodbye!")
		return err
	}
	r.println("  Snapshot saved. Goodbye!")
	return err
}
