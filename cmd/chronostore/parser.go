package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type verb int

const (
	verbUnknown verb = iota
	verbSet
	verbGet
	verbDel
	verbTTL
	verbKeys
	verbFlush
	verbStats
	verbSave
	verbLoad
	verbHelp
	verbExit
)

var ErrUsage = errors.New("usage")

// command is one parsed input line. Verbs are case-insensitive, keys and
// values are taken verbatim.
type command struct {
	verb  verb
	key   string
	value string
	ttl   int64  // seconds, 0 = none
	path  string // SAVE/LOAD override
	raw   string
}

func usage(text string) error { return fmt.Errorf("%w: %s", ErrUsage, text) }

// parseCommand splits line on whitespace and validates the arguments of the
// verb. An empty line yields verbUnknown with an empty raw.
func parseCommand(line string) (command, error) {
	cmd := command{raw: strings.TrimSpace(line)}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return cmd, nil
	}
	args := tokens[1:]

	switch strings.ToUpper(tokens[0]) {
	case "SET":
		switch {
		case len(args) == 2:
		case len(args) == 4 && strings.EqualFold(args[2], "EX"):
			ttl, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil || ttl <= 0 {
				return cmd, fmt.Errorf("invalid TTL value %q: must be a positive integer", args[3])
			}
			cmd.ttl = ttl
		default:
			return cmd, usage("SET <key> <value> [EX <seconds>]")
		}
		cmd.verb, cmd.key, cmd.value = verbSet, args[0], args[1]
	case "GET":
		if len(args) != 1 {
			return cmd, usage("GET <key>")
		}
		cmd.verb, cmd.key = verbGet, args[0]
	case "DEL", "DELETE":
		if len(args) != 1 {
			return cmd, usage("DEL <key>")
		}
		cmd.verb, cmd.key = verbDel, args[0]
	case "TTL":
		if len(args) != 1 {
			return cmd, usage("TTL <key>")
		}
		cmd.verb, cmd.key = verbTTL, args[0]
	case "KEYS":
		cmd.verb = verbKeys
	case "FLUSH":
		cmd.verb = verbFlush
	case "STATS":
		cmd.verb = verbStats
	case "SAVE", "LOAD":
		if len(args) > 1 {
			return cmd, usage(strings.ToUpper(tokens[0]) + " [path]")
		}
		cmd.verb = verbSave
		if strings.EqualFold(tokens[0], "LOAD") {
			cmd.verb = verbLoad
		}
		if len(args) == 1 {
			cmd.path = args[0]
		}
	case "HELP", "?":
		cmd.verb = verbHelp
	case "EXIT", "QUIT", "Q":
		cmd.verb = verbExit
	default:
		cmd.verb = verbUnknown
	}
	return cmd, nil
}
