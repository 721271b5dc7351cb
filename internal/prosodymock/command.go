package prosodymock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Op identifies one of the supported shell operations.
type Op int

const (
	OpList Op = iota + 1
	OpGetAffiliation
	OpSetAffiliation
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpGetAffiliation:
		return "get_affiliation"
	case OpSetAffiliation:
		return "set_affiliation"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is a parsed shell expression.
type Command struct {
	Op          Op
	Domain      string
	Room        string
	User        string
	Affiliation string
}

// ErrSyntax is returned for command text the emulator does not understand.
var ErrSyntax = errors.New("syntax error")

// lit matches a single-quoted Lua string with backslash escapes.
const lit = `'((?:[^'\\]|\\.)*)'`

var (
	listPattern = regexp.MustCompile(`^muc:list\(` + lit + `\)$`)
	getPattern  = regexp.MustCompile(`^muc:room\(` + lit + `\):get_affiliation\(` + lit + `\)$`)
	setPattern  = regexp.MustCompile(`^muc:room\(` + lit + `\):set_affiliation\(\s*true\s*,\s*` + lit + `\s*,\s*` + lit + `\s*\)$`)
)

// Parse recognizes muc:list, get_affiliation and set_affiliation
// expressions. Quoted arguments are unescaped.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)

	if m := listPattern.FindStringSubmatch(text); m != nil {
		return Command{Op: OpList, Domain: unescape(m[1])}, nil
	}
	if m := getPattern.FindStringSubmatch(text); m != nil {
		return Command{Op: OpGetAffiliation, Room: unescape(m[1]), User: unescape(m[2])}, nil
	}
	if m := setPattern.FindStringSubmatch(text); m != nil {
		return Command{
			Op:          OpSetAffiliation,
			Room:        unescape(m[1]),
			User:        unescape(m[2]),
			Affiliation: unescape(m[3]),
		}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrSyntax, text)
}

// unescape undoes backslash escapes inside a quoted literal.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
