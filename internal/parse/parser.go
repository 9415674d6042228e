// Package parse turns raw bindkey listing lines into Binding records.
// It tokenizes each line, decodes key notation through the keys package,
// and collects per-line errors without aborting the batch.
package parse

import (
	"bufio"
	"io"

	apperrors "zbind/internal/errors"
	"zbind/internal/keys"
	"zbind/internal/log"
	"zbind/pkg/types"

	"github.com/gobwas/glob"
)

// Result is the batch contract: the successfully parsed bindings in input
// order, plus one error per line that failed. Neither side is ever
// discarded; callers decide how to report partial failure.
type Result struct {
	Bindings []types.Binding
	Errors   []*apperrors.ParseError
}

// Parser parses bindkey listings. The zero value is usable; ignore
// patterns filter out noise widgets like bracketed-paste.
type Parser struct {
	ignore []glob.Glob
}

// New creates a Parser with no ignore patterns.
func New() *Parser {
	return &Parser{}
}

// NewWithIgnored creates a Parser that drops command bindings whose
// widget name matches one of the given glob patterns.
func NewWithIgnored(patterns []string) (*Parser, error) {
	p := &Parser{}
	for _, pat := range patterns {
		g, err := glob.Compile(pat)
		if err != nil {
			return nil, apperrors.Wrapf(err, "invalid ignore pattern %q", pat)
		}
		p.ignore = append(p.ignore, g)
	}
	return p, nil
}

// Parse processes a full listing. Bindings appear in the same order as
// their source lines; line numbers are 1-based.
func (p *Parser) Parse(lines []string) Result {
	var res Result
	for i, line := range lines {
		p.parseLine(line, i+1, &res)
	}
	return res
}

// ParseReader processes a listing streamed from r, one line at a time.
// The returned error reports only read failures; parse failures are
// collected in the Result.
func (p *Parser) ParseReader(r io.Reader) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.parseLine(scanner.Text(), lineNo, &res)
	}
	if err := scanner.Err(); err != nil {
		return res, apperrors.Wrap(err, "reading listing")
	}
	return res, nil
}

func (p *Parser) parseLine(line string, lineNo int, res *Result) {
	directive, ok, err := Tokenize(line, lineNo)
	if err != nil {
		res.Errors = append(res.Errors, asParseError(err, lineNo, line))
		return
	}
	if !ok {
		return
	}

	binding, err := Build(directive)
	if err != nil {
		res.Errors = append(res.Errors, asParseError(err, lineNo, line))
		return
	}

	if binding.Target.Kind == types.Command && p.ignored(binding.Target.Text) {
		log.Debugf("ignoring widget %q on line %d", binding.Target.Text, lineNo)
		return
	}
	res.Bindings = append(res.Bindings, binding)
}

// Build assembles a Binding from a tokenized directive. The key literal
// and, for macro bindings, the macro literal are decoded with the same
// key-notation decoder.
func Build(d Directive) (types.Binding, error) {
	key, err := keys.Decode(d.KeyLiteral)
	if err != nil {
		return types.Binding{}, apperrors.Wrap(err, "decoding key literal")
	}

	target := types.Target{Kind: types.Command, Text: d.Target}
	if d.IsMacro {
		text, err := keys.Decode(d.Target)
		if err != nil {
			return types.Binding{}, apperrors.Wrap(err, "decoding macro literal")
		}
		target = types.Target{Kind: types.Macro, Text: text}
	}

	keymap := d.Keymap
	if keymap == "" {
		keymap = types.DefaultKeymap
	}

	return types.Binding{
		Keymap: keymap,
		Key:    key,
		Target: target,
		RawKey: d.KeyLiteral,
	}, nil
}

func (p *Parser) ignored(widget string) bool {
	for _, g := range p.ignore {
		if g.Match(widget) {
			return true
		}
	}
	return false
}

func asParseError(err error, lineNo int, line string) *apperrors.ParseError {
	var parseErr *apperrors.ParseError
	if apperrors.As(err, &parseErr) {
		return parseErr
	}
	return apperrors.NewParseError("malformed listing line", lineNo, line, apperrors.MalformedLine, err)
}
