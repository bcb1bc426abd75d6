package debian

import (
	"bufio"
	"errors"
	"strconv"
	"strings"
)

type stanzaState int

const (
	stateIdle stanzaState = iota
	stateAccumulating
)

// stanzaParser walks a Packages index line by line. It is either idle
// (between stanzas) or accumulating a single record.
type stanzaParser struct {
	state   stanzaState
	current Package
	start   int
	err     *StanzaError

	out  []Package
	errs []error
}

// ParseStanzas decodes the text of a Packages index into records, in
// the order they appear.
//
// A stanza is emitted when a blank line follows it or when the input
// ends. Stanzas without a Package field or with a non-numeric Size are
// skipped: the remaining records are still returned, together with an
// error joining one *StanzaError per skipped stanza.
//
// Continuation lines and fields without a value are ignored.
func ParseStanzas(text string) ([]Package, error) {
	p := &stanzaParser{}
	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var n int
	for s.Scan() {
		n++
		p.line(n, strings.TrimSuffix(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		p.errs = append(p.errs, err)
	}
	p.finish()
	return p.out, errors.Join(p.errs...)
}

func (p *stanzaParser) line(n int, line string) {
	if line == "" {
		if p.state == stateAccumulating {
			p.finish()
		}
		return
	}
	if p.state == stateIdle {
		p.state = stateAccumulating
		p.current = Package{}
		p.start = n
		p.err = nil
	}
	key, value, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	p.set(key, value)
}

func (p *stanzaParser) set(key, value string) {
	switch key {
	case "Package":
		p.current.Name = value
	case "Architecture":
		p.current.Architecture = value
	case "Version":
		p.current.Version = value
	case "Depends":
		p.current.Depends = value
	case "Suggests":
		p.current.Suggests = value
	case "Filename":
		p.current.Filename = value
	case "Size":
		size, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			if p.err == nil {
				p.err = &StanzaError{Line: p.start, Reason: "invalid Size " + strconv.Quote(value)}
			}
			return
		}
		p.current.Size = size
	case "MD5sum":
		p.current.MD5sum = value
	case "SHA1":
		p.current.SHA1 = value
	case "SHA256":
		p.current.SHA256 = value
	}
}

// finish emits the pending stanza, if there is one, and returns to idle.
func (p *stanzaParser) finish() {
	if p.state != stateAccumulating {
		return
	}
	p.state = stateIdle
	switch {
	case p.err != nil:
		p.err.Package = p.current.Name
		p.errs = append(p.errs, p.err)
	case p.current.Name == "":
		p.errs = append(p.errs, &StanzaError{Line: p.start, Reason: "missing Package field"})
	default:
		p.out = append(p.out, p.current)
	}
}
