package pdf

import (
	"fmt"
	"strconv"
)

// parser walks raw PDF bytes and produces Objects.
type parser struct {
	data []byte
	pos  int
}

func isWhitespace(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

// skipWhitespace advances past whitespace and comments.
func (p *parser) skipWhitespace() {
	for !p.eof() {
		b := p.data[p.pos]
		if isWhitespace(b) {
			p.pos++
			continue
		}
		if b == '%' {
			for !p.eof() && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

// readKeyword consumes a run of regular characters.
func (p *parser) readKeyword() string {
	start := p.pos
	for !p.eof() && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// peekKeyword reports whether the next token is the given keyword,
// consuming it when it is.
func (p *parser) peekKeyword(kw string) bool {
	save := p.pos
	p.skipWhitespace()
	if p.pos+len(kw) <= len(p.data) && string(p.data[p.pos:p.pos+len(kw)]) == kw {
		end := p.pos + len(kw)
		if end == len(p.data) || !isRegular(p.data[end]) {
			p.pos = end
			return true
		}
	}
	p.pos = save
	return false
}

// parseObject parses the next object at the current position.
func (p *parser) parseObject() (Object, error) {
	p.skipWhitespace()
	if p.eof() {
		return nil, fmt.Errorf("unexpected end of input at %d", p.pos)
	}

	switch b := p.data[p.pos]; {
	case b == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	case b == '(':
		return p.parseLiteralString()
	case b == '/':
		return p.parseName()
	case b == '[':
		return p.parseArray()
	case b == 't' || b == 'f':
		switch kw := p.readKeyword(); kw {
		case "true":
			return Boolean(true), nil
		case "false":
			return Boolean(false), nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q at %d", kw, p.pos)
		}
	case b == 'n':
		if kw := p.readKeyword(); kw == "null" {
			return Null{}, nil
		}
		return nil, fmt.Errorf("unexpected keyword at %d", p.pos)
	case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		return p.parseNumberOrRef()
	default:
		return nil, fmt.Errorf("unexpected byte %q at %d", b, p.pos)
	}
}

func (p *parser) parseDict() (Object, error) {
	p.pos += 2 // <<
	dict := Dict{}
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if p.data[p.pos] == '>' {
			if p.pos+1 < len(p.data) && p.data[p.pos+1] == '>' {
				p.pos += 2
				return dict, nil
			}
			return nil, fmt.Errorf("malformed dictionary end at %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, fmt.Errorf("dictionary key: %w", err)
		}
		value, err := p.parseObject()
		if err != nil {
			return nil, fmt.Errorf("dictionary value for /%s: %w", key, err)
		}
		dict[key.(Name)] = value
	}
}

func (p *parser) parseArray() (Object, error) {
	p.pos++ // [
	arr := Array{}
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		item, err := p.parseObject()
		if err != nil {
			return nil, fmt.Errorf("array item: %w", err)
		}
		arr = append(arr, item)
	}
}

func (p *parser) parseName() (Object, error) {
	if p.peek() != '/' {
		return nil, fmt.Errorf("expected name at %d", p.pos)
	}
	p.pos++
	var out []byte
	for !p.eof() && isRegular(p.data[p.pos]) {
		b := p.data[p.pos]
		if b == '#' && p.pos+2 < len(p.data) {
			if v, err := strconv.ParseUint(string(p.data[p.pos+1:p.pos+3]), 16, 8); err == nil {
				out = append(out, byte(v))
				p.pos += 3
				continue
			}
		}
		out = append(out, b)
		p.pos++
	}
	return Name(out), nil
}

func (p *parser) parseLiteralString() (Object, error) {
	p.pos++ // (
	var out []byte
	depth := 1
	for !p.eof() {
		b := p.data[p.pos]
		switch b {
		case '\\':
			p.pos++
			if p.eof() {
				return nil, fmt.Errorf("unterminated string escape")
			}
			e := p.data[p.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\r':
				// line continuation; swallow a following \n
				if p.pos+1 < len(p.data) && p.data[p.pos+1] == '\n' {
					p.pos++
				}
			case '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && p.pos+1 < len(p.data); i++ {
						n := p.data[p.pos+1]
						if n < '0' || n > '7' {
							break
						}
						val = val*8 + int(n-'0')
						p.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
			p.pos++
		case '(':
			depth++
			out = append(out, b)
			p.pos++
		case ')':
			depth--
			p.pos++
			if depth == 0 {
				return String(out), nil
			}
			out = append(out, b)
		default:
			out = append(out, b)
			p.pos++
		}
	}
	return nil, fmt.Errorf("unterminated string")
}

func (p *parser) parseHexString() (Object, error) {
	p.pos++ // <
	var digits []byte
	for !p.eof() && p.data[p.pos] != '>' {
		b := p.data[p.pos]
		if !isWhitespace(b) {
			digits = append(digits, b)
		}
		p.pos++
	}
	if p.eof() {
		return nil, fmt.Errorf("unterminated hex string")
	}
	p.pos++ // >
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex string digit: %w", err)
		}
		out = append(out, byte(v))
	}
	return String(out), nil
}

func (p *parser) parseNumberOrRef() (Object, error) {
	first, isInt, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if !isInt {
		return first, nil
	}

	// An integer may open an indirect reference: <num> <gen> R.
	save := p.pos
	p.skipWhitespace()
	if !p.eof() && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		second, secondInt, err := p.parseNumber()
		if err == nil && secondInt && p.peekKeyword("R") {
			return Ref{Num: int(first.(Integer)), Gen: int(second.(Integer))}, nil
		}
	}
	p.pos = save
	return first, nil
}

// parseNumber reads an integer or real token.
func (p *parser) parseNumber() (Object, bool, error) {
	start := p.pos
	if b := p.peek(); b == '+' || b == '-' {
		p.pos++
	}
	real := false
	for !p.eof() {
		b := p.data[p.pos]
		if b == '.' {
			real = true
			p.pos++
			continue
		}
		if b < '0' || b > '9' {
			break
		}
		p.pos++
	}
	token := string(p.data[start:p.pos])
	if token == "" || token == "+" || token == "-" {
		return nil, false, fmt.Errorf("malformed number at %d", start)
	}
	if real {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, false, fmt.Errorf("malformed real %q: %w", token, err)
		}
		return Real(v), false, nil
	}
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("malformed integer %q: %w", token, err)
	}
	return Integer(v), true, nil
}
