package pdf

import (
	"bytes"
	"fmt"
	"regexp"
)

var objHeader = regexp.MustCompile(`(\d+)[\x00\x09\x0a\x0c\x0d\x20]+(\d+)[\x00\x09\x0a\x0c\x0d\x20]+obj`)

// Parse reads a PDF file into a Document. Indirect objects are located
// by scanning for object headers; when the same object number appears
// several times (incremental updates), the last occurrence wins.
// Header-shaped byte runs inside binary payloads that are not followed
// by a parseable object are skipped.
func Parse(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("not a PDF: missing header")
	}

	doc := &Document{objects: make(map[int]Object)}

	for _, loc := range objHeader.FindAllSubmatchIndex(data, -1) {
		if loc[0] > 0 && isRegular(data[loc[0]-1]) {
			continue // not a token boundary; header-shaped bytes inside data
		}
		num := 0
		for _, d := range data[loc[2]:loc[3]] {
			num = num*10 + int(d-'0')
		}

		p := &parser{data: data, pos: loc[1]}
		obj, err := p.parseObject()
		if err != nil {
			continue // header-shaped bytes with no object behind them
		}
		if dict, ok := obj.(Dict); ok && p.peekKeyword("stream") {
			stream, err := readStream(data, p, dict)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", num, err)
			}
			obj = stream
		}

		doc.objects[num] = obj
		if num > doc.maxNum {
			doc.maxNum = num
		}
	}

	if len(doc.objects) == 0 {
		return nil, fmt.Errorf("no indirect objects found")
	}

	trailer, err := findTrailer(data, doc)
	if err != nil {
		return nil, err
	}
	doc.trailer = trailer
	return doc, nil
}

// readStream extracts the raw payload following a stream keyword. The
// declared /Length is trusted when it is a direct integer that lands on
// an endstream keyword; otherwise the payload boundary is recovered by
// searching for the keyword.
func readStream(data []byte, p *parser, dict Dict) (Stream, error) {
	// The stream keyword is followed by CRLF or LF.
	if p.pos < len(data) && data[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(data) && data[p.pos] == '\n' {
		p.pos++
	}
	start := p.pos

	if n, ok := dict[Name("Length")].(Integer); ok {
		end := start + int(n)
		if end <= len(data) {
			rest := data[end:]
			trimmed := bytes.TrimLeft(rest, "\r\n \t")
			if bytes.HasPrefix(trimmed, []byte("endstream")) {
				p.pos = end + (len(rest) - len(trimmed)) + len("endstream")
				return Stream{Dict: dict, Data: append([]byte(nil), data[start:end]...)}, nil
			}
		}
	}

	idx := bytes.Index(data[start:], []byte("endstream"))
	if idx < 0 {
		return Stream{}, fmt.Errorf("unterminated stream")
	}
	payload := data[start : start+idx]
	// EOL before endstream is not part of the payload.
	payload = bytes.TrimSuffix(payload, []byte("\n"))
	payload = bytes.TrimSuffix(payload, []byte("\r"))
	p.pos = start + idx + len("endstream")
	return Stream{Dict: dict, Data: append([]byte(nil), payload...)}, nil
}

// findTrailer parses the last trailer dictionary, falling back to a
// synthesised trailer pointing at a scanned /Type /Catalog object for
// files that only carry a cross-reference stream.
func findTrailer(data []byte, doc *Document) (Dict, error) {
	idx := bytes.LastIndex(data, []byte("trailer"))
	for idx >= 0 {
		p := &parser{data: data, pos: idx + len("trailer")}
		if obj, err := p.parseObject(); err == nil {
			if dict, ok := obj.(Dict); ok {
				if _, hasRoot := dict[Name("Root")]; hasRoot {
					return dict, nil
				}
			}
		}
		prev := bytes.LastIndex(data[:idx], []byte("trailer"))
		idx = prev
	}

	// No usable trailer: locate the catalog directly.
	for num := doc.maxNum; num >= 0; num-- {
		if dict, ok := doc.objects[num].(Dict); ok {
			if dict[Name("Type")] == Name("Catalog") {
				return Dict{Name("Root"): Ref{Num: num}}, nil
			}
		}
	}
	return nil, fmt.Errorf("no trailer and no catalog found")
}
