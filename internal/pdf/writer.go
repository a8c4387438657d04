package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Write serialises the document: header, every arena object in
// ascending number order, a regenerated cross-reference table and
// trailer. Output is deterministic for a given arena.
func (d *Document) Write() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})

	nums := make([]int, 0, len(d.objects))
	for n := range d.objects {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	offsets := make(map[int]int, len(nums))
	for _, n := range nums {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", n)
		if err := writeObject(&buf, d.objects[n]); err != nil {
			return nil, fmt.Errorf("object %d: %w", n, err)
		}
		buf.WriteString("\nendobj\n")
	}

	xrefStart := buf.Len()
	buf.WriteString("xref\n")
	writeXref(&buf, nums, offsets)

	trailer := make(Dict, len(d.trailer)+1)
	for k, v := range d.trailer {
		if k == Name("Prev") || k == Name("XRefStm") {
			continue
		}
		trailer[k] = v
	}
	trailer[Name("Size")] = Integer(d.maxNum + 1)

	buf.WriteString("trailer\n")
	if err := writeObject(&buf, trailer); err != nil {
		return nil, fmt.Errorf("trailer: %w", err)
	}
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefStart)
	return buf.Bytes(), nil
}

// writeXref emits cross-reference subsections for contiguous runs of
// object numbers, with the conventional free entry for object zero.
func writeXref(buf *bytes.Buffer, nums []int, offsets map[int]int) {
	entries := append([]int{0}, nums...)
	for i := 0; i < len(entries); {
		run := 1
		for i+run < len(entries) && entries[i+run] == entries[i]+run {
			run++
		}
		fmt.Fprintf(buf, "%d %d\n", entries[i], run)
		for j := 0; j < run; j++ {
			n := entries[i+j]
			if n == 0 {
				buf.WriteString("0000000000 65535 f \n")
			} else {
				fmt.Fprintf(buf, "%010d 00000 n \n", offsets[n])
			}
		}
		i += run
	}
}

func writeObject(buf *bytes.Buffer, o Object) error {
	switch v := o.(type) {
	case Name:
		writeName(buf, v)
	case Integer:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case Real:
		buf.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 64))
	case Boolean:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case String:
		writeString(buf, v)
	case Null:
		buf.WriteString("null")
	case Ref:
		fmt.Fprintf(buf, "%d 0 R", v.Num)
	case Array:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(' ')
			}
			if err := writeObject(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Dict:
		return writeDict(buf, v)
	case Stream:
		dict := make(Dict, len(v.Dict)+1)
		for k, val := range v.Dict {
			dict[k] = val
		}
		dict[Name("Length")] = Integer(len(v.Data))
		if err := writeDict(buf, dict); err != nil {
			return err
		}
		buf.WriteString("\nstream\n")
		buf.Write(v.Data)
		buf.WriteString("\nendstream")
	default:
		return fmt.Errorf("cannot serialise %T", o)
	}
	return nil
}

// writeDict emits keys in sorted order so output is deterministic.
func writeDict(buf *bytes.Buffer, d Dict) error {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	buf.WriteString("<<")
	for _, k := range keys {
		buf.WriteByte(' ')
		writeName(buf, Name(k))
		buf.WriteByte(' ')
		if err := writeObject(buf, d[Name(k)]); err != nil {
			return err
		}
	}
	buf.WriteString(" >>")
	return nil
}

func writeName(buf *bytes.Buffer, n Name) {
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		b := n[i]
		if isRegular(b) && b != '#' && b > 0x20 && b < 0x7F {
			buf.WriteByte(b)
		} else {
			fmt.Fprintf(buf, "#%02X", b)
		}
	}
}

func writeString(buf *bytes.Buffer, s String) {
	buf.WriteByte('(')
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(')')
}
