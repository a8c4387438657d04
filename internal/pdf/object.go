package pdf

// Object is the closed set of PDF object kinds.
type Object interface {
	isObject()
}

// Name is a PDF name object, stored without the leading slash.
type Name string

// Integer is a PDF integer object.
type Integer int64

// Real is a PDF real number object.
type Real float64

// Boolean is a PDF boolean object.
type Boolean bool

// String is a PDF string object, stored unescaped.
type String string

// Null is the PDF null object.
type Null struct{}

// Array is a PDF array object.
type Array []Object

// Dict is a PDF dictionary object.
type Dict map[Name]Object

// Ref is an indirect reference to an object in the arena.
type Ref struct {
	Num int
	Gen int
}

// Stream couples a dictionary with a raw, undecoded payload. The
// payload is carried verbatim; /Length is recomputed on write.
type Stream struct {
	Dict Dict
	Data []byte
}

func (Name) isObject()    {}
func (Integer) isObject() {}
func (Real) isObject()    {}
func (Boolean) isObject() {}
func (String) isObject()  {}
func (Null) isObject()    {}
func (Array) isObject()   {}
func (Dict) isObject()    {}
func (Ref) isObject()     {}
func (Stream) isObject()  {}

// Number unwraps an Integer or Real as a float64.
func Number(o Object) (float64, bool) {
	switch v := o.(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	default:
		return 0, false
	}
}
