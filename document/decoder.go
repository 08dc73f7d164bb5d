package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// ParsingError wraps an error encountered while decoding XML into a
// Document.
type ParsingError struct {
	Err error
}

func (e *ParsingError) Error() string { return fmt.Sprintf("xml parse error: %v", e.Err) }
func (e *ParsingError) Unwrap() error { return e.Err }

// DecoderOptions configures Decode. CharsetReader defaults to resolving the
// charset via golang.org/x/text/encoding/ianaindex so non-UTF-8 documents
// decode without caller setup.
type DecoderOptions struct {
	CharsetReader func(charset string, input io.Reader) (io.Reader, error)
	Strict        bool
}

func defaultCharsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Decode reads r as XML and builds a Document. Only the document-model
// surface XPath needs is populated: elements, attributes, text, comments,
// and processing instructions, parented under a single logical Root.
func Decode(r io.Reader, opts *DecoderOptions) (*Document, error) {
	xd := xml.NewDecoder(r)
	xd.Strict = true
	if opts != nil && opts.CharsetReader != nil {
		xd.CharsetReader = opts.CharsetReader
	} else {
		xd.CharsetReader = defaultCharsetReader
	}
	if opts != nil {
		xd.Strict = opts.Strict
	}

	doc := New()
	stack := []Handle{doc.Root()}

	for {
		tok, err := xd.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParsingError{Err: err}
		}
		parent := stack[len(stack)-1]

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if t.Name.Space != "" {
				name = t.Name.Space + ":" + t.Name.Local
			}
			elem := doc.NewElement(name)
			for _, a := range t.Attr {
				aname := a.Name.Local
				if a.Name.Space != "" {
					aname = a.Name.Space + ":" + a.Name.Local
				}
				doc.SetAttribute(elem, aname, a.Value)
			}
			doc.AppendChild(parent, elem)
			stack = append(stack, elem)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			doc.AppendChild(parent, doc.NewText(string(t)))
		case xml.Comment:
			doc.AppendChild(parent, doc.NewComment(string(t)))
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") {
				// the XML declaration itself, not a real processing instruction
				continue
			}
			doc.AppendChild(parent, doc.NewPI(t.Target, string(t.Inst), true))
		}
	}

	return doc, nil
}

// DecodeString is a convenience wrapper for source provided as a string.
func DecodeString(s string) (*Document, error) {
	return Decode(strings.NewReader(s), nil)
}
