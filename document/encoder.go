package document

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Encoder writes a Document subtree back out as XML text.
type Encoder struct {
	e *xml.Encoder
}

// NewEncoder returns an Encoder writing to w with two-space indentation.
func NewEncoder(w io.Writer) *Encoder {
	enc := &Encoder{e: xml.NewEncoder(w)}
	enc.e.Indent("", "  ")
	return enc
}

// SetIndent sets the indentation for the encoder. An empty indent disables
// pretty printing, which keeps text content byte-faithful for re-decoding.
func (enc *Encoder) SetIndent(prefix, indent string) {
	enc.e.Indent(prefix, indent)
}

// Encode writes h and its descendants. h may be an element, text, comment,
// processing instruction, or the root; an attribute node yields an error.
func (enc *Encoder) Encode(doc *Document, h Handle) error {
	if err := enc.encodeNode(doc, h); err != nil {
		return err
	}
	return enc.e.Flush()
}

func (enc *Encoder) encodeNode(doc *Document, h Handle) error {
	switch doc.Kind(h) {
	case KindElement:
		return enc.encodeElement(doc, h)
	case KindText:
		return enc.e.EncodeToken(xml.CharData(doc.Value(h)))
	case KindComment:
		return enc.e.EncodeToken(xml.Comment(doc.Value(h)))
	case KindPI:
		v, _ := doc.PIValue(h)
		return enc.e.EncodeToken(xml.ProcInst{Target: doc.Name(h), Inst: []byte(v)})
	case KindRoot:
		for _, c := range doc.Children(h) {
			if err := enc.encodeNode(doc, c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("document: cannot encode node kind %s", doc.Kind(h))
	}
}

func (enc *Encoder) encodeElement(doc *Document, h Handle) error {
	start := xml.StartElement{Name: xml.Name{Local: doc.Name(h)}}
	for _, a := range doc.Attributes(h) {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: doc.Name(a)},
			Value: doc.Value(a),
		})
	}
	if err := enc.e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range doc.Children(h) {
		if err := enc.encodeNode(doc, c); err != nil {
			return err
		}
	}
	return enc.e.EncodeToken(xml.EndElement{Name: start.Name})
}
