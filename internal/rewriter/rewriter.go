// Package rewriter builds annotated derivatives: it clones a document's
// object graph, reroutes every hyperlink through the akl command
// protocol and promotes every internal navigation point to a visible,
// citation-capturable anchor. Everything outside annotation arrays is
// carried through untouched.
package rewriter

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/core/protocol"
	"github.com/aluminium-labs/akl/internal/logger"
	"github.com/aluminium-labs/akl/internal/pdf"
)

// Ensure PDFRewriter implements the interface.
var _ driven.Rewriter = (*PDFRewriter)(nil)

// Marker geometry and colour: a 4-unit square centred on the
// destination, filled with the fixed anchor colour (#8FBCBB).
const markerHalfSize = 2.0

var markerColor = pdf.Array{pdf.Real(0.561), pdf.Real(0.737), pdf.Real(0.733)}

// PDFRewriter is the annotation rewriter for PDF documents.
type PDFRewriter struct{}

// New creates a PDF annotation rewriter.
func New() *PDFRewriter {
	return &PDFRewriter{}
}

// Rewrite is a pure function of (bytes, open context): it returns new
// document bytes whose page count and content streams are byte-equal to
// the source, with only annotation arrays extended or mutated.
func (r *PDFRewriter) Rewrite(raw []byte, open domain.OpenCommand) ([]byte, error) {
	doc, err := pdf.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		return nil, fmt.Errorf("walking page tree: %w", err)
	}

	for _, page := range pages {
		if err := rewritePageLinks(doc, page, open); err != nil {
			return nil, err
		}
	}

	dests, err := extractDestinations(doc, pages)
	if err != nil {
		return nil, fmt.Errorf("extracting destinations: %w", err)
	}
	logger.Debug("promoting %d grouped destinations", len(dests))
	for _, dest := range dests {
		if err := annotateDestination(doc, pages[dest.Page], dest, open); err != nil {
			return nil, err
		}
	}

	return doc.Write()
}

// rewritePageLinks wraps the URI action of every link annotation on the
// page in a protocol-encoded open command.
func rewritePageLinks(doc *pdf.Document, page pdf.Ref, open domain.OpenCommand) error {
	annots, ok := doc.Annotations(page)
	if !ok {
		return nil
	}

	rebuilt := make(pdf.Array, len(annots))
	inlineChanged := false
	for i, element := range annots {
		rebuilt[i] = element

		annot, ok := doc.ResolveDict(element)
		if !ok {
			continue
		}
		action, ok := doc.ResolveDict(annot[pdf.Name("A")])
		if !ok {
			continue
		}
		uri, ok := action[pdf.Name("URI")].(pdf.String)
		if !ok {
			continue
		}

		wrapped, err := wrapLink(string(uri), open)
		if err != nil {
			return fmt.Errorf("wrapping link %q: %w", uri, err)
		}

		newAction := cloneDict(action)
		newAction[pdf.Name("URI")] = pdf.String(wrapped)
		newAnnot := cloneDict(annot)
		newAnnot[pdf.Name("A")] = newAction

		if ref, isRef := element.(pdf.Ref); isRef {
			doc.Set(ref, newAnnot)
		} else {
			rebuilt[i] = newAnnot
			inlineChanged = true
		}
	}

	if inlineChanged {
		return doc.SetAnnotations(page, rebuilt)
	}
	return nil
}

// wrapLink encodes an open command around the original link target. A
// single-valued page or dest parameter in the target's own query is
// lifted onto the command, preserving sub-location fidelity across the
// indirection.
func wrapLink(link string, open domain.OpenCommand) (string, error) {
	cmd := domain.OpenCommand{
		Reference:   link,
		StorageRoot: open.StorageRoot,
		Bibtex:      open.Bibtex,
		Knowledge:   open.Knowledge,
	}
	if u, err := url.Parse(link); err == nil {
		q := u.Query()
		if values := q["page"]; len(values) == 1 {
			if page, err := strconv.Atoi(values[0]); err == nil {
				cmd.Page = &page
			}
		}
		if values := q["dest"]; len(values) == 1 {
			dest := values[0]
			cmd.Dest = &dest
		}
	}
	return protocol.Encode(cmd)
}

// annotateDestination synthesises the visible marker and the citation
// link covering a grouped destination, appending both to the page's
// annotation array. The group's first title wins when several names
// alias the location.
func annotateDestination(doc *pdf.Document, page pdf.Ref, dest domain.Destination, open domain.OpenCommand) error {
	target, err := protocol.Encode(domain.CiteCommand{
		Reference:   open.Reference,
		StorageRoot: open.StorageRoot,
		Dest:        dest.Names[0],
		Page:        dest.Page,
		Bibtex:      open.Bibtex,
		Knowledge:   open.Knowledge,
	})
	if err != nil {
		return fmt.Errorf("encoding citation for %q: %w", dest.Names[0], err)
	}

	rect := pdf.Array{
		pdf.Real(dest.Left - markerHalfSize),
		pdf.Real(dest.Top - markerHalfSize),
		pdf.Real(dest.Left + markerHalfSize),
		pdf.Real(dest.Top + markerHalfSize),
	}

	marker := doc.Add(pdf.Dict{
		pdf.Name("Type"):     pdf.Name("Annot"),
		pdf.Name("Subtype"):  pdf.Name("FreeText"),
		pdf.Name("Rect"):     rect,
		pdf.Name("Contents"): pdf.String("A"),
		pdf.Name("DA"):       pdf.String("0.561 0.737 0.733 rg /Arial 10 Tf"),
		pdf.Name("C"):        markerColor,
	})
	link := doc.Add(pdf.Dict{
		pdf.Name("Type"):    pdf.Name("Annot"),
		pdf.Name("Subtype"): pdf.Name("Link"),
		pdf.Name("Rect"):    rect,
		pdf.Name("Border"):  pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
		pdf.Name("A"): pdf.Dict{
			pdf.Name("Type"): pdf.Name("Action"),
			pdf.Name("S"):    pdf.Name("URI"),
			pdf.Name("URI"):  pdf.String(target),
		},
	})

	annots, _ := doc.Annotations(page)
	extended := make(pdf.Array, 0, len(annots)+2)
	extended = append(extended, annots...)
	extended = append(extended, marker, link)
	return doc.SetAnnotations(page, extended)
}

func cloneDict(d pdf.Dict) pdf.Dict {
	out := make(pdf.Dict, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}
