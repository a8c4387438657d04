package rewriter

import (
	"strings"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/pdf"
)

// extractDestinations groups the document's named-navigation entries by
// exact (left, top, page) location. Entries with a blank title, a
// non-XYZ target or missing coordinate/page data are silently dropped
// rather than reported. Groups are emitted in first-encounter
// order, which is deterministic for a given document; names inside a
// group keep their encounter order.
func extractDestinations(doc *pdf.Document, pages []pdf.Ref) ([]domain.Destination, error) {
	named, err := doc.NamedDestinations()
	if err != nil {
		return nil, err
	}

	type location struct {
		left, top float64
		page      int
	}
	var order []location
	groups := make(map[location][]string)

	for _, nd := range named {
		if strings.TrimSpace(nd.Name) == "" {
			continue
		}
		if len(nd.Target) < 4 {
			continue
		}
		pageRef, ok := nd.Target[0].(pdf.Ref)
		if !ok {
			continue
		}
		if nd.Target[1] != pdf.Name("XYZ") {
			continue
		}
		left, ok := pdf.Number(doc.Resolve(nd.Target[2]))
		if !ok {
			continue
		}
		top, ok := pdf.Number(doc.Resolve(nd.Target[3]))
		if !ok {
			continue
		}
		page, ok := doc.PageIndex(pages, pageRef)
		if !ok {
			continue
		}

		loc := location{left: left, top: top, page: page}
		if _, seen := groups[loc]; !seen {
			order = append(order, loc)
		}
		groups[loc] = append(groups[loc], nd.Name)
	}

	dests := make([]domain.Destination, 0, len(order))
	for _, loc := range order {
		dests = append(dests, domain.Destination{
			Left:  loc.left,
			Top:   loc.top,
			Page:  loc.page,
			Names: groups[loc],
		})
	}
	return dests, nil
}
