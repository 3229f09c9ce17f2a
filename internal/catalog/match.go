package catalog

import "errors"

// ErrIncompleteSelection: the chosen attribute terms do not resolve to
// exactly one variation. Callers must refuse add-to-cart on it.
var ErrIncompleteSelection = errors.New("selection does not resolve a variation")

// MatchVariation finds the variation whose term id at every position i
// equals selected[attributeOrder[i]]. Matching is strictly positional;
// a selection missing any attribute matches nothing.
func MatchVariation(selected map[string]string, variations []Variation, attributeOrder []string) *Variation {
	if len(attributeOrder) == 0 {
		return nil
	}
	for _, attrID := range attributeOrder {
		if selected[attrID] == "" {
			return nil
		}
	}
	for i := range variations {
		terms := variations[i].TermIDList()
		if len(terms) != len(attributeOrder) {
			continue
		}
		matched := true
		for pos, attrID := range attributeOrder {
			if terms[pos] != selected[attrID] {
				matched = false
				break
			}
		}
		if matched {
			return &variations[i]
		}
	}
	return nil
}

// SelectVariation is the add-to-cart entry point for variable products:
// nil match surfaces as ErrIncompleteSelection.
func SelectVariation(p Product, selected map[string]string) (*Variation, error) {
	v := MatchVariation(selected, p.Variations, p.AttributeOrder())
	if v == nil {
		return nil, ErrIncompleteSelection
	}
	return v, nil
}
