// Package extract pulls typed values out of arbitrarily nested decoded JSON
// using the field paths declared in the endpoint catalog.
package extract

// maxArrayItems caps how many elements any single array traversal step
// considers, keeping the worst case linear in input size.
const maxArrayItems = 15

// Walk follows path through a decoded JSON value and returns whatever the
// path resolves to. The second return is false when the path cannot be
// resolved at all; a resolved-but-empty list is not a miss.
//
// Arrays fan the traversal out: the matching field is collected from every
// element (up to maxArrayItems), each branch is walked with the remaining
// path, and the per-branch results are flattened back into one list. A
// single surviving branch continues in place without multiplying.
func Walk(value any, path []string) (any, bool) {
	if len(path) == 0 {
		return value, true
	}
	segment := path[0]
	rest := path[1:]

	switch current := value.(type) {
	case map[string]any:
		child, ok := current[segment]
		if !ok {
			return nil, false
		}
		return Walk(child, rest)

	case []any:
		if len(current) > maxArrayItems {
			current = current[:maxArrayItems]
		}
		if len(rest) == 0 {
			// Last segment: collect the field from every element that has
			// it. Elements lacking the field are skipped, not an error.
			items := make([]any, 0, len(current))
			for _, element := range current {
				if obj, ok := element.(map[string]any); ok {
					if v, present := obj[segment]; present {
						items = append(items, v)
					}
				}
			}
			return items, true
		}

		branches := make([]any, 0, len(current))
		for _, element := range current {
			if obj, ok := element.(map[string]any); ok {
				if v, present := obj[segment]; present {
					branches = append(branches, v)
				}
			}
		}
		switch len(branches) {
		case 0:
			return nil, false
		case 1:
			return Walk(branches[0], rest)
		}

		merged := make([]any, 0, len(branches))
		for _, branch := range branches {
			sub, ok := Walk(branch, rest)
			if !ok {
				continue
			}
			if list, isList := sub.([]any); isList {
				merged = append(merged, list...)
			} else {
				merged = append(merged, sub)
			}
		}
		if len(merged) == 0 {
			return nil, false
		}
		return merged, true

	default:
		// Scalar with path segments left: nothing to descend into.
		return nil, false
	}
}
