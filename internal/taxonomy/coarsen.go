// Package taxonomy maps fine-grained detector labels onto a small fixed
// vocabulary of coarse tags.
package taxonomy

// coarseRules is the fixed rule table. Rules are evaluated independently and
// in declaration order, so the output tag order never depends on map
// iteration.
var coarseRules = []struct {
	tag    string
	labels []string
}{
	{"car", []string{"car", "truck", "bus", "motorcycle", "train"}},
	{"person", []string{"person"}},
}

// Coarsen derives coarse tags from a set of detection labels.
//
// Each rule fires when any of its source labels appears; rules are neither
// mutually exclusive nor exhaustive, and unknown labels are ignored. The
// result never contains duplicates and is empty (not nil) when no rule fires.
func Coarsen(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		seen[l] = true
	}

	tags := []string{}
	for _, rule := range coarseRules {
		for _, l := range rule.labels {
			if seen[l] {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}
