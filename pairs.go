package formbind

import "net/url"

// Pair is a single decoded key/value from a form submission.
// Both strings are expected to be percent-decoded UTF-8; the binder
// performs no URL decoding of its own.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered sequence of decoded form pairs. Keys may repeat
// (checkboxes, multi-selects); the relative order of values sharing a
// key is significant and preserved through binding.
type Pairs []Pair

// PairsFromValues converts url.Values into an ordered pair sequence.
// Per-key value order is preserved as url.Values keeps it; the relative
// order of distinct keys is unspecified, which does not affect binding
// since values are grouped by key before resolution.
func PairsFromValues(values url.Values) Pairs {
	n := 0
	for _, vs := range values {
		n += len(vs)
	}
	pairs := make(Pairs, 0, n)
	for key, vs := range values {
		for _, v := range vs {
			pairs = append(pairs, Pair{Key: key, Value: v})
		}
	}
	return pairs
}

// group builds the key to ordered-values mapping used during resolution.
// Keys with no occurrences get no entry. Unknown keys (not matching any
// descriptor) are retained but never consulted, so extra form fields such
// as CSRF tokens never fail a bind.
func (p Pairs) group() map[string][]string {
	grouped := make(map[string][]string, len(p))
	for _, pair := range p {
		grouped[pair.Key] = append(grouped[pair.Key], pair.Value)
	}
	return grouped
}
