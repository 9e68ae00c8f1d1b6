package domain

// TopicList is the configured set of topics that may be indexed.
// The list is loaded once at startup; requests for topics outside
// the list are rejected before any fetching happens.
type TopicList []string

// Contains reports whether topic is in the list. Matching is exact;
// topic names are treated as opaque strings.
func (t TopicList) Contains(topic string) bool {
	for _, candidate := range t {
		if candidate == topic {
			return true
		}
	}
	return false
}
