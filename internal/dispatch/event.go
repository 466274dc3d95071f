package dispatch

// Element is a snapshot of the page element an interaction originated from:
// its tag, class list and data-* attributes as reported by the client.
type Element struct {
	Tag     string            `json:"tag"`
	Classes []string          `json:"classes"`
	Dataset map[string]string `json:"dataset"`
}

// HasClass reports whether the element carries the given class.
func (e Element) HasClass(name string) bool {
	for _, class := range e.Classes {
		if class == name {
			return true
		}
	}
	return false
}

// Data returns the value of a data-* attribute by its key ("email" for
// data-email). A missing key yields the empty string, never an error.
func (e Element) Data(key string) string {
	return e.Dataset[key]
}

// Event is a single client interaction. It is consumed synchronously by the
// handlers it is dispatched to and never stored.
type Event struct {
	Type   string  `json:"type"`
	Target Element `json:"target"`
}

// Handler reacts to a dispatched event. Handlers run synchronously to
// completion and are responsible for their own logging.
type Handler func(Event)
