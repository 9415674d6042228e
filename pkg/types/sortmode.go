package types

// SortField selects the primary comparison used when ordering bindings.
type SortField int

const (
	// ByWidget orders by target text (widget name, or decoded macro literal).
	ByWidget SortField = iota
	// ByKey orders by the decoded key string.
	ByKey
	// ByKeymap orders by keymap name first, then by a secondary field.
	ByKeymap
)

func (f SortField) String() string {
	switch f {
	case ByWidget:
		return "widget"
	case ByKey:
		return "key"
	case ByKeymap:
		return "keymap"
	default:
		return "unknown"
	}
}

// GroupField selects whether consecutive rows sharing a value are emitted
// under one header instead of repeating it per row.
type GroupField int

const (
	GroupNone GroupField = iota
	GroupByWidget
	GroupByKeymap
	// GroupByPrefix groups by the key's escape prefix (everything up to
	// the final character of the raw literal).
	GroupByPrefix
)

func (g GroupField) String() string {
	switch g {
	case GroupNone:
		return "none"
	case GroupByWidget:
		return "widget"
	case GroupByKeymap:
		return "keymap"
	case GroupByPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// SortOptions is the mode selector the CLI hands to the aggregator.
// Secondary applies only when Field is ByKeymap; its zero value ByWidget
// is the default secondary ordering.
type SortOptions struct {
	Field     SortField
	Secondary SortField
	GroupBy   GroupField
}
