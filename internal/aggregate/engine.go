// Package aggregate orders and groups parsed bindings for display.
// Sorting is a total order: every comparison chain ends in tie-breaks
// that make re-runs on identical input byte-identical.
package aggregate

import (
	"sort"
	"strings"

	apperrors "zbind/internal/errors"
	"zbind/pkg/types"
)

// Engine sorts and groups bindings according to a fixed mode. Bindings
// are never mutated; the engine only reorders copies of the records.
type Engine struct {
	opts types.SortOptions
}

// New validates the mode selector and creates an Engine. An unrecognized
// sort or group field is a configuration error, fatal to the caller.
func New(opts types.SortOptions) (*Engine, error) {
	if opts.Field < types.ByWidget || opts.Field > types.ByKeymap {
		return nil, apperrors.NewModeError("unsupported sort mode", opts.Field.String())
	}
	if opts.Secondary < types.ByWidget || opts.Secondary > types.ByKeymap {
		return nil, apperrors.NewModeError("unsupported secondary sort mode", opts.Secondary.String())
	}
	if opts.Field == types.ByKeymap && opts.Secondary == types.ByKeymap {
		return nil, apperrors.NewModeError("secondary sort mode cannot repeat", opts.Secondary.String())
	}
	if opts.GroupBy < types.GroupNone || opts.GroupBy > types.GroupByPrefix {
		return nil, apperrors.NewModeError("unsupported group mode", opts.GroupBy.String())
	}
	return &Engine{opts: opts}, nil
}

// Rows orders the full batch of bindings and annotates group headers.
// The output contains every input binding exactly once. When grouping is
// enabled the rows are always sorted by the group key first, so rows
// sharing a group key are contiguous under one header.
func (e *Engine) Rows(bindings []types.Binding) []types.Row {
	sorted := make([]types.Binding, len(bindings))
	copy(sorted, bindings)

	sort.SliceStable(sorted, func(i, j int) bool {
		return e.less(sorted[i], sorted[j])
	})

	rows := make([]types.Row, 0, len(sorted))
	prevKey := ""
	for i, b := range sorted {
		row := types.Row{Binding: b}
		if e.opts.GroupBy != types.GroupNone {
			if key := e.groupKey(b); i == 0 || key != prevKey {
				row.Header = key
				prevKey = key
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GroupKey returns the display string a binding groups under, which is
// also the header text emitted above its group.
func (e *Engine) GroupKey(b types.Binding) string {
	return e.groupKey(b)
}

func (e *Engine) groupKey(b types.Binding) string {
	switch e.opts.GroupBy {
	case types.GroupByWidget:
		return b.TargetText()
	case types.GroupByKeymap:
		return b.Keymap
	case types.GroupByPrefix:
		return prefixDisplay(b.RawKey)
	default:
		return ""
	}
}

func (e *Engine) less(a, b types.Binding) bool {
	// Grouping forces a primary sort on the group key regardless of the
	// requested sort field.
	if e.opts.GroupBy != types.GroupNone {
		if c := e.compareGroup(a, b); c != 0 {
			return c < 0
		}
	}
	if c := e.compareField(e.opts.Field, a, b); c != 0 {
		return c < 0
	}
	if e.opts.Field == types.ByKeymap {
		if c := e.compareField(e.opts.Secondary, a, b); c != 0 {
			return c < 0
		}
	}
	// Final tie-breaks guaranteeing a total order.
	if c := strings.Compare(a.RawKey, b.RawKey); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Keymap, b.Keymap); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.TargetText(), b.TargetText()); c != 0 {
		return c < 0
	}
	return a.Target.Kind < b.Target.Kind
}

func (e *Engine) compareGroup(a, b types.Binding) int {
	switch e.opts.GroupBy {
	case types.GroupByWidget:
		return strings.Compare(a.TargetText(), b.TargetText())
	case types.GroupByKeymap:
		return strings.Compare(a.Keymap, b.Keymap)
	case types.GroupByPrefix:
		if c := PrefixRank(a.RawKey) - PrefixRank(b.RawKey); c != 0 {
			return c
		}
		pa, _ := Prefix(a.RawKey)
		pb, _ := Prefix(b.RawKey)
		return strings.Compare(pa, pb)
	default:
		return 0
	}
}

// compareField compares by one sort field. Command and macro bindings
// are compared by the same display-string rule: the widget name for
// commands, the decoded literal for macros.
func (e *Engine) compareField(field types.SortField, a, b types.Binding) int {
	switch field {
	case types.ByWidget:
		if c := strings.Compare(a.TargetText(), b.TargetText()); c != 0 {
			return c
		}
		// Ties break by raw key literal for determinism.
		return strings.Compare(a.RawKey, b.RawKey)
	case types.ByKey:
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		if c := strings.Compare(a.Keymap, b.Keymap); c != 0 {
			return c
		}
		return strings.Compare(a.TargetText(), b.TargetText())
	case types.ByKeymap:
		return strings.Compare(a.Keymap, b.Keymap)
	default:
		return 0
	}
}
