// Package resolve rewires link placeholders inside entry field values into
// the actual fetched records. The remote would do this server-side, but the
// full-space fetch requests entries with link resolution disabled, so the
// pass is re-implemented here against the materialized pools.
package resolve

import "github.com/jonesrussell/spacesync/internal/domain"

type resolver struct {
	entries map[string]*domain.Entry
	assets  map[string]*domain.Asset
}

// Resolve replaces every link placeholder reachable through each entry's
// field values with the pooled record it targets. Pools are keyed by
// (kind, remote identifier), and a placeholder always resolves to the pooled
// pointer itself: cyclic entry graphs terminate and revisits share one
// resolved object instead of re-expanding. Placeholders whose target is not
// in the pools are left unresolved; a missing target never fails the fetch.
// Asset records are not descended into.
func Resolve(entries []*domain.Entry, assets []*domain.Asset) {
	r := &resolver{
		entries: make(map[string]*domain.Entry, len(entries)),
		assets:  make(map[string]*domain.Asset, len(assets)),
	}
	for _, e := range entries {
		r.entries[e.Sys.RemoteIdentifier()] = e
	}
	for _, a := range assets {
		r.assets[a.Sys.RemoteIdentifier()] = a
	}

	for _, e := range entries {
		for _, byLocale := range e.Fields {
			for locale, v := range byLocale {
				byLocale[locale] = r.resolveValue(v)
			}
		}
	}
}

// resolveValue walks a decoded field-value tree. Only raw JSON containers are
// descended into; already-resolved records are substituted as-is, which
// bounds the walk to the placeholder tree of each field.
func (r *resolver) resolveValue(v any) any {
	if link, ok := domain.AsLink(v); ok {
		switch link.Kind {
		case domain.KindEntry:
			if target, found := r.entries[link.ID]; found {
				return target
			}
		case domain.KindAsset:
			if target, found := r.assets[link.ID]; found {
				return target
			}
		}
		return v
	}

	switch t := v.(type) {
	case []any:
		for i := range t {
			t[i] = r.resolveValue(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = r.resolveValue(t[k])
		}
		return t
	default:
		return v
	}
}
