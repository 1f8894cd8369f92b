package domain

import "encoding/json"

// Link is an unresolved reference to another record, identified by kind
// ("Entry" or "Asset") and remote identifier.
type Link struct {
	Kind string
	ID   string
}

// linkWire is the placeholder shape used by the remote API:
// {"sys":{"type":"Link","linkType":"Entry","id":"abc"}}.
type linkWire struct {
	Sys linkWireSys `json:"sys"`
}

type linkWireSys struct {
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
	ID       string `json:"id"`
}

// MarshalJSON emits the remote placeholder shape.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkWire{Sys: linkWireSys{Type: "Link", LinkType: l.Kind, ID: l.ID}})
}

// UnmarshalJSON accepts the remote placeholder shape.
func (l *Link) UnmarshalJSON(data []byte) error {
	var w linkWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.Kind = w.Sys.LinkType
	l.ID = w.Sys.ID
	return nil
}

// AsLink reports whether a decoded field value is a link placeholder and
// returns it if so. Field values arrive as generic JSON, so placeholders are
// map[string]any trees.
func AsLink(v any) (Link, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Link{}, false
	}
	sys, ok := m["sys"].(map[string]any)
	if !ok {
		return Link{}, false
	}
	if t, _ := sys["type"].(string); t != "Link" {
		return Link{}, false
	}
	kind, _ := sys["linkType"].(string)
	id, _ := sys["id"].(string)
	if id == "" || (kind != KindEntry && kind != KindAsset) {
		return Link{}, false
	}
	return Link{Kind: kind, ID: id}, true
}

// PlaceholderValue builds the map form of a link placeholder, as it appears
// inside decoded field values.
func (l Link) PlaceholderValue() any {
	return map[string]any{
		"sys": map[string]any{
			"type":     "Link",
			"linkType": l.Kind,
			"id":       l.ID,
		},
	}
}

// StubFields deep-copies an entry's field values, converting resolved *Entry
// and *Asset references back into link placeholders. Resolved entry graphs
// may be cyclic and cannot be JSON-marshaled directly; the snapshot store
// persists the stubbed form.
func StubFields(fields map[string]map[string]any) map[string]map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]map[string]any, len(fields))
	for field, byLocale := range fields {
		stubbed := make(map[string]any, len(byLocale))
		for locale, v := range byLocale {
			stubbed[locale] = stubValue(v)
		}
		out[field] = stubbed
	}
	return out
}

func stubValue(v any) any {
	switch t := v.(type) {
	case *Entry:
		return Link{Kind: KindEntry, ID: t.Sys.RemoteIdentifier()}.PlaceholderValue()
	case *Asset:
		return Link{Kind: KindAsset, ID: t.Sys.RemoteIdentifier()}.PlaceholderValue()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stubValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = stubValue(e)
		}
		return out
	default:
		return v
	}
}
