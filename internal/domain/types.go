// Package domain provides the record types fetched from a remote content space.
package domain

import "time"

// Record kinds as reported by the remote API.
const (
	KindEntry       = "Entry"
	KindAsset       = "Asset"
	KindContentType = "ContentType"
)

// Sys holds the system metadata carried by every remote record.
type Sys struct {
	// Internal identifier. Equal to the remote identifier until the record
	// passes through the identifier normalizer.
	ID string `json:"id"`
	// Remote identifier as issued by the content API. Empty until the record
	// has been normalized.
	RemoteID string `json:"remoteId,omitempty"`
	// Record kind: Entry, Asset, ContentType.
	Type string `json:"type"`
	// Content-type reference, set on entries only.
	ContentType *Link     `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// RemoteIdentifier returns the identifier a link placeholder would carry for
// this record: the remote identifier once normalized, the raw identifier
// before.
func (s Sys) RemoteIdentifier() string {
	if s.RemoteID != "" {
		return s.RemoteID
	}
	return s.ID
}

// Entry is a structured content record. Fields maps a field name to a
// per-locale value map; a value may be a scalar, a list, a link placeholder,
// or (after resolution) a *Entry or *Asset.
type Entry struct {
	Sys    Sys                       `json:"sys"`
	Fields map[string]map[string]any `json:"fields"`
}

// Asset is a media-metadata record. It has the same per-locale field shape
// as Entry (file URL, MIME type, dimensions live under the "file" field).
type Asset struct {
	Sys    Sys                       `json:"sys"`
	Fields map[string]map[string]any `json:"fields"`
}

// ContentType is a schema descriptor for entries of one kind. It carries no
// per-locale variation.
type ContentType struct {
	Sys          Sys        `json:"sys"`
	Name         string     `json:"name"`
	DisplayField string     `json:"displayField,omitempty"`
	Fields       []FieldDef `json:"fields"`
}

// FieldDef describes one field of a content type.
type FieldDef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	LinkType  string `json:"linkType,omitempty"`
	Required  bool   `json:"required"`
	Localized bool   `json:"localized"`
}

// Locale is one locale configured for the space.
type Locale struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// DeletedEntry marks an entry deletion observed by a sync run. Full re-fetch
// never observes deletions, so these collections stay empty.
type DeletedEntry struct {
	Sys Sys `json:"sys"`
}

// DeletedAsset marks an asset deletion observed by a sync run.
type DeletedAsset struct {
	Sys Sys `json:"sys"`
}
