package domain

// SyncSnapshot is the full bundle of records produced by one fetch run.
// The deletion collections are structurally present but always empty: a full
// re-fetch never observes deletions directly. Known limitation, kept so
// downstream consumers see a stable shape.
type SyncSnapshot struct {
	Entries        []*Entry        `json:"entries"`
	Assets         []*Asset        `json:"assets"`
	DeletedEntries []*DeletedEntry `json:"deletedEntries"`
	DeletedAssets  []*DeletedAsset `json:"deletedAssets"`
}

// Result is the sole output of a pipeline run.
type Result struct {
	CurrentSyncData  *SyncSnapshot  `json:"currentSyncData"`
	ContentTypeItems []*ContentType `json:"contentTypeItems"`
	DefaultLocale    string         `json:"defaultLocale"`
	Locales          []Locale       `json:"locales"`
}
