package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/normalize"
)

func TestEntryNilPassthrough(t *testing.T) {
	assert.Nil(t, normalize.Entry(nil))
	assert.Nil(t, normalize.Asset(nil))
	assert.Nil(t, normalize.ContentType(nil))
	assert.Nil(t, normalize.DeletedEntry(nil))
	assert.Nil(t, normalize.DeletedAsset(nil))
}

func TestEntryReturnsNewRecord(t *testing.T) {
	in := &domain.Entry{Sys: domain.Sys{ID: "remote-1", Type: domain.KindEntry}}

	out := normalize.Entry(in)

	require.NotNil(t, out)
	assert.NotSame(t, in, out)

	// Input untouched
	assert.Equal(t, "remote-1", in.Sys.ID)
	assert.Empty(t, in.Sys.RemoteID)

	// Output rewritten
	assert.NotEqual(t, "remote-1", out.Sys.ID)
	assert.Equal(t, "remote-1", out.Sys.RemoteID)
}

func TestEntryDerivationIsDeterministic(t *testing.T) {
	a := normalize.Entry(&domain.Entry{Sys: domain.Sys{ID: "remote-1", Type: domain.KindEntry}})
	b := normalize.Entry(&domain.Entry{Sys: domain.Sys{ID: "remote-1", Type: domain.KindEntry}})

	assert.Equal(t, a.Sys.ID, b.Sys.ID)
}

func TestEntryIdempotentOnDerivedIdentifier(t *testing.T) {
	once := normalize.Entry(&domain.Entry{Sys: domain.Sys{ID: "remote-1", Type: domain.KindEntry}})
	twice := normalize.Entry(once)

	assert.Equal(t, once.Sys.ID, twice.Sys.ID)
	assert.Equal(t, once.Sys.RemoteID, twice.Sys.RemoteID)
}

func TestIdentifierIsKindQualified(t *testing.T) {
	// The same remote identifier on different kinds must not collide.
	assert.NotEqual(t,
		normalize.Identifier(domain.KindEntry, "same"),
		normalize.Identifier(domain.KindAsset, "same"),
	)
}

func TestNormalizeAppliesToEveryKind(t *testing.T) {
	sys := domain.Sys{ID: "r1"}

	asset := normalize.Asset(&domain.Asset{Sys: sys})
	ct := normalize.ContentType(&domain.ContentType{Sys: sys})
	de := normalize.DeletedEntry(&domain.DeletedEntry{Sys: sys})
	da := normalize.DeletedAsset(&domain.DeletedAsset{Sys: sys})

	for _, s := range []domain.Sys{asset.Sys, ct.Sys, de.Sys, da.Sys} {
		assert.Equal(t, "r1", s.RemoteID)
		assert.NotEqual(t, "r1", s.ID)
	}
}
