package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Status
		wantErr bool
	}{
		{name: "approved", raw: "APPROVED", want: StatusApproved},
		{name: "rejected lowercase", raw: "rejected", want: StatusRejected},
		{name: "padded", raw: " approved ", want: StatusApproved},
		{name: "pending is not a decision", raw: "PENDING", wantErr: true},
		{name: "garbage", raw: "MAYBE", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusApproved.Valid())
	assert.False(t, StatusPending.Valid())
	assert.False(t, StatusRejected.Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusDecided(t *testing.T) {
	assert.True(t, StatusApproved.Decided())
	assert.True(t, StatusRejected.Decided())
	assert.False(t, StatusPending.Decided())
}

func TestProfileLabel(t *testing.T) {
	assert.Equal(t, "AGRICULTEUR", ProfileFarmer.Label())
	assert.Equal(t, "MEDIA", ProfileMedia.Label())
	assert.Equal(t, "VISITEUR", Profile("").Label())
	// Free-form profiles are tolerated and upper-cased as-is.
	assert.Equal(t, "PRESSE", Profile("presse").Label())
}

func TestBadgeRef(t *testing.T) {
	tests := []struct {
		name    string
		badgeID string
		want    string
	}{
		{name: "uuid first segment", badgeID: "abcd1234-xyz", want: "abcd1234"},
		{name: "no separator", badgeID: "abcd1234", want: "abcd1234"},
		{name: "missing token", badgeID: "", want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := Registrant{BadgeID: tt.badgeID}
			assert.Equal(t, tt.want, reg.BadgeRef())
		})
	}
}

func TestBadgeFilename(t *testing.T) {
	reg := Registrant{GivenName: "Awa", FamilyName: "Koffi"}
	assert.Equal(t, "badge-Awa-Koffi.pdf", reg.BadgeFilename())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Awa Koffi", Registrant{GivenName: "Awa", FamilyName: "Koffi"}.FullName())
	assert.Equal(t, "Awa", Registrant{GivenName: "Awa"}.FullName())
}
