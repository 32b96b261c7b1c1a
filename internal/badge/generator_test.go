package badge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festreg/internal/registration"
)

func approvedRegistrant() registration.Registrant {
	return registration.Registrant{
		ID:           "r1",
		GivenName:    "Awa",
		FamilyName:   "Koffi",
		Email:        "awa@example.com",
		Phone:        "+228 90 00 00 00",
		Profile:      registration.ProfileFarmer,
		Organisation: "Coopérative X",
		Status:       registration.StatusApproved,
		BadgeID:      "abcd1234-xyz",
	}
}

func TestAccentColor(t *testing.T) {
	tests := []struct {
		name    string
		profile registration.Profile
		want    RGB
	}{
		{name: "agriculteur", profile: registration.ProfileFarmer, want: RGB{5, 150, 105}},
		{name: "startup", profile: registration.ProfileStartup, want: RGB{37, 99, 235}},
		{name: "partenaire", profile: registration.ProfilePartner, want: RGB{217, 119, 6}},
		{name: "visiteur", profile: registration.ProfileVisitor, want: RGB{147, 51, 234}},
		{name: "media", profile: registration.ProfileMedia, want: RGB{234, 179, 8}},
		{name: "unknown falls back", profile: "sponsor", want: RGB{22, 101, 52}},
		{name: "missing falls back", profile: "", want: RGB{22, 101, 52}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accentColor(tt.profile))
		})
	}
}

func TestRenderProducesPDF(t *testing.T) {
	gen := NewGenerator()

	pdf, err := gen.Render(approvedRegistrant())
	require.NoError(t, err)
	require.True(t, len(pdf) > 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderToStream(t *testing.T) {
	gen := NewGenerator()

	var buf bytes.Buffer
	require.NoError(t, gen.RenderTo(&buf, approvedRegistrant()))
	assert.Equal(t, "%PDF", buf.String()[:4])
}

// The same layout feeds both sinks; the artifacts differ at most in
// wall-clock metadata.
func TestRenderBlobAndStreamSameSize(t *testing.T) {
	gen := NewGenerator()
	reg := approvedRegistrant()

	blob, err := gen.Render(reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.RenderTo(&buf, reg))

	assert.Equal(t, len(blob), buf.Len())
}

func TestRenderSurvivesQRFailure(t *testing.T) {
	gen := NewGeneratorWithQR(func(string, int) ([]byte, error) {
		return nil, errors.New("payload too large")
	})

	pdf, err := gen.Render(approvedRegistrant())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderMissingBadgeToken(t *testing.T) {
	reg := approvedRegistrant()
	reg.BadgeID = ""

	pdf, err := NewGenerator().Render(reg)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderMinimalRegistrant(t *testing.T) {
	// Pending, no organisation/role/region: name and chip only.
	reg := registration.Registrant{
		ID:         "r2",
		GivenName:  "Kossi",
		FamilyName: "Mensah",
		Status:     registration.StatusPending,
		BadgeID:    "efgh5678-abc",
	}

	pdf, err := NewGenerator().Render(reg)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestDetailLines(t *testing.T) {
	base := approvedRegistrant()
	base.Role = "Directrice"
	base.Region = "Maritime"

	t.Run("all present in fixed order", func(t *testing.T) {
		lines := detailLines(base)
		require.Len(t, lines, 3)
		assert.Equal(t, "Coopérative X", lines[0].text)
		assert.Equal(t, "Directrice", lines[1].text)
		assert.Equal(t, "MARITIME", lines[2].text)
	})

	t.Run("each line independently absent", func(t *testing.T) {
		reg := base
		reg.Role = ""
		lines := detailLines(reg)
		require.Len(t, lines, 2)
		assert.Equal(t, "Coopérative X", lines[0].text)
		assert.Equal(t, "MARITIME", lines[1].text)
	})

	t.Run("none present", func(t *testing.T) {
		reg := base
		reg.Organisation, reg.Role, reg.Region = "", "", ""
		assert.Empty(t, detailLines(reg))
	})
}

func TestCardFinalizeOnce(t *testing.T) {
	card := NewCard()
	card.FillRect(0, 0, card.Width(), card.Height(), RGB{255, 255, 255})

	var first bytes.Buffer
	require.NoError(t, card.WriteTo(&first))

	var second bytes.Buffer
	assert.ErrorIs(t, card.WriteTo(&second), ErrFinalized)
	assert.Zero(t, second.Len())
}
