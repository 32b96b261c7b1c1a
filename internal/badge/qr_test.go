package badge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festreg/internal/registration"
)

func TestPayloadValidity(t *testing.T) {
	tests := []struct {
		name   string
		status registration.Status
		valid  bool
	}{
		{name: "approved is valid", status: registration.StatusApproved, valid: true},
		{name: "pending is invalid", status: registration.StatusPending, valid: false},
		{name: "rejected is invalid", status: registration.StatusRejected, valid: false},
		{name: "empty status is invalid", status: "", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPayload(registration.Registrant{ID: "r1", BadgeID: "b1", Status: tt.status})
			assert.Equal(t, tt.valid, p.Valid)
		})
	}
}

func TestPayloadEncodeDeterministic(t *testing.T) {
	reg := registration.Registrant{ID: "r1", BadgeID: "abcd1234-xyz", Status: registration.StatusApproved}

	first, err := NewPayload(reg).Encode()
	require.NoError(t, err)
	second, err := NewPayload(reg).Encode()
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
	assert.JSONEq(t, `{"id":"r1","b":"abcd1234-xyz","v":true}`, string(first))
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Payload
	}{
		{
			name: "canonical abbreviated keys",
			raw:  `{"id":"r1","b":"tok-1","v":true}`,
			want: Payload{ID: "r1", Badge: "tok-1", Valid: true},
		},
		{
			name: "legacy verbose keys",
			raw:  `{"id":"r1","badge_id":"tok-1","name":"Awa Koffi","profile":"agriculteur","valid":true}`,
			want: Payload{ID: "r1", Badge: "tok-1", Valid: true},
		},
		{
			name: "legacy without validity",
			raw:  `{"id":"r1","badge_id":"tok-1"}`,
			want: Payload{ID: "r1", Badge: "tok-1", Valid: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing id rejected", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"b":"tok-1","v":true}`))
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParsePayload([]byte("FIAA-FREEFORM"))
		require.Error(t, err)
	})
}

func TestEncodeQRPNG(t *testing.T) {
	png, err := encodeQRPNG(`{"id":"r1","b":"tok-1","v":true}`, 256)
	require.NoError(t, err)
	require.True(t, len(png) > 8)
	// PNG magic
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
