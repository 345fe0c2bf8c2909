package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/guest-hub/internal/model"
)

func TestDefaultSeed(t *testing.T) {
	reqs, err := DefaultSeed()
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	tests := []struct {
		id       string
		guest    string
		platform string
		status   model.RequestStatus
		nights   int
		badges   []string
	}{
		{"req-1", "Sarah Johnson", model.PlatformBooking, model.StatusPending, 5, []string{"Genius Level 3"}},
		{"req-2", "Michael Chen", model.PlatformAirbnb, model.StatusPending, 4, []string{"⭐ 4.8 Guest Rating"}},
		{"req-3", "Emma Williams", model.PlatformVrbo, model.StatusApproved, 5, []string{"✓ Verified Guest"}},
	}
	for i, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			r := reqs[i]
			assert.Equal(t, tc.id, r.ID)
			assert.Equal(t, tc.guest, r.GuestName)
			assert.Equal(t, tc.platform, r.Platform)
			assert.Equal(t, tc.status, r.Status)
			assert.Equal(t, tc.nights, r.Nights())
			assert.Equal(t, "Cozy Downtown Apartment", r.PropertyTitle)
			require.NotNil(t, r.PlatformSpecific)
			assert.Equal(t, tc.platform, r.PlatformSpecific.Platform())
			assert.Equal(t, tc.badges, r.PlatformSpecific.Badges())
		})
	}
}

func TestLoadSeed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		check   func(t *testing.T, reqs []model.BookingRequest)
	}{
		{
			name: "status defaults to pending",
			doc: `requests:
  - id: r1
    platform: airbnb
    check_in: "2026-01-01"
    check_out: "2026-01-03"`,
			check: func(t *testing.T, reqs []model.BookingRequest) {
				require.Len(t, reqs, 1)
				assert.Equal(t, model.StatusPending, reqs[0].Status)
				assert.Nil(t, reqs[0].PlatformSpecific)
			},
		},
		{
			name: "unknown status",
			doc: `requests:
  - id: r1
    platform: airbnb
    check_in: "2026-01-01"
    check_out: "2026-01-03"
    status: cancelled`,
			wantErr: `unknown status "cancelled"`,
		},
		{
			name: "bad date",
			doc: `requests:
  - id: r1
    platform: vrbo
    check_in: "01/01/2026"
    check_out: "2026-01-03"`,
			wantErr: "check_in",
		},
		{
			name: "details on unknown platform",
			doc: `requests:
  - id: r1
    platform: expedia
    check_in: "2026-01-01"
    check_out: "2026-01-03"
    platform_specific:
      points: 3`,
			wantErr: `unknown platform "expedia"`,
		},
		{
			name:    "malformed document",
			doc:     "requests: [",
			wantErr: "decode seed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reqs, err := LoadSeed(strings.NewReader(tc.doc))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, reqs)
		})
	}
}
