package domain_test

import (
	"idresolve/pkg/domain"
	"idresolve/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity_Validate(t *testing.T) {
	tests := []struct {
		name     string
		identity domain.Identity
		wantErr  []string
	}{
		{
			name:     "valid",
			identity: domain.Identity{Name: "Jane Doe", Email: "jane.doe@example.com", Phone: "555 1234"},
		},
		{
			name:     "empty name",
			identity: domain.Identity{Email: "jane.doe@example.com", Phone: "555"},
			wantErr:  []string{"name: required"},
		},
		{
			name:     "bad email",
			identity: domain.Identity{Name: "Jane", Email: "jane.doe", Phone: "555"},
			wantErr:  []string{"email: email"},
		},
		{
			name:     "short phone",
			identity: domain.Identity{Name: "Jane", Email: "j@example.com", Phone: "55"},
			wantErr:  []string{"phone: min"},
		},
		{
			name:     "everything wrong",
			identity: domain.Identity{Phone: "1"},
			wantErr:  []string{"name: required", "email: required", "phone: min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.identity.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			require.ErrorIs(t, err, serrors.ErrInvalidInput)
			require.True(t, serrors.IsFatal(err))
			for _, want := range tt.wantErr {
				require.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestCleanHandle(t *testing.T) {
	require.Equal(t, "jane.doe", domain.CleanHandle("@jane.doe"))
	require.Equal(t, "jane.doe", domain.CleanHandle("  @jane.doe\n"))
	require.Equal(t, "jane.doe", domain.CleanHandle("jane.doe"))
	require.Equal(t, "", domain.CleanHandle("@"))
}

func TestTierFor(t *testing.T) {
	require.Equal(t, domain.TierNone, domain.TierFor(0))
	require.Equal(t, domain.TierLow, domain.TierFor(1))
	require.Equal(t, domain.TierMedium, domain.TierFor(2))
	require.Equal(t, domain.TierHigh, domain.TierFor(3))
	require.Less(t, domain.TierMedium.Rank(), domain.TierHigh.Rank())
}
