package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daybookapp/daybook-server/internal/domain"
)

func TestRegisterInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr bool
	}{
		{
			name:    "valid",
			input:   RegisterInput{Login: "ann", Email: "ann@example.com", Password: "long enough"},
			wantErr: false,
		},
		{
			name:    "valid: password at exact minimum",
			input:   RegisterInput{Login: "ann", Email: "ann@example.com", Password: "12345678"},
			wantErr: false,
		},
		{
			name:    "invalid: empty login",
			input:   RegisterInput{Login: "", Email: "ann@example.com", Password: "long enough"},
			wantErr: true,
		},
		{
			name:    "invalid: email without at sign",
			input:   RegisterInput{Login: "ann", Email: "ann.example.com", Password: "long enough"},
			wantErr: true,
		},
		{
			name:    "invalid: password below minimum",
			input:   RegisterInput{Login: "ann", Email: "ann@example.com", Password: "1234567"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.validate(8)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
