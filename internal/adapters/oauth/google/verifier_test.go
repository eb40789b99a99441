package google

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		claims   map[string]interface{}
		wantErr  bool
		wantName string
	}{
		{
			name:     "email and name",
			claims:   map[string]interface{}{"email": "saint@example.com", "name": "Saint-14", "email_verified": true},
			wantName: "Saint-14",
		},
		{
			name:     "name falls back to email",
			claims:   map[string]interface{}{"email": "osiris@example.com"},
			wantName: "osiris",
		},
		{
			name:    "missing email",
			claims:  map[string]interface{}{"name": "Nobody"},
			wantErr: true,
		},
		{
			name:    "unverified email",
			claims:  map[string]interface{}{"email": "x@example.com", "email_verified": false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &GoogleVerifier{validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
				assert.Equal(t, "client-id", audience)
				return &idtoken.Payload{Claims: tt.claims}, nil
			}}

			payload, err := v.Verify(context.Background(), "token", "client-id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, payload.Name)
		})
	}
}

func TestVerifyPropagatesValidationError(t *testing.T) {
	v := &GoogleVerifier{validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: token expired")
	}}

	_, err := v.Verify(context.Background(), "token", "client-id")
	assert.EqualError(t, err, "idtoken: token expired")
}
