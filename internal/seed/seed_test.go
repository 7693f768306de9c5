// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSeed = `
accounts:
  - name: Ada Lovelace
    email: ada@example.com
    password: secret123
    location: London
    latitude: 51.5074
    longitude: -0.1278
    pets:
      - name: Rex
        description: Brown labrador
        status: lost
        latitude: 51.5080
        longitude: -0.1290
  - name: Grace Hopper
    email: grace@example.com
    password: secret123
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(validSeed))
	require.NoError(t, err)

	require.Len(t, f.Accounts, 2)
	ada := f.Accounts[0]
	assert.Equal(t, "ada@example.com", ada.Email)
	require.NotNil(t, ada.Latitude)
	assert.InDelta(t, 51.5074, *ada.Latitude, 1e-9)
	require.Len(t, ada.Pets, 1)
	assert.Equal(t, "lost", ada.Pets[0].Status)
	assert.Empty(t, f.Accounts[1].Pets)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not yaml", ":\n  - ["},
		{"missing email", "accounts:\n  - name: Ada\n    password: secret123\n"},
		{"short password", "accounts:\n  - name: Ada\n    email: a@b.co\n    password: short\n"},
		{
			"bad pet status",
			"accounts:\n  - name: Ada\n    email: a@b.co\n    password: secret123\n" +
				"    pets:\n      - name: Rex\n        status: hiding\n        latitude: 0\n        longitude: 0\n",
		},
		{
			"latitude out of range",
			"accounts:\n  - name: Ada\n    email: a@b.co\n    password: secret123\n    latitude: 123.0\n    longitude: 0.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), SchemaID)
	assert.Contains(t, string(data), `"accounts"`)
}
