package sinistro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

func TestValidarStatus(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantErr bool
	}{
		{
			name:    "valid payment status",
			payload: map[string]any{"status_pagamento": "Pago"},
		},
		{
			name:    "invalid payment status",
			payload: map[string]any{"status_pagamento": "Quitado"},
			wantErr: true,
		},
		{
			name:    "null status is skipped, the update path drops it later",
			payload: map[string]any{"status_pagamento": nil},
		},
		{
			name:    "non-status fields are ignored",
			payload: map[string]any{"cliente": "ACME", "valor_indenizacao": "10,5"},
		},
		{
			name:    "status_sinistro alias validates against status_geral values",
			payload: map[string]any{"status_sinistro": "Concluído"},
		},
		{
			name:    "status_sinistro alias rejects foreign values",
			payload: map[string]any{"status_sinistro": "Pago"},
			wantErr: true,
		},
		{
			name:    "non-string value on a status field",
			payload: map[string]any{"status_geral": 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sinistro.ValidarStatus(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, sinistro.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
