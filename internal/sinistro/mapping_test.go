package sinistro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

func TestMapping_Physical(t *testing.T) {
	tests := []struct {
		name         string
		variant      sinistro.Variant
		semantic     string
		wantPhysical string
		wantKind     sinistro.Kind
		wantOK       bool
	}{
		{
			name:         "normalized identity column",
			variant:      sinistro.VariantNormalizado,
			semantic:     "nota_fiscal",
			wantPhysical: "nota_fiscal",
			wantKind:     sinistro.KindString,
			wantOK:       true,
		},
		{
			name:         "alias resolves to canonical column",
			variant:      sinistro.VariantNormalizado,
			semantic:     "valor_sinistro",
			wantPhysical: "valor_indenizacao",
			wantKind:     sinistro.KindDecimal,
			wantOK:       true,
		},
		{
			name:         "alias for juridico engagement flag",
			variant:      sinistro.VariantNormalizado,
			semantic:     "juridico_acionado",
			wantPhysical: "acionamento_juridico",
			wantKind:     sinistro.KindBool,
			wantOK:       true,
		},
		{
			name:         "legacy label keeps its trailing space",
			variant:      sinistro.VariantLegado,
			semantic:     "valor_indenizacao",
			wantPhysical: "VALOR DO SINISTRO ",
			wantKind:     sinistro.KindDecimal,
			wantOK:       true,
		},
		{
			name:         "legacy product type label keeps its trailing space",
			variant:      sinistro.VariantLegado,
			semantic:     "tipo_produto",
			wantPhysical: "TIPO DO PRODUTO ",
			wantKind:     sinistro.KindString,
			wantOK:       true,
		},
		{
			name:         "legacy cod label keeps its trailing space",
			variant:      sinistro.VariantLegado,
			semantic:     "cod",
			wantPhysical: "CÓD ",
			wantKind:     sinistro.KindString,
			wantOK:       true,
		},
		{
			name:     "unknown semantic name",
			variant:  sinistro.VariantNormalizado,
			semantic: "campo_inexistente",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sinistro.ForVariant(tt.variant)
			physical, kind, ok := m.Physical(tt.semantic)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPhysical, physical)
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestMapping_Semantic(t *testing.T) {
	tests := []struct {
		name         string
		variant      sinistro.Variant
		physical     string
		wantSemantic string
		wantOK       bool
	}{
		{
			name:         "legacy shared column reads back as canonical name",
			variant:      sinistro.VariantLegado,
			physical:     "VALOR DO SINISTRO ",
			wantSemantic: "valor_indenizacao",
			wantOK:       true,
		},
		{
			name:         "legacy status sinistro maps to status_geral",
			variant:      sinistro.VariantLegado,
			physical:     "STATUS SINISTRO",
			wantSemantic: "status_geral",
			wantOK:       true,
		},
		{
			name:         "legacy bare STATUS is the indemnification status",
			variant:      sinistro.VariantLegado,
			physical:     "STATUS",
			wantSemantic: "status_indenizacao",
			wantOK:       true,
		},
		{
			name:         "source view conhecimento column",
			variant:      sinistro.VariantOrigem,
			physical:     "Minu.Conh",
			wantSemantic: "nr_conhecimento",
			wantOK:       true,
		},
		{
			name:     "lookup is case and whitespace sensitive",
			variant:  sinistro.VariantLegado,
			physical: "VALOR DO SINISTRO",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sinistro.ForVariant(tt.variant)
			semantic, ok := m.Semantic(tt.physical)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSemantic, semantic)
			}
		})
	}
}
