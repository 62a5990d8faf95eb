package sinistro_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

func TestMontarProgramacao(t *testing.T) {
	eng := newEngine()

	t.Run("skips empty items and renumbers ordinals", func(t *testing.T) {
		itens := []sinistro.ItemProgramacao{
			{Data: "2024-01-10", Valor: "100,50", DoctoESL: "ND-1"},
			{},
			{Data: "2024-02-10", Valor: "200", DoctoESL: "ND-2"},
			{},
		}
		parcelas, err := sinistro.MontarProgramacao(7, itens, eng)
		require.NoError(t, err)
		require.Len(t, parcelas, 2)

		assert.Equal(t, 1, parcelas[0].Ordem)
		assert.Equal(t, 100.50, parcelas[0].ValorPagamento)
		assert.Equal(t, "ND-1", parcelas[0].DocumentoESL)
		assert.Equal(t, int64(7), parcelas[0].SinistroID)

		assert.Equal(t, 2, parcelas[1].Ordem)
		assert.Equal(t, "2024-02-10", parcelas[1].DataPagamento)
	})

	t.Run("rejects more than ten non-empty items", func(t *testing.T) {
		itens := make([]sinistro.ItemProgramacao, 0, 11)
		for i := 0; i < 11; i++ {
			itens = append(itens, sinistro.ItemProgramacao{Valor: fmt.Sprintf("%d", i+1)})
		}
		_, err := sinistro.MontarProgramacao(7, itens, eng)
		assert.ErrorIs(t, err, sinistro.ErrCapacityExceeded)
	})

	t.Run("exactly ten items is allowed", func(t *testing.T) {
		itens := make([]sinistro.ItemProgramacao, 0, 12)
		for i := 0; i < 10; i++ {
			itens = append(itens, sinistro.ItemProgramacao{Valor: "1"})
		}
		// Empty padding rows do not count against the limit.
		itens = append(itens, sinistro.ItemProgramacao{}, sinistro.ItemProgramacao{})

		parcelas, err := sinistro.MontarProgramacao(7, itens, eng)
		require.NoError(t, err)
		assert.Len(t, parcelas, 10)
	})
}

func TestParsearItens(t *testing.T) {
	log := logger.New(logger.LevelError)

	t.Run("json array of objects", func(t *testing.T) {
		itens := sinistro.ParsearItens([]any{
			map[string]any{"data": "2024-01-10", "valor": "100,50", "doctoESL": "ND-1"},
			map[string]any{"valor": 200},
			"lixo",
		}, log)

		require.Len(t, itens, 2)
		assert.Equal(t, sinistro.ItemProgramacao{Data: "2024-01-10", Valor: "100,50", DoctoESL: "ND-1"}, itens[0])
		assert.Equal(t, "200", itens[1].Valor)
	})

	t.Run("typed items pass through", func(t *testing.T) {
		original := []sinistro.ItemProgramacao{{Data: "2024-01-10"}}
		assert.Equal(t, original, sinistro.ParsearItens(original, log))
	})

	t.Run("unexpected shape yields nothing", func(t *testing.T) {
		assert.Nil(t, sinistro.ParsearItens("não é lista", log))
		assert.Nil(t, sinistro.ParsearItens(nil, log))
	})
}
