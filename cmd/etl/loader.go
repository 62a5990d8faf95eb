package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/charmap"

	"github.com/Cl4ydson/sinistros-control/internal/logger"
	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// openSpreadsheet loads the legacy claims spreadsheet export. The files come
// out of Excel as Windows-1252 CSV with semicolon delimiters.
func openSpreadsheet(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	decoded := charmap.Windows1252.NewDecoder().Reader(file)
	df := dataframe.ReadCSV(decoded, dataframe.WithDelimiter(';'), dataframe.WithLazyQuotes(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataframe is empty")
	}
	return df, nil
}

// dfRowToPayload turns one spreadsheet row into a payload keyed by the
// column labels exactly as they appear in the header. The translation
// engine resolves them to semantic fields; unmapped columns fall away there.
func dfRowToPayload(df dataframe.DataFrame, rowIdx int) map[string]any {
	payload := make(map[string]any, len(df.Names()))
	for _, col := range df.Names() {
		val := df.Col(col).Elem(rowIdx).String()
		if val == "" || val == "NaN" {
			continue
		}
		payload[col] = val
	}
	return payload
}

// ImportSpreadsheet upserts every spreadsheet row into the normalized
// schema. Row failures are collected into the result, never fatal: one bad
// line must not abort a thousand-row import.
func ImportSpreadsheet(ctx context.Context, path string, resolver *sinistro.Resolver, engine *sinistro.Engine, appLogger *logger.Logger) (*sinistro.ResultadoLote, error) {
	const component = "Importer"

	df, err := openSpreadsheet(path)
	if err != nil {
		return nil, err
	}
	appLogger.Info(component, "Spreadsheet loaded: file=%s rows=%d cols=%d", path, df.Nrow(), len(df.Names()))

	resultado := &sinistro.ResultadoLote{}
	for i := 0; i < df.Nrow(); i++ {
		linha := dfRowToPayload(df, i)
		payload := engine.Translate(linha, sinistro.Read, sinistro.VariantLegado)

		notaFiscal, _ := payload["nota_fiscal"].(string)
		detalhe := sinistro.DetalheLote{NotaFiscal: notaFiscal}

		_, criado, err := resolver.CriarOuAtualizar(ctx, payload, "etl")
		switch {
		case err != nil:
			resultado.Erros++
			detalhe.Acao = "erro"
			detalhe.Erro = err.Error()
			appLogger.Warn(component, "Row skipped: row=%d nf=%s error=%v", i, notaFiscal, err)
		case criado:
			resultado.Criados++
			detalhe.Acao = "criado"
			detalhe.Sucesso = true
		default:
			resultado.Atualizados++
			detalhe.Acao = "atualizado"
			detalhe.Sucesso = true
		}
		resultado.Detalhes = append(resultado.Detalhes, detalhe)
	}
	resultado.TotalProcessados = df.Nrow()
	return resultado, nil
}
