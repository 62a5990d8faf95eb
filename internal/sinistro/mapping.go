package sinistro

// Variant selects which physical schema a translation targets.
type Variant int

const (
	// VariantNormalizado is the canonical sinistros + programacao_pagamento
	// relational schema. Physical names are structured column identifiers.
	VariantNormalizado Variant = iota
	// VariantLegado is the denormalized eSinistros wide table mirroring the
	// old spreadsheet. Physical names are free-text labels with accents and,
	// in a few columns, trailing spaces that must be preserved byte-for-byte.
	VariantLegado
	// VariantOrigem is the read-only analytical view over the operational
	// logistics database.
	VariantOrigem
)

// Kind drives type coercion during translation.
type Kind int

const (
	KindString Kind = iota
	KindDecimal
	KindInt
	KindBool
	KindDate
)

type mapEntry struct {
	semantic string
	physical string
	kind     Kind
	// alias entries resolve on write only; the reverse direction always
	// yields the canonical semantic name. Writing through an alias therefore
	// silently affects the canonical field's read-back value.
	alias bool
}

// Mapping is an immutable bidirectional dictionary between semantic field
// names and one variant's physical column identifiers. Lookups are exact and
// case-sensitive. Shared read-only across requests after process start.
type Mapping struct {
	toPhysical map[string]mapEntry
	toSemantic map[string]string
	kinds      map[string]Kind
}

func newMapping(entries []mapEntry) *Mapping {
	m := &Mapping{
		toPhysical: make(map[string]mapEntry, len(entries)),
		toSemantic: make(map[string]string, len(entries)),
		kinds:      make(map[string]Kind, len(entries)),
	}
	for _, e := range entries {
		m.toPhysical[e.semantic] = e
		m.kinds[e.physical] = e.kind
		if !e.alias {
			m.toSemantic[e.physical] = e.semantic
		}
	}
	return m
}

// Physical returns the target column for a semantic field name.
func (m *Mapping) Physical(semantic string) (string, Kind, bool) {
	e, ok := m.toPhysical[semantic]
	return e.physical, e.kind, ok
}

// Semantic returns the canonical semantic name for a physical column.
func (m *Mapping) Semantic(physical string) (string, bool) {
	s, ok := m.toSemantic[physical]
	return s, ok
}

// KindOf resolves the coercion kind of a physical column, used when a
// payload key already arrives in physical form.
func (m *Mapping) KindOf(physical string) (Kind, bool) {
	k, ok := m.kinds[physical]
	return k, ok
}

// ForVariant returns the process-wide mapping instance for a schema variant.
func ForVariant(v Variant) *Mapping {
	switch v {
	case VariantLegado:
		return mapLegado
	case VariantOrigem:
		return mapOrigem
	default:
		return mapNormalizado
	}
}

var mapNormalizado = newMapping([]mapEntry{
	{semantic: "nota_fiscal", physical: "nota_fiscal", kind: KindString},
	{semantic: "nr_conhecimento", physical: "nr_conhecimento", kind: KindString},
	{semantic: "numero_sinistro", physical: "numero_sinistro", kind: KindString},
	{semantic: "remetente", physical: "remetente", kind: KindString},
	{semantic: "destinatario", physical: "destinatario", kind: KindString},
	{semantic: "cliente", physical: "cliente", kind: KindString},
	{semantic: "modal", physical: "modal", kind: KindString},
	{semantic: "dt_coleta", physical: "dt_coleta", kind: KindDate},
	{semantic: "dt_prazo_entrega", physical: "dt_prazo_entrega", kind: KindDate},
	{semantic: "dt_entrega_real", physical: "dt_entrega_real", kind: KindDate},
	{semantic: "dt_agendamento", physical: "dt_agendamento", kind: KindDate},
	{semantic: "dt_ocorrencia", physical: "dt_ocorrencia", kind: KindDate},
	{semantic: "dt_cadastro", physical: "dt_cadastro", kind: KindDate},
	{semantic: "hr_cadastro", physical: "hr_cadastro", kind: KindString},
	{semantic: "dt_alteracao", physical: "dt_alteracao", kind: KindDate},
	{semantic: "hr_alteracao", physical: "hr_alteracao", kind: KindString},
	{semantic: "tipo_ocorrencia", physical: "tipo_ocorrencia", kind: KindString},
	{semantic: "descricao_ocorrencia", physical: "descricao_ocorrencia", kind: KindString},
	{semantic: "ultima_ocorrencia", physical: "ultima_ocorrencia", kind: KindString},
	{semantic: "referencia", physical: "referencia", kind: KindString},

	{semantic: "status_geral", physical: "status_geral", kind: KindString},
	{semantic: "status_sinistro", physical: "status_geral", kind: KindString, alias: true},

	{semantic: "status_pagamento", physical: "status_pagamento", kind: KindString},
	{semantic: "numero_nd", physical: "numero_nd", kind: KindString},
	{semantic: "data_vencimento_nd", physical: "data_vencimento_nd", kind: KindDate},
	{semantic: "observacoes_pagamento", physical: "observacoes_pagamento", kind: KindString},

	{semantic: "status_indenizacao", physical: "status_indenizacao", kind: KindString},
	{semantic: "valor_indenizacao", physical: "valor_indenizacao", kind: KindDecimal},
	{semantic: "valor_sinistro", physical: "valor_indenizacao", kind: KindDecimal, alias: true},
	{semantic: "observacoes_indenizacao", physical: "observacoes_indenizacao", kind: KindString},
	{semantic: "responsavel_avaria", physical: "responsavel_avaria", kind: KindString},

	{semantic: "acionamento_juridico", physical: "acionamento_juridico", kind: KindBool},
	{semantic: "juridico_acionado", physical: "acionamento_juridico", kind: KindBool, alias: true},
	{semantic: "status_juridico", physical: "status_juridico", kind: KindString},
	{semantic: "numero_processo", physical: "numero_processo", kind: KindString},
	{semantic: "escritorio_advocacia", physical: "escritorio_advocacia", kind: KindString},
	{semantic: "valor_causa_juridica", physical: "valor_causa_juridica", kind: KindDecimal},
	{semantic: "dt_abertura_juridico", physical: "dt_abertura_juridico", kind: KindDate},

	{semantic: "acionamento_seguradora", physical: "acionamento_seguradora", kind: KindBool},
	{semantic: "seguro_acionado", physical: "acionamento_seguradora", kind: KindBool, alias: true},
	{semantic: "status_seguradora", physical: "status_seguradora", kind: KindString},
	{semantic: "nome_seguradora", physical: "nome_seguradora", kind: KindString},
	{semantic: "numero_sinistro_seguradora", physical: "numero_sinistro_seguradora", kind: KindString},
	{semantic: "valor_cobertura", physical: "valor_cobertura", kind: KindDecimal},
	{semantic: "dt_abertura_seguradora", physical: "dt_abertura_seguradora", kind: KindDate},
	{semantic: "dt_programacao_indenizacao", physical: "dt_programacao_indenizacao", kind: KindDate},

	{semantic: "valor_salvados_vendido", physical: "valor_salvados_vendido", kind: KindDecimal},
	{semantic: "responsavel_compra_salvados", physical: "responsavel_compra_salvados", kind: KindString},
	{semantic: "valor_venda_salvados", physical: "valor_venda_salvados", kind: KindDecimal},
	{semantic: "percentual_desconto_salvados", physical: "percentual_desconto_salvados", kind: KindDecimal},
	{semantic: "programacao_pagamento_salvados", physical: "programacao_pagamento_salvados", kind: KindString},

	{semantic: "setor_responsavel", physical: "setor_responsavel", kind: KindString},
	{semantic: "responsavel_interno", physical: "responsavel_interno", kind: KindString},
	{semantic: "data_liberacao", physical: "data_liberacao", kind: KindDate},
	{semantic: "observacoes_internas", physical: "observacoes_internas", kind: KindString},

	{semantic: "valor_sinistro_total", physical: "valor_sinistro_total", kind: KindDecimal},
	{semantic: "valor_indenizado_total", physical: "valor_indenizado_total", kind: KindDecimal},
	{semantic: "valor_uso_interno", physical: "valor_uso_interno", kind: KindDecimal},
	{semantic: "valor_liberado", physical: "valor_uso_interno", kind: KindDecimal, alias: true},
	{semantic: "valor_seguradora_total", physical: "valor_seguradora_total", kind: KindDecimal},
	{semantic: "valor_juridico_total", physical: "valor_juridico_total", kind: KindDecimal},
	{semantic: "valor_salvados", physical: "valor_salvados", kind: KindDecimal},

	{semantic: "criado_por", physical: "criado_por", kind: KindString},
	{semantic: "atualizado_por", physical: "atualizado_por", kind: KindString},
})

// mapLegado reproduces the eSinistros spreadsheet columns verbatim. Note the
// trailing spaces in "VALOR DO SINISTRO ", "TIPO DO PRODUTO " and "CÓD ":
// they exist in the table DDL and must not be trimmed.
var mapLegado = newMapping([]mapEntry{
	{semantic: "nota_fiscal", physical: "Nota Fiscal", kind: KindString},
	{semantic: "nr_conhecimento", physical: "Minu.Conh", kind: KindString},
	{semantic: "remetente", physical: "Remetente", kind: KindString},
	{semantic: "destinatario", physical: "Destinatário", kind: KindString},
	{semantic: "cliente", physical: "CLIENTE", kind: KindString},

	{semantic: "dt_coleta", physical: "Data Coleta", kind: KindDate},
	{semantic: "dt_prazo_entrega", physical: "Prazo Entrega", kind: KindDate},
	{semantic: "dt_entrega_real", physical: "Data Entrega", kind: KindDate},
	{semantic: "dt_agendamento", physical: "Data Agendamento", kind: KindDate},
	{semantic: "dt_ocorrencia", physical: "Data Ocorrência", kind: KindDate},
	{semantic: "dt_cadastro", physical: "Data Cadastro", kind: KindDate},
	{semantic: "hr_cadastro", physical: "Hora Cadastro", kind: KindString},
	{semantic: "dt_alteracao", physical: "Data Alteração", kind: KindDate},
	{semantic: "hr_alteracao", physical: "Hora Alteração", kind: KindString},
	{semantic: "data_sinistro", physical: "DATA DO SINISTRO", kind: KindDate},
	{semantic: "data_pagamento", physical: "DATA DE PAGAMENTO", kind: KindDate},
	{semantic: "data_indenizacao", physical: "DATA INDENIZAÇÃO", kind: KindDate},
	{semantic: "data_pagamento_venda", physical: "DATA DE PAGAMENTO VENDA", kind: KindDate},
	{semantic: "data_atualizacao_sinistro", physical: "DATA DA ATUALIZAÇÃO SINISTRO", kind: KindDate},

	{semantic: "tipo_ocorrencia", physical: "Ocorrência", kind: KindString},
	{semantic: "ocorrencia", physical: "Ocorrência", kind: KindString, alias: true},
	{semantic: "descricao_ocorrencia", physical: "Compl. Ocorrência", kind: KindString},
	{semantic: "compl_ocorrencia", physical: "Compl. Ocorrência", kind: KindString, alias: true},
	{semantic: "ultima_ocorrencia", physical: "ULTIMA OCORRENCIA", kind: KindString},
	{semantic: "descricao", physical: "DESCRIÇÃO", kind: KindString},

	{semantic: "referencia", physical: "REFERENCIA", kind: KindString},
	{semantic: "cod", physical: "CÓD ", kind: KindString},
	{semantic: "cod_rnc", physical: "CÓD RNC", kind: KindString},
	{semantic: "awb", physical: "AWB", kind: KindString},
	{semantic: "nd", physical: "ND", kind: KindString},

	{semantic: "valor_nota_fiscal", physical: "Valor Nota Fiscal", kind: KindDecimal},
	{semantic: "valor_frete", physical: "Valor Frete", kind: KindDecimal},
	{semantic: "valor_indenizacao", physical: "VALOR DO SINISTRO ", kind: KindDecimal},
	{semantic: "valor_sinistro", physical: "VALOR DO SINISTRO ", kind: KindDecimal, alias: true},
	{semantic: "valor_salvados", physical: "SALVADOS", kind: KindDecimal},
	{semantic: "salvados", physical: "SALVADOS", kind: KindDecimal, alias: true},
	{semantic: "valor_indenizado_total", physical: "INDENIZADOS", kind: KindDecimal},
	{semantic: "indenizados", physical: "INDENIZADOS", kind: KindDecimal, alias: true},
	{semantic: "devolucao", physical: "DEVOLUÇÃO", kind: KindDecimal},
	{semantic: "valor_uso_interno", physical: "USO INTERNO", kind: KindDecimal},
	{semantic: "uso_interno", physical: "USO INTERNO", kind: KindDecimal, alias: true},
	{semantic: "saldo_estoque", physical: "SALDO ESTOQUE", kind: KindDecimal},
	{semantic: "valor_juridico_total", physical: "JURIDICO", kind: KindDecimal},
	{semantic: "juridico", physical: "JURIDICO", kind: KindDecimal, alias: true},
	{semantic: "valor_seguradora_total", physical: "SEGURO", kind: KindDecimal},
	{semantic: "seguro", physical: "SEGURO", kind: KindDecimal, alias: true},
	{semantic: "prejuizo_total", physical: "PREJUÍZO", kind: KindDecimal},
	{semantic: "prejuizo", physical: "PREJUÍZO", kind: KindDecimal, alias: true},
	{semantic: "diferenca", physical: "DIFERENÇA", kind: KindDecimal},

	{semantic: "cidade_destino", physical: "Cidade Destino", kind: KindString},
	{semantic: "uf_destino", physical: "UF Destino", kind: KindString},
	{semantic: "filial_origem", physical: "FILIAL ORIGEM", kind: KindString},
	{semantic: "setor_responsavel", physical: "FILIAL ORIGEM", kind: KindString, alias: true},

	{semantic: "tipo_produto", physical: "TIPO DO PRODUTO ", kind: KindString},
	{semantic: "qnt_produtos", physical: "QNT PRODUTOS", kind: KindInt},
	{semantic: "responsavel_avaria", physical: "RESPONSÁVEL PELA AVARIA", kind: KindString},

	{semantic: "modal", physical: "MODAL", kind: KindString},
	{semantic: "tipo", physical: "TIPO", kind: KindString},
	{semantic: "cia", physical: "CIA", kind: KindString},
	{semantic: "mes", physical: "MÊS", kind: KindInt},
	{semantic: "ano", physical: "ANO", kind: KindInt},

	{semantic: "pagamento", physical: "PAGAMENTO", kind: KindString},
	{semantic: "venda", physical: "VENDA", kind: KindString},
	{semantic: "status_carga_retorno", physical: "STATUS CARGA RETORNO", kind: KindString},
	{semantic: "status_geral", physical: "STATUS SINISTRO", kind: KindString},
	{semantic: "status_sinistro", physical: "STATUS SINISTRO", kind: KindString, alias: true},
	{semantic: "status_pagamento", physical: "STATUS PAGAMENTO", kind: KindString},
	{semantic: "status_indenizacao", physical: "STATUS", kind: KindString},

	{semantic: "rnc_retornado", physical: "RNC RETORNADO?", kind: KindBool},
	{semantic: "validacao", physical: "VALIDAÇÃO", kind: KindString},
	{semantic: "concluido", physical: "CONCLUÍDO?", kind: KindBool},
	{semantic: "vendido", physical: "VENDIDO?", kind: KindBool},
	{semantic: "acionamento_juridico", physical: "JURÍDICO ACIONADO?", kind: KindBool},
	{semantic: "juridico_acionado", physical: "JURÍDICO ACIONADO?", kind: KindBool, alias: true},
	{semantic: "acionamento_seguradora", physical: "SEGURO ACIONADO?", kind: KindBool},
	{semantic: "seguro_acionado", physical: "SEGURO ACIONADO?", kind: KindBool, alias: true},

	{semantic: "programacao_pagamento", physical: "PROGRAMAÇÃO DE PAGAMENTO", kind: KindString},
	{semantic: "programacao_indenizacao", physical: "PROGRAMAÇÃO INDENIZAÇÃO", kind: KindString},
	{semantic: "quantidade_parcelas_indenizacao", physical: "QUANTIDADE DE PARCELAS INDENIZAÇÃO", kind: KindInt},
	{semantic: "primeira_parcela_indenizacao", physical: "PRIMEIRA PARCELA INDENIZAÇÃO", kind: KindDate},
	{semantic: "ultima_parcela_indenizacao", physical: "ULTIMA PARCELA INDENIZAÇÃO", kind: KindDate},
	{semantic: "quantidade_parcelas_venda", physical: "QUANTIDADE DE PARCELAS DA VENDA", kind: KindInt},
	{semantic: "primeira_parcela_venda", physical: "PRIMEIRA PARCELA DE VENDA", kind: KindDate},
	{semantic: "ultima_parcela_venda", physical: "ULTIMA PARCELA DE VENDA", kind: KindDate},
	{semantic: "justificativa_prejuizo", physical: "JUSTIFICATIVA DE PREJUÍZO BR", kind: KindString},
})

// mapOrigem covers the read-only analytical view. Write direction is never
// used against this variant.
var mapOrigem = newMapping([]mapEntry{
	{semantic: "nota_fiscal", physical: "Nota Fiscal", kind: KindString},
	{semantic: "nr_conhecimento", physical: "Minu.Conh", kind: KindString},
	{semantic: "remetente", physical: "Remetente", kind: KindString},
	{semantic: "destinatario", physical: "Destinatário", kind: KindString},
	{semantic: "dt_coleta", physical: "Data Coleta", kind: KindDate},
	{semantic: "dt_prazo_entrega", physical: "Prazo Entrega", kind: KindDate},
	{semantic: "dt_entrega_real", physical: "Data Entrega", kind: KindDate},
	{semantic: "dt_agendamento", physical: "Data Agendamento", kind: KindDate},
	{semantic: "dt_ocorrencia", physical: "Data Ocorrência", kind: KindDate},
	{semantic: "dt_cadastro", physical: "Data Cadastro", kind: KindDate},
	{semantic: "hr_cadastro", physical: "Hora Cadastro", kind: KindString},
	{semantic: "dt_alteracao", physical: "Data Alteração", kind: KindDate},
	{semantic: "hr_alteracao", physical: "Hora Alteração", kind: KindString},
	{semantic: "tipo_ocorrencia", physical: "Ocorrência", kind: KindString},
	{semantic: "descricao_ocorrencia", physical: "Compl. Ocorrência", kind: KindString},
	{semantic: "ultima_ocorrencia", physical: "ULTIMA OCORRENCIA", kind: KindString},
	{semantic: "referencia", physical: "REFERENCIA", kind: KindString},
})
