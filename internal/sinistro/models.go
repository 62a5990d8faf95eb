package sinistro

import (
	"time"
)

// Sinistro is the canonical claim record, one row per shipment claim.
// The json tags are the semantic field vocabulary shared by every schema
// variant; the db tags match the normalized sinistros table.
type Sinistro struct {
	ID             int64   `db:"id" json:"id"`
	NotaFiscal     string  `db:"nota_fiscal" json:"nota_fiscal"`
	NrConhecimento *string `db:"nr_conhecimento" json:"nr_conhecimento,omitempty"`
	NumeroSinistro string  `db:"numero_sinistro" json:"numero_sinistro,omitempty"`

	// Shipment facts, sourced from the logistics database.
	Remetente           string     `db:"remetente" json:"remetente,omitempty"`
	Destinatario        string     `db:"destinatario" json:"destinatario,omitempty"`
	Cliente             string     `db:"cliente" json:"cliente,omitempty"`
	Modal               string     `db:"modal" json:"modal,omitempty"`
	DtColeta            *time.Time `db:"dt_coleta" json:"dt_coleta,omitempty"`
	DtPrazoEntrega      *time.Time `db:"dt_prazo_entrega" json:"dt_prazo_entrega,omitempty"`
	DtEntregaReal       *time.Time `db:"dt_entrega_real" json:"dt_entrega_real,omitempty"`
	DtAgendamento       *time.Time `db:"dt_agendamento" json:"dt_agendamento,omitempty"`
	DtOcorrencia        *time.Time `db:"dt_ocorrencia" json:"dt_ocorrencia,omitempty"`
	DtCadastro          *time.Time `db:"dt_cadastro" json:"dt_cadastro,omitempty"`
	HrCadastro          string     `db:"hr_cadastro" json:"hr_cadastro,omitempty"`
	DtAlteracao         *time.Time `db:"dt_alteracao" json:"dt_alteracao,omitempty"`
	HrAlteracao         string     `db:"hr_alteracao" json:"hr_alteracao,omitempty"`
	TipoOcorrencia      string     `db:"tipo_ocorrencia" json:"tipo_ocorrencia,omitempty"`
	DescricaoOcorrencia string     `db:"descricao_ocorrencia" json:"descricao_ocorrencia,omitempty"`
	UltimaOcorrencia    string     `db:"ultima_ocorrencia" json:"ultima_ocorrencia,omitempty"`
	Referencia          string     `db:"referencia" json:"referencia,omitempty"`

	// Pagamento (nota de débito).
	StatusPagamento      string     `db:"status_pagamento" json:"status_pagamento"`
	NumeroND             string     `db:"numero_nd" json:"numero_nd,omitempty"`
	DtVencimentoND       *time.Time `db:"data_vencimento_nd" json:"data_vencimento_nd,omitempty"`
	ObservacoesPagamento string     `db:"observacoes_pagamento" json:"observacoes_pagamento,omitempty"`

	// Indenização. The payment schedule lives in the child table.
	StatusIndenizacao      string  `db:"status_indenizacao" json:"status_indenizacao"`
	ValorIndenizacao       float64 `db:"valor_indenizacao" json:"valor_indenizacao"`
	ObservacoesIndenizacao string  `db:"observacoes_indenizacao" json:"observacoes_indenizacao,omitempty"`
	ResponsavelAvaria      string  `db:"responsavel_avaria" json:"responsavel_avaria,omitempty"`

	// Jurídico.
	AcionamentoJuridico bool       `db:"acionamento_juridico" json:"acionamento_juridico"`
	StatusJuridico      string     `db:"status_juridico" json:"status_juridico"`
	NumeroProcesso      string     `db:"numero_processo" json:"numero_processo,omitempty"`
	EscritorioAdvocacia string     `db:"escritorio_advocacia" json:"escritorio_advocacia,omitempty"`
	ValorCausaJuridica  float64    `db:"valor_causa_juridica" json:"valor_causa_juridica"`
	DtAberturaJuridico  *time.Time `db:"dt_abertura_juridico" json:"dt_abertura_juridico,omitempty"`

	// Seguradora.
	AcionamentoSeguradora    bool       `db:"acionamento_seguradora" json:"acionamento_seguradora"`
	StatusSeguradora         string     `db:"status_seguradora" json:"status_seguradora"`
	NomeSeguradora           string     `db:"nome_seguradora" json:"nome_seguradora,omitempty"`
	NumeroSinistroSeguradora string     `db:"numero_sinistro_seguradora" json:"numero_sinistro_seguradora,omitempty"`
	ValorCobertura           float64    `db:"valor_cobertura" json:"valor_cobertura"`
	DtAberturaSeguradora     *time.Time `db:"dt_abertura_seguradora" json:"dt_abertura_seguradora,omitempty"`
	DtProgramacaoIndenizacao *time.Time `db:"dt_programacao_indenizacao" json:"dt_programacao_indenizacao,omitempty"`

	// Salvados.
	ValorSalvadosVendido         float64 `db:"valor_salvados_vendido" json:"valor_salvados_vendido"`
	ResponsavelCompraSalvados    string  `db:"responsavel_compra_salvados" json:"responsavel_compra_salvados,omitempty"`
	ValorVendaSalvados           float64 `db:"valor_venda_salvados" json:"valor_venda_salvados"`
	PercentualDescontoSalvados   float64 `db:"percentual_desconto_salvados" json:"percentual_desconto_salvados"`
	ProgramacaoPagamentoSalvados string  `db:"programacao_pagamento_salvados" json:"programacao_pagamento_salvados,omitempty"`

	// Uso interno.
	SetorResponsavel    string     `db:"setor_responsavel" json:"setor_responsavel,omitempty"`
	ResponsavelInterno  string     `db:"responsavel_interno" json:"responsavel_interno,omitempty"`
	DtLiberacao         *time.Time `db:"data_liberacao" json:"data_liberacao,omitempty"`
	ObservacoesInternas string     `db:"observacoes_internas" json:"observacoes_internas,omitempty"`

	// Valores consolidados (buckets) and derived state.
	ValorSinistroTotal   float64 `db:"valor_sinistro_total" json:"valor_sinistro_total"`
	ValorIndenizadoTotal float64 `db:"valor_indenizado_total" json:"valor_indenizado_total"`
	ValorUsoInterno      float64 `db:"valor_uso_interno" json:"valor_uso_interno"`
	ValorSeguradoraTotal float64 `db:"valor_seguradora_total" json:"valor_seguradora_total"`
	ValorJuridicoTotal   float64 `db:"valor_juridico_total" json:"valor_juridico_total"`
	ValorSalvados        float64 `db:"valor_salvados" json:"valor_salvados"`
	PrejuizoTotal        float64 `db:"prejuizo_total" json:"prejuizo_total"`
	StatusGeral          string  `db:"status_geral" json:"status_geral"`

	// Auditoria.
	CriadoEm      time.Time `db:"criado_em" json:"criado_em"`
	CriadoPor     string    `db:"criado_por" json:"criado_por,omitempty"`
	AtualizadoEm  time.Time `db:"atualizado_em" json:"atualizado_em"`
	AtualizadoPor string    `db:"atualizado_por" json:"atualizado_por,omitempty"`

	Programacao []ProgramacaoPagamento `db:"-" json:"programacao_pagamento,omitempty"`
}

// ProgramacaoPagamento is one scheduled indemnification installment.
// Dates are kept as YYYY-MM-DD strings, matching the frontend contract.
type ProgramacaoPagamento struct {
	ID              int64     `db:"id" json:"id"`
	SinistroID      int64     `db:"sinistro_id" json:"sinistro_id"`
	Ordem           int       `db:"ordem" json:"ordem"`
	DataPagamento   string    `db:"data_pagamento" json:"data"`
	ValorPagamento  float64   `db:"valor_pagamento" json:"valor"`
	DocumentoESL    string    `db:"documento_esl" json:"doctoESL"`
	Pago            bool      `db:"pago" json:"pago"`
	DtPagamentoReal string    `db:"dt_pagamento_real" json:"dt_pagamento_real,omitempty"`
	CriadoEm        time.Time `db:"criado_em" json:"criado_em,omitempty"`
	AtualizadoEm    time.Time `db:"atualizado_em" json:"atualizado_em,omitempty"`
}

// ItemProgramacao is the inbound wire form of a schedule entry. Valor is a
// string because the legacy frontend sends comma decimals.
type ItemProgramacao struct {
	Data     string `json:"data"`
	Valor    string `json:"valor"`
	DoctoESL string `json:"doctoESL"`
}

// Vazio reports whether every field of the entry is empty. All-empty rows
// are skipped on replace-all instead of persisted.
func (i ItemProgramacao) Vazio() bool {
	return i.Data == "" && i.Valor == "" && i.DoctoESL == ""
}

// Filtro narrows claim listings.
type Filtro struct {
	NotaFiscal         string
	StatusGeral        string
	Cliente            string
	SetorResponsavel   string
	DtOcorrenciaInicio *time.Time
	DtOcorrenciaFim    *time.Time
	Skip               int
	Limit              int
}

// Estatisticas is the consolidated dashboard summary.
type Estatisticas struct {
	TotalSinistros         int64   `db:"total_sinistros" json:"total_sinistros"`
	NaoIniciados           int64   `db:"nao_iniciados" json:"nao_iniciados"`
	EmAndamento            int64   `db:"em_andamento" json:"em_andamento"`
	Concluidos             int64   `db:"concluidos" json:"concluidos"`
	ValorTotalSinistros    float64 `db:"valor_total_sinistros" json:"valor_total_sinistros"`
	ValorTotalIndenizacoes float64 `db:"valor_total_indenizacoes" json:"valor_total_indenizacoes"`
	ValorTotalPrejuizo     float64 `db:"valor_total_prejuizo" json:"valor_total_prejuizo"`
	AcionamentosJuridicos  int64   `db:"acionamentos_juridicos" json:"acionamentos_juridicos"`
	AcionamentosSeguradora int64   `db:"acionamentos_seguradora" json:"acionamentos_seguradora"`
}

// DetalheLote records the outcome of one claim inside a batch sync.
type DetalheLote struct {
	NotaFiscal     string `json:"nota_fiscal"`
	NrConhecimento string `json:"nr_conhecimento,omitempty"`
	Acao           string `json:"acao"`
	Sucesso        bool   `json:"sucesso"`
	Erro           string `json:"erro,omitempty"`
}

// ResultadoLote summarizes a batch sync from the source database.
type ResultadoLote struct {
	TotalProcessados int           `json:"total_processados"`
	Criados          int           `json:"criados"`
	Atualizados      int           `json:"atualizados"`
	Erros            int           `json:"erros"`
	Detalhes         []DetalheLote `json:"detalhes"`
}
