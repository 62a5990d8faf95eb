package sinistro

// Recompute refreshes the derived fields of a claim from its own state:
// prejuizo_total from the value buckets and status_geral from the
// sub-process statuses. It must run after every mutation that touches a
// contributing field; a direct sub-status write that skips it leaves
// status_geral stale.
func Recompute(s *Sinistro) {
	s.PrejuizoTotal = s.ValorIndenizadoTotal +
		s.ValorUsoInterno +
		s.ValorSeguradoraTotal +
		s.ValorJuridicoTotal -
		s.ValorSalvados

	s.StatusGeral = statusGeral(s)
}

// statusGeral evaluates the precedence rules: Concluído wins over
// Em andamento, which wins over the Não iniciado default.
func statusGeral(s *Sinistro) string {
	juridicoResolvido := !s.AcionamentoJuridico || s.StatusJuridico == StatusJuridicoIndenizado
	seguradoraResolvida := !s.AcionamentoSeguradora || s.StatusSeguradora == StatusSeguradoraIndenizado

	if s.StatusPagamento == StatusPagamentoPago &&
		s.StatusIndenizacao == StatusIndenizacaoPago &&
		juridicoResolvido && seguradoraResolvida {
		return StatusGeralConcluido
	}

	if s.AcionamentoJuridico || s.AcionamentoSeguradora ||
		s.StatusPagamento != StatusPagamentoAguardandoND ||
		s.StatusIndenizacao != StatusIndenizacaoPendente {
		return StatusGeralEmAndamento
	}

	return StatusGeralNaoIniciado
}
