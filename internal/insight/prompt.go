package insight

import (
	"fmt"
	"strings"

	"driversdash/internal/core"
)

// MinEntries is the minimum number of entries before the provider is worth
// contacting at all.
const MinEntries = 5

// maxPromptEntries bounds the prompt size; only the most recent entries go out.
const maxPromptEntries = 100

const InsufficientDataMessage = "Dados insuficientes para gerar insights. Adicione pelo menos 5 lançamentos (ganhos e despesas) para uma análise mais precisa."

const FallbackMessage = "Ocorreu um erro ao tentar gerar os insights. Por favor, tente novamente mais tarde."

const systemInstruction = `Você é um consultor financeiro especialista para motoristas de aplicativo.
Analise os seguintes dados de um motorista e forneça insights e dicas práticas para otimizar os ganhos e reduzir despesas.
Seja conciso, use tópicos (bullet points) e foque em conselhos acionáveis.
A resposta deve ser em português do Brasil.`

// FormatEntry renders one entry as a single prompt line.
func FormatEntry(e core.Entry) string {
	switch e.Type {
	case core.EntryEarning:
		return fmt.Sprintf("Ganho: %s, Categoria: %s, Valor: %s", e.Date, e.Category, e.Amount.BRL())
	case core.EntryExpense:
		desc := e.Description
		if desc == "" {
			desc = "N/A"
		}
		return fmt.Sprintf("Despesa: %s, Categoria: %s, Valor: %s, Desc: %s", e.Date, e.Category, e.Amount.BRL(), desc)
	case core.EntryShift:
		return fmt.Sprintf("Jornada: %s, Duração: %d minutos", e.Date, e.DurationMinutes)
	default:
		return ""
	}
}

// BuildUserPrompt lists the most recent entries (the input is already
// most-recent-first) followed by the four analysis instructions.
func BuildUserPrompt(entries []core.Entry) string {
	if len(entries) > maxPromptEntries {
		entries = entries[:maxPromptEntries]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if line := FormatEntry(e); line != "" {
			lines = append(lines, line)
		}
	}

	var b strings.Builder
	b.WriteString("Dados do Motorista:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nBaseado nesses dados, forneça:\n")
	b.WriteString("1. Uma breve análise geral do desempenho financeiro.\n")
	b.WriteString("2. Identificação das maiores fontes de ganho e despesa.\n")
	b.WriteString("3. Dicas para aumentar a lucratividade (melhores horários, estratégias, etc.).\n")
	b.WriteString("4. Sugestões para reduzir os custos principais (combustível, manutenção, etc.).")
	return b.String()
}
