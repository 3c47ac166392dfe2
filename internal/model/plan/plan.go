package plan

import "fmt"

// Plan is one purchasable offer shown on the pricing page. Price is in BRL.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Recurring   bool     `json:"recurring"`
}

// PriceLabel formats the price the way the pricing cards show it.
func (p Plan) PriceLabel() string {
	label := fmt.Sprintf("R$ %.2f", p.Price)
	if p.Recurring {
		label += "/mês"
	}
	return label
}

// Seed provides the catalog sold through the hosted checkout.
func Seed() []Plan {
	return []Plan{
		{
			ID:          "teste_unico",
			Name:        "DISC YOU - Avaliação Completa",
			Price:       249,
			Description: "Teste único com relatório completo",
			Features: []string{
				"Teste DISC completo",
				"Relatório 10 páginas",
				"Análise comportamental",
				"Plano de ação",
				"Acesso único",
			},
			Recurring: false,
		},
		{
			ID:          "starter",
			Name:        "DISC YOU - Starter",
			Price:       49.9,
			Description: "Plano mensal básico",
			Features: []string{
				"Testes ilimitados",
				"1.000 mensagens IA/mês",
				"Histórico 30 dias",
				"Suporte por email",
				"Sem anúncios",
			},
			Recurring: true,
		},
		{
			ID:          "professional",
			Name:        "DISC YOU - Professional",
			Price:       99.9,
			Description: "Plano mensal profissional",
			Features: []string{
				"Testes ilimitados",
				"5.000 mensagens IA/mês",
				"Histórico 90 dias",
				"Suporte email + chat",
				"Sem anúncios",
				"API básico",
			},
			Recurring: true,
		},
		{
			ID:          "premium",
			Name:        "DISC YOU - Premium",
			Price:       199.9,
			Description: "Plano mensal premium",
			Features: []string{
				"Testes ilimitados",
				"20.000 mensagens IA/mês",
				"Histórico 180 dias",
				"Suporte 24/7",
				"Sem anúncios",
				"API profissional",
				"Análise avançada",
			},
			Recurring: true,
		},
	}
}
