package advice

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const genericPrompt = "Provide general financial advice in 2 sentences to help someone manage their personal finances more effectively."

const documentPrompt = "The attached PDF document contains financial information of the user. " +
	"Based on it, provide detailed financial advice in 2 sentences to help the user manage their finances more effectively."

func (a *Advisor) snapshotPrompt(s Snapshot) string {
	var b strings.Builder

	b.WriteString("Based on the following financial data:\n")
	b.WriteString("- Total Budget: " + a.format(s.TotalBudget) + "\n")
	b.WriteString("- Expenses: " + a.format(s.TotalSpend) + "\n")
	b.WriteString("- Incomes: " + a.format(s.TotalIncome) + "\n")
	b.WriteString("Provide detailed financial advice in 2 sentences to help the user manage their finances more effectively.")

	if query := strings.TrimSpace(s.Query); query != "" {
		b.WriteString("\nThe user asks: " + query)
	}

	return b.String()
}

// format formats an amount in the currency of the Advisor.
func (a *Advisor) format(amount decimal.Decimal) string {
	return a.printer.Sprint(currency.ISO(a.currency.Amount(amount.InexactFloat64())))
}
