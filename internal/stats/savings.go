package stats

import (
	"fmt"
	"math"
)

// Savings is the money not spent on the tracked behavior during the current streak.
type Savings struct {
	Amount  float64 `json:"amount"`
	Total   string  `json:"total"` // Amount with two decimals
	Days    int     `json:"days"`
	Visible bool    `json:"visible"` // false when no daily cost is set
}

// ComputeSavings multiplies dailyCost by streak, rounded to cents.
func ComputeSavings(dailyCost float64, streak int) Savings {
	if dailyCost <= 0 || math.IsNaN(dailyCost) || math.IsInf(dailyCost, 0) {
		return Savings{Total: "0.00", Days: streak}
	}
	amount := math.Round(dailyCost*float64(streak)*100) / 100
	return Savings{
		Amount:  amount,
		Total:   fmt.Sprintf("%.2f", amount),
		Days:    streak,
		Visible: true,
	}
}

var savingsExamples = []struct {
	min  float64
	text string
}{
	{10, "📚 2 books"},
	{20, "🍕 2 pizzas"},
	{30, "🎬 3 movie tickets"},
	{50, "👕 A new t-shirt"},
	{100, "🎮 A video game"},
	{200, "📱 A tech gadget"},
	{500, "✈️ A weekend away"},
}

// SavingsFallback is shown when total does not buy anything yet.
const SavingsFallback = "Keep saving! 💰"

// SavingsExamples returns up to three of the most expensive things total could buy.
func SavingsExamples(total float64) []string {
	var earned []string
	for _, ex := range savingsExamples {
		if total >= ex.min {
			earned = append(earned, ex.text)
		}
	}
	if len(earned) == 0 {
		return []string{SavingsFallback}
	}
	if len(earned) > 3 {
		earned = earned[len(earned)-3:]
	}
	return earned
}
