package model

import (
	"github.com/shopspring/decimal"

	money "github.com/rezonia/project-quoter/internal/decimal"
)

// Working assumptions for duration estimates
const (
	HoursPerWeek  = 40
	WeeksPerMonth = 4
)

// ComputeTotals aggregates hours and prices over all features and over the
// selected subset. Rounding happens once, after summation.
func ComputeTotals(sections []Section) Totals {
	var hours, prices, selectedHours, selectedPrices []decimal.Decimal

	for _, section := range sections {
		for _, category := range section.Categories {
			for _, f := range category.Features {
				h := money.FromFloat(f.Hours)
				p := money.FromFloat(f.Price)

				hours = append(hours, h)
				prices = append(prices, p)

				if f.Selected {
					selectedHours = append(selectedHours, h)
					selectedPrices = append(selectedPrices, p)
				}
			}
		}
	}

	return Totals{
		TotalHours:    money.RoundWhole(money.Sum(hours)),
		TotalPrice:    money.RoundWhole(money.Sum(prices)),
		SelectedHours: money.RoundWhole(money.Sum(selectedHours)),
		SelectedPrice: money.RoundWhole(money.Sum(selectedPrices)),
	}
}

// Duration estimates calendar effort for a number of hours
func Duration(hours int64) (weeks, months int64) {
	weeks = money.CeilDiv(hours, HoursPerWeek)
	months = money.CeilDiv(weeks, WeeksPerMonth)
	return weeks, months
}
