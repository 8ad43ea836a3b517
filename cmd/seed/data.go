package main

import (
	"fmt"
	"math/rand"
	"time"

	"bookinventory/internal/book"
	"bookinventory/internal/entity"
	"bookinventory/internal/todo"

	"github.com/shopspring/decimal"
)

var sampleTitles = []string{
	"The Left Hand of Darkness", "Dune", "Middlemarch", "Beloved", "Neuromancer",
	"The Remains of the Day", "Gilead", "Kindred", "Possession", "Pale Fire",
}

var sampleTasks = []string{
	"Photograph new stock", "List books on marketplace", "Reprice slow movers",
	"Ship pending orders", "Visit estate sale", "Reconcile payouts",
}

// generateBooks builds n books purchased within the last year. Roughly half
// are sold; sold copies get a payout and the matching profit.
func generateBooks(rng *rand.Rand, n int, now time.Time) []book.Book {
	out := make([]book.Book, 0, n)
	for i := 0; i < n; i++ {
		cogs := decimal.New(int64(50+rng.Intn(1500)), -2)
		purchased := entity.NewDate(now.AddDate(0, 0, -rng.Intn(365)))
		title := sampleTitles[rng.Intn(len(sampleTitles))]

		b := book.Book{
			ISBN:          fmt.Sprintf("978%010d", rng.Int63n(1e10)),
			Cogs:          decimal.NewNullDecimal(cogs),
			DatePurchased: &purchased,
			Title:         &title,
		}

		if rng.Intn(2) == 0 {
			sold := entity.NewDate(purchased.AddDate(0, 0, rng.Intn(60)))
			payout := cogs.Add(decimal.New(int64(rng.Intn(3000)), -2))
			b.Sold = &sold
			b.Payout = decimal.NewNullDecimal(payout)
			b.Profit = decimal.NewNullDecimal(payout.Sub(cogs))
		}
		out = append(out, b)
	}
	return out
}

func generateTodos(rng *rand.Rand, n int, now time.Time) []todo.Todo {
	out := make([]todo.Todo, 0, n)
	for i := 0; i < n; i++ {
		t := todo.Todo{
			Title:       sampleTasks[rng.Intn(len(sampleTasks))],
			Description: fmt.Sprintf("sample task #%d", i+1),
			Completed:   rng.Intn(3) == 0,
		}
		if rng.Intn(2) == 0 {
			due := entity.NewDate(now.AddDate(0, 0, rng.Intn(30)))
			t.DueDate = &due
		}
		out = append(out, t)
	}
	return out
}
