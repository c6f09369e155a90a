// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/model"
	"github.com/nestapp/nest-tui/internal/util"
)

// HandleExpenses prints the caller's expense list as a table.
func HandleExpenses(args Args) error {
	stack, err := BuildStack(args)
	if err != nil {
		return err
	}

	expenses, err := stack.REST.ListExpenses(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "Failed to load expenses"))
	}

	if len(expenses) == 0 {
		fmt.Println("No expenses yet.")
		return nil
	}

	sum := model.Summarize(expenses)
	if !args.Quiet {
		fmt.Printf("Unpaid total: %s (%d open, %d settled)\n\n",
			util.FormatAmount(sum.UnpaidTotal), sum.UnpaidCount, sum.PaidCount)
	}

	for _, e := range expenses {
		status := "open"
		if e.Paid {
			status = "paid"
		}
		fmt.Printf("%-6s %-30s %12s  %s\n",
			status,
			util.TruncateWidth(e.Title, 30),
			util.FormatAmountString(e.Amount),
			e.Group)
	}
	return nil
}
