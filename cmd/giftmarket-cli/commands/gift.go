package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"giftmarket-backend/lib/serviceutil"
	"giftmarket-backend/services/gift"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(giftCmd)
}

func attributeRow(label string, attr *gift.Attribute) table.Row {
	if attr == nil {
		return table.Row{label, "-", "-"}
	}
	return table.Row{label, attr.Name, attr.Value}
}

var giftCmd = &cobra.Command{
	Use:   "gift <slug>",
	Short: "Fetches the attribute table of a single gift by slug.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		service := gift.NewService(gift.Config{})
		details, err := service.Details(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch gift details", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Attribute", "Name", "Value"})
		t.AppendRow(attributeRow("Model", details.Model))
		t.AppendRow(attributeRow("Backdrop", details.Backdrop))
		t.AppendRow(attributeRow("Symbol", details.Symbol))
		if details.Owner != nil {
			t.AppendRow(table.Row{"Owner", details.Owner.Name, details.Owner.Link})
		}
		t.Render()

		if details.Signature != "" {
			fmt.Println(details.Signature)
		}
	},
}
