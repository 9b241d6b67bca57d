package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mealbadge/mealbadge-go/internal/adminlist"
)

func newCheckInCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Perform the daily check-in for points",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Gateway.CheckIn(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Checked in: +%d points (total %d)\n", result.AwardedPoints, result.TotalPoints)
			return nil
		},
	}
}

func newUploadCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <photo>",
		Short: "Upload a meal photo for classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open photo: %w", err)
			}
			defer file.Close()

			result, err := app.Gateway.UploadMealPhoto(cmd.Context(), args[0], file)
			if err != nil {
				return err
			}
			cmd.Printf("Classified as %s: +%d points\n", result.Classification, result.AwardedPoints)
			return nil
		},
	}
}

func newShopCommand(app *App) *cobra.Command {
	shop := &cobra.Command{
		Use:   "shop",
		Short: "Browse the points shop and exchange points",
	}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List shop products",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Gateway.ListShopProducts(cmd.Context(), page, adminlist.MemberPageSize)
			if err != nil {
				return err
			}
			for _, product := range result.Items {
				cmd.Printf("%d\t%s\t%d points\t(stock %d)\n", product.ID, product.Name, product.Price, product.Stock)
			}
			cmd.Printf("Page %d of %d (%d products)\n", result.Page, result.TotalPages, result.TotalElements)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page to display")

	exchange := &cobra.Command{
		Use:   "exchange <product-id>",
		Short: "Exchange points for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var productID int64
			if _, err := fmt.Sscan(args[0], &productID); err != nil {
				return fmt.Errorf("invalid product id: %w", err)
			}

			result, err := app.Gateway.ExchangeProduct(cmd.Context(), productID)
			if err != nil {
				return err
			}
			cmd.Printf("Exchanged. Remaining points: %d\n", result.RemainingPoints)
			return nil
		},
	}

	shop.AddCommand(list, exchange)
	return shop
}
