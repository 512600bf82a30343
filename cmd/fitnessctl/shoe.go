package main

import (
	"fmt"
	"io"

	"github.com/eswan18/fitness-api-sub000/internal/agg"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/shoes"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var shoeCmd = &cobra.Command{
	Use:   "shoe <name or id>",
	Short: "Print the total mileage of one shoe",
	Long: `Print the total mileage of one shoe. The shoe can be given by id or by its display
name, e.g. "Nike Pegasus 38" resolves to nike_pegasus_38.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, service, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		shoe, err := shoes.NewRepo(pool).Get(cmd.Context(), shoes.GenerateID(args[0]))
		if err != nil {
			return err
		}
		all, err := service.List(cmd.Context(), runs.ListParams{})
		if err != nil {
			return err
		}

		var mileage float64
		if totals := agg.MileageByShoes(all, []shoes.Shoe{*shoe}, true); len(totals) == 1 {
			mileage = totals[0].Mileage
		}
		printShoe(cmd.OutOrStdout(), *shoe, mileage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shoeCmd)
}

func printShoe(w io.Writer, shoe shoes.Shoe, mileage float64) {
	fmt.Fprintf(w, "%s (%s): %.2f mi", shoe.Name, shoe.ID, mileage)
	if shoe.IsRetired() {
		fmt.Fprint(w, color.YellowString(" retired %s", timezone.FormatDate(*shoe.RetiredAt)))
	}
	fmt.Fprintln(w)
}
