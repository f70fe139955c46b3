package cmd

import (
	"github.com/kellyworkos00-droid/fairm/configs"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, products and reference listings",
	Long: `Load the demo dataset: a PREMIUM farmer (farmer@example.com) with four
products, a FREE buyer (buyer@example.com), agrovets, events and market
prices. Both accounts use the password "password123". Safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := configs.Migrate(rt.db); err != nil {
			return err
		}
		return configs.SeedDemo(rt.db, rt.log)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
