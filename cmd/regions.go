package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nemtools/bessim/config"
	"github.com/nemtools/bessim/infra/logger"
	"github.com/nemtools/bessim/infra/store"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions available in the organized data store",
	RunE:  listRegions,
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

func listRegions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := store.New(cfg.Data.Dir, logger.NopLogger{})
	if err != nil {
		return err
	}
	summary, err := st.Summary()
	if err != nil {
		return err
	}
	regions := make([]string, 0, len(summary))
	for r := range summary {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, r := range regions {
		info := summary[r]
		cmd.Printf("%s: %d rows, %s to %s, mean price %.2f AUD/MWh\n",
			r, info.Rows,
			info.From.Format(time.DateOnly), info.To.Format(time.DateOnly),
			info.MeanPrice)
	}
	return nil
}
