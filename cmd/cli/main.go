package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"chartscout/adapters/sqldb"
	"chartscout/adapters/tabular"
	"chartscout/app"
	"chartscout/domain/chart"
	"chartscout/domain/column"
	"chartscout/internal"
	"chartscout/internal/config"
	"chartscout/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "chartscout",
		Short: "Inspect tabular datasets and recommend chart types",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSuggestCmd(),
		newValidateCmd(),
		newChartsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() (*app.AnalysisService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewAnalysisService(cfg, internal.NewDefaultLogger()), nil
}

// newReader picks a dataset source: a file path, or a database table
// when --table is set (DSN from --dsn or DATABASE_URL).
func newReader(source, dsn, table string) (ports.DatasetReader, error) {
	if table != "" {
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		return sqldb.NewTableReader("postgres", dsn, table)
	}
	return tabular.NewFileReader(source)
}

func loadDataset(ctx context.Context, source, dsn, table string) (*column.Dataset, error) {
	reader, err := newReader(source, dsn, table)
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	return reader.Read(ctx)
}

func newAnalyzeCmd() *cobra.Command {
	var dsn, table string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Detect column types and print per-column statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) > 0 {
				source = args[0]
			}
			ds, err := loadDataset(cmd.Context(), source, dsn, table)
			if err != nil {
				return err
			}
			service, err := newService()
			if err != nil {
				return err
			}
			analysis, err := service.AnalyzeDataset(cmd.Context(), ds)
			if err != nil {
				return err
			}
			return printJSON(analysis)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&table, "table", "", "database table to load instead of a file")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	var dsn, table string
	var columns []string

	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Rank chart types for selected columns (or the whole dataset)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) > 0 {
				source = args[0]
			}
			ds, err := loadDataset(cmd.Context(), source, dsn, table)
			if err != nil {
				return err
			}
			service, err := newService()
			if err != nil {
				return err
			}

			var suggestions []chart.Suggestion
			if len(columns) == 0 {
				suggestions, err = service.SuggestForDataset(cmd.Context(), ds)
			} else {
				suggestions, err = service.SuggestForSelection(ds, columns)
			}
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Println("no chart suggestions for this selection")
				return nil
			}
			for i, sug := range suggestions {
				fmt.Printf("%2d. %-24s score %.2f\n", i+1, sug.Spec.Type, sug.Score)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "selected columns, in order (1 or 2)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&table, "table", "", "database table to load instead of a file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var dsn, table string
	var columns []string

	cmd := &cobra.Command{
		Use:   "validate [file] [chart-type]",
		Short: "Check a chart choice against the compatibility registry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), args[0], dsn, table)
			if err != nil {
				return err
			}
			service, err := newService()
			if err != nil {
				return err
			}
			if err := service.ValidateChoice(ds, args[1], columns); err != nil {
				return err
			}
			fmt.Printf("%s is compatible with columns %s\n", args[1], strings.Join(columns, ", "))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "selected columns, in order (1 or 2)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&table, "table", "", "database table to load instead of a file")
	return cmd
}

func newChartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "List the chart catalog with arity and accepted types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, spec := range chart.Entries() {
				var combos []string
				for _, combo := range spec.Combos {
					var slots []string
					for _, slot := range combo {
						var types []string
						for _, t := range slot {
							types = append(types, string(t))
						}
						slots = append(slots, "{"+strings.Join(types, "|")+"}")
					}
					combos = append(combos, strings.Join(slots, " x "))
				}
				fmt.Printf("%-24s arity %d: %s\n", spec.Type, spec.Arity, strings.Join(combos, ", "))
			}
			return nil
		},
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
