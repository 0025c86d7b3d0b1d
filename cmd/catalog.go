package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/painpoint-cli/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active service and pain-point catalog",
	Long:  "Prints the catalog after applying research.catalog_path and research.provider_name. The YAML output is a valid override file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")

		cat, err := initCatalog(cfg)
		if err != nil {
			return err
		}
		return writeCatalog(os.Stdout, cat, format)
	},
}

func writeCatalog(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cat); err != nil {
			return eris.Wrap(err, "catalog: encode yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	default:
		return eris.Errorf("catalog: unsupported format %q", format)
	}
}

func init() {
	catalogCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(catalogCmd)
}
