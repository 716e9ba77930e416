package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/roads"
)

// convertCommand creates the KML conversion command.
func (c *CLI) convertCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "convert <file.kml> [output.json|output.csv]",
		Short: "Convert a KML road export to roads JSON or CSV",
		Long: `Convert reads the Placemarks of a KML road export and writes them as roads
JSON (the default, tab-indented [lon, lat] points) or CSV (declared_name,lat,lon
rows). The output defaults to roads.json.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "roads.json"
			if len(args) == 2 {
				out = args[1]
			}
			return runConvert(cmd.Context(), args[0], out, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "read at most N placemarks (0 = all)")

	return cmd
}

// runConvert converts the KML at input to output, choosing the encoding by
// output extension.
func runConvert(ctx context.Context, input, output string, limit int) error {
	logger := loggerFromContext(ctx)

	write := roads.WriteJSON
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".json":
	case ".csv":
		write = roads.WriteCSV
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported output %q (must end in .json or .csv)", output)
	}

	prog := newProgress(logger)
	pms, err := roads.ReadKMLFile(input, limit)
	if err != nil {
		return err
	}
	logger.Debug("read placemarks", "file", input, "count", len(pms))

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := write(f, pms); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	points := 0
	for _, pm := range pms {
		points += len(pm.Points)
	}
	prog.done(fmt.Sprintf("Converted %d placemarks", len(pms)))
	printSuccess("Wrote %s", output)
	printDetail("%d placemarks · %d points", len(pms), points)
	return nil
}
