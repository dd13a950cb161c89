package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/ui/static"
	"github.com/raphi011/ptable/internal/ui/styles"
)

func newStylesCmd() *cobra.Command {
	var (
		preview bool
		width   int
	)

	cmd := &cobra.Command{
		Use:     "styles",
		Short:   "List table styles, bar shapes and colors",
		GroupID: GroupTable,
		Args:    cobra.NoArgs,
		Long: `List every word accepted by the style settings.

Bar styles combine one shape with modifiers, e.g. "square clean".
Colors combine a color, attributes and a background, e.g. "red bold bg_black".`,
		Example: `  ptable styles
  ptable styles --preview
  ptable styles --preview --width 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			catalog := styles.Available()

			out.Print(static.RenderTable([]string{"KIND", "WORDS"}, static.CatalogRows(catalog)))
			if !preview {
				return nil
			}
			if width < 1 {
				return fmt.Errorf("--width must be positive, got %d", width)
			}

			color := out.ColorEnabled(cfg.Color, os.Environ())
			out.Println()
			out.Println(styles.HeadingStyle.Render("Table styles"))
			for _, name := range catalog.TableStyles {
				b, err := styles.ParseBorder(name)
				if err != nil {
					return err
				}
				out.Print(static.BorderPreview(b, name))
			}

			out.Println()
			out.Println(styles.HeadingStyle.Render("Bar shapes"))
			rows := static.ShapePreviews(catalog.BarShapes, width, 0.62, color)
			out.Print(static.RenderTable([]string{"SHAPE", "BAR"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "Draw a sample of every table style and bar shape")
	cmd.Flags().IntVar(&width, "width", 20, "Width of bar previews")

	return cmd
}
