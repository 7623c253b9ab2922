package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/preset"
)

// presetsCommand creates the presets command for listing and inspecting
// grid presets.
func (c *CLI) presetsCommand() *cobra.Command {
	var presetsFile string

	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List available presets, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := preset.Builtin()
			if presetsFile != "" {
				var err error
				if lib, err = preset.Load(presetsFile); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				return showPreset(lib, args[0])
			}
			fmt.Println(StyleTitle.Render("Available presets"))
			for _, info := range lib.List() {
				printKeyValue(info.Name, info.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&presetsFile, "presets-file", "", "TOML file with additional presets")
	return cmd
}

func showPreset(lib *preset.Library, name string) error {
	cfg, err := lib.Apply(name)
	if err != nil {
		return err
	}

	printKeyValue("grid", fmt.Sprintf("%dx%d", cfg.Grid.Rows, cfg.Grid.Cols))
	printKeyValue("cell", fmt.Sprintf("%dx%d px", cfg.Grid.CellWidth, cfg.Grid.CellHeight))
	printKeyValue("spacing", fmt.Sprintf("%d px", cfg.Grid.Spacing))
	printKeyValue("aspect", fmt.Sprintf("%t", cfg.MaintainAspect))
	printKeyValue("background", describeBackground(cfg.Background))
	if cfg.Border.Enabled {
		printKeyValue("border", fmt.Sprintf("%s %dpx %s", cfg.Border.Style, cfg.Border.Width, cfg.Border.Color.Hex()))
	}
	if cfg.ColumnLabels.Enabled {
		printKeyValue("column labels", string(cfg.ColumnLabels.Position))
	}
	if cfg.RowLabels.Enabled {
		printKeyValue("row labels", fmt.Sprintf("%s, %s", cfg.RowLabels.Position, cfg.RowLabels.Orientation))
	}
	return nil
}

func describeBackground(bg grid.Background) string {
	switch bg.Kind {
	case grid.BackgroundTransparent:
		return "transparent"
	case grid.BackgroundGradient:
		return fmt.Sprintf("gradient %s -> %s (%s)", bg.Start.Hex(), bg.End.Hex(), bg.Direction)
	default:
		return fmt.Sprintf("solid %s", bg.Color.Hex())
	}
}
