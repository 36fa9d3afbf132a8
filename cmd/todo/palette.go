package main

import (
	"fmt"
	"image/color"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/evanschultz/todo/internal/config"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

// swatchWidth is the rendered width of one colour sample.
const swatchWidth = 10

var (
	paletteBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	paletteHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
)

// newPaletteCmd previews the item palette and title colour the editor will use.
func newPaletteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Preview the item colour palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(opts, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer env.close(cmd.ErrOrStderr())

			rendered, err := renderPalette(env.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

// renderPalette lays the palette out as a table: index, hex, swatch and a sample item
// drawn the way the editor colours the n-th row.
func renderPalette(cfg config.Config) (string, error) {
	palette, err := cfg.PaletteColors()
	if err != nil {
		return "", err
	}
	titleColor, err := cfg.TitleColor()
	if err != nil {
		return "", err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(paletteBorderStyle).
		Headers("#", "Hex", "Swatch", "Sample").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return paletteHeaderStyle
			}
			return lipgloss.NewStyle()
		})

	sample := cfg.Display.PendingCheckbox + " sample item"
	for i, c := range palette {
		hex := hexOf(c)
		swatch := lipgloss.NewStyle().
			Background(c).
			Foreground(contrastColor(c)).
			Width(swatchWidth).
			Align(lipgloss.Center).
			Render(hex)
		t.Row(strconv.Itoa(i), hex, swatch, lipgloss.NewStyle().Foreground(c).Render(sample))
	}

	title := lipgloss.NewStyle().Bold(true)
	titleHex := "terminal default"
	if titleColor != nil {
		title = title.Foreground(titleColor)
		titleHex = hexOf(titleColor)
	}
	header := title.Render(cfg.Display.PendingTitle+" / "+cfg.Display.CompletedTitle) + "  title colour: " + titleHex
	return header + "\n" + t.Render(), nil
}

// hexOf formats any colour as #rrggbb.
func hexOf(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// contrastColor picks black text for light backgrounds and white text for dark ones.
func contrastColor(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return lipgloss.Color("15")
	}
	if l, _, _ := cf.Lab(); l > 0.6 {
		return lipgloss.Color("0")
	}
	return lipgloss.Color("15")
}
