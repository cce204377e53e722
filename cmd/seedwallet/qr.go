package main

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

func (a *app) qrCmd() *cobra.Command {
	var (
		png  string
		size int
	)

	cmd := &cobra.Command{
		Use:   "qr <address>",
		Short: "Render an address as a QR code",
		Example: `  seedwallet qr HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk
  seedwallet qr 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266 --png address.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qr, err := qrcode.New(args[0], qrcode.Medium)
			if err != nil {
				return fmt.Errorf("could not create QR code: %w", err)
			}
			if png != "" {
				if err := qr.WriteFile(size, png); err != nil {
					return fmt.Errorf("could not write %s: %w", png, err)
				}
				a.log.Info().Str("file", png).Int("size", size).Msg("wrote QR code")
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), renderQR(qr.Bitmap()))
			return nil
		},
	}
	cmd.Flags().StringVar(&png, "png", "", "Write a PNG image to this file instead of the terminal")
	cmd.Flags().IntVar(&size, "size", 256, "PNG size in pixels") //nolint:mnd
	return cmd
}

// renderQR draws a bitmap with half block characters, two modules per
// character cell. Dark modules are drawn as blank so the code scans on dark
// terminals.
func renderQR(bitmap [][]bool) string {
	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune(' ')
			case top:
				b.WriteRune('▄')
			case bottom:
				b.WriteRune('▀')
			default:
				b.WriteRune('█')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
