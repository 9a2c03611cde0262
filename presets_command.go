package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lolhop/ffmpeg-tools/internal/codec"
	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/media"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List quality presets, codecs, formats and filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPresets(cmd.OutOrStdout())
		},
	}
}

func printPresets(w io.Writer) error {
	fmt.Fprintln(w, "Compression presets:")
	table := tablewriter.NewWriter(w)
	table.Header("Preset", "Video CRF", "Audio kbps", "Image q:v")
	for _, p := range compiler.QualityPresets() {
		row := []any{string(p)}
		for _, kind := range []media.Kind{media.Video, media.Audio, media.Image} {
			v, _ := compiler.CompressTable(kind, p)
			row = append(row, v)
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nVideo codecs:")
	table = tablewriter.NewWriter(w)
	table.Header("Codec", "Quality range", "Default")
	for _, name := range codec.Names() {
		vc, err := codec.Get(name)
		if err != nil {
			return err
		}
		if !vc.Reencodes() {
			_ = table.Append(name, "-", "-")
			continue
		}
		lo, hi := vc.QualityRange()
		_ = table.Append(name, fmt.Sprintf("%d-%d", lo, hi), vc.DefaultQuality())
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nAudio formats:")
	table = tablewriter.NewWriter(w)
	table.Header("Format", "Encoder", "Lossless")
	for _, f := range codec.AudioFormats() {
		_ = table.Append(f.Format, orDash(f.Encoder), orDash(f.Lossless))
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nExtensions:")
	for _, kind := range media.Kinds() {
		fmt.Fprintf(w, "  %-6s %s\n", kind, strings.Join(media.Extensions(kind), " "))
	}

	filters := make([]string, 0, len(compiler.ScaleFilters()))
	for _, f := range compiler.ScaleFilters() {
		filters = append(filters, string(f))
	}
	fmt.Fprintf(w, "\nScaling filters: %s\n", strings.Join(filters, ", "))

	presets := make([]string, 0, len(compiler.Presets()))
	for _, p := range compiler.Presets() {
		presets = append(presets, string(p))
	}
	fmt.Fprintf(w, "Encoding presets: %s\n", strings.Join(presets, ", "))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
