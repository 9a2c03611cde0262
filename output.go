package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lolhop/ffmpeg-tools/internal/compiler"
	"github.com/lolhop/ffmpeg-tools/internal/errs"
	"github.com/lolhop/ffmpeg-tools/internal/ffmpeg"
)

func writeJob(w io.Writer, format, binary string, job compiler.CompiledJob) error {
	switch format {
	case "", "text":
		fmt.Fprintln(w, job.Summary())
		fmt.Fprintln(w, ffmpeg.CommandLine(binary, job.Argv))
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(job)
	}
	return errs.Invalid("unknown output format %q (want text, json or yaml)", format)
}
