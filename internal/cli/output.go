package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/jimdowning-cyclops/versioning-go/internal/config"
)

// Result is the structured output of one bump.
type Result struct {
	File    string `json:"file" yaml:"file"`
	Bump    string `json:"bump" yaml:"bump"`
	Current string `json:"current" yaml:"current"`
	Next    string `json:"next" yaml:"next"`
	DryRun  bool   `json:"dryRun" yaml:"dryRun"`
	Tag     string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// writeResult renders r to w in the given output format.
func writeResult(w io.Writer, format string, r Result) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputText, "":
		_, err := nextColor(w).Fprintln(w, r.Next)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// nextColor returns the colour for the new version, disabled unless w is a terminal.
func nextColor(w io.Writer) *color.Color {
	c := color.New(color.FgGreen, color.Bold)

	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		c.DisableColor()
	}
	return c
}
