package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/driver"
	"rill/internal/hints"
	"rill/internal/source"
	"rill/internal/ui"
)

var hintsCmd = &cobra.Command{
	Use:   "hints [flags] path",
	Short: "Compute inlay hints for a rill file or directory",
	Long: `Hints analyzes rill source and prints the inlay hints an editor
would show: inferred binding types, call-argument names, and the
result types of multi-line call chains.`,
	Args: cobra.ExactArgs(1),
	RunE: runHints,
}

func init() {
	hintsCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	hintsCmd.Flags().Bool("types", true, "show binding type hints")
	hintsCmd.Flags().Bool("params", true, "show parameter name hints")
	hintsCmd.Flags().Bool("chaining", true, "show chained call type hints")
	hintsCmd.Flags().Int("max-length", 25, "maximum hint label length in characters (0 = unlimited)")
	hintsCmd.Flags().Bool("interactive", false, "browse the annotated source in a full-screen view")
	hintsCmd.Flags().Int("jobs", 0, "parallel workers for directory analysis (0 = all cores)")
}

// hintPayload is the machine-readable form of one hint, shared by the
// json and msgpack formats.
type hintPayload struct {
	Path  string `json:"path"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

func runHints(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("read format flag: %w", err)
	}
	format = strings.ToLower(format)

	cfg, err := resolveHintConfig(cmd, path)
	if err != nil {
		return err
	}

	results, err := analyzePath(cmd, path, cfg)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		return printPretty(cmd, results)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(collectPayloads(results))
	case "msgpack":
		raw, err := msgpack.Marshal(collectPayloads(results))
		if err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	default:
		return fmt.Errorf("unknown format %q (want pretty, json, or msgpack)", format)
	}
}

// resolveHintConfig layers defaults, the nearest rill.toml, and then
// any explicitly set flags.
func resolveHintConfig(cmd *cobra.Command, path string) (hints.Config, error) {
	cfg := hints.DefaultConfig()

	startDir := filepath.Dir(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		startDir = path
	}
	manifest, found, err := loadProjectManifest(startDir)
	if err != nil {
		return cfg, err
	}
	if found {
		manifest.Config.Hints.apply(&cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("types") {
		cfg.TypeHints, _ = flags.GetBool("types")
	}
	if flags.Changed("params") {
		cfg.ParameterHints, _ = flags.GetBool("params")
	}
	if flags.Changed("chaining") {
		cfg.ChainingHints, _ = flags.GetBool("chaining")
	}
	if flags.Changed("max-length") {
		cfg.MaxLength, _ = flags.GetInt("max-length")
	}
	return cfg, nil
}

func analyzePath(cmd *cobra.Command, path string, cfg hints.Config) ([]*driver.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		jobs, _ := cmd.Flags().GetInt("jobs")
		_, results, err := driver.AnalyzeDir(cmd.Context(), path, cfg, jobs)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", path, err)
		}
		return results, nil
	}
	fileSet := source.NewFileSet()
	result, err := driver.Analyze(fileSet, path, cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	return []*driver.Result{result}, nil
}

func printPretty(cmd *cobra.Command, results []*driver.Result) error {
	colored := useColor(cmd, os.Stdout)
	interactive, _ := cmd.Flags().GetBool("interactive")

	var listing strings.Builder
	for _, res := range results {
		listing.WriteString(ui.Annotate(res.File, res.Hints, colored && !interactive))
		for _, h := range res.Hints {
			listing.WriteString(ui.HintLine(res.File, h))
			listing.WriteByte('\n')
		}
		listing.WriteByte('\n')
	}

	if interactive {
		return ui.RunBrowser("rill hints", listing.String())
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), listing.String())
	return err
}

func collectPayloads(results []*driver.Result) []hintPayload {
	var payloads []hintPayload
	for _, res := range results {
		for _, h := range res.Hints {
			lc := res.File.LineColOf(h.Range.Start)
			payloads = append(payloads, hintPayload{
				Path:  res.Path,
				Line:  lc.Line,
				Col:   lc.Col,
				Start: h.Range.Start,
				End:   h.Range.End,
				Kind:  h.Kind.String(),
				Label: h.Label,
			})
		}
	}
	return payloads
}
