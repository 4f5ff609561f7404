package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rill/internal/driver"
	"rill/internal/source"
	"rill/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rl",
	Short: "Tokenize a rill source file",
	Long:  `Tokenize breaks a rill source file into its significant tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenPayload struct {
	Kind  string `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Text  string `json:"text,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("read format flag: %w", err)
	}

	fileSet := source.NewFileSet()
	result, err := driver.Tokenize(fileSet, args[0])
	if err != nil {
		return fmt.Errorf("tokenize %s: %w", args[0], err)
	}
	file := fileSet.Get(result.FileID)

	switch strings.ToLower(format) {
	case "pretty":
		for _, tok := range result.Tokens {
			lc := file.LineColOf(tok.Span.Start)
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s", lc.Line, lc.Col, tok.Kind)
			if tok.Text != "" && tok.Kind != token.EOF {
				fmt.Fprintf(cmd.OutOrStdout(), "\t%q", tok.Text)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	case "json":
		payloads := make([]tokenPayload, 0, len(result.Tokens))
		for _, tok := range result.Tokens {
			payloads = append(payloads, tokenPayload{
				Kind:  tok.Kind.String(),
				Start: tok.Span.Start,
				End:   tok.Span.End,
				Text:  tok.Text,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payloads)
	default:
		return fmt.Errorf("unknown format %q (want pretty or json)", format)
	}
}
