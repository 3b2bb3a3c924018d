package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/client"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/contract"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/engine/registry"
	"github.com/yungbote/neurobridge-edugen/internal/edugen/gateway"
	"github.com/yungbote/neurobridge-edugen/internal/platform/logger"
	"github.com/yungbote/neurobridge-edugen/internal/platform/shutdown"
)

var generateMCQCmd = &cobra.Command{
	Use:   "generate-mcq",
	Short: "Generate one MCQ set and print it",
	Example: `  edugen generate-mcq --grade 10 --subject Math --topic Algebra --subtopic "Linear Equations" -n 3
  edugen generate-mcq --engine mock --grade 6 --subject Science --topic Plants --subtopic Photosynthesis -o yaml`,
	RunE: runGenerateMCQ,
}

func init() {
	f := generateMCQCmd.Flags()
	f.String("grade", "", "Grade level")
	f.String("subject", "", "Subject")
	f.String("topic", "", "Topic")
	f.String("subtopic", "", "Subtopic")
	f.Bool("ncert", false, "Align questions with the NCERT curriculum")
	f.IntP("count", "n", 5, "Number of questions")
	f.String("instructions", "", "Extra instructions appended after the template")
	f.StringP("output", "o", "json", "Output format: json or yaml")
	f.String("server", "", "Base URL of a running edugen server; generate locally when empty")
}

func runGenerateMCQ(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	// nil unless passed: an omitted flag reports as missing, --subtopic "" does not.
	changedString := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	body := contract.MCQBody{
		Grade:    changedString("grade"),
		Subject:  changedString("subject"),
		Topic:    changedString("topic"),
		Subtopic: changedString("subtopic"),
	}
	ncert, _ := f.GetBool("ncert")
	count, _ := f.GetInt("count")
	instructions, _ := f.GetString("instructions")
	body.IsNCERT, body.NumberOfQuestions, body.CustomInstructions = &ncert, &count, &instructions
	format, _ := f.GetString("output")
	server, _ := f.GetString("server")

	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown output format %q", format)
	}
	if err := contract.Validate(&body); err != nil {
		return err
	}
	req := body.Request()

	ctx, stop := shutdown.NotifyContext(cmd.Context())
	defer stop()

	var (
		out json.RawMessage
		err error
	)
	if server != "" {
		out, err = generateRemote(ctx, server, req)
	} else {
		out, err = generateLocal(ctx, cmd, req)
	}
	if err != nil {
		return fmt.Errorf("generate mcq: %w", err)
	}
	return writeResult(cmd.OutOrStdout(), out, format)
}

func generateRemote(ctx context.Context, server string, req contract.MCQRequest) (json.RawMessage, error) {
	c, err := client.New(client.Options{BaseURL: server})
	if err != nil {
		return nil, err
	}
	return c.GenerateMCQ(ctx, req)
}

func generateLocal(ctx context.Context, cmd *cobra.Command, req contract.MCQRequest) (json.RawMessage, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	eng, err := registry.New(cfg.Engine)
	if err != nil {
		return nil, err
	}
	return gateway.New(cfg, eng, log, nil).GenerateMCQ(ctx, req)
}

func writeResult(w io.Writer, raw json.RawMessage, format string) error {
	if format == "yaml" {
		b, err := jsonToYAML(raw)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not JSON after all; print it as received.
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order.
func jsonToYAML(raw []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
