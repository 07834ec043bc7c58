package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/polygon-io/simple-binary-encoding/ir"
	"github.com/polygon-io/simple-binary-encoding/layout"
)

func main() {
	var (
		irFile      = pflag.String("ir", "", "Path to persisted IR file")
		validate    = pflag.Bool("validate", false, "Validate token stream invariants and exit")
		describe    = pflag.Bool("describe", false, "Print schema summary and exit")
		exportCBOR  = pflag.String("export-cbor", "", "Write CBOR interchange form to this path")
		compress    = pflag.String("compress", "", "Re-encode with a zstd container to this path")
		verbose     = pflag.BoolP("verbose", "v", false, "Enable debug logging")
		interactive = pflag.BoolP("interactive", "i", false, "Interactive token browser")
	)
	pflag.Parse()

	if *irFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: sbeir --ir <file.sbeir> [--validate] [--describe] [--export-cbor out.cbor]")
		fmt.Fprintln(os.Stderr, "       sbeir --ir <file.sbeir> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		layout.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*irFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*irFile, *validate, *describe, *exportCBOR, *compress); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(irFile string, validate, describe bool, exportCBOR, compress string) error {
	data, err := os.ReadFile(irFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	decoded, err := ir.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("Schema: %s (id %d, version %d)\n", decoded.PackageName(), decoded.ID(), decoded.Version())
	fmt.Printf("Messages: %d\n", len(decoded.MessageIDs()))
	fmt.Printf("Types: %d\n", len(decoded.TypeNames()))

	if validate {
		if err := ir.ValidateIr(decoded); err != nil {
			return err
		}
		fmt.Println("\nAll token streams valid.")
	}

	if describe {
		printSchema(decoded)
	}

	if exportCBOR != "" {
		out, err := ir.ExportCBOR(decoded)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(exportCBOR, out, 0o644); err != nil {
			return fmt.Errorf("write cbor: %w", err)
		}
		fmt.Printf("\nWrote %d bytes of CBOR to %s\n", len(out), exportCBOR)
	}

	if compress != "" {
		out, err := ir.EncodeCompressed(decoded)
		if err != nil {
			return fmt.Errorf("re-encode: %w", err)
		}
		if err := os.WriteFile(compress, out, 0o644); err != nil {
			return fmt.Errorf("write compressed ir: %w", err)
		}
		fmt.Printf("\nWrote %d bytes of compressed IR to %s (from %d)\n", len(out), compress, len(data))
	}

	return nil
}

func printSchema(decoded *ir.Ir) {
	if header := decoded.HeaderStructure(); len(header) > 0 {
		fmt.Printf("\nHeader: %s (%d bytes)\n", header[0].Name(), header[0].EncodedLength())
	}

	if names := decoded.TypeNames(); len(names) > 0 {
		fmt.Printf("\nNamed types:\n")
		for _, name := range names {
			tokens := decoded.Type(name)
			fmt.Printf("  %s %s (%d bytes, %d tokens)\n",
				strings.ToLower(strings.TrimPrefix(tokens[0].Signal().String(), "BEGIN_")),
				name, tokens[0].EncodedLength(), len(tokens))
		}
	}

	fmt.Printf("\nMessages:\n")
	for _, id := range decoded.MessageIDs() {
		tokens := decoded.Message(id)
		root := tokens[0]
		body := tokens[1 : len(tokens)-1]
		fmt.Printf("  %s (id %d): blockLength %d, %d field(s), %d group(s), %d var-data\n",
			root.Name(), id, root.EncodedLength(),
			len(ir.CollectFields(body)), len(ir.CollectGroups(body)), len(ir.CollectVarData(body)))
	}
}
