package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omriariav/pdf-to-md/internal/convert"
	"github.com/omriariav/pdf-to-md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert PDF files to Markdown",
	Long: `Convert transforms one or more PDF files into Markdown documents in the
output directory. Non-PDF arguments are skipped; a missing file fails the
run. Output files are never overwritten: a name collision gets a timestamp
suffix instead.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("method", "", "conversion backend: text or ocr (default from config)")
	convertCmd.Flags().String("output-dir", "", "output directory (default from config)")
	convertCmd.Flags().Bool("stdout", false, "print Markdown to stdout instead of writing files")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files to convert")
	}

	set, err := loadSettings()
	if err != nil {
		return err
	}

	if method, _ := cmd.Flags().GetString("method"); method != "" {
		set.ConversionMethod = types.ConversionMethod(method)
	}
	if outDir, _ := cmd.Flags().GetString("output-dir"); outDir != "" {
		set.OutputDirectory = outDir
	}

	conv, err := convert.New(set.ConversionMethod)
	if err != nil {
		return err
	}

	if stdout, _ := cmd.Flags().GetBool("stdout"); stdout {
		for _, p := range args {
			if err := convert.Preview(conv, p, os.Stdout); err != nil {
				return err
			}
		}
		return nil
	}

	result := convert.ConvertBatch(conv, args, set, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
