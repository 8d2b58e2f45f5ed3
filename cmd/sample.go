package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadfinder/internal/leadcsv"
)

var sampleOut string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample import CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withOutput(sampleOut, func(w io.Writer) error {
			_, err := io.WriteString(w, leadcsv.SampleCSV())
			return err
		})
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleOut, "out", "", "output file path (default: stdout; "+leadcsv.SampleFilename+" is conventional)")
	rootCmd.AddCommand(sampleCmd)
}
