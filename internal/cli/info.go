package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the structure of a sparse matrix file",
	Long:  `Report the shape, stored entry count and density of a Matrix Market or JSON matrix file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, err := readMatrixFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	csr := m.ToCsr()

	density := 0.0
	if m.NRows() > 0 && m.NCols() > 0 {
		density = float64(csr.NNZ()) / (float64(m.NRows()) * float64(m.NCols()))
	}

	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Shape: %d x %d\n", m.NRows(), m.NCols())
	fmt.Printf("Stored entries: %d (%d after deduplication)\n", m.NNZ(), csr.NNZ())
	fmt.Printf("Density: %.4f\n", density)

	return nil
}
