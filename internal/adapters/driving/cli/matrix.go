package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/linalg"
)

var (
	matrixTranspose    bool
	similarityTerms    bool
	similaritySpectrum bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the term-document matrix as CSV",
	Long: `Print the term-document matrix as CSV, with terms as rows and article
IDs as columns. Each cell is the normalised frequency of the term in the
article. Use --transpose for the document-term matrix.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Print the document similarity matrix as CSV",
	Long: `Print the document × document similarity matrix as CSV. Each cell is the
dot product of two articles' term frequency vectors. Use --terms for the
term × term matrix and --spectrum for its eigenvalues instead.`,
	Args: cobra.NoArgs,
	RunE: runSimilarity,
}

func init() {
	matrixCmd.Flags().BoolVarP(&matrixTranspose, "transpose", "t", false, "print the document-term matrix")
	similarityCmd.Flags().BoolVar(&similarityTerms, "terms", false, "compare terms instead of articles")
	similarityCmd.Flags().BoolVar(&similaritySpectrum, "spectrum", false, "print the eigenvalues of the matrix")
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(similarityCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	m := corpusService.TermDocumentMatrix()
	if matrixTranspose {
		m = corpusService.DocumentTermMatrix()
	}
	return writeMatrixCSV(cmd, m)
}

func runSimilarity(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	m := corpusService.DocumentSimilarity()
	if similarityTerms {
		m = corpusService.TermSimilarity()
	}

	if !similaritySpectrum {
		return writeMatrixCSV(cmd, m)
	}

	values, ok := linalg.SymmetricEigenvalues(m)
	if !ok {
		return errors.New("eigenvalue decomposition failed")
	}
	for _, v := range values {
		cmd.Println(formatWeight(v))
	}
	return nil
}

func writeMatrixCSV(cmd *cobra.Command, m *domain.Matrix) error {
	w := csv.NewWriter(cmd.OutOrStdout())

	header := append([]string{""}, m.Cols()...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing matrix: %w", err)
	}
	for i, row := range m.Dense() {
		record := make([]string, 0, len(row)+1)
		record = append(record, m.Rows()[i])
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing matrix: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
