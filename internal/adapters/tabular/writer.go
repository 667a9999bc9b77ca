package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/pool"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// recordPool stages one output record at a time across writes.
var recordPool = pool.NewStringSlicePool(32)

// Writer persists comma-separated tables to disk.
type Writer struct{}

// NewWriter creates a new CSV writer adapter.
func NewWriter() ports.TableWriter {
	return &Writer{}
}

// WriteTable writes a table with its header row.
func (w *Writer) WriteTable(path string, table *domain.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes the per-scheme results table. Correlation columns are
// emitted only when the correlation step ran; their absence is meaningful.
func WriteResults(path string, results []domain.SchemeResult) error {
	withCorrelation := false
	for _, res := range results {
		if res.Correlation != nil {
			withCorrelation = true
			break
		}
	}

	header := []string{"scheme", "f1", "threshold"}
	if withCorrelation {
		header = append(header, "correlation", "correlation_p")
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		staged := recordPool.Get()
		record := append(*staged,
			res.Scheme,
			formatFloat(res.F1),
			formatFloat(res.Threshold),
		)
		if withCorrelation {
			record = append(record, formatFloat(*res.Correlation), formatFloat(*res.CorrelationP))
		}
		rows = append(rows, append([]string(nil), record...))
		*staged = record[:0]
		recordPool.Put(staged)
	}

	table, err := domain.NewTable(header, rows)
	if err != nil {
		return err
	}
	return (&Writer{}).WriteTable(path, table)
}

// WriteFoldLog writes the verbose human-readable log: every per-fold
// threshold and F1, followed by the row-count-weighted aggregate.
func WriteFoldLog(path string, results []domain.SchemeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fold log: %w", err)
	}
	defer f.Close()

	for _, res := range results {
		fmt.Fprintf(f, "scheme %s\n", res.Scheme)
		for _, fr := range res.Folds {
			fmt.Fprintf(f, "  fold %d: threshold=%s f1=%s rows=%d\n",
				fr.Fold, formatFloat(fr.Threshold), formatFloat(fr.F1), fr.RowCount)
		}
		fmt.Fprintf(f, "  weighted: threshold=%s f1=%s\n",
			formatFloat(res.Threshold), formatFloat(res.F1))
		if res.Correlation != nil {
			fmt.Fprintf(f, "  spearman: correlation=%s p=%s\n",
				formatFloat(*res.Correlation), formatFloat(*res.CorrelationP))
		}
	}
	return nil
}

// WriteBins writes the length-stratified table: one row per scheme, one
// f1/mean/count column group per bin. Empty bins leave the metric cells
// empty rather than writing fabricated zeros.
func WriteBins(path string, schemeBins []domain.SchemeBins) error {
	if len(schemeBins) == 0 {
		return domain.Configuration("no scheme bins to write")
	}

	header := []string{"scheme"}
	for _, bin := range schemeBins[0].Bins {
		header = append(header,
			"f1_"+bin.Bin.Label,
			"mean_"+bin.Bin.Label,
			"count_"+bin.Bin.Label,
		)
	}

	rows := make([][]string, 0, len(schemeBins))
	for _, sb := range schemeBins {
		staged := recordPool.Get()
		record := append(*staged, sb.Scheme)
		for _, bin := range sb.Bins {
			if bin.HasData() {
				record = append(record,
					formatFloat(bin.F1),
					formatFloat(bin.Mean),
					strconv.Itoa(bin.Count),
				)
			} else {
				record = append(record, "", "", "0")
			}
		}
		rows = append(rows, append([]string(nil), record...))
		*staged = record[:0]
		recordPool.Put(staged)
	}

	table, err := domain.NewTable(header, rows)
	if err != nil {
		return err
	}
	return (&Writer{}).WriteTable(path, table)
}

// formatFloat renders floats at full precision so that values survive a
// read-back without rounding.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
