package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
)

// LedgerCSVExporter dumps every posted transaction of every scenario, in
// date order within each account.
type LedgerCSVExporter struct{}

func (l LedgerCSVExporter) Name() string { return "ledger-csv" }

func (l LedgerCSVExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Account", "Date", "Type", "Category", "Amount", "Memo", "ID"}); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		if r.Ledger == nil {
			continue
		}
		for _, acct := range domain.AccountTypes {
			txs := r.Ledger.Transactions(acct)
			sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
			for _, tx := range txs {
				row := []string{
					r.Name,
					string(acct),
					tx.Date.Format("2006-01-02"),
					string(tx.Type),
					string(tx.Category),
					tx.Signed().StringFixed(2),
					tx.Memo,
					tx.ID.String(),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
