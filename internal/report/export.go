package report

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagegrep/internal/model"
)

// WriteJSON writes the run summary to path in the export schema:
// a search_summary header block followed by the per-URL results.
func WriteJSON(path string, sum model.RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sum.ExportDoc()); err != nil {
		return eris.Wrapf(err, "export: encode %s", path)
	}
	return nil
}
