package http

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/httpx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// csvHeaders defines the column names written as the first row of the
// export, in the same order the dashboard shows them.
var csvHeaders = append([]string{"slug"}, append(domain.CounterNames, "total")...)

// AdminExportHandler implements GET /admin/export.csv.
type AdminExportHandler struct {
	StatsService *service.StatsService
}

func (h *AdminExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.StatsService.Rows(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("load stats", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail, so the csv writer errors are safe
	// to ignore until Flush.
	cw.Write(csvHeaders)
	for _, row := range rows {
		cw.Write(csvRecord(row))
	}
	cw.Flush()

	httpx.NoCache(w)
	httpx.Attachment(w, "card-stats.csv", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// csvRecord flattens one slug's counters in header order.
func csvRecord(row domain.SlugCounters) []string {
	record := make([]string, 0, len(csvHeaders))
	record = append(record, row.Slug)
	for _, name := range domain.CounterNames {
		record = append(record, strconv.FormatInt(row.Counters[name], 10))
	}
	return append(record, strconv.FormatInt(row.Counters.Total(), 10))
}
