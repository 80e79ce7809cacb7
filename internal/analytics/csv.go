package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/brandazine/stock-nudge/internal/model"
)

// Timestamp layouts the warehouse emits, most common first.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	time.RFC3339,
	"2006-01-02",
}

// DecodeCandidates parses the header-keyed CSV result into candidate rows.
func DecodeCandidates(r io.Reader) ([]model.Candidate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var candidates []model.Candidate
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := rowReader{index: index, record: record, line: line}
		c := model.Candidate{
			ProductID:                 row.int64("product_id"),
			ProductName:               row.str("product_name"),
			BrandID:                   row.int64("brand_id"),
			BrandName:                 row.str("brand_name"),
			ManagerPageURL:            row.str("manager_page_url"),
			CurrentInStockCount:       row.int("current_in_stock_count"),
			CurrentInUseCount:         row.int("current_in_use_count"),
			StockCount:                row.int("stock_count"),
			ViewCount:                 row.int("view_count"),
			AccumulativeLikeCount:     row.int("accumulative_product_like_count"),
			LookCount:                 row.int("look_count"),
			TrysetItemCount:           row.int("tryset_item_count"),
			LatestTrysetItemCreatedAt: row.time("latest_tryset_item_created_time"),
			FirstInStockAt:            row.time("first_in_stock_time"),
		}
		if row.err != nil {
			return nil, row.err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// rowReader reads typed cells, remembering the first error it hits.
type rowReader struct {
	index  map[string]int
	record []string
	line   int
	err    error
}

func (r *rowReader) str(column string) string {
	i, ok := r.index[column]
	if !ok {
		r.fail(column, fmt.Errorf("column missing from header"))
		return ""
	}
	if i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r *rowReader) int(column string) int {
	raw := r.str(column)
	if raw == "" || r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(column, err)
		return 0
	}
	return v
}

func (r *rowReader) int64(column string) int64 {
	raw := r.str(column)
	if raw == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.fail(column, err)
		return 0
	}
	return v
}

func (r *rowReader) time(column string) *time.Time {
	raw := r.str(column)
	if raw == "" || r.err != nil {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	r.fail(column, fmt.Errorf("unrecognized timestamp %q", raw))
	return nil
}

func (r *rowReader) fail(column string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("line %d, column %s: %w", r.line, column, err)
	}
}
