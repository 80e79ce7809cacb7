package stock

import (
	"strconv"
	"time"

	"github.com/brandazine/stock-nudge/internal/model"
)

// Report column labels, localized for the operations team.
const (
	ColProductName    = "상품명"
	ColBrandName      = "브랜드"
	ColManagerPageURL = "매니저 페이지 링크"
	ColAdequateStock  = "적정 재고수"
	ColInStockCount   = "입고중 재고"
	ColInUseCount     = "이용중 재고"
	ColLikeCount      = "누적 좋아요 수"
	ColViewCount      = "1주일간 조회수"
	ColRequested      = "3주내 요청이력"
	ColFirstInStock   = "재고 입고일"
)

const dateLayout = "2006-01-02"

// Table is a rendered projection of candidates ready for spreadsheet export.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// FullReportTable projects the complete operations view, audit columns
// included. Row order follows the input (view count descending upstream).
func FullReportTable(rows []model.Candidate) Table {
	table := Table{
		Columns: []string{
			ColProductName,
			ColBrandName,
			ColManagerPageURL,
			ColAdequateStock,
			ColInStockCount,
			ColInUseCount,
			ColLikeCount,
			ColViewCount,
			ColRequested,
			ColFirstInStock,
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, c := range rows {
		table.Rows = append(table.Rows, []string{
			c.ProductName,
			c.BrandName,
			c.ManagerPageURL,
			strconv.Itoa(c.AdequateStockCount),
			strconv.Itoa(c.CurrentInStockCount),
			strconv.Itoa(c.CurrentInUseCount),
			strconv.Itoa(c.AccumulativeLikeCount),
			strconv.Itoa(c.ViewCount),
			formatBool(c.AlreadyRequested),
			formatDate(c.FirstInStockAt),
		})
	}
	return table
}

// MailReportTable projects the narrower per-brand attachment, without the
// internal audit columns.
func MailReportTable(rows []model.Candidate) Table {
	table := Table{
		Columns: []string{
			ColProductName,
			ColBrandName,
			ColManagerPageURL,
			ColAdequateStock,
			ColInStockCount,
			ColInUseCount,
			ColLikeCount,
			ColViewCount,
		},
		Rows: make([][]string, 0, len(rows)),
	}
	for _, c := range rows {
		table.Rows = append(table.Rows, []string{
			c.ProductName,
			c.BrandName,
			c.ManagerPageURL,
			strconv.Itoa(c.AdequateStockCount),
			strconv.Itoa(c.CurrentInStockCount),
			strconv.Itoa(c.CurrentInUseCount),
			strconv.Itoa(c.AccumulativeLikeCount),
			strconv.Itoa(c.ViewCount),
		})
	}
	return table
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
