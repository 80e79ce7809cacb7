package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandazine/stock-nudge/internal/model"
)

func reportCandidate() model.Candidate {
	c := passingCandidate(10)
	c.ProductName = "니트 가디건"
	c.BrandName = "브랜드A"
	c.ManagerPageURL = "https://manager.example.com/products/10"
	c.CurrentInUseCount = 4
	c.AlreadyRequested = true
	return c
}

func TestFullReportTable(t *testing.T) {
	table := FullReportTable([]model.Candidate{reportCandidate()})

	assert.Equal(t, []string{
		ColProductName, ColBrandName, ColManagerPageURL, ColAdequateStock,
		ColInStockCount, ColInUseCount, ColLikeCount, ColViewCount,
		ColRequested, ColFirstInStock,
	}, table.Columns)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "니트 가디건", row[0])
	assert.Equal(t, "브랜드A", row[1])
	assert.Equal(t, "15", row[3])
	assert.Equal(t, "0", row[4])
	assert.Equal(t, "4", row[5])
	assert.Equal(t, "TRUE", row[8])
	assert.Equal(t, testNow.AddDate(0, 0, -40).Format("2006-01-02"), row[9])
}

func TestFullReportTableNilDate(t *testing.T) {
	c := reportCandidate()
	c.FirstInStockAt = nil
	c.AlreadyRequested = false

	table := FullReportTable([]model.Candidate{c})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "FALSE", table.Rows[0][8])
	assert.Equal(t, "", table.Rows[0][9])
}

func TestMailReportTableOmitsAuditColumns(t *testing.T) {
	table := MailReportTable([]model.Candidate{reportCandidate()})

	assert.Equal(t, []string{
		ColProductName, ColBrandName, ColManagerPageURL, ColAdequateStock,
		ColInStockCount, ColInUseCount, ColLikeCount, ColViewCount,
	}, table.Columns)
	assert.NotContains(t, table.Columns, ColRequested)
	assert.NotContains(t, table.Columns, ColFirstInStock)

	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], len(table.Columns))
}

func TestReportTablesPreserveOrder(t *testing.T) {
	first := reportCandidate()
	first.ProductName = "first"
	second := reportCandidate()
	second.ProductName = "second"

	table := FullReportTable([]model.Candidate{first, second})
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "first", table.Rows[0][0])
	assert.Equal(t, "second", table.Rows[1][0])
}

func TestTableEmpty(t *testing.T) {
	assert.True(t, FullReportTable(nil).Empty())
	assert.False(t, FullReportTable([]model.Candidate{reportCandidate()}).Empty())
}
