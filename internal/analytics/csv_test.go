package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `product_id,product_name,brand_id,brand_name,manager_page_url,current_in_stock_count,current_in_use_count,stock_count,view_count,accumulative_product_like_count,look_count,tryset_item_count,latest_tryset_item_created_time,first_in_stock_time
101,니트 가디건,7,브랜드A,https://manager.example.com/products/101,1,4,3,150,30,5,10,2024-06-13 09:30:00,2024-05-06 00:00:00
102,린넨 셔츠,8,브랜드B,https://manager.example.com/products/102,0,2,1,60,25,0,0,,
`

func TestDecodeCandidates(t *testing.T) {
	rows, err := DecodeCandidates(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, int64(101), first.ProductID)
	assert.Equal(t, "니트 가디건", first.ProductName)
	assert.Equal(t, int64(7), first.BrandID)
	assert.Equal(t, 1, first.CurrentInStockCount)
	assert.Equal(t, 4, first.CurrentInUseCount)
	assert.Equal(t, 3, first.StockCount)
	assert.Equal(t, 150, first.ViewCount)
	assert.Equal(t, 30, first.AccumulativeLikeCount)
	assert.Equal(t, 5, first.LookCount)
	assert.Equal(t, 10, first.TrysetItemCount)
	require.NotNil(t, first.LatestTrysetItemCreatedAt)
	assert.Equal(t, time.Date(2024, 6, 13, 9, 30, 0, 0, time.UTC), *first.LatestTrysetItemCreatedAt)
	require.NotNil(t, first.FirstInStockAt)

	second := rows[1]
	assert.Equal(t, int64(102), second.ProductID)
	assert.Nil(t, second.LatestTrysetItemCreatedAt)
	assert.Nil(t, second.FirstInStockAt)
	assert.Zero(t, second.TrysetItemCount)
}

func TestDecodeCandidatesEmptyResult(t *testing.T) {
	header := sampleCSV[:strings.Index(sampleCSV, "\n")+1]

	rows, err := DecodeCandidates(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeCandidatesMissingColumn(t *testing.T) {
	_, err := DecodeCandidates(strings.NewReader("product_id\n101\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column missing")
}

func TestDecodeCandidatesBadNumber(t *testing.T) {
	bad := strings.Replace(sampleCSV, "150", "many", 1)
	_, err := DecodeCandidates(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view_count")
}

func TestDecodeCandidatesBadTimestamp(t *testing.T) {
	bad := strings.Replace(sampleCSV, "2024-06-13 09:30:00", "yesterday", 1)
	_, err := DecodeCandidates(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latest_tryset_item_created_time")
}
