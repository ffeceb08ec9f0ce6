package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macdee-orders/internal/models"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestAppendWritesOneRecordPerOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	l := NewFileLedger(path, false)

	for i := 1; i <= 3; i++ {
		order := models.NewOrder(fmt.Sprintf("Customer %d", i), "c@example.com", i, 200000)
		require.NoError(t, l.Append(order))
	}

	records := readRecords(t, path)
	require.Len(t, records, 3)

	for i, record := range records {
		require.Len(t, record, 6)
		assert.Equal(t, fmt.Sprintf("Customer %d", i+1), record[1])
		assert.Equal(t, "c@example.com", record[2])
		assert.Equal(t, fmt.Sprintf("%d", i+1), record[3])
		assert.Equal(t, "Bank Transfer", record[5])
	}

	assert.Equal(t, "₦2000.00", records[0][4])
	assert.Equal(t, "₦6000.00", records[2][4])
}

func TestAppendPreservesPriorRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	l := NewFileLedger(path, false)

	require.NoError(t, l.Append(models.NewOrder("Ada", "ada@example.com", 3, 200000)))
	first := readRecords(t, path)[0]

	require.NoError(t, l.Append(models.NewOrder("Bola", "bola@example.com", 2, 200000)))
	require.NoError(t, l.Append(models.NewOrder("Chidi", "chidi@example.com", 1, 200000)))

	records := readRecords(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, first, records[0])
}

func TestAppendConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	l := NewFileLedger(path, false)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			order := models.NewOrder(fmt.Sprintf("Customer %d", i), "c@example.com", 1, 200000)
			assert.NoError(t, l.Append(order))
		}(i)
	}
	wg.Wait()

	// Every line must be a complete, well-formed record.
	records := readRecords(t, path)
	require.Len(t, records, n)
	for _, record := range records {
		require.Len(t, record, 6)
	}
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	l := NewFileLedger(filepath.Join(t.TempDir(), "missing", "orders.csv"), false)

	err := l.Append(models.NewOrder("Ada", "ada@example.com", 1, 200000))
	require.Error(t, err)
}
