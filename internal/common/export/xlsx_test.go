package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestXLSX(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	data, err := XLSX("Members", []Column{
		{Header: "ID", Key: "id"},
		{Header: "Name", Key: "name", Width: 30},
		{Header: "Active", Key: "active"},
		{Header: "Created", Key: "createdAt"},
		{Header: "Missing", Key: "missing"},
	}, []map[string]any{
		{"id": id, "name": "Asha", "active": true, "createdAt": created},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Members"}, f.GetSheetList())

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Name", "Active", "Created", "Missing"}, rows[0])
	assert.Equal(t, id.Hex(), rows[1][0])
	assert.Equal(t, "Asha", rows[1][1])
	assert.Equal(t, "TRUE", rows[1][2])
	assert.Equal(t, "2024-03-01 10:30:00", rows[1][3])
}
