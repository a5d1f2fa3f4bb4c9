// Package export renders rows into downloadable spreadsheets.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Column struct {
	Header string
	Key    string
	Width  float64
}

// XLSX writes one header row and one row per record into a single sheet.
func XLSX(sheetName string, columns []Column, rows []map[string]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		width := col.Width
		if width == 0 {
			width = 15
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, width)
	}

	for rowIdx, record := range rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, cellValue(record[col.Key]))
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	case primitive.ObjectID:
		return t.Hex()
	case []string:
		return strings.Join(t, ", ")
	case bool, string, int, int32, int64, float64:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Send writes data as a spreadsheet download.
func Send(c *fiber.Ctx, data []byte, filename string) error {
	if !strings.HasSuffix(filename, ".xlsx") {
		filename += ".xlsx"
	}
	c.Set(fiber.HeaderContentType, XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
