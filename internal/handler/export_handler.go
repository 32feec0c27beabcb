package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

const exportDateLayout = "2006-01-02 15:04"

var exportHeaders = []string{"Game", "Date", "Player", "Total points", "Winner"}

// ExportGames выгружает закрытые игры в CSV или Excel
// GET /api/games/export?format=csv|xlsx
func (h *GameHandler) ExportGames(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx", "error_type": "bad_request"})
		return
	}

	views, err := h.views.ComposeGameViews(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("games_%s", time.Now().Format("2006-01-02"))
	switch format {
	case "xlsx":
		h.exportXLSX(c, views, filename)
	default:
		h.exportCSV(c, views, filename)
	}
}

// exportRows разворачивает игры в строки: одна строка на участника
func exportRows(views []entity.GameView) [][]interface{} {
	var rows [][]interface{}
	for _, v := range views {
		for _, p := range v.Participants {
			winner := "No"
			if p.IsWinner {
				winner = "Yes"
			}
			rows = append(rows, []interface{}{
				v.Game.ID,
				v.Game.Date.Format(exportDateLayout),
				sanitizeForExcel(p.PlayerName),
				p.TotalPoints,
				winner,
			})
		}
	}
	return rows
}

// exportCSV выгружает строки через encoding/csv.
// Файл собирается в памяти целиком, чтобы ошибка записи не превратилась в обрезанный ответ 200.
func (h *GameHandler) exportCSV(c *gin.Context, views []entity.GameView, filename string) {
	data, err := buildCSV(exportRows(views))
	if err != nil {
		h.logger.Error("failed to build csv export", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create CSV file", "error_type": "internal"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func buildCSV(rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	// BOM для корректного отображения UTF-8 в Excel
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range rows {
		record := make([]string, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case string:
				record[j] = val
			case int:
				record[j] = strconv.Itoa(val)
			case uint:
				record[j] = strconv.FormatUint(uint64(val), 10)
			default:
				record[j] = fmt.Sprint(val)
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// exportXLSX выгружает строки через StreamWriter excelize.
// Любая ошибка при сборке книги даёт 500 до отправки заголовков ответа.
func (h *GameHandler) exportXLSX(c *gin.Context, views []entity.GameView, filename string) {
	f, err := buildXLSX(exportRows(views))
	if err != nil {
		h.logger.Error("failed to build xlsx export", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file", "error_type": "internal"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.logger.Error("failed to serialize workbook", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file", "error_type": "internal"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

const exportSheetName = "Games"

func buildXLSX(rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fail(fmt.Errorf("failed to rename sheet: %w", err))
	}
	sw, err := f.NewStreamWriter(exportSheetName)
	if err != nil {
		return fail(fmt.Errorf("failed to create stream writer: %w", err))
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fail(fmt.Errorf("failed to write headers: %w", err))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fail(err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fail(fmt.Errorf("failed to write row %d: %w", i+2, err))
		}
	}
	if err := sw.Flush(); err != nil {
		return fail(fmt.Errorf("failed to flush workbook: %w", err))
	}
	return f, nil
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
