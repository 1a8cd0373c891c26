package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/store"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams a user's expenses as CSV or XLSX.
type ExportHandler struct {
	Store *store.ExpenseStore
}

func NewExportHandler(s *store.ExpenseStore) *ExportHandler {
	return &ExportHandler{Store: s}
}

var exportHeaders = []string{"Title", "Category", "Amount", "Payment Method", "Description", "Tags", "Recurring", "Date"}

// ExportCSV writes all expenses as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	expenses, err := h.Store.All(user.ID)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to fetch expenses", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, e := range expenses {
		recurring := "no"
		if e.IsRecurring {
			recurring = "yes"
		}
		writer.Write([]string{
			e.Title,
			e.Category,
			e.Amount.StringFixed(2),
			e.PaymentMethod,
			e.Description,
			strings.Join(e.Tags, ","),
			recurring,
			e.Date.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes all expenses as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	expenses, err := h.Store.All(user.ID)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to fetch expenses", err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to create worksheet", err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, e := range expenses {
		row := idx + 2
		recurring := "no"
		if e.IsRecurring {
			recurring = "yes"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.PaymentMethod)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), strings.Join(e.Tags, ","))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), recurring)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), e.Date.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 15)
	f.SetColWidth(sheetName, "E", "E", 35)
	f.SetColWidth(sheetName, "F", "F", 20)
	f.SetColWidth(sheetName, "G", "G", 10)
	f.SetColWidth(sheetName, "H", "H", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to export expenses", err)
	}
}
