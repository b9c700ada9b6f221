package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Juanchoszs/StarWash/internal/finance"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

type ReportHandler struct {
	Store *store.Store
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.summary)
	r.Get("/reports/salaries", h.salaries)
	r.Get("/reports/salaries/export", h.exportSalaries)
	r.Get("/reports/workshops/{id}/bill", h.workshopBill)
}

// summary returns the daily and monthly aggregates for the requested
// date (default today), the admin statistics board.
func (h ReportHandler) summary(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if parsed, err := parseDateQuery(r, "date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	} else if parsed != nil {
		ref = *parsed
	}
	snap := h.Store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    ref.Format(dateLayout),
		"daily":   finance.Summarize(snap, finance.Day(ref)),
		"monthly": finance.Summarize(snap, finance.Month(ref)),
	})
}

func (h ReportHandler) salaries(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindowQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}
	writeJSON(w, http.StatusOK, finance.Salaries(h.Store.Snapshot(), window))
}

func (h ReportHandler) workshopBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws, err := h.Store.Workshop(id)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	ref := time.Now()
	if parsed, err := parseDateQuery(r, "date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	} else if parsed != nil {
		ref = *parsed
	}
	bill := finance.Bill(h.Store.Snapshot(), ws.ID, ref)
	writeJSON(w, http.StatusOK, map[string]any{
		"workshopId": bill.WorkshopID,
		"name":       ws.Name,
		"date":       ref.Format(dateLayout),
		"total":      bill.Total,
		"lines":      bill.Lines,
	})
}

func (h ReportHandler) exportSalaries(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	window, err := parseWindowQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}
	items := finance.Salaries(h.Store.Snapshot(), window)
	filenameSuffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := exportSalariesCSV(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"salaries_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportSalariesXLSX(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"salaries_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportSalariesCSV(items []finance.WorkerSalary) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"worker_id", "name", "active", "vehicles", "salary"})
	for _, ws := range items {
		_ = w.Write([]string{
			ws.WorkerID,
			ws.Name,
			strconv.FormatBool(ws.Active),
			strconv.Itoa(ws.Vehicles),
			strconv.FormatInt(ws.Salary, 10),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportSalariesXLSX(items []finance.WorkerSalary) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Salaries"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Worker ID", "Name", "Active", "Vehicles", "Salary"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, ws := range items {
		row := r + 2
		values := []any{ws.WorkerID, ws.Name, ws.Active, ws.Vehicles, ws.Salary}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "D", 10)
	_ = f.SetColWidth(sheet, "E", "E", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "E1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
