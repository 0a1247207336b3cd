// Package export writes all data of a user as JSON or as an XLSX workbook.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/finova-app/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Formats that data can be exported in.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Data is all data of a user.
type Data struct {
	Version      string           `json:"version" example:"1.2.0"`
	CreationTime time.Time        `json:"creationTime" example:"2024-05-17T20:14:01.048145Z"`
	Owner        string           `json:"owner" example:"jane@example.com"`
	Incomes      []models.Income  `json:"incomes"`
	Budgets      []models.Budget  `json:"budgets"`
	Expenses     []models.Expense `json:"expenses"`
}

// Collect loads all data of owner.
func Collect(ctx context.Context, db *gorm.DB, owner string) (Data, error) {
	data := Data{
		CreationTime: time.Now().UTC(),
		Owner:        owner,
		Incomes:      []models.Income{},
		Budgets:      []models.Budget{},
		Expenses:     []models.Expense{},
	}

	db = db.WithContext(ctx)

	if err := db.Where("created_by = ?", owner).Order("id").Find(&data.Incomes).Error; err != nil {
		return Data{}, fmt.Errorf("loading incomes: %w", err)
	}

	if err := db.Where("created_by = ?", owner).Order("id").Find(&data.Budgets).Error; err != nil {
		return Data{}, fmt.Errorf("loading budgets: %w", err)
	}

	err := db.Model(&models.Expense{}).
		Select("expenses.*").
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("budgets.created_by = ?", owner).
		Order("expenses.id").
		Find(&data.Expenses).
		Error
	if err != nil {
		return Data{}, fmt.Errorf("loading expenses: %w", err)
	}

	return data, nil
}

// Filename returns the name of the export file for format.
func Filename(d Data, format string) string {
	return fmt.Sprintf("finova_%s.%s", d.CreationTime.Format("20060102"), format)
}

// WriteJSON writes d as indented JSON.
func WriteJSON(w io.Writer, d Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

type sheet struct {
	name    string
	headers []any
	rows    [][]any
	widths  []float64
}

// WriteXLSX writes d as a workbook with one sheet per resource.
func WriteXLSX(w io.Writer, d Data) error {
	incomes := sheet{
		name:    "Incomes",
		headers: []any{"ID", "Name", "Amount", "Icon"},
		widths:  []float64{8, 30, 14, 8},
	}
	for _, i := range d.Incomes {
		incomes.rows = append(incomes.rows, []any{i.ID, i.Name, amount(i.Amount), i.Icon})
	}

	budgets := sheet{
		name:    "Budgets",
		headers: []any{"ID", "Name", "Amount", "Icon"},
		widths:  []float64{8, 30, 14, 8},
	}
	for _, b := range d.Budgets {
		budgets.rows = append(budgets.rows, []any{b.ID, b.Name, amount(b.Amount), b.Icon})
	}

	expenses := sheet{
		name:    "Expenses",
		headers: []any{"ID", "Name", "Amount", "Budget ID", "Date"},
		widths:  []float64{8, 30, 14, 10, 12},
	}
	for _, e := range d.Expenses {
		expenses.rows = append(expenses.rows, []any{e.ID, e.Name, amount(e.Amount), e.BudgetID, e.CreatedAt})
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range []sheet{incomes, budgets, expenses} {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}

		if err := writeSheet(f, s); err != nil {
			return fmt.Errorf("writing sheet %s: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, s sheet) error {
	if err := f.SetSheetRow(s.name, "A1", &s.headers); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}

	return nil
}

// amount returns a parseable amount as a number so that it can be
// calculated with in spreadsheets.
func amount(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
