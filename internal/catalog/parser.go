// Package catalog reads product catalogs from XLSX workbooks and imports
// them through the service layer.
//
// A workbook may contain the sheets ProductTypes (name), DeliveryTypes
// (name) and Products (name, description, price, stock, types). The first
// row of every sheet is a header. Product types are given as a
// comma-separated list of names.
package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetProductTypes  = "ProductTypes"
	SheetDeliveryTypes = "DeliveryTypes"
	SheetProducts      = "Products"
)

// Catalog is the parsed content of a workbook
type Catalog struct {
	ProductTypes  []NamedRow
	DeliveryTypes []NamedRow
	Products      []ProductRow
}

type NamedRow struct {
	Row  int
	Name string
}

type ProductRow struct {
	Row         int
	Name        string
	Description string
	Price       float64
	Stock       int
	Types       []string
}

// RowError points at the spreadsheet row (1-based, as shown by Excel) that
// could not be used
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseFile opens the workbook at path
func ParseFile(path string) (*Catalog, []RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

// Parse reads a workbook from r. Invalid rows are skipped and reported;
// the error is only set when the workbook itself cannot be read.
func Parse(r io.Reader) (*Catalog, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(f *excelize.File) (*Catalog, []RowError, error) {
	var (
		catalog Catalog
		rowErrs []RowError
	)

	for _, sheet := range []struct {
		name string
		dst  *[]NamedRow
	}{
		{SheetProductTypes, &catalog.ProductTypes},
		{SheetDeliveryTypes, &catalog.DeliveryTypes},
	} {
		rows, err := sheetRows(f, sheet.name)
		if err != nil {
			return nil, nil, err
		}
		seen := map[string]int{}
		for i, row := range rows {
			line := i + 2
			name := cell(row, 0)
			if name == "" {
				continue
			}
			if first, dup := seen[strings.ToLower(name)]; dup {
				rowErrs = append(rowErrs, RowError{sheet.name, line, fmt.Errorf("duplicate name %q, first seen on row %d", name, first)})
				continue
			}
			seen[strings.ToLower(name)] = line
			*sheet.dst = append(*sheet.dst, NamedRow{Row: line, Name: name})
		}
	}

	rows, err := sheetRows(f, SheetProducts)
	if err != nil {
		return nil, nil, err
	}
	seen := map[string]int{}
	for i, row := range rows {
		line := i + 2
		if isBlank(row) {
			continue
		}
		product, err := parseProduct(row, line)
		if err != nil {
			rowErrs = append(rowErrs, RowError{SheetProducts, line, err})
			continue
		}
		if first, dup := seen[strings.ToLower(product.Name)]; dup {
			rowErrs = append(rowErrs, RowError{SheetProducts, line, fmt.Errorf("duplicate name %q, first seen on row %d", product.Name, first)})
			continue
		}
		seen[strings.ToLower(product.Name)] = line
		catalog.Products = append(catalog.Products, product)
	}

	return &catalog, rowErrs, nil
}

func parseProduct(row []string, line int) (ProductRow, error) {
	product := ProductRow{
		Row:         line,
		Name:        cell(row, 0),
		Description: cell(row, 1),
	}
	if product.Name == "" {
		return product, fmt.Errorf("name is required")
	}

	price, err := strconv.ParseFloat(cell(row, 2), 64)
	if err != nil {
		return product, fmt.Errorf("invalid price %q", cell(row, 2))
	}
	product.Price = price

	if raw := cell(row, 3); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return product, fmt.Errorf("invalid stock %q", raw)
		}
		product.Stock = stock
	}

	for _, name := range strings.Split(cell(row, 4), ",") {
		if name = strings.TrimSpace(name); name != "" {
			product.Types = append(product.Types, name)
		}
	}
	return product, nil
}

// sheetRows returns the data rows of a sheet without its header. A missing
// sheet has no rows.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
