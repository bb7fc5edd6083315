// Package exporter provides CSV and Excel export functionality for the
// dashboard's aggregate tables.
//
// This package contains three main components:
//
// Table: the common exportable shape, a named header row plus string
// cell rows, built from an aggregate snapshot with FromAggregates.
//
// CSVWriter: CSV writing with support for streaming to an HTTP response
// and UTF-8 BOM for Excel compatibility.
//
// WriteWorkbook: Excel workbook generation with one sheet per table.
//
// Example usage:
//
//	tables := exporter.FromAggregates(snapshot)
//
//	writer := exporter.NewCSVWriter("reports", logger)
//	for _, table := range tables {
//		path, err := writer.WriteFile(table, exporter.WriteOptions{})
//		...
//	}
//
//	err := exporter.WriteWorkbookFile("reports/match_report.xlsx", tables)
package exporter
