package commonutils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

type TableRow struct {
	Name  string `col-name:"Name"`
	Value string `col-name:"Value"`
}

// Table is a titled list of rows printed borderless. Rows past DisplayLimit are summarized
// in the footer; a DisplayLimit of zero prints every row.
type Table struct {
	Title        string
	Header       []string
	Rows         [][]string
	EmptyMessage string
	Noun         string
	DisplayLimit int
}

// ResultsWriter prints command results as JSON or as tables.
type ResultsWriter struct {
	format string
}

func NewResultsWriter(format string) *ResultsWriter {
	if format == "" {
		format = FormatTable
	}
	return &ResultsWriter{format: strings.ToLower(format)}
}

func (rw *ResultsWriter) IsJson() bool {
	return rw.format == FormatJson
}

// PrintJson prints data, or emptyMessage when data marshals to an empty value.
func (rw *ResultsWriter) PrintJson(data any, emptyMessage string) error {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errorutils.CheckError(err)
	}
	if len(jsonBytes) <= 2 || string(jsonBytes) == "null" {
		if jsonBytes, err = json.MarshalIndent(emptyMessage, "", "  "); err != nil {
			return errorutils.CheckError(err)
		}
	}
	log.Output(string(jsonBytes))
	return nil
}

// PrintTables prints each table; the first header cell is highlighted like the row names.
func (rw *ResultsWriter) PrintTables(tables ...Table) error {
	for _, table := range tables {
		if err := printTable(table); err != nil {
			return err
		}
		log.Output()
	}
	return nil
}

func printTable(table Table) error {
	total := len(table.Rows)
	shown := total
	if table.DisplayLimit > 0 && shown > table.DisplayLimit {
		shown = table.DisplayLimit
	}

	var tableData []TableRow
	if len(table.Header) == 2 && shown > 0 {
		tableData = append(tableData, TableRow{Name: text.FgCyan.Sprint(table.Header[0]), Value: text.FgCyan.Sprint(table.Header[1])})
	}
	for _, row := range table.Rows[:shown] {
		tableData = append(tableData, TableRow{Name: text.FgHiBlue.Sprint(cell(row, 0)), Value: text.FgGreen.Sprint(cell(row, 1))})
	}

	footer := ""
	if shown < total {
		footer = text.FgYellow.Sprintf("\n...and %d more %s. Refer JSON output format for complete list.", total-shown, table.Noun)
	}
	if err := coreutils.PrintTableWithBorderless(tableData, text.FgCyan.Sprint(table.Title), footer, table.EmptyMessage, false); err != nil {
		return fmt.Errorf("failed to print %s table: %w", table.Title, err)
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
