package queue

import (
	"fmt"

	"github.com/skv/csm-reporter/internal/logger"
	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/sheet"
)

// ReadRecords converts the worksheet's data rows into Records using the
// given selectors. The first row is treated as the header row.
func ReadRecords(rows [][]string, cols Columns) []model.Record {
	if len(rows) < 2 {
		return nil
	}

	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.Record{
			Resource: cellAt(row, cols.Resource),
			Status:   cellAt(row, cols.Status),
			Date:     cellAt(row, cols.Date),
		})
	}
	return records
}

// Extract loads the DaaS queue workbook at path and aggregates it. Column
// selectors come from the config when set and are sniffed otherwise. Load
// failures surface as sheet.ErrSourceUnavailable so the caller can fall
// back to SampleData.
func Extract(path string, cfg model.QueueConfig) (model.Aggregation, error) {
	wb, err := sheet.Load(path, "")
	if err != nil {
		return model.Aggregation{}, err
	}
	defer wb.Close()

	rows, err := wb.Rows()
	if err != nil {
		return model.Aggregation{}, fmt.Errorf("%w: %v", sheet.ErrSourceUnavailable, err)
	}
	if len(rows) == 0 {
		return model.Aggregation{}, fmt.Errorf("%w: %s is empty", sheet.ErrSourceUnavailable, path)
	}

	headers := rows[0]
	cols := DetectColumns(headers, rows[1:], ColumnsFromConfig(headers, cfg))
	logger.Logger.Debug("queue columns resolved",
		"resource", cols.Resource, "status", cols.Status, "date", cols.Date)

	records := ReadRecords(rows, cols)
	return Aggregate(records, cfg.DateFormat), nil
}
