package model

import "database/sql"

// Table names. These are stable external interfaces: the CSV snapshot for
// each table is named <table>.csv.
const (
	// TableSearchResults stores normalized organic search results.
	TableSearchResults = "query_search_results"

	// TableImagesResults stores normalized image results.
	TableImagesResults = "images_results"

	// TableRelatedContent stores related-content cards.
	TableRelatedContent = "related_content"
)

// Tables returns all table names in their canonical export order.
func Tables() []string {
	return []string{TableSearchResults, TableImagesResults, TableRelatedContent}
}

// TableSnapshot is a full in-memory read of one table, used for CSV export.
// Cells are nullable; a NULL column value exports as an empty cell.
type TableSnapshot struct {
	// Table is the table name the snapshot was read from.
	Table string

	// Columns holds the column names in table order, including the
	// synthetic record_id primary key.
	Columns []string

	// Rows holds one entry per stored record, in insertion order.
	Rows [][]sql.NullString
}
