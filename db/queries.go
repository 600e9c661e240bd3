package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Cut queries

//go:embed sql/insert_cut.sql
var InsertCutSQL string

//go:embed sql/mark_cut_complete.sql
var MarkCutCompleteSQL string

//go:embed sql/mark_cut_error.sql
var MarkCutErrorSQL string

//go:embed sql/select_cut_by_id.sql
var SelectCutByIDSQL string

//go:embed sql/select_recent_cuts.sql
var SelectRecentCutsSQL string
