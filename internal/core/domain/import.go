package domain

// PurgeResult reports the rows removed by a chart purge.
type PurgeResult struct {
	Accounts   int64
	Categories int64
	Classes    int64
}

// ImportSummary reports what one chart import run did.
type ImportSummary struct {
	Processed         int
	ClassesCreated    int
	CategoriesCreated int
	AccountsCreated   int
	AccountsUpdated   int
	ParentsLinked     int
	Purged            *PurgeResult
}
