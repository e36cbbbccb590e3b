package datarecording

var (
	_ DataRecorder = (*SQLiteWriter)(nil)
	_ DataRecorder = (*ClickHouseWriter)(nil)
	_ DataReader   = (*SQLiteReader)(nil)
)
