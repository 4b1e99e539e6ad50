package entity

// LogRecord is a log line reported by the browser client
type LogRecord struct {
	Level        string `json:"level"`
	Message      string `json:"message"`
	FileName     string `json:"fileName"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber"`
}
