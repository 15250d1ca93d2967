package model

// Workbook is a rendered spreadsheet ready for download.
type Workbook struct {
	Filename string
	Content  []byte
}
