package domain

import "fmt"

// Quote is a quotation with its author
type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// String renders the quote the way the display shows it
func (q Quote) String() string {
	return fmt.Sprintf("%s - %s", q.Text, q.Author)
}
