// Package stats serves the dashboard summary: simple grouped counts over the
// examination records.
package stats

// Summary is the body of GET /stats.
type Summary struct {
	Schools      int            `json:"schools"`
	Subjects     int            `json:"subjects"`
	Examiners    int            `json:"examiners"`
	Students     int            `json:"students"`
	AnswerSheets map[string]int `json:"answer_sheets"`
	Invigilation []DateCount    `json:"invigilation_by_date"`
}

// DateCount is the number of assignments on one exam date.
type DateCount struct {
	ExamDate string `json:"exam_date"`
	Count    int    `json:"count"`
}
