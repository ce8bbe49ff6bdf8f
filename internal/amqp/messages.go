package amqp

import (
	"encoding/json"
	"time"
)

// ReportExportMessage asks the export worker to rebuild and export one
// owner's monthly report. It carries only the coordinates; the worker
// reads the ledger itself.
type ReportExportMessage struct {
	OwnerID   string    `json:"ownerId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportExportMessage(ownerID string, year, month int) *ReportExportMessage {
	return &ReportExportMessage{
		OwnerID:   ownerID,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
