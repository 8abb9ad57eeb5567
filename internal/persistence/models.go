package persistence

import (
	"bytes"
	"encoding/json"
)

// UserRecord is the persisted shape of the signed-in profile.
type UserRecord struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	SensoryProfile string `json:"sensoryProfile"`
}

// ReservationRecord is one entry of the persisted reservation list.
type ReservationRecord struct {
	ID       RecordID `json:"id"`
	RoomName string   `json:"roomName"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Status   string   `json:"status"`
	Local    string   `json:"local"`
	Ruido    string   `json:"ruido"`
	Luz      string   `json:"luz"`
}

// RecordID is a reservation identifier. Lists written by older clients carry
// numeric millisecond ids, so decoding accepts both JSON strings and numbers.
type RecordID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' && !bytes.Equal(data, []byte("null")) {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = RecordID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = RecordID(s)
	return nil
}
