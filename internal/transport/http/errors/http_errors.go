package errors

import (
	"encoding/json"
	"net/http"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConflictError extends APIError with the interval already occupying the
// requested booking range.
type ConflictError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
