package rosterapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// WorkerPayload worker record as returned by the roster service.
// Several fields have historical aliases; see mapper.go for precedence.
type WorkerPayload struct {
	WorkerID        flexString         `json:"workerId"`
	ID              flexString         `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	ContactNumber   string             `json:"contactNumber"`
	Phone           string             `json:"phone"`
	WorkType        string             `json:"workType"`
	Skill           string             `json:"skill"`
	Specialization  string             `json:"specialization"`
	Experience      flexNumber         `json:"experience"`
	JoinDate        string             `json:"joinDate"`
	Status          string             `json:"status"`
	AssignedOrders  flexNumber         `json:"assignedOrders"`
	CompletedOrders flexNumber         `json:"completedOrders"`
	Ratings         *flexNumber        `json:"ratings"`
	Rating          *flexNumber        `json:"rating"`
	Performance     flexNumber         `json:"performance"`
	GarmentRates    []GarmentRateEntry `json:"garmentRates"`
	GarmentTypes    []GarmentRateEntry `json:"garmentTypes"`
	Avatar          string             `json:"avatar"`
	Photo           string             `json:"photo"`
}

// GarmentRateEntry garment/rate pair on the wire
type GarmentRateEntry struct {
	GarmentType string     `json:"garmentType"`
	Type        string     `json:"type"`
	Rate        flexNumber `json:"rate"`
}

// CreateWorkerPayload request body for the create endpoint
type CreateWorkerPayload struct {
	Name           string             `json:"name"`
	Email          string             `json:"email,omitempty"`
	ContactNumber  string             `json:"contactNumber"`
	WorkType       string             `json:"workType"`
	Specialization string             `json:"specialization,omitempty"`
	Experience     int                `json:"experience"`
	JoinDate       string             `json:"joinDate,omitempty"`
	Status         string             `json:"status,omitempty"`
	GarmentRates   []GarmentRatePlain `json:"garmentRates"`
	Avatar         string             `json:"avatar,omitempty"`
}

// GarmentRatePlain garment/rate pair sent in create requests
type GarmentRatePlain struct {
	GarmentType string  `json:"garmentType"`
	Rate        float64 `json:"rate"`
}

// listEnvelope accepts {"workers": [...]}, {"data": [...]} or a bare array
type listEnvelope struct {
	Workers []WorkerPayload
}

func (l *listEnvelope) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &l.Workers)
	}
	var env struct {
		Workers []WorkerPayload `json:"workers"`
		Data    []WorkerPayload `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Workers = env.Workers
	if l.Workers == nil {
		l.Workers = env.Data
	}
	return nil
}

// createEnvelope accepts {"worker": {...}}, {"data": {...}} or the bare record
type createEnvelope struct {
	Worker WorkerPayload
}

func (c *createEnvelope) UnmarshalJSON(data []byte) error {
	var env struct {
		Worker *WorkerPayload `json:"worker"`
		Data   *WorkerPayload `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch {
	case env.Worker != nil:
		c.Worker = *env.Worker
	case env.Data != nil:
		c.Worker = *env.Data
	default:
		return json.Unmarshal(data, &c.Worker)
	}
	return nil
}

// ErrorResponse error body returned by the roster service
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e ErrorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// flexNumber decodes numbers that may arrive as JSON numbers or numeric strings.
// Unparseable values decode to zero.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(v)
	return nil
}

// flexString decodes identifiers that may arrive as strings or numbers
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexString(str)
		return nil
	}
	*f = flexString(s)
	return nil
}
