package model

import "strings"

// WorkerStatus roster status of a tailor
type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "active"
	WorkerStatusOnLeave  WorkerStatus = "on-leave"
	WorkerStatusInactive WorkerStatus = "inactive"
)

// ParseWorkerStatus maps loosely formatted status strings ("On Leave", "INACTIVE") to a WorkerStatus.
// Unknown or empty values map to active.
func ParseWorkerStatus(s string) WorkerStatus {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	switch norm {
	case "on-leave", "onleave", "leave":
		return WorkerStatusOnLeave
	case "inactive", "disabled":
		return WorkerStatusInactive
	default:
		return WorkerStatusActive
	}
}

// Valid reports whether s is one of the known statuses
func (s WorkerStatus) Valid() bool {
	switch s {
	case WorkerStatusActive, WorkerStatusOnLeave, WorkerStatusInactive:
		return true
	}
	return false
}

// GarmentRate per-worker billing rate for one garment type.
// The same shape is used for a draft being composed in a form.
type GarmentRate struct {
	GarmentType string  `json:"garmentType"`
	Rate        float64 `json:"rate"`
}

// Worker roster entry
type Worker struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Skill           string        `json:"skill"`
	Specialization  string        `json:"specialization"`
	Experience      int           `json:"experience"` // years
	JoinDate        string        `json:"joinDate"`   // YYYY-MM-DD
	Status          WorkerStatus  `json:"status"`
	AssignedOrders  int           `json:"assignedOrders"`
	CompletedOrders int           `json:"completedOrders"`
	Rating          float64       `json:"rating"`      // 0.0 - 5.0
	Performance     int           `json:"performance"` // 0 - 100
	GarmentRates    []GarmentRate `json:"garmentRates"`
	Avatar          string        `json:"avatar,omitempty"` // URL or data URI
}

// Clone returns a deep copy
func (w Worker) Clone() Worker {
	if w.GarmentRates != nil {
		w.GarmentRates = append([]GarmentRate(nil), w.GarmentRates...)
	}
	return w
}

// CloneWorkers deep-copies a worker slice; nil stays nil
func CloneWorkers(in []Worker) []Worker {
	if in == nil {
		return nil
	}
	out := make([]Worker, len(in))
	for i, w := range in {
		out[i] = w.Clone()
	}
	return out
}

// WorkerPatch partial update applied by a local edit. Nil fields are left unchanged.
type WorkerPatch struct {
	Name           *string        `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email          *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string        `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Skill          *string        `json:"skill,omitempty"`
	Specialization *string        `json:"specialization,omitempty"`
	Experience     *int           `json:"experience,omitempty" validate:"omitempty,min=0,max=80"`
	JoinDate       *string        `json:"joinDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status         *WorkerStatus  `json:"status,omitempty" validate:"omitempty,oneof=active on-leave inactive"`
	Rating         *float64       `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Performance    *int           `json:"performance,omitempty" validate:"omitempty,min=0,max=100"`
	GarmentRates   *[]GarmentRate `json:"garmentRates,omitempty"`
	Avatar         *string        `json:"avatar,omitempty"`
}

// Apply merges the patch into w
func (p WorkerPatch) Apply(w *Worker) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Email != nil {
		w.Email = *p.Email
	}
	if p.Phone != nil {
		w.Phone = *p.Phone
	}
	if p.Skill != nil {
		w.Skill = *p.Skill
	}
	if p.Specialization != nil {
		w.Specialization = *p.Specialization
	}
	if p.Experience != nil {
		w.Experience = *p.Experience
	}
	if p.JoinDate != nil {
		w.JoinDate = *p.JoinDate
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Rating != nil {
		w.Rating = *p.Rating
	}
	if p.Performance != nil {
		w.Performance = *p.Performance
	}
	if p.GarmentRates != nil {
		w.GarmentRates = append([]GarmentRate(nil), (*p.GarmentRates)...)
	}
	if p.Avatar != nil {
		w.Avatar = *p.Avatar
	}
}

// CreateWorkerRequest new-worker payload sent to the remote roster service
type CreateWorkerRequest struct {
	Name           string        `json:"name" validate:"required,min=2,max=100"`
	Email          string        `json:"email" validate:"omitempty,email"`
	Phone          string        `json:"phone" validate:"required,min=7,max=20"`
	Skill          string        `json:"skill" validate:"required"`
	Specialization string        `json:"specialization"`
	Experience     int           `json:"experience" validate:"min=0,max=80"`
	JoinDate       string        `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
	Status         WorkerStatus  `json:"status" validate:"omitempty,oneof=active on-leave inactive"`
	GarmentRates   []GarmentRate `json:"garmentRates"`
	Avatar         string        `json:"avatar,omitempty"`
}
