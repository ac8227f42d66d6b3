package rosterd

import (
	"strings"

	domain "tailorshop/internal/model"
)

// WorkerRecord full worker as served by the list and create endpoints
type WorkerRecord struct {
	WorkerID        string              `json:"workerId"`
	Name            string              `json:"name"`
	Email           string              `json:"email,omitempty"`
	ContactNumber   string              `json:"contactNumber"`
	WorkType        string              `json:"workType"`
	Specialization  string              `json:"specialization,omitempty"`
	Experience      int                 `json:"experience"`
	JoinDate        string              `json:"joinDate,omitempty"`
	Status          string              `json:"status"`
	AssignedOrders  int                 `json:"assignedOrders"`
	CompletedOrders int                 `json:"completedOrders"`
	Ratings         float64             `json:"ratings"`
	Performance     int                 `json:"performance"`
	GarmentRates    []GarmentRateRecord `json:"garmentRates"`
	Avatar          string              `json:"avatar,omitempty"`
}

// SearchRecord partial worker returned by the search endpoint
type SearchRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	WorkType   string  `json:"workType"`
	Experience int     `json:"experience"`
	Ratings    float64 `json:"ratings"`
}

// GarmentRateRecord garment/rate pair on the wire
type GarmentRateRecord struct {
	GarmentType string  `json:"garmentType" binding:"required"`
	Rate        float64 `json:"rate" binding:"gt=0"`
}

// CreateWorkerRequest body of POST /api/workers
type CreateWorkerRequest struct {
	Name           string              `json:"name" binding:"required,min=2,max=100"`
	Email          string              `json:"email" binding:"omitempty,email"`
	ContactNumber  string              `json:"contactNumber" binding:"required,min=7,max=20"`
	WorkType       string              `json:"workType" binding:"required"`
	Specialization string              `json:"specialization"`
	Experience     int                 `json:"experience" binding:"min=0,max=80"`
	JoinDate       string              `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
	Status         string              `json:"status" binding:"omitempty,oneof=active on-leave inactive"`
	GarmentRates   []GarmentRateRecord `json:"garmentRates" binding:"dive"`
	Avatar         string              `json:"avatar"`
}

// ErrorResponse error body; fields is set for validation failures
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func toWorkerRecord(w domain.Worker) WorkerRecord {
	rates := make([]GarmentRateRecord, 0, len(w.GarmentRates))
	for _, r := range w.GarmentRates {
		rates = append(rates, GarmentRateRecord{GarmentType: r.GarmentType, Rate: r.Rate})
	}
	return WorkerRecord{
		WorkerID:        w.ID,
		Name:            w.Name,
		Email:           w.Email,
		ContactNumber:   w.Phone,
		WorkType:        w.Skill,
		Specialization:  w.Specialization,
		Experience:      w.Experience,
		JoinDate:        w.JoinDate,
		Status:          string(w.Status),
		AssignedOrders:  w.AssignedOrders,
		CompletedOrders: w.CompletedOrders,
		Ratings:         w.Rating,
		Performance:     w.Performance,
		GarmentRates:    rates,
		Avatar:          w.Avatar,
	}
}

func toSearchRecord(w domain.Worker) SearchRecord {
	return SearchRecord{
		ID:         w.ID,
		Name:       w.Name,
		Phone:      w.Phone,
		WorkType:   w.Skill,
		Experience: w.Experience,
		Ratings:    w.Rating,
	}
}

func (req *CreateWorkerRequest) toDomain() *domain.Worker {
	rates := make([]domain.GarmentRate, 0, len(req.GarmentRates))
	for _, r := range req.GarmentRates {
		rates = append(rates, domain.GarmentRate{GarmentType: strings.TrimSpace(r.GarmentType), Rate: r.Rate})
	}
	status := domain.WorkerStatusActive
	if req.Status != "" {
		status = domain.ParseWorkerStatus(req.Status)
	}
	return &domain.Worker{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.ContactNumber),
		Skill:          strings.TrimSpace(req.WorkType),
		Specialization: req.Specialization,
		Experience:     req.Experience,
		JoinDate:       req.JoinDate,
		Status:         status,
		GarmentRates:   rates,
		Avatar:         req.Avatar,
	}
}
