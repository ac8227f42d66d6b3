package mysql

import (
	"testing"

	domain "tailorshop/internal/model"
	"tailorshop/pkg/store/mysql/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerConversion(t *testing.T) {
	in := &domain.Worker{
		ID:           "W-1",
		Name:         "Mike",
		Phone:        "5550101",
		Skill:        "stitching",
		Experience:   3,
		Status:       domain.WorkerStatusOnLeave,
		Rating:       4.2,
		GarmentRates: []domain.GarmentRate{{GarmentType: "shirt", Rate: 50}},
	}

	row := FromWorkerDomain(in)
	require.NotNil(t, row)
	assert.Equal(t, "W-1", row.WorkerID)
	assert.Equal(t, "5550101", row.ContactNumber)
	assert.Equal(t, "stitching", row.WorkType)
	assert.Equal(t, "on-leave", row.Status)
	assert.Equal(t, model.JSONGarmentRates{{GarmentType: "shirt", Rate: 50}}, row.GarmentRates)

	assert.Equal(t, in, ToWorkerDomain(row))
}

func TestWorkerConversion_Defaults(t *testing.T) {
	assert.Nil(t, ToWorkerDomain(nil))
	assert.Nil(t, FromWorkerDomain(nil))

	row := FromWorkerDomain(&domain.Worker{Name: "New"})
	assert.Equal(t, "active", row.Status)
	assert.NotNil(t, row.GarmentRates)

	assert.Empty(t, ToWorkersDomain(nil))
}
