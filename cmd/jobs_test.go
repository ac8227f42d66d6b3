package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"tailorshop/internal/service"

	"github.com/stretchr/testify/assert"
)

type fakeLoader struct {
	status service.LoadStatus
	loads  int
	err    error
}

func (f *fakeLoader) Status() (service.LoadStatus, error) {
	return f.status, errors.New("previous failure")
}

func (f *fakeLoader) Load(context.Context) error {
	f.loads++
	return f.err
}

func TestRosterRetryJob(t *testing.T) {
	tests := []struct {
		name      string
		status    service.LoadStatus
		wantLoads int
	}{
		{"failed load is retried", service.LoadStatusFailed, 1},
		{"ready roster is left alone", service.LoadStatusReady, 0},
		{"in-flight load is left alone", service.LoadStatusLoading, 0},
		{"idle roster is left alone", service.LoadStatusIdle, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{status: tt.status}
			job := newRosterRetryJob(time.Second, loader)

			assert.NoError(t, job.Run(context.Background()))
			assert.Equal(t, tt.wantLoads, loader.loads)
			assert.Equal(t, "roster-retry", job.Name())
			assert.Equal(t, time.Second, job.Interval())
		})
	}
}

func TestRosterRetryJob_ReportsLoadError(t *testing.T) {
	loader := &fakeLoader{status: service.LoadStatusFailed, err: errors.New("still down")}
	job := newRosterRetryJob(time.Second, loader)

	assert.EqualError(t, job.Run(context.Background()), "still down")
}
