package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

func TestMeasurementService(t *testing.T) {
	store := newMemStore()
	svc := NewMeasurementService(nil, &fakeRepoManager{s: store})
	ctx := context.Background()
	pot := store.addPot(alice)

	older := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	_, err := svc.Record(ctx, alice, pot, models.Measurement{Timestamp: older, SoilMoisture: 40})
	require.NoError(t, err)
	saved, err := svc.Record(ctx, alice, pot, models.Measurement{Timestamp: newer, SoilMoisture: 38, PotID: 12345})
	require.NoError(t, err)
	assert.Equal(t, pot, saved.PotID, "pot comes from the path, not the body")

	list, err := svc.List(ctx, alice, pot)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Timestamp.Equal(newer))
	assert.True(t, list[1].Timestamp.Equal(older))
}

func TestMeasurementService_Rejects(t *testing.T) {
	store := newMemStore()
	svc := NewMeasurementService(nil, &fakeRepoManager{s: store})
	ctx := context.Background()
	bobsPot := store.addPot(bob)
	myPot := store.addPot(alice)

	_, err := svc.Record(ctx, alice, bobsPot, models.Measurement{Timestamp: time.Now()})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.List(ctx, alice, bobsPot)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.Record(ctx, alice, myPot, models.Measurement{})
	assert.ErrorIs(t, err, common.ErrorValidation)

	store.fail["measurements.Create"] = errBoom
	_, err = svc.Record(ctx, alice, myPot, models.Measurement{Timestamp: time.Now()})
	assert.ErrorIs(t, err, common.ErrorInternal)
}
