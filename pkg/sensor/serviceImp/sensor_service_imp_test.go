package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldwatch/entities"
	"fieldwatch/pkg/apperr"
	fieldImp "fieldwatch/pkg/field/repositoryImp"
	fieldsvc "fieldwatch/pkg/field/service"
	fieldsvcImp "fieldwatch/pkg/field/serviceImp"
	repo "fieldwatch/pkg/sensor/repository"
	sensorImp "fieldwatch/pkg/sensor/repositoryImp"
	"fieldwatch/pkg/sensor/service"
	"fieldwatch/pkg/testutil"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*sensorSvc, uint) {
	t.Helper()
	db := testutil.OpenDB(t)
	fields := fieldsvcImp.NewFieldService(fieldImp.New(db), testutil.Logger())
	f, err := fields.Create(context.Background(), "alice", fieldsvc.FieldInput{Name: "East", CropType: "wheat"})
	require.NoError(t, err)
	return NewSensorService(sensorImp.New(db), fields).(*sensorSvc), f.FieldID
}

func reading(fid uint, typ entities.SensorType, v float64, at time.Time) service.ReadingInput {
	return service.ReadingInput{FieldID: fid, SensorID: "s-1", SensorType: typ, Value: v, Unit: "u", Timestamp: &at}
}

func TestAdd_DefaultsTimestampAndValidates(t *testing.T) {
	s, fid := setup(t)
	ctx := context.Background()
	s.now = func() time.Time { return base }

	m, err := s.Add(ctx, "alice", service.ReadingInput{FieldID: fid, SensorID: "probe", SensorType: entities.SensorPH, Value: 6.5})
	require.NoError(t, err)
	assert.True(t, base.Equal(m.Timestamp))

	_, err = s.Add(ctx, "alice", service.ReadingInput{FieldID: fid, SensorID: "probe", SensorType: "radiation"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = s.Add(ctx, "bob", reading(fid, entities.SensorPH, 7, base))
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)

	_, err = s.Add(ctx, "", reading(fid, entities.SensorPH, 7, base))
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestQuery_InclusiveRangeNewestFirst(t *testing.T) {
	s, fid := setup(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Add(ctx, "alice", reading(fid, entities.SensorHumidity, float64(i), base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := s.Add(ctx, "alice", reading(fid, entities.SensorPH, 6, base.Add(2*time.Hour)))
	require.NoError(t, err)

	start, end := base.Add(time.Hour), base.Add(3*time.Hour)
	typ := entities.SensorHumidity
	out, err := s.Query(ctx, "alice", repo.ReadingQuery{FieldID: fid, Type: &typ, Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 3.0, out[0].Value)
	assert.Equal(t, 1.0, out[2].Value)

	all, err := s.Query(ctx, "alice", repo.ReadingQuery{FieldID: fid})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	foreign, err := s.Query(ctx, "bob", repo.ReadingQuery{FieldID: fid})
	require.NoError(t, err)
	assert.NotNil(t, foreign)
	assert.Empty(t, foreign)

	bad := entities.SensorType("x")
	_, err = s.Query(ctx, "alice", repo.ReadingQuery{FieldID: fid, Type: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLatest_FirstPerType(t *testing.T) {
	s, fid := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := s.Add(ctx, "alice", reading(fid, entities.SensorSoilMoisture, float64(10+i), at))
		require.NoError(t, err)
		_, err = s.Add(ctx, "alice", reading(fid, entities.SensorAirTemperature, float64(20+i), at))
		require.NoError(t, err)
	}

	out, err := s.Latest(ctx, "alice", fid)
	require.NoError(t, err)
	require.Len(t, out, 2)
	got := map[entities.SensorType]float64{}
	for _, m := range out {
		got[m.SensorType] = m.Value
	}
	assert.Equal(t, 12.0, got[entities.SensorSoilMoisture])
	assert.Equal(t, 22.0, got[entities.SensorAirTemperature])

	none, err := s.Latest(ctx, "bob", fid)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLatest_OnlyLooksAtRecentWindow(t *testing.T) {
	s, fid := setup(t)
	ctx := context.Background()
	_, err := s.Add(ctx, "alice", reading(fid, entities.SensorLeafWetness, 1, base))
	require.NoError(t, err)

	batch := make([]entities.SensorReading, 0, service.LatestWindow)
	for i := 1; i <= service.LatestWindow; i++ {
		batch = append(batch, entities.SensorReading{
			FieldID: fid, SensorID: "s", SensorType: entities.SensorPH, Value: 7,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, s.r.CreateBatch(ctx, batch))

	out, err := s.Latest(ctx, "alice", fid)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, entities.SensorPH, out[0].SensorType)
}

func TestQuery_ComparesInstantsAcrossZones(t *testing.T) {
	s, fid := setup(t)
	ctx := context.Background()
	plus2 := time.FixedZone("CEST", 2*3600)
	minus7 := time.FixedZone("PDT", -7*3600)

	at10 := time.Date(2024, 6, 1, 12, 0, 0, 0, plus2)  // 10:00Z
	at1030 := time.Date(2024, 6, 1, 3, 30, 0, 0, minus7) // 10:30Z
	at1130 := time.Date(2024, 6, 1, 13, 30, 0, 0, plus2) // 11:30Z
	for i, at := range []time.Time{at10, at1030, at1130} {
		_, err := s.Add(ctx, "alice", reading(fid, entities.SensorHumidity, float64(i), at))
		require.NoError(t, err)
	}

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 4, 0, 0, 0, minus7) // 11:00Z
	out, err := s.Query(ctx, "alice", repo.ReadingQuery{FieldID: fid, Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, at1030.Equal(out[0].Timestamp))
	assert.True(t, at10.Equal(out[1].Timestamp))
}
