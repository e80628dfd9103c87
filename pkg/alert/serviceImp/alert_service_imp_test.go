package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldwatch/entities"
	alertrepo "fieldwatch/pkg/alert/repository"
	alertImp "fieldwatch/pkg/alert/repositoryImp"
	"fieldwatch/pkg/alert/service"
	"fieldwatch/pkg/apperr"
	fieldImp "fieldwatch/pkg/field/repositoryImp"
	fieldsvc "fieldwatch/pkg/field/service"
	fieldsvcImp "fieldwatch/pkg/field/serviceImp"
	"fieldwatch/pkg/testutil"
)

type fixture struct {
	svc    *alertSvc
	fields fieldsvc.FieldService
}

func newFixture(t *testing.T) fixture {
	db := testutil.OpenDB(t)
	fields := fieldsvcImp.NewFieldService(fieldImp.New(db), testutil.Logger())
	svc := NewAlertService(alertImp.New(db), fields, testutil.Logger()).(*alertSvc)
	return fixture{svc: svc, fields: fields}
}

func (fx fixture) field(t *testing.T, uid string) uint {
	t.Helper()
	f, err := fx.fields.Create(context.Background(), uid, fieldsvc.FieldInput{Name: "North", CropType: "maize"})
	require.NoError(t, err)
	return f.FieldID
}

func input(fieldID uint) service.AlertInput {
	return service.AlertInput{
		FieldID:  fieldID,
		Severity: entities.SeverityHigh,
		Type:     entities.AlertPestRisk,
		Title:    "Aphids",
	}
}

func TestCreate_ChecksFieldOwnership(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fid := fx.field(t, "alice")

	_, err := fx.svc.Create(ctx, "", input(fid))
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = fx.svc.Create(ctx, "bob", input(fid))
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)

	a, err := fx.svc.Create(ctx, "alice", input(fid))
	require.NoError(t, err)
	assert.Equal(t, "alice", a.UserID)
	assert.Nil(t, a.AcknowledgedAt)
}

func TestCreate_ValidatesEnums(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fid := fx.field(t, "alice")

	in := input(fid)
	in.Severity = "urgent"
	_, err := fx.svc.Create(ctx, "alice", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	in = input(fid)
	in.Type = "frost"
	_, err = fx.svc.Create(ctx, "alice", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	in = input(fid)
	in.Title = "  "
	_, err = fx.svc.Create(ctx, "alice", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListForUser_NewestFirstWithFilters(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	f1, f2 := fx.field(t, "alice"), fx.field(t, "alice")

	first, err := fx.svc.Create(ctx, "alice", input(f1))
	require.NoError(t, err)
	second, err := fx.svc.Create(ctx, "alice", input(f2))
	require.NoError(t, err)
	third, err := fx.svc.Create(ctx, "alice", input(f1))
	require.NoError(t, err)

	all, err := fx.svc.ListForUser(ctx, "alice", alertrepo.AlertFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{third.AlertID, second.AlertID, first.AlertID},
		[]uint{all[0].AlertID, all[1].AlertID, all[2].AlertID})

	onF1, err := fx.svc.ListForUser(ctx, "alice", alertrepo.AlertFilter{FieldID: &f1})
	require.NoError(t, err)
	assert.Len(t, onF1, 2)

	_, err = fx.svc.Acknowledge(ctx, "alice", second.AlertID)
	require.NoError(t, err)

	yes, no := true, false
	acked, err := fx.svc.ListForUser(ctx, "alice", alertrepo.AlertFilter{Acknowledged: &yes})
	require.NoError(t, err)
	require.Len(t, acked, 1)
	assert.Equal(t, second.AlertID, acked[0].AlertID)

	open, err := fx.svc.ListForUser(ctx, "alice", alertrepo.AlertFilter{Acknowledged: &no})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	none, err := fx.svc.ListForUser(ctx, "", alertrepo.AlertFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListForField_EmptyWhenNotOwned(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fid := fx.field(t, "alice")
	_, err := fx.svc.Create(ctx, "alice", input(fid))
	require.NoError(t, err)

	out, err := fx.svc.ListForField(ctx, "alice", fid)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = fx.svc.ListForField(ctx, "bob", fid)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out, err = fx.svc.ListForField(ctx, "alice", fid+100)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAcknowledge_OverwritesAndScopes(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fid := fx.field(t, "alice")
	a, err := fx.svc.Create(ctx, "alice", input(fid))
	require.NoError(t, err)

	_, err = fx.svc.Acknowledge(ctx, "bob", a.AlertID)
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)

	_, err = fx.svc.Acknowledge(ctx, "", a.AlertID)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	t1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	fx.svc.now = func() time.Time { return t1 }
	got, err := fx.svc.Acknowledge(ctx, "alice", a.AlertID)
	require.NoError(t, err)
	require.NotNil(t, got.AcknowledgedAt)
	assert.True(t, t1.Equal(*got.AcknowledgedAt))
	require.NotNil(t, got.AcknowledgedBy)
	assert.Equal(t, "alice", *got.AcknowledgedBy)

	t2 := t1.Add(time.Hour)
	fx.svc.now = func() time.Time { return t2 }
	got, err = fx.svc.Acknowledge(ctx, "alice", a.AlertID)
	require.NoError(t, err)
	assert.True(t, t2.Equal(*got.AcknowledgedAt))
}
