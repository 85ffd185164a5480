package authorize

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(t *testing.T) IAuthorization {
	t.Helper()
	auth, err := New(context.Background(), "", false, nil)
	require.NoError(t, err)
	return auth
}

func TestEnforce_DefaultPolicies(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		role   Role
		object Resource
		action Action
		want   bool
	}{
		{"admin creates doctor", RoleAdmin, ResourceDoctor, ActionCreate, true},
		{"admin approves payment", RoleAdmin, ResourcePayment, ActionApprove, true},
		{"admin reads reports", RoleAdmin, ResourceReport, ActionRead, true},
		{"user lists doctors", RoleUser, ResourceDoctor, ActionList, true},
		{"user books appointment", RoleUser, ResourceAppointment, ActionCreate, true},
		{"user cannot approve appointment", RoleUser, ResourceAppointment, ActionApprove, false},
		{"user cannot create doctor", RoleUser, ResourceDoctor, ActionCreate, false},
		{"user cannot list customers", RoleUser, ResourceUser, ActionList, false},
		{"user cannot write test records", RoleUser, ResourceTestRecord, ActionCreate, false},
		{"user reads own treatments", RoleUser, ResourceTreatment, ActionRead, true},
		{"user cannot read reports", RoleUser, ResourceReport, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, tt.role, tt.object, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforce_InvalidArgs(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	_, err := auth.Enforce(ctx, "", ResourceDoctor, ActionRead)
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = auth.Enforce(ctx, RoleUser, Resource("ward"), ActionRead)
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = auth.Enforce(ctx, RoleUser, ResourceDoctor, Action("fly"))
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestMustEnforce(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	assert.NoError(t, auth.MustEnforce(ctx, RoleUser, ResourcePayment, ActionCreate))
	assert.True(t, errors.Is(auth.MustEnforce(ctx, RoleUser, ResourcePayment, ActionDelete), ErrForbidden))
}

func TestAddRemovePermission(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	ok, err := auth.AddPermission(ctx, RoleUser, ResourceReport, ActionRead, EffectAllow)
	require.NoError(t, err)
	assert.True(t, ok)

	allowed, err := auth.Enforce(ctx, RoleUser, ResourceReport, ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	ok, err = auth.RemovePermission(ctx, RoleUser, ResourceReport, ActionRead, EffectAllow)
	require.NoError(t, err)
	assert.True(t, ok)

	allowed, err = auth.Enforce(ctx, RoleUser, ResourceReport, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)

	_, err = auth.AddPermission(ctx, Role("role:nurse"), ResourceReport, ActionRead, EffectAllow)
	assert.ErrorIs(t, err, ErrInvalidArgs)
	_, err = auth.AddPermission(ctx, RoleUser, ResourceReport, ActionRead, PolicyEffect("maybe"))
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFor("admin"))
	assert.Equal(t, RoleUser, RoleFor("user"))
	assert.Equal(t, RoleUser, RoleFor(""))
}

func TestAuditedAuthorization_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	auth, err := New(context.Background(), "", true, logger)
	require.NoError(t, err)

	allowed, err := auth.Enforce(context.Background(), RoleUser, ResourceDoctor, ActionDelete)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Contains(t, buf.String(), "authz_decision")
	assert.Contains(t, buf.String(), `"resource":"doctor"`)
}
