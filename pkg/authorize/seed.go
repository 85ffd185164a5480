package authorize

import (
	"context"
	"log/slog"
)

// DefaultPolicies is the baseline policy set. Ownership of user scoped
// records (self or admin) is checked by the handlers on top of these.
func DefaultPolicies() []PermissionPolicy {
	return []PermissionPolicy{
		// Admin: everything
		{RoleAdmin, WildcardResource, WildcardAction, EffectAllow},

		{RoleUser, ResourceDoctor, ActionRead, EffectAllow},
		{RoleUser, ResourceDoctor, ActionList, EffectAllow},

		{RoleUser, ResourceAppointment, ActionCreate, EffectAllow},
		{RoleUser, ResourceAppointment, ActionRead, EffectAllow},
		{RoleUser, ResourceAppointment, ActionApprove, EffectDeny},

		{RoleUser, ResourceUser, ActionRead, EffectAllow},
		{RoleUser, ResourceUser, ActionUpdate, EffectAllow},
		{RoleUser, ResourceUser, ActionDelete, EffectAllow},
		{RoleUser, ResourceUser, ActionList, EffectDeny},

		{RoleUser, ResourceFeedback, ActionCreate, EffectAllow},

		{RoleUser, ResourceNotification, ActionRead, EffectAllow},
		{RoleUser, ResourceNotification, ActionDelete, EffectAllow},

		{RoleUser, ResourceTestRecord, ActionRead, EffectAllow},
		{RoleUser, ResourceTreatment, ActionRead, EffectAllow},

		{RoleUser, ResourcePayment, ActionCreate, EffectAllow},
		{RoleUser, ResourcePayment, ActionRead, EffectAllow},
		{RoleUser, ResourcePayment, ActionApprove, EffectDeny},

		{RoleUser, ResourceBookingMessage, ActionRead, EffectAllow},
		{RoleUser, ResourceBookingMessage, ActionDelete, EffectAllow},

		{RoleUser, ResourceFile, ActionRead, EffectAllow},
	}
}

// SeedDefaultPolicies loads DefaultPolicies into auth.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	policies := DefaultPolicies()
	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action, "effect", p.Effect)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}

// New returns a seeded authorization, wrapped with audit logging when audit
// is true.
func New(ctx context.Context, modelPath string, audit bool, logger *slog.Logger) (IAuthorization, error) {
	e, err := NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}
	auth, err := NewAuthorization(e)
	if err != nil {
		return nil, err
	}
	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		return nil, err
	}
	if audit {
		auth = NewAuditedAuthorization(auth, logger)
	}
	return auth, nil
}
