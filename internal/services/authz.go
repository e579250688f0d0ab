package services

import (
	"context"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

// storeAccess loads a store the session wants to manage. Customers are turned
// away before any lookup; managers must own the store; admins pass when
// allowAdmin is set.
func storeAccess(ctx context.Context, stores *repos.StoreRepo, s domain.Session, storeID int64, action string, allowAdmin bool) (domain.Store, error) {
	if !s.IsManager() && !(allowAdmin && s.IsAdmin()) {
		deny(s, storeID, action)
		return domain.Store{}, ErrDenied
	}
	st, err := stores.Get(ctx, storeID)
	if err != nil {
		return domain.Store{}, notFound(err, "store")
	}
	if s.IsManager() && st.ManagerID != s.UserID {
		deny(s, storeID, action)
		return domain.Store{}, ErrDenied
	}
	return st, nil
}

func deny(s domain.Session, storeID int64, action string) {
	applog.Security(nil, "access.denied."+action, map[string]any{
		"user":  s.UserID,
		"role":  string(s.Role),
		"store": storeID,
	})
}
