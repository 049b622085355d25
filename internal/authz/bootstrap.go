package authz

import (
	"fmt"

	"github.com/newsdesk/internal/constants"
)

// OwnerActions 作者本人可执行的文章动作
func OwnerActions() []string {
	return []string{constants.PostActionUpdate, constants.PostActionDelete}
}

// BootstrapOwnerPolicies 确保作者策略存在，可重复执行
func (s *Service) BootstrapOwnerPolicies() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, action := range OwnerActions() {
		added, err := s.enforcer.AddPolicy(ownerSubject, NormalizeAction(action))
		if err != nil {
			return fmt.Errorf("add owner policy failed: %w", err)
		}
		if added {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("save authz policy failed: %w", err)
	}
	return s.enforcer.LoadPolicy()
}
