package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	ownerSubject    = "owner"
)

// 请求：(用户, 资源所有者, 动作)；策略：(角色, 动作)
const defaultOwnerModel = `
[request_definition]
r = sub, owner, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub != "" && p.sub == "owner" && r.sub == r.owner && (r.act == p.act || p.act == "*")
`

// Service Casbin 授权服务
// 文章的更新与删除只允许作者本人执行
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultOwnerModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// CanModifyPost 判断用户能否对文章执行指定动作
func (s *Service) CanModifyPost(userID, ownerID, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(userID), strings.TrimSpace(ownerID), NormalizeAction(action))
}

// ReloadPolicy 重新加载策略
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// NormalizeAction 统一动作格式
func NormalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
