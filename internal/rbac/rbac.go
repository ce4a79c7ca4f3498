// Package rbac provides group and permission management. Groups collect
// named permissions scoped to a single record type; all setup operations
// are idempotent lookup-or-create steps so the bootstrap can run on every
// start.
package rbac

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Permission actions following the view/add/change/delete convention.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// Service manages groups and their permission grants.
type Service struct {
	db *gorm.DB
}

// NewService creates a new rbac service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Codename builds the canonical permission name for an action on a record
// type, e.g. Codename("view", "MedicalRecord") == "view_medicalrecord".
func Codename(action, recordType string) string {
	return action + "_" + strings.ToLower(recordType)
}

// EnsureGroup looks up a group by name, creating it when absent.
func (s *Service) EnsureGroup(name string) (*entities.Group, error) {
	var group entities.Group
	err := s.db.Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group = entities.Group{Name: name}
		if err := s.db.Create(&group).Error; err != nil {
			return nil, fmt.Errorf("failed to create group %q: %w", name, err)
		}
		return &group, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// EnsurePermission looks up the permission for an action on a record type,
// creating it when absent.
func (s *Service) EnsurePermission(action, recordType string) (*entities.Permission, error) {
	codename := Codename(action, recordType)

	var permission entities.Permission
	err := s.db.Where("codename = ?", codename).First(&permission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		permission = entities.Permission{
			Codename:   codename,
			RecordType: strings.ToLower(recordType),
		}
		if err := s.db.Create(&permission).Error; err != nil {
			return nil, fmt.Errorf("failed to create permission %q: %w", codename, err)
		}
		return &permission, nil
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// Grant associates the given actions on a record type with a group.
// Granting an already-held permission is a no-op.
func (s *Service) Grant(group *entities.Group, recordType string, actions ...string) error {
	for _, action := range actions {
		permission, err := s.EnsurePermission(action, recordType)
		if err != nil {
			return err
		}
		held, err := s.hasPermission(group.ID, permission.ID)
		if err != nil {
			return err
		}
		if held {
			continue
		}
		if err := s.db.Model(group).Association("Permissions").Append(permission); err != nil {
			return fmt.Errorf("failed to grant %q to %q: %w", permission.Codename, group.Name, err)
		}
	}
	return nil
}

// GroupPermissions returns the codenames held by a group.
func (s *Service) GroupPermissions(name string) ([]string, error) {
	var group entities.Group
	err := s.db.Preload("Permissions").Where("name = ?", name).First(&group).Error
	if err != nil {
		return nil, err
	}
	codenames := make([]string, 0, len(group.Permissions))
	for _, permission := range group.Permissions {
		codenames = append(codenames, permission.Codename)
	}
	return codenames, nil
}

// HasPermission reports whether the group holds an action on a record type.
func (s *Service) HasPermission(groupName, action, recordType string) (bool, error) {
	codenames, err := s.GroupPermissions(groupName)
	if err != nil {
		return false, err
	}
	want := Codename(action, recordType)
	for _, codename := range codenames {
		if codename == want {
			return true, nil
		}
	}
	return false, nil
}

// Bootstrap sets up the medical-record role example: doctors may view, add
// and change records, nurses may view and add, patients may only view.
func (s *Service) Bootstrap() error {
	grants := []struct {
		group   string
		actions []string
	}{
		{"doctor", []string{ActionView, ActionAdd, ActionChange}},
		{"nurse", []string{ActionView, ActionAdd}},
		{"patient", []string{ActionView}},
	}

	for _, grant := range grants {
		group, err := s.EnsureGroup(grant.group)
		if err != nil {
			return err
		}
		if err := s.Grant(group, "MedicalRecord", grant.actions...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) hasPermission(groupID, permissionID uint) (bool, error) {
	var count int64
	err := s.db.Table("group_permissions").
		Where("group_id = ? AND permission_id = ?", groupID, permissionID).
		Count(&count).Error
	return count > 0, err
}
