package commandvalidator

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/pkg/errors"
)

// validationContext is the state of the validation of a single command
type validationContext struct {
	creator     string
	permissions map[string]struct{}
	wsvQuery    model.WSVQuery
}

func (c *validationContext) hasPermission(permission string) bool {
	_, ok := c.permissions[permission]
	return ok
}

func (c *validationContext) requirePermission(permission string) error {
	if !c.hasPermission(permission) {
		return errors.Wrapf(ruleerrors.ErrNoPermission, "%s lacks %s", c.creator, permission)
	}
	return nil
}

// requireAllPermissions checks that the creator holds every one of
// permissions, so that no account can hand out more than it holds
func (c *validationContext) requireAllPermissions(permissions []string) error {
	for _, permission := range permissions {
		err := c.requirePermission(permission)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *validationContext) validateSetAccountDetail(command *model.SetAccountDetail) error {
	if c.creator == command.AccountID ||
		c.hasPermission(model.CanSetDetail) ||
		c.wsvQuery.HasAccountGrantablePermission(c.creator, command.AccountID, model.CanSetMyAccountDetail) {
		return nil
	}
	return errors.Wrapf(ruleerrors.ErrUnauthorizedDetailWriter, "%s may not write the detail of %s",
		c.creator, command.AccountID)
}

func (c *validationContext) validateGrantPermission(command *model.GrantPermission) error {
	err := checkGrantable(command.Permission)
	if err != nil {
		return err
	}
	err = c.requirePermission(model.CanGrantPermission(command.Permission))
	if err != nil {
		return err
	}
	if !c.wsvQuery.HasAccountGrantablePermission(command.AccountID, c.creator, command.Permission) {
		return errors.Wrapf(ruleerrors.ErrGrantNotStaged, "%s was granted %s over %s, but the grant is missing",
			command.AccountID, command.Permission, c.creator)
	}
	return nil
}

func (c *validationContext) validateSetQuorum(command *model.SetQuorum) error {
	if command.Quorum < 1 || command.Quorum > model.MaxQuorum {
		return errors.Wrapf(ruleerrors.ErrBadQuorum, "quorum %d is out of the range [1, %d]",
			command.Quorum, model.MaxQuorum)
	}
	isOwnAccount := c.creator == command.AccountID
	if !(isOwnAccount && c.hasPermission(model.CanSetQuorum)) &&
		!c.wsvQuery.HasAccountGrantablePermission(c.creator, command.AccountID, model.CanSetMyQuorum) {
		return errors.Wrapf(ruleerrors.ErrNoPermission, "%s may not set the quorum of %s",
			c.creator, command.AccountID)
	}
	account, ok := c.wsvQuery.Account(command.AccountID)
	if !ok || account.Quorum != command.Quorum {
		return errors.Errorf("the quorum of %s was not set to %d", command.AccountID, command.Quorum)
	}
	return nil
}
