package cli

import (
	"github.com/spf13/pflag"

	"github.com/raidbook/raidbook/internal/checklist"
)

// roleValue is a pflag.Value accepting exactly Physical, Special or Support.
type roleValue struct {
	role *checklist.Role
}

var _ pflag.Value = (*roleValue)(nil)

func newRoleValue(target *checklist.Role) *roleValue {
	return &roleValue{role: target}
}

func (r *roleValue) String() string {
	if r.role == nil {
		return ""
	}
	return string(*r.role)
}

func (r *roleValue) Set(s string) error {
	role, err := checklist.ParseRole(s)
	if err != nil {
		return err
	}
	*r.role = role
	return nil
}

func (r *roleValue) Type() string {
	return "usage"
}
