package layout

import (
	"errors"
	"fmt"
)

// SignerRole names who is signing when a slot is not standalone.
type SignerRole string

const (
	RoleChild          SignerRole = "child"
	RoleParentGuardian SignerRole = "parent/guardian"
	RoleCaseworker     SignerRole = "caseworker"
	RoleSupervisor     SignerRole = "supervisor"
	RoleAgencyRep      SignerRole = "agency representative"
)

// SignerRoles is the selection menu offered for non-standalone documents.
var SignerRoles = []SignerRole{RoleChild, RoleParentGuardian, RoleCaseworker, RoleSupervisor, RoleAgencyRep}

// ErrUnknownRole is returned when a menu choice is not on offer.
var ErrUnknownRole = errors.New("layout: signer role not offered")

// SignatureSlot is a named place a signature image can go.
type SignatureSlot struct {
	Area   string `json:"area"`
	Label  string `json:"label"`
	Image  string `json:"image,omitempty"`
	Signed bool   `json:"signed"`
	Date   string `json:"date,omitempty"`
	// Controls is nil in print and export modes.
	Controls *SignatureControls `json:"controls,omitempty"`
}

// SignatureControls is the interactive chrome of a slot.
type SignatureControls struct {
	Area      string       `json:"area"`
	CanAdd    bool         `json:"canAdd"`
	CanRemove bool         `json:"canRemove"`
	Direct    bool         `json:"direct"`
	Roles     []SignerRole `json:"roles,omitempty"`
	Tooltip   string       `json:"tooltip,omitempty"`
}

// SignatureRequest is what activating an add control hands the caller's
// signature callback.
type SignatureRequest struct {
	Area string     `json:"area"`
	Role SignerRole `json:"role,omitempty"`
}

// Activate resolves an add click. Direct controls ignore role; menu controls
// require one of the offered roles.
func (c SignatureControls) Activate(role SignerRole) (SignatureRequest, error) {
	if !c.CanAdd {
		return SignatureRequest{}, fmt.Errorf("layout: slot %q is already signed", c.Area)
	}
	if c.Direct {
		return SignatureRequest{Area: c.Area}, nil
	}
	for _, offered := range c.Roles {
		if offered == role {
			return SignatureRequest{Area: c.Area, Role: role}, nil
		}
	}
	return SignatureRequest{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

// SignatureLookup reads the image placed in an area.
type SignatureLookup interface {
	Get(area string) (string, bool)
}

// Slot builds the slot for area. In interactive mode a signed slot offers
// removal and an unsigned slot offers an add control that either activates
// directly (standalone) or via the signer-role menu.
func Slot(area, label string, sigs SignatureLookup, standalone bool, mode Mode) SignatureSlot {
	slot := SignatureSlot{Area: area, Label: label}
	if sigs != nil {
		if ref, ok := sigs.Get(area); ok && ref != "" {
			slot.Image = ref
			slot.Signed = true
		}
	}
	if !mode.Interactive() {
		return slot
	}

	controls := &SignatureControls{Area: area}
	if slot.Signed {
		controls.CanRemove = true
		controls.Tooltip = "Remove signature"
	} else {
		controls.CanAdd = true
		controls.Direct = standalone
		controls.Tooltip = "Add signature"
		if !standalone {
			controls.Roles = append([]SignerRole(nil), SignerRoles...)
		}
	}
	slot.Controls = controls
	return slot
}
