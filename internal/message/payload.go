package message

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type URLs attached to GKE cluster notifications. Any other value is carried
// through as an UnknownTypeEvent so new event types degrade gracefully.
const (
	TypeURLSecurityBulletinEvent = "type.googleapis.com/google.container.v1beta1.SecurityBulletinEvent"
	TypeURLUpgradeAvailableEvent = "type.googleapis.com/google.container.v1beta1.UpgradeAvailableEvent"
	TypeURLUpgradeEvent          = "type.googleapis.com/google.container.v1beta1.UpgradeEvent"
)

// Payload is the polymorphic event body carried in the message attributes.
// The variant is selected from the attributes' type_url, never inferred from
// the payload shape. A nil Payload means no payload body was present.
type Payload interface {
	isPayload()
}

// decodePayload dispatches on the type_url discriminator and decodes the
// embedded JSON payload into the matching variant. A malformed payload for a
// known type is a fatal decode error; unknown types are kept verbatim.
func decodePayload(typeURL, payload string) (Payload, error) {
	switch typeURL {
	case TypeURLSecurityBulletinEvent:
		var p SecurityBulletinEvent
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, err
		}
		return &p, nil
	case TypeURLUpgradeAvailableEvent:
		var p UpgradeAvailableEvent
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, err
		}
		p.ResourceType = p.ResourceType.orUnspecified()
		return &p, nil
	case TypeURLUpgradeEvent:
		var p UpgradeEvent
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, err
		}
		p.ResourceType = p.ResourceType.orUnspecified()
		return &p, nil
	default:
		if payload == "" {
			return nil, nil
		}
		return &UnknownTypeEvent{Raw: payload}, nil
	}
}

// SecurityBulletinEvent is sent when a security bulletin has been posted that
// the receiving cluster is vulnerable to.
type SecurityBulletinEvent struct {
	// The GKE minor versions affected by this vulnerability.
	AffectedSupportedMinors []string `json:"affectedSupportedMinors"`

	// A brief description of the bulletin; the bulletin URI has the full text.
	BriefDescription string `json:"briefDescription"`

	// The ID of the bulletin corresponding to the vulnerability.
	BulletinID string `json:"bulletinId"`

	// The URI link to the bulletin on the website for more information.
	BulletinURI string `json:"bulletinUri"`

	// The CVEs associated with this bulletin.
	CVEIDs []string `json:"cveIds"`

	// True when manual steps are required to make clusters safe.
	ManualStepsRequired bool `json:"manualStepsRequired"`

	// The GKE versions where this vulnerability is patched.
	PatchedVersions []string `json:"patchedVersions"`

	// The resource type (node/control plane) that has the vulnerability. One
	// notification is sent per affected resource type.
	ResourceTypeAffected string `json:"resourceTypeAffected"`

	// The severity of this bulletin as it relates to GKE.
	Severity string `json:"severity"`

	// The patched version the receiving cluster should most likely upgrade
	// to, selected based on its current version and location.
	SuggestedUpgradeTarget string `json:"suggestedUpgradeTarget"`
}

func (*SecurityBulletinEvent) isPayload() {}

// UpgradeAvailableEvent is sent when a new available version is released.
type UpgradeAvailableEvent struct {
	// The release channel of the version.
	ReleaseChannel ReleaseChannel `json:"releaseChannel"`

	// Optional relative path to the resource, e.g. the node pool path.
	Resource string `json:"resource"`

	// The resource type of the release version.
	ResourceType ResourceType `json:"resourceType"`

	// The release version available for upgrade.
	Version string `json:"version"`
}

func (*UpgradeAvailableEvent) isPayload() {}

// UpgradeEvent is sent when a resource is upgrading.
type UpgradeEvent struct {
	// The current version before the upgrade.
	CurrentVersion string `json:"currentVersion"`

	// The operation associated with this upgrade.
	Operation string `json:"operation"`

	// The time when the operation was started.
	OperationStartTime string `json:"operationStartTime"`

	// Optional relative path to the resource, e.g. the node pool path.
	Resource string `json:"resource"`

	// The resource type that is upgrading.
	ResourceType ResourceType `json:"resourceType"`

	// The target version for the upgrade.
	TargetVersion string `json:"targetVersion"`
}

func (*UpgradeEvent) isPayload() {}

// UnknownTypeEvent carries the verbatim payload text of a type_url this
// service does not recognize.
type UnknownTypeEvent struct {
	Raw string
}

func (*UnknownTypeEvent) isPayload() {}

// ResourceType identifies which part of a cluster an upgrade event refers to.
type ResourceType string

const (
	ResourceTypeControlPlane ResourceType = "MASTER"
	ResourceTypeNodePool     ResourceType = "NODE_POOL"

	resourceTypeUnspecified ResourceType = "UPGRADE_RESOURCE_TYPE_UNSPECIFIED"
)

func (rt ResourceType) orUnspecified() ResourceType {
	if rt == "" {
		return resourceTypeUnspecified
	}
	return rt
}

// Label returns the human wording for a resource type. Unrecognized wire
// values report known=false and echo the raw string.
func (rt ResourceType) Label() (label string, known bool) {
	switch rt {
	case ResourceTypeControlPlane:
		return "Control plane", true
	case ResourceTypeNodePool:
		return "Node pool", true
	default:
		return string(rt), false
	}
}

// ReleaseChannel indicates which release channel a cluster is subscribed to.
type ReleaseChannel string

const (
	ReleaseChannelUnspecified ReleaseChannel = "UNSPECIFIED"
	ReleaseChannelRapid       ReleaseChannel = "RAPID"
	ReleaseChannelRegular     ReleaseChannel = "REGULAR"
	ReleaseChannelStable      ReleaseChannel = "STABLE"
)

// UnmarshalJSON decodes the nested {"channel": "<NAME>"} wire form.
// Unrecognized channel names fall back to UNSPECIFIED.
func (rc *ReleaseChannel) UnmarshalJSON(b []byte) error {
	var wire struct {
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return fmt.Errorf("decode release channel: %w", err)
	}
	switch strings.ToUpper(wire.Channel) {
	case "RAPID":
		*rc = ReleaseChannelRapid
	case "REGULAR":
		*rc = ReleaseChannelRegular
	case "STABLE":
		*rc = ReleaseChannelStable
	default:
		*rc = ReleaseChannelUnspecified
	}
	return nil
}

func (rc ReleaseChannel) String() string {
	if rc == "" {
		return string(ReleaseChannelUnspecified)
	}
	return string(rc)
}
