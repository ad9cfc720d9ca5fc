package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Attributes is the metadata sidecar on a cluster notification: project and
// cluster identity plus the type-tagged event payload.
type Attributes struct {
	ProjectID       string
	ClusterName     string
	ClusterLocation string
	TypeURL         string
	Payload         Payload

	// ProjectName is not part of the wire format. It is overlaid after decode
	// from process configuration, see Message.WithProjectName.
	ProjectName string
}

// UnmarshalJSON decodes attributes in two passes: the flat wire object first,
// then the embedded payload string dispatched on the type_url discriminator.
func (a *Attributes) UnmarshalJSON(b []byte) error {
	var wire struct {
		ProjectID       string `json:"project_id"`
		ClusterName     string `json:"cluster_name"`
		ClusterLocation string `json:"cluster_location"`
		TypeURL         string `json:"type_url"`
		Payload         string `json:"payload"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	payload, err := decodePayload(wire.TypeURL, wire.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", wire.TypeURL, err)
	}

	*a = Attributes{
		ProjectID:       wire.ProjectID,
		ClusterName:     wire.ClusterName,
		ClusterLocation: wire.ClusterLocation,
		TypeURL:         wire.TypeURL,
		Payload:         payload,
	}
	return nil
}

// Project returns the configured human-readable project name, falling back
// to the numeric project ID carried in the message.
func (a Attributes) Project() string {
	if a.ProjectName != "" {
		return a.ProjectName
	}
	return a.ProjectID
}

// payloadResource extracts the optional resource sub-path and resource type
// from the upgrade-flavored payload variants.
func (a Attributes) payloadResource() (resource string, rt ResourceType, ok bool) {
	switch p := a.Payload.(type) {
	case *UpgradeAvailableEvent:
		return p.Resource, p.ResourceType, true
	case *UpgradeEvent:
		return p.Resource, p.ResourceType, true
	default:
		return "", "", false
	}
}

// ResourceURI identifies the affected resource as a path. GKE supplies a
// fully qualified path for node pool events; for everything else the cluster
// path is reconstructed from the attributes.
func (a Attributes) ResourceURI() string {
	if res, rt, ok := a.payloadResource(); ok && rt == ResourceTypeNodePool && res != "" {
		return res
	}
	return fmt.Sprintf("projects/%s/locations/%s/clusters/%s", a.Project(), a.ClusterLocation, a.ClusterName)
}

// ResourceURL deep-links to the Cloud Console page for the affected
// resource: the node pool page when the payload names one, the cluster
// detail page otherwise.
func (a Attributes) ResourceURL() string {
	if pool := a.nodePoolName(); pool != "" {
		return fmt.Sprintf(
			"https://console.cloud.google.com/kubernetes/nodepool/%s/%s/%s?project=%s",
			a.ClusterLocation, a.ClusterName, pool, a.Project(),
		)
	}
	return fmt.Sprintf(
		"https://console.cloud.google.com/kubernetes/clusters/details/%s/%s?project=%s",
		a.ClusterLocation, a.ClusterName, a.Project(),
	)
}

func (a Attributes) nodePoolName() string {
	res, _, ok := a.payloadResource()
	if !ok {
		return ""
	}
	const marker = "nodePools/"
	if i := strings.Index(res, marker); i >= 0 {
		return res[i+len(marker):]
	}
	return ""
}

// IsNodePoolUpgradeAvailableEvent reports whether this message is a per-node-
// pool upgrade availability notice. GKE sends one of these for every node
// pool in a cluster, so they are suppressed before chat delivery.
func (a Attributes) IsNodePoolUpgradeAvailableEvent() bool {
	p, ok := a.Payload.(*UpgradeAvailableEvent)
	return ok && p.ResourceType == ResourceTypeNodePool
}

// LogMessage returns a one-line summary of the event for the three known
// event kinds. Unknown type URLs and absent payloads are reported as errors
// so the caller can fall back to the raw message data.
func (a Attributes) LogMessage() (string, error) {
	switch p := a.Payload.(type) {
	case *SecurityBulletinEvent:
		return fmt.Sprintf("Security bulletin %s (severity %s) issued for %s",
			p.BulletinID, p.Severity, a.ResourceURI()), nil
	case *UpgradeAvailableEvent:
		label, known := p.ResourceType.Label()
		if !known {
			return fmt.Sprintf("Unknown resource type `%s` encountered", label), nil
		}
		return fmt.Sprintf("%s %s has version %s available for upgrade in the %s release channel",
			label, a.ResourceURI(), p.Version, p.ReleaseChannel), nil
	case *UpgradeEvent:
		label, known := p.ResourceType.Label()
		if !known {
			return fmt.Sprintf("Unknown resource type `%s` encountered", label), nil
		}
		return fmt.Sprintf("%s %s is upgrading from version %s to %s",
			label, a.ResourceURI(), p.CurrentVersion, p.TargetVersion), nil
	case *UnknownTypeEvent:
		return "", fmt.Errorf("Unknown message type `%s` encountered", a.TypeURL)
	default:
		return "", errors.New("Empty or invalid payload")
	}
}
