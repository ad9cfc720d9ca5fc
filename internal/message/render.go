package message

import "fmt"

// LogEntry renders the one-line log form of the message. Every message
// yields a line: when the payload is unknown or absent the error text is
// used, suffixed with the raw message data when present.
func (m Message) LogEntry() string {
	entry, err := m.Attributes.LogMessage()
	if err == nil {
		return entry
	}
	if m.Data != "" {
		return err.Error() + ": " + m.Data
	}
	return err.Error()
}

// PlainText renders a one-sentence summary naming the cluster rather than
// the full resource URI.
func (m Message) PlainText() string {
	return m.summary(m.Attributes.ClusterName)
}

// Markdown is the PlainText summary with the cluster name replaced by a
// Slack-style link to the Cloud Console page for the affected resource.
func (m Message) Markdown() string {
	return m.summary(fmt.Sprintf("<%s|%s>", m.Attributes.ResourceURL(), m.Attributes.ClusterName))
}

func (m Message) summary(cluster string) string {
	a := m.Attributes
	switch p := a.Payload.(type) {
	case *SecurityBulletinEvent:
		return fmt.Sprintf("Security bulletin %s issued for cluster %s", p.BulletinID, cluster)
	case *UpgradeAvailableEvent:
		label, known := p.ResourceType.Label()
		if !known {
			return fmt.Sprintf("Unknown resource type `%s` encountered", label)
		}
		if p.ResourceType == ResourceTypeNodePool {
			return fmt.Sprintf("Node pool upgrade to version %s is available in cluster %s", p.Version, cluster)
		}
		return fmt.Sprintf("Control plane upgrade to version %s is available for cluster %s", p.Version, cluster)
	case *UpgradeEvent:
		label, known := p.ResourceType.Label()
		if !known {
			return fmt.Sprintf("Unknown resource type `%s` encountered", label)
		}
		if p.ResourceType == ResourceTypeNodePool {
			return fmt.Sprintf("A node pool in cluster %s is upgrading to version %s", cluster, p.TargetVersion)
		}
		return fmt.Sprintf("Control plane of cluster %s is upgrading to version %s", cluster, p.TargetVersion)
	case *UnknownTypeEvent:
		return fmt.Sprintf("Unknown message type `%s` encountered", a.TypeURL)
	default:
		return "Empty or invalid payload"
	}
}
