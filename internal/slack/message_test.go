package slack

import (
	"strings"
	"testing"

	"gke-notify/internal/message"
)

func upgradeMessage() message.Message {
	return message.Message{
		Attributes: message.Attributes{
			ProjectID:       "0123456789",
			ClusterName:     "test-cluster",
			ClusterLocation: "us-central1",
			TypeURL:         message.TypeURLUpgradeEvent,
			Payload: &message.UpgradeEvent{
				CurrentVersion: "1.22.4-gke.1501",
				ResourceType:   message.ResourceTypeControlPlane,
				TargetVersion:  "1.22.6-gke.300",
			},
		},
		MessageID:   "x",
		PublishTime: "y",
		Data:        "Master is upgrading.",
	}
}

func bulletinMessage(patched []string, target string) message.Message {
	return message.Message{
		Attributes: message.Attributes{
			ProjectID:       "0123456789",
			ClusterName:     "test-cluster",
			ClusterLocation: "us-central1",
			TypeURL:         message.TypeURLSecurityBulletinEvent,
			Payload: &message.SecurityBulletinEvent{
				BriefDescription:       "A vulnerability was discovered.",
				BulletinID:             "gcp-2022-001",
				BulletinURI:            "https://cloud.google.com/kubernetes-engine/docs/security-bulletins#gcp-2022-001",
				ManualStepsRequired:    true,
				PatchedVersions:        patched,
				ResourceTypeAffected:   "RESOURCE_TYPE_NODE",
				Severity:               "High",
				SuggestedUpgradeTarget: target,
			},
		},
	}
}

func TestNewMessageHeaderAndContext(t *testing.T) {
	msg := NewMessage(upgradeMessage())

	if !strings.HasPrefix(msg.Text, ":gear: ") {
		t.Fatalf("expected gear prefix on text, got %q", msg.Text)
	}

	header := msg.Blocks[0]
	if header.Type != "section" || header.Text == nil {
		t.Fatalf("expected header section, got %+v", header)
	}
	if !strings.HasPrefix(header.Text.Text, ":gear: ") || header.Text.Type != "mrkdwn" {
		t.Fatalf("unexpected header text %+v", header.Text)
	}

	last := msg.Blocks[len(msg.Blocks)-1]
	if last.Type != "context" || len(last.Elements) != 1 {
		t.Fatalf("expected trailing context block, got %+v", last)
	}
	if last.Elements[0].Text != "projects/0123456789/locations/us-central1/clusters/test-cluster" {
		t.Fatalf("unexpected context URI %q", last.Elements[0].Text)
	}
}

func TestNewMessageUpgradeBlocks(t *testing.T) {
	msg := NewMessage(upgradeMessage())

	// header + two field sections + context.
	if len(msg.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(msg.Blocks))
	}

	versions := msg.Blocks[1]
	if len(versions.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", versions)
	}
	if versions.Fields[0].Text != "*Project*\n0123456789" {
		t.Fatalf("unexpected project field %q", versions.Fields[0].Text)
	}
	if versions.Fields[1].Text != "*Current Version*\n1.22.4-gke.1501" {
		t.Fatalf("unexpected current version field %q", versions.Fields[1].Text)
	}

	resource := msg.Blocks[2]
	if !strings.Contains(resource.Fields[0].Text, "|View in Console>") {
		t.Fatalf("expected console link, got %q", resource.Fields[0].Text)
	}
	if resource.Fields[1].Text != "*Target Version*\n1.22.6-gke.300" {
		t.Fatalf("unexpected target version field %q", resource.Fields[1].Text)
	}
}

func TestNewMessageBulletinBlocks(t *testing.T) {
	msg := NewMessage(bulletinMessage([]string{"1.22.6-gke.300"}, "1.22.6-gke.300"))

	// header + description + 2 field sections + patched versions + links + context.
	if len(msg.Blocks) != 7 {
		t.Fatalf("expected 7 blocks, got %d", len(msg.Blocks))
	}

	desc := msg.Blocks[1]
	if desc.Text == nil || desc.Text.Text != "*Brief Description*\nA vulnerability was discovered." {
		t.Fatalf("unexpected description block %+v", desc)
	}

	affected := msg.Blocks[2]
	if affected.Fields[1].Text != "*Manual Steps Required*\nYes" {
		t.Fatalf("unexpected manual steps field %q", affected.Fields[1].Text)
	}

	patched := msg.Blocks[4]
	if patched.Fields[0].Text != "*Patched Versions*\n1.22.6-gke.300" {
		t.Fatalf("unexpected patched versions field %q", patched.Fields[0].Text)
	}

	links := msg.Blocks[5]
	if !strings.Contains(links.Fields[1].Text, "|View Details>") {
		t.Fatalf("expected bulletin link, got %q", links.Fields[1].Text)
	}
}

func TestNewMessageBulletinOmitsEmptyPatchedSection(t *testing.T) {
	msg := NewMessage(bulletinMessage(nil, ""))

	// The patched-versions section disappears entirely.
	if len(msg.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(msg.Blocks))
	}
	for _, b := range msg.Blocks {
		for _, f := range b.Fields {
			if strings.Contains(f.Text, "Patched Versions") {
				t.Fatalf("patched versions section must be omitted, found %q", f.Text)
			}
		}
	}
}

func TestNewMessageUnknownTypeBlocks(t *testing.T) {
	m := message.Message{
		Attributes: message.Attributes{
			ProjectID:       "0123456789",
			ClusterName:     "test-cluster",
			ClusterLocation: "us-central1",
			TypeURL:         "type.example.com/Unknown",
			Payload:         &message.UnknownTypeEvent{Raw: "{}"},
		},
		Data: "Something new happened.",
	}
	msg := NewMessage(m)

	if len(msg.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(msg.Blocks))
	}
	if msg.Blocks[1].Fields[1].Text != "*Message*\nSomething new happened." {
		t.Fatalf("unexpected message field %q", msg.Blocks[1].Fields[1].Text)
	}
	if msg.Blocks[2].Fields[1].Text != "*TypeUrl*\ntype.example.com/Unknown" {
		t.Fatalf("unexpected type url field %q", msg.Blocks[2].Fields[1].Text)
	}
}
