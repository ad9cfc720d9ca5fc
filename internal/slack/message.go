// Package slack renders decoded cluster notifications into Block Kit
// messages and posts them to an incoming webhook.
package slack

import (
	"fmt"
	"strings"

	"gke-notify/internal/message"
)

// Message is the JSON body posted to a Slack incoming webhook.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

// Block is one Block Kit content block. Exactly one of Text, Fields or
// Elements is set depending on Type.
type Block struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Fields   []Text `json:"fields,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewMessage renders a decoded notification into its chat-card form: a
// header section, variant-specific detail sections and a trailing context
// block carrying the plain resource URI.
func NewMessage(msg message.Message) Message {
	return Message{
		Text:   ":gear: " + msg.PlainText(),
		Blocks: blocks(msg),
	}
}

func blocks(msg message.Message) []Block {
	attr := msg.Attributes
	result := []Block{
		section(mrkdwn(":gear: " + msg.Markdown())),
	}

	switch p := attr.Payload.(type) {
	case *message.SecurityBulletinEvent:
		result = append(result,
			section(mrkdwn("*Brief Description*\n"+p.BriefDescription)),
			fieldsSection(
				mrkdwn("*Affected Resource Type*\n"+p.ResourceTypeAffected),
				mrkdwn("*Manual Steps Required*\n"+yesNo(p.ManualStepsRequired)),
			),
			fieldsSection(
				mrkdwn("*Project*\n"+attr.Project()),
				mrkdwn("*Severity*\n"+p.Severity),
			),
		)
		// Optional sections are never rendered as empty fields.
		if len(p.PatchedVersions) > 0 || p.SuggestedUpgradeTarget != "" {
			result = append(result, fieldsSection(
				mrkdwn("*Patched Versions*\n"+strings.Join(p.PatchedVersions, "\n")),
				mrkdwn("*Suggested Upgrade Target*\n"+p.SuggestedUpgradeTarget),
			))
		}
		result = append(result, fieldsSection(
			mrkdwn("*Cluster*\n"+attr.ResourceURL()),
			mrkdwn(fmt.Sprintf("*Security Bulletin*\n<%s|View Details>", p.BulletinURI)),
		))
	case *message.UpgradeAvailableEvent:
		result = append(result,
			fieldsSection(
				mrkdwn("*Project*\n"+attr.Project()),
				mrkdwn("*Version*\n"+p.Version),
			),
			fieldsSection(
				mrkdwn(fmt.Sprintf("*Resource*\n<%s|View in Console>", attr.ResourceURL())),
				mrkdwn("*Release Channel*\n"+p.ReleaseChannel.String()),
			),
		)
	case *message.UpgradeEvent:
		result = append(result,
			fieldsSection(
				mrkdwn("*Project*\n"+attr.Project()),
				mrkdwn("*Current Version*\n"+p.CurrentVersion),
			),
			fieldsSection(
				mrkdwn(fmt.Sprintf("*Resource*\n<%s|View in Console>", attr.ResourceURL())),
				mrkdwn("*Target Version*\n"+p.TargetVersion),
			),
		)
	default:
		result = append(result,
			fieldsSection(
				mrkdwn("*Project*\n"+attr.Project()),
				mrkdwn("*Message*\n"+msg.Data),
			),
			fieldsSection(
				mrkdwn(fmt.Sprintf("*Resource*\n<%s|View in Console>", attr.ResourceURL())),
				mrkdwn("*TypeUrl*\n"+attr.TypeURL),
			),
		)
	}

	result = append(result, Block{
		Type:     "context",
		Elements: []Text{mrkdwn(attr.ResourceURI())},
	})
	return result
}

func mrkdwn(text string) Text {
	return Text{Type: "mrkdwn", Text: text}
}

func section(text Text) Block {
	return Block{Type: "section", Text: &text}
}

func fieldsSection(fields ...Text) Block {
	return Block{Type: "section", Fields: fields}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
