package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// Embed colors
const (
	ColorDefault = 0x5865F2 // blurple
	ColorNat20   = 0xFFD700 // gold
	ColorNat1    = 0xED4245 // red
)

// ChannelMessenger is the slice of the Discord session the announcer needs.
type ChannelMessenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts roll events to a Discord channel as embeds. It satisfies
// the feed sink interface.
type Announcer struct {
	messenger ChannelMessenger
	channelID string
	titler    cases.Caser
}

// NewAnnouncer creates a new announcer posting to the given channel
func NewAnnouncer(messenger ChannelMessenger, channelID string) *Announcer {
	return &Announcer{
		messenger: messenger,
		channelID: channelID,
		titler:    cases.Title(language.English),
	}
}

// Deliver posts one roll event to the channel
func (a *Announcer) Deliver(ctx context.Context, event domain.RollEvent) error {
	if event.Visibility == domain.VisibilityPrivate {
		// Private rolls stay off the shared channel
		return nil
	}

	if _, err := a.messenger.ChannelMessageSendEmbed(a.channelID, a.buildEmbed(event)); err != nil {
		return fmt.Errorf("failed to post roll %s: %w", event.RollID, err)
	}
	return nil
}

func (a *Announcer) buildEmbed(event domain.RollEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       a.buildTitle(event),
		Description: a.buildDescription(event),
		Color:       embedColor(event),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Campaign: %s", event.CampaignID),
		},
	}

	if event.Attribute != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Attribute",
			Value:  a.titler.String(event.Attribute),
			Inline: true,
		})
	}

	return embed
}

func (a *Announcer) buildTitle(event domain.RollEvent) string {
	who := event.PlayerName
	if event.CharacterName != "" {
		who = event.CharacterName
	}
	if who == "" {
		who = "Someone"
	}

	switch {
	case isNat20(event):
		return fmt.Sprintf("🎉 %s rolled a Natural 20!", who)
	case isNat1(event):
		return fmt.Sprintf("💀 %s rolled a Natural 1...", who)
	case event.RollType == domain.RollTypeStatBlock:
		return fmt.Sprintf("%s rolled a stat block", who)
	default:
		return fmt.Sprintf("%s rolled %d", who, event.GrandTotal)
	}
}

func (a *Announcer) buildDescription(event domain.RollEvent) string {
	var sb strings.Builder

	if event.Notation != "" {
		fmt.Fprintf(&sb, "`%s`", event.Notation)
	} else {
		fmt.Fprintf(&sb, "`%dd%d`", event.DiceCount, event.Sides)
	}

	if len(event.Rolls) > 0 {
		fmt.Fprintf(&sb, " → %s", formatRolls(event.Rolls))
	}
	if len(event.Dropped) > 0 {
		fmt.Fprintf(&sb, " (dropped %s)", formatRolls(event.Dropped))
	}
	if event.Modifier != 0 {
		fmt.Fprintf(&sb, " %+d", event.Modifier)
	}
	if event.Bonus != 0 {
		fmt.Fprintf(&sb, " %+d", event.Bonus)
	}

	fmt.Fprintf(&sb, "\n**Total: %d**", event.GrandTotal)
	return sb.String()
}

func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// isNat20 reports whether the event is a single natural 20 on a d20
func isNat20(event domain.RollEvent) bool {
	return event.Sides == 20 && len(event.Rolls) == 1 && event.Rolls[0] == 20
}

// isNat1 reports whether the event is a single natural 1 on a d20
func isNat1(event domain.RollEvent) bool {
	return event.Sides == 20 && len(event.Rolls) == 1 && event.Rolls[0] == 1
}

func embedColor(event domain.RollEvent) int {
	switch {
	case isNat20(event):
		return ColorNat20
	case isNat1(event):
		return ColorNat1
	default:
		return ColorDefault
	}
}
