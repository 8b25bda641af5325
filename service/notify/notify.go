package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
)

// EmbedSender is the part of a discord session the notifier needs
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type DiscordCfg struct {
	BotKey    string
	ChannelId string
	// Sender overrides the session built from BotKey
	Sender EmbedSender
}

type discordNotifier struct {
	channelId string
	sender    EmbedSender
}

func NewDiscordNotifier(cfg DiscordCfg) (listing.OrphanNotifier, error) {
	sender := cfg.Sender
	if sender == nil {
		session, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
		if err != nil {
			return nil, err
		}
		sender = session
	}
	return &discordNotifier{channelId: cfg.ChannelId, sender: sender}, nil
}

func (n *discordNotifier) NotifyOrphan(c ctx.Ctx, seller domain.Address, serr *listing.SagaError) error {
	msg := &discordgo.MessageEmbed{
		Title:       title(serr),
		Description: serr.Error(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(seller)},
			{Name: "Asset", Value: serr.AssetIdString()},
			{Name: "Step", Value: string(serr.Step)},
		},
	}
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelId, msg); err != nil {
		c.WithField("err", err).Error("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func title(serr *listing.SagaError) string {
	if serr.Orphaned() {
		return "Minted asset was not listed"
	}
	return "Mint outcome unknown, check the ledger"
}

type logNotifier struct{}

// NewLogNotifier reports orphans to the log only
func NewLogNotifier() listing.OrphanNotifier {
	return logNotifier{}
}

func (logNotifier) NotifyOrphan(c ctx.Ctx, seller domain.Address, serr *listing.SagaError) error {
	c.WithFields(log.Fields{
		"seller":  seller,
		"assetId": serr.AssetIdString(),
		"step":    serr.Step,
		"err":     serr.Err,
	}).Warn("orphaned asset needs manual listing")
	return nil
}
