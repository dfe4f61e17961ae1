package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gridironlabs/leaguedash/internal/pipeline"
	"github.com/gridironlabs/leaguedash/internal/report"
)

type Handler struct {
	hub *pipeline.Hub
}

func NewHandler(hub *pipeline.Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the league dashboard bot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/standings - Current standings\n/consensus - Consensus picks from the latest analysis\n/compare <player> vs <player> - Side-by-side value comparison"
	case "standings":
		h.handleStandings(ctx, &msg)
	case "consensus":
		h.handleConsensus(ctx, &msg)
	case "compare":
		h.handleCompare(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig) {
	session, err := h.hub.EnsureFresh(ctx, report.Standings)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
		return
	}
	msg.Text = FormatStandings(session.Rows())
}

func (h *Handler) handleConsensus(ctx context.Context, msg *tgbotapi.MessageConfig) {
	statements, err := h.hub.Consensus(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building consensus: %v", err)
		return
	}
	msg.Text = FormatConsensus(statements)
}

func (h *Handler) handleCompare(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	a, b, ok := splitVersus(args)
	if !ok {
		msg.Text = "Usage: /compare <player> vs <player>"
		return
	}

	session, err := h.hub.EnsureFresh(ctx, report.VORP)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching player values: %v", err)
		return
	}
	msg.Text = FormatComparison(session.Compare(a, b))
}

func splitVersus(args string) (a, b string, ok bool) {
	parts := strings.SplitN(strings.ToLower(args), " vs ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a = strings.TrimSpace(parts[0])
	b = strings.TrimSpace(parts[1])
	return a, b, a != "" && b != ""
}
