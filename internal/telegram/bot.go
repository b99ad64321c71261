package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"
	"ai-travel-planner/internal/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API, the trip planner, and the session store.
type Bot struct {
	api          *tgbotapi.BotAPI
	planner      *planner.Service
	sessions     *session.Store
	metricsStore *metrics.Store
	cfg          *config.Config

	mu           sync.Mutex
	chatSessions map[int64]string // chat ID -> session ID
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	plannerSvc *planner.Service,
	sessions *session.Store,
	metricsStore *metrics.Store,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		planner:      plannerSvc,
		sessions:     sessions,
		metricsStore: metricsStore,
		cfg:          cfg,
		chatSessions: make(map[int64]string),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.sendHelp(msg.Chat.ID)
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case text == "/cheaper":
		b.handleReduceRequest(msg.Chat.ID)
	case strings.HasPrefix(text, "/swap"):
		b.handleSwapRequest(msg.Chat.ID, text)
	default:
		b.handleTripRequest(msg)
	}
}

func (b *Bot) sendHelp(chatID int64) {
	var sb strings.Builder
	sb.WriteString("🧳 *Student Travel Planner*\n\n")
	sb.WriteString("Tell me where you want to go, e.g.\n")
	sb.WriteString("_\"3 days in Jaipur, budget ₹3000, love food and history\"_\n\n")
	sb.WriteString("After generating a plan you can refine it:\n")
	sb.WriteString("• /cheaper — replace the most expensive activity\n")
	sb.WriteString("• /swap <day> <slot> — swap one activity for a nearby alternative\n")
	if b.planner.DemoMode() {
		sb.WriteString("\n⚠️ Running in demo mode: you'll get a sample Hyderabad plan and refinements are disabled.")
	}

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

// chatSession returns the live session bound to the chat, creating a new one
// if none exists or the previous one expired.
func (b *Bot) chatSession(chatID int64) *session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id, ok := b.chatSessions[chatID]; ok {
		if sess, ok := b.sessions.Get(id); ok {
			return sess
		}
	}
	sess := b.sessions.Create("", b.planner.DemoMode())
	b.chatSessions[chatID] = sess.ID
	return sess
}

func (b *Bot) handleTripRequest(msg *tgbotapi.Message) {
	statusText := "🌏 *Planning...* \n(Researching the destination and building your days)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Printf("Generating itinerary for request: %s", msg.Text)

	req := parseTripRequest(msg.Text, b.cfg)
	sess := b.chatSession(msg.Chat.ID)
	req.Destination = resolveDestination(req.Destination, sess)

	result, metas := b.planner.Generate(ctx, sess, req)
	b.recordMetas(metas)

	var finalText string
	if result.Fallback && result.Message != "" {
		safeMsg := strings.ReplaceAll(result.Message, "`", "'")
		finalText = fmt.Sprintf("⚠️ _%s_\n\n%s", safeMsg, formatItineraryMarkdown(result.Itinerary, result.TotalCost))
	} else {
		finalText = formatItineraryMarkdown(result.Itinerary, result.TotalCost)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

// resolveDestination fills a destination the message didn't name from the
// chat's previous trip, or the demo default for a brand-new chat, so the
// generation prompt never carries an empty destination.
func resolveDestination(parsed string, sess *session.Session) string {
	if parsed != "" {
		return parsed
	}
	var previous string
	_ = sess.WithLock(func() error {
		previous = sess.Destination
		return nil
	})
	if previous != "" {
		return previous
	}
	return planner.DemoDestination
}

func (b *Bot) handleReduceRequest(chatID int64) {
	sess := b.chatSession(chatID)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	result, metas, err := b.planner.ReduceHighestCost(ctx, sess)
	b.recordMetas(metas)
	if err != nil {
		b.sendRefineError(chatID, err)
		return
	}
	b.sendRefineResult(chatID, "💸 *Swapped in a cheaper option*", result)
}

func (b *Bot) handleSwapRequest(chatID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		b.api.Send(tgbotapi.NewMessage(chatID, "Usage: /swap <day> <slot>, e.g. /swap 1 2"))
		return
	}
	day, err1 := strconv.Atoi(parts[1])
	slot, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || day < 1 || slot < 1 {
		b.api.Send(tgbotapi.NewMessage(chatID, "Day and slot must be positive numbers, e.g. /swap 1 2"))
		return
	}

	sess := b.chatSession(chatID)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	result, metas, err := b.planner.SwapActivity(ctx, sess, day-1, slot-1)
	b.recordMetas(metas)
	if err != nil {
		b.sendRefineError(chatID, err)
		return
	}
	b.sendRefineResult(chatID, "🔄 *Swapped the activity*", result)
}

func (b *Bot) sendRefineError(chatID int64, err error) {
	log.Printf("Refinement failed: %v", err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ *Could not refine the plan:*\n```\n%v\n```\nYour itinerary is unchanged.", safeErr))
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) sendRefineResult(chatID int64, header string, result planner.RefineResult) {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	sb.WriteString(fmt.Sprintf("Day %d, slot %d:\n", result.DayIndex+1, result.ActivityIndex+1))
	sb.WriteString(fmt.Sprintf("~%s~ (%s)\n", result.OldActivity.Description, itinerary.FormatCost(result.OldActivity.EstimatedCost)))
	sb.WriteString(fmt.Sprintf("→ *%s* (%s)\n\n", result.NewActivity.Description, itinerary.FormatCost(result.NewActivity.EstimatedCost)))
	sb.WriteString(fmt.Sprintf("Day budget: %s · Trip total: %s", itinerary.FormatCost(result.Day.DailyBudgetSummary), itinerary.FormatCost(result.TotalCost)))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func formatItineraryMarkdown(it itinerary.Itinerary, totalCost float64) string {
	var sb strings.Builder
	sb.WriteString("🧳 *Your Trip Plan*\n\n")

	for _, day := range it {
		sb.WriteString(fmt.Sprintf("*Day %d: %s*\n", day.Day, day.Theme))
		for i, act := range day.Activities {
			sb.WriteString(fmt.Sprintf("%d. %s — %s (%s)", i+1, act.Time, act.Description, itinerary.FormatCost(act.EstimatedCost)))
			if act.Transportation != "" {
				sb.WriteString(fmt.Sprintf("\n   🚌 %s", act.Transportation))
			}
			sb.WriteString("\n")
		}
		if day.AccommodationSuggestion != "" {
			sb.WriteString(fmt.Sprintf("🛏 _%s_\n", day.AccommodationSuggestion))
		}
		sb.WriteString(fmt.Sprintf("Day budget: %s\n\n", itinerary.FormatCost(day.DailyBudgetSummary)))
	}

	sb.WriteString(fmt.Sprintf("💰 *Total:* %s", itinerary.FormatCost(totalCost)))
	if len(it) > 0 {
		sb.WriteString(fmt.Sprintf(" (%s/day avg)", itinerary.FormatCost(itinerary.AverageDailyCost(totalCost, len(it)))))
	}
	sb.WriteString(fmt.Sprintf("\n🌳 *Sustainability:* %d/5", itinerary.SustainabilityScore(it)))

	return sb.String()
}

func (b *Bot) recordMetas(metas []shared.AgentMeta) {
	if b.metricsStore == nil {
		return
	}
	if err := b.metricsStore.RecordMetas(metas); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.Health(filepath.Dir(b.cfg.DatabasePath), b.sessions.Count())

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	sb.WriteString(fmt.Sprintf("• Live Sessions: %d\n", health.LiveSessions))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}
