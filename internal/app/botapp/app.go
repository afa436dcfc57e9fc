package botapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aadrika123/Mauryavansham-sub002/internal/config"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	tginfra "github.com/aadrika123/Mauryavansham-sub002/internal/infra/telegram"
	"github.com/aadrika123/Mauryavansham-sub002/internal/pkg/validate"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
	modsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/moderation"
	notifsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/notifications"
)

const (
	queueEmptyReply   = "The moderation queue is empty."
	askReasonReply    = "Send the rejection reason as a plain message."
	emptyReasonReply  = "The reason cannot be empty."
	notConfiguredText = "The bot is not bound to a moderator account."
)

// rejectState remembers which item a moderator is about to reject while
// the bot waits for the reason text.
type rejectState struct {
	ItemID      int64
	ModeratorID int64
}

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	postgres   *pgxpool.Pool
	bot        *tginfra.Bot
	userRepo   *pgrepo.UserRepo
	moderation *modsvc.Service

	rejectMu     sync.Mutex
	rejectByChat map[int64]rejectState
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres for bot app: %w", err)
	}

	userRepo := pgrepo.NewUserRepo(pool)
	contentRepo := pgrepo.NewContentRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	notifier := notifsvc.NewService(notificationRepo, logger)
	moderationService := modsvc.NewService(contentRepo, notifier)

	var bot *tginfra.Bot
	if strings.TrimSpace(cfg.Bot.Token) != "" {
		bot, err = tginfra.NewBot(cfg.Bot.Token)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init telegram bot: %w", err)
		}
	} else {
		logger.Warn("BOT_TOKEN is empty, moderator bot disabled")
	}

	return &App{
		cfg:          cfg,
		logger:       logger,
		postgres:     pool,
		bot:          bot,
		userRepo:     userRepo,
		moderation:   moderationService,
		rejectByChat: make(map[int64]rejectState),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.bot == nil {
		a.logger.Info("moderator bot not started")
		<-ctx.Done()
		return nil
	}

	a.logger.Info("moderator bot started")

	err := a.bot.Listen(ctx, tginfra.Handlers{
		OnCommand:  a.handleCommand,
		OnText:     a.handleText,
		OnCallback: a.handleCallback,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logger.Info("moderator bot stopped")
	return nil
}

// moderatorActor resolves the portal account the bot acts as. Every
// transition is recorded against that account, not a Telegram identity.
func (a *App) moderatorActor(ctx context.Context) (modsvc.Actor, error) {
	user, err := a.userRepo.GetByID(ctx, a.cfg.Bot.ActorUserID)
	if err != nil {
		return modsvc.Actor{}, fmt.Errorf("resolve bot actor: %w", err)
	}
	if !user.Role.IsModerator() {
		return modsvc.Actor{}, fmt.Errorf("bot actor %d is not a moderator", user.ID)
	}
	return modsvc.Actor{ID: user.ID, Role: user.Role}, nil
}

func (a *App) allowedChat(chatID int64) bool {
	return a.cfg.Bot.ModeratorChatID != 0 && chatID == a.cfg.Bot.ModeratorChatID
}

func (a *App) handleCommand(ctx context.Context, update tginfra.CommandUpdate) error {
	if a.bot == nil || !a.allowedChat(update.ChatID) {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(update.Command)) {
	case "queue":
		return a.sendNextQueueItem(ctx, update.ChatID)
	default:
		return nil
	}
}

func (a *App) handleCallback(ctx context.Context, update tginfra.CallbackUpdate) error {
	if a.bot == nil || !a.allowedChat(update.ChatID) {
		return nil
	}

	parts := strings.Split(strings.TrimSpace(update.Data), ":")
	if len(parts) != 3 || parts[0] != "mod" {
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Unknown action")
	}

	itemID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || itemID <= 0 {
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Invalid item id")
	}

	actor, err := a.moderatorActor(ctx)
	if err != nil {
		a.logger.Warn("bot actor unavailable", zap.Error(err))
		return a.bot.AnswerCallback(ctx, update.CallbackID, notConfiguredText)
	}

	switch parts[1] {
	case "approve":
		if _, err := a.moderation.Approve(ctx, itemID, actor); err != nil {
			a.logger.Warn("bot approve failed", zap.Int64("item_id", itemID), zap.Error(err))
			return a.bot.AnswerCallback(ctx, update.CallbackID, "Approve failed")
		}
		if err := a.bot.AnswerCallback(ctx, update.CallbackID, "Approved"); err != nil {
			return err
		}
		return a.sendNextQueueItem(ctx, update.ChatID)
	case "reject":
		a.rejectMu.Lock()
		a.rejectByChat[update.ChatID] = rejectState{
			ItemID:      itemID,
			ModeratorID: update.UserID,
		}
		a.rejectMu.Unlock()
		if err := a.bot.AnswerCallback(ctx, update.CallbackID, "Send reason text"); err != nil {
			return err
		}
		return a.bot.SendText(ctx, update.ChatID, askReasonReply)
	default:
		return a.bot.AnswerCallback(ctx, update.CallbackID, "Unknown action")
	}
}

func (a *App) handleText(ctx context.Context, update tginfra.TextUpdate) error {
	if a.bot == nil || !a.allowedChat(update.ChatID) {
		return nil
	}

	a.rejectMu.Lock()
	state, ok := a.rejectByChat[update.ChatID]
	a.rejectMu.Unlock()
	if !ok || state.ModeratorID != update.UserID {
		return nil
	}

	if !validate.Required(update.Text) {
		return a.bot.SendText(ctx, update.ChatID, emptyReasonReply)
	}

	actor, err := a.moderatorActor(ctx)
	if err != nil {
		a.logger.Warn("bot actor unavailable", zap.Error(err))
		return a.bot.SendText(ctx, update.ChatID, notConfiguredText)
	}

	if _, err := a.moderation.Reject(ctx, state.ItemID, actor, strings.TrimSpace(update.Text)); err != nil {
		a.logger.Warn("bot reject failed", zap.Int64("item_id", state.ItemID), zap.Error(err))
		return a.bot.SendText(ctx, update.ChatID, "Reject failed.")
	}

	a.rejectMu.Lock()
	delete(a.rejectByChat, update.ChatID)
	a.rejectMu.Unlock()

	if err := a.bot.SendText(ctx, update.ChatID, "Rejected."); err != nil {
		return err
	}
	return a.sendNextQueueItem(ctx, update.ChatID)
}

func (a *App) sendNextQueueItem(ctx context.Context, chatID int64) error {
	items, total, err := a.moderation.Queue(ctx, "", 1, 0)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return a.bot.SendText(ctx, chatID, queueEmptyReply)
	}

	text := formatReviewMessage(items[0], total)
	return a.bot.SendReviewItem(ctx, chatID, text, items[0].ID)
}

func formatReviewMessage(item model.ContentItem, queueSize int) string {
	lines := []string{
		fmt.Sprintf("Pending %s #%d (%d in queue)", item.Kind, item.ID, queueSize),
		fmt.Sprintf("Title: %s", item.Title),
		fmt.Sprintf("Category: %s", defaultString(item.Category, "-")),
		fmt.Sprintf("City: %s", defaultString(item.City, "-")),
		fmt.Sprintf("Owner ID: %d", item.OwnerID),
		fmt.Sprintf("Submitted: %s", item.UpdatedAt.Format("2006-01-02 15:04")),
	}

	body := strings.TrimSpace(item.Body)
	if body != "" {
		if len(body) > 400 {
			body = body[:400] + "..."
		}
		lines = append(lines, "", body)
	}

	return strings.Join(lines, "\n")
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (a *App) Close() {
	if a.postgres != nil {
		a.postgres.Close()
	}
}
