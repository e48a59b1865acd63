package alarms

import (
	"context"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDraftAccept сохраняет выбранное предложение как напоминание
func HandleDraftAccept(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.ParseIndexFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse draft index")
			return
		}

		raw, _ := hc.GetData(state.KeyDrafts)
		drafts, _ := raw.([]model.AlarmDraft)
		if idx >= len(drafts) {
			common.HandleError(hc, model.ErrDraftNotFound, "accept draft")
			return
		}

		id, err := h.AlarmService.AcceptDraft(hc.Ctx, hc.UserID, drafts[idx])
		if err != nil {
			common.HandleError(hc, err, "accept draft")
			return
		}

		h.Logger.Info("Suggestion accepted",
			zap.String("alarm_id", id),
			zap.String("reason", drafts[idx].Reason))
		hc.Answer("✅ Напоминание добавлено")
	})
}
