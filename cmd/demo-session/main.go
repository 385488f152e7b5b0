// Command demo-session walks a fresh member through a typical engagement
// session: joining, logging activities, leveling up, and redeeming a reward.
// It runs entirely in memory and prints the resulting events as toasts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"greenkit/core"
	"greenkit/engine"
	"greenkit/green"
	"greenkit/leaderboard"
	"greenkit/notify"
)

func main() {
	// Use readable text logging for development/demo
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(textHandler))

	ctx := context.Background()
	board := leaderboard.NewSkipList()
	svc := green.New(
		green.WithDispatchMode(engine.DispatchSync),
		green.WithLeaderboard(board),
	)
	defer svc.Close()

	toasts := notify.SlogNotifier{}
	confirm := notify.AutoConfirmer(true)

	svc.Subscribe(core.EventLevelUp, func(ctx context.Context, e core.Event) {
		toasts.Notify(ctx, fmt.Sprintf("%s reached level %d (%s)!", e.UserID, e.Level, e.LevelName), notify.SeveritySuccess)
	})
	svc.Subscribe(core.EventRewardUnlocked, func(ctx context.Context, e core.Event) {
		toasts.Notify(ctx, fmt.Sprintf("%s unlocked reward %s", e.UserID, e.RewardID), notify.SeveritySuccess)
	})

	user := core.UserID("alice")
	role := core.RoleMember

	session := []core.ActionKey{
		"join_community",
		"create_post",
		"attend_event",
		"complete_training",
		"plant_tree",
	}
	for _, action := range session {
		payout, err := svc.Record(ctx, user, role, action)
		if err != nil {
			slog.Error("record failed", "action", action, "error", err)
			os.Exit(1)
		}
		slog.Info("activity recorded", "action", action, "xp", payout.XP, "points", payout.Points)
	}

	// Top up so the session ends with a redeemable balance.
	if _, err := svc.CreditEqual(ctx, user, role, 600, "cleanup_drive"); err != nil {
		slog.Error("credit failed", "error", err)
		os.Exit(1)
	}

	overview, err := svc.Overview(ctx, user)
	if err != nil {
		slog.Error("overview failed", "error", err)
		os.Exit(1)
	}
	slog.Info("session summary",
		"xp", overview.Progress.XP,
		"points", overview.Progress.Points,
		"level", overview.Level.Name,
		"progress_pct", fmt.Sprintf("%.1f", overview.ProgressPercent))

	// Gate the redemption on a confirmation, the way a UI would.
	const rewardID = "mem-1"
	ok, err := confirm.Confirm(ctx, "Redeem reward", "Spend 500 points on "+rewardID+"?")
	if err != nil || !ok {
		toasts.Notify(ctx, "redemption cancelled", notify.SeverityWarning)
		return
	}
	unlocked, err := svc.Redeem(ctx, user, role, rewardID)
	if err != nil {
		slog.Error("redeem failed", "error", err)
		os.Exit(1)
	}
	if !unlocked {
		toasts.Notify(ctx, "not enough points for "+rewardID, notify.SeverityWarning)
		return
	}

	if rank, ranked := board.Rank(user); ranked {
		slog.Info("leaderboard", "user", user, "rank", rank, "size", board.Len())
	}
}
