package session

import (
	"context"
	"log/slog"
	"time"

	"materialmart/internal/worker"
)

// RunPruner 每隔 interval 將清除工作交給 pool，直到 ctx 結束
func RunPruner(ctx context.Context, pool worker.Pool, p Pruner, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			ok := pool.Submit(func() {
				n, err := p.Prune(ctx, now)
				if err != nil {
					logger.Error("prune sessions", "error", err)
					return
				}
				if n > 0 {
					logger.Debug("pruned expired sessions", "count", n)
				}
			})
			if !ok {
				return
			}
		}
	}
}
