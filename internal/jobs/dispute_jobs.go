package jobs

import (
	"context"
	"errors"
	"fmt"

	"toolshare-admin/internal/logger"
)

// WarmDisputeCache refreshes the rental statuses behind the dispute queue so
// the console's disputes filter is fast on first load.
func (jr *JobRunner) WarmDisputeCache() {
	jr.runWithRecovery("WarmDisputeCache", func(ctx context.Context) error {
		n, err := jr.reports.WarmDisputeCache(ctx)
		if err != nil {
			return err
		}
		logger.Info("Warmed rental status cache", "fetched", n)
		return nil
	})
}

// SendOpenDisputeDigest emails every active admin the deposit disputes
// still waiting on a decision. Nothing is sent when there are none.
func (jr *JobRunner) SendOpenDisputeDigest() {
	jr.runWithRecovery("SendOpenDisputeDigest", jr.sendOpenDisputeDigest)
}

func (jr *JobRunner) sendOpenDisputeDigest(ctx context.Context) error {
	disputes, err := jr.reports.ListOpenDisputes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open disputes: %w", err)
	}
	if len(disputes) == 0 {
		logger.Info("No open disputes, digest skipped")
		return nil
	}

	admins, err := jr.admins.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	var errs []error
	sent := 0
	for _, a := range admins {
		if !a.IsAuthorized() || a.Email == "" {
			continue
		}
		if err := jr.email.SendOpenDisputeDigest(ctx, a.Email, a.Name, disputes); err != nil {
			errs = append(errs, fmt.Errorf("digest to %s: %w", a.UID, err))
			continue
		}
		sent++
	}

	logger.Info("Open dispute digest sent", "disputes", len(disputes), "admins", sent)
	return errors.Join(errs...)
}
