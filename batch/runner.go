// Package batch iterates the account list, retries each send a bounded
// number of times and aggregates the run summary. One account's failure
// never blocks the accounts after it.
package batch

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Sender delivers one message to one account. Implemented by
// tiktok.SendAction; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, account string) error
}

// Outcome is the per-account result of a run.
type Outcome struct {
	Account   string `json:"account"`
	Succeeded bool   `json:"succeeded"`
	Attempts  int    `json:"attempts"`
}

// Summary aggregates a whole run. Success + Failed always equals Total.
type Summary struct {
	Success  int       `json:"success"`
	Failed   int       `json:"failed"`
	Total    int       `json:"total"`
	Outcomes []Outcome `json:"outcomes,omitempty"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// Runner applies the send workflow to every account with bounded retries and
// randomized pacing between accounts.
type Runner struct {
	sender          Sender
	maxRetries      int
	retryDelay      time.Duration
	accountDelayMin time.Duration
	accountDelayMax time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewRunner wires a runner. maxRetries is the attempt bound per account,
// retryDelay the fixed pause between failed attempts, and the account delay
// range bounds the randomized pause between distinct accounts.
func NewRunner(sender Sender, maxRetries int, retryDelay, accountDelayMin, accountDelayMax time.Duration) *Runner {
	return &Runner{
		sender:          sender,
		maxRetries:      maxRetries,
		retryDelay:      retryDelay,
		accountDelayMin: accountDelayMin,
		accountDelayMax: accountDelayMax,
		sleep:           time.Sleep,
	}
}

// Run processes the accounts in order. The batch never aborts on an
// individual failure; context cancellation stops it between attempts.
func (r *Runner) Run(ctx context.Context, accounts []string) *Summary {
	summary := &Summary{Total: len(accounts), Started: time.Now()}

	for i, account := range accounts {
		outcome := r.runAccount(ctx, account)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Succeeded {
			summary.Success++
			logrus.Infof("@%s - SUCCESS", account)
		} else {
			summary.Failed++
			logrus.Errorf("@%s - FAILED after %d attempts", account, outcome.Attempts)
		}

		if ctx.Err() != nil {
			// Count the remainder as failed so Success+Failed==Total holds.
			for _, rest := range accounts[i+1:] {
				summary.Outcomes = append(summary.Outcomes, Outcome{Account: rest})
				summary.Failed++
			}
			break
		}

		// Randomized pause between distinct accounts, not after the last:
		// uniform timing patterns are what detection looks for.
		if i < len(accounts)-1 {
			delay := r.accountDelay()
			logrus.Infof("waiting %.1fs before next account...", delay.Seconds())
			r.sleep(delay)
		}
	}

	summary.Finished = time.Now()
	return summary
}

func (r *Runner) runAccount(ctx context.Context, account string) Outcome {
	outcome := Outcome{Account: account}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return outcome
		}
		outcome.Attempts = attempt

		err := r.sender.Send(ctx, account)
		if err == nil {
			outcome.Succeeded = true
			return outcome
		}

		if attempt < r.maxRetries {
			logrus.Warnf("@%s - attempt %d/%d failed: %v, retrying", account, attempt, r.maxRetries, err)
			r.sleep(r.retryDelay)
		} else {
			logrus.Errorf("@%s - attempt %d/%d failed: %v", account, attempt, r.maxRetries, err)
		}
	}

	return outcome
}

func (r *Runner) accountDelay() time.Duration {
	if r.accountDelayMax <= r.accountDelayMin {
		return r.accountDelayMin
	}
	return r.accountDelayMin + time.Duration(rand.Int63n(int64(r.accountDelayMax-r.accountDelayMin)))
}
