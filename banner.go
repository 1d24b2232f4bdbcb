package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lisicong/tiktok-streak/configs"
	"github.com/lisicong/tiktok-streak/scheduler"
)

const bannerWidth = 56

// printBanner writes the startup box to stdout. runewidth keeps the frame
// aligned when paths or messages contain wide characters.
func printBanner(cfg *configs.Config, next time.Time) {
	lines := []string{
		"TikTok Streak Bot - Daily Scheduler Active",
		"",
		fmt.Sprintf("Daily execution time: %s", cfg.SendTime),
		fmt.Sprintf("Cookies:  %s", cfg.CookiesPath),
		fmt.Sprintf("Accounts: %s", cfg.AccountsPath),
		fmt.Sprintf("Logs:     %s", cfg.ActivityLogPath),
		"",
		fmt.Sprintf("Next run: %s", next.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Time until next run: %s", scheduler.FormatRemaining(time.Until(next))),
	}

	border := "+" + strings.Repeat("-", bannerWidth+2) + "+"
	fmt.Println(border)
	for _, line := range lines {
		fmt.Printf("| %s |\n", pad(line, bannerWidth))
	}
	fmt.Println(border)
}

func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-w)
}
