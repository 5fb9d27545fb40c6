package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the CoffeeHelper ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Coffee-toned gradient.
	lines := []struct {
		text  string
		color string
	}{
		{`   ____       __  __           _   _      _                 `, "#d97706"},
		{`  / ___|___  / _|/ _| ___  ___| | | | ___| |_ __   ___ _ __ `, "#b45309"},
		{` | |   / _ \| |_| |_ / _ \/ _ \ |_| |/ _ \ | '_ \ / _ \ '__|`, "#92400e"},
		{` | |__| (_) |  _|  _|  __/  __/  _  |  __/ | |_) |  __/ |   `, "#78350f"},
		{`  \____\___/|_| |_|  \___|\___|_| |_|\___|_| .__/ \___|_|   `, "#57534e"},
		{`                                           |_|              `, "#44403c"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
