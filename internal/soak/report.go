package soak

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var lang = language.English

// WriteYAML encodes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTable prints the summary as a boxed key/value table followed by one
// line per failing run.
func WriteTable(w io.Writer, r *Report) error {
	p := message.NewPrinter(lang)
	s := r.Summary
	keys := []string{"Board", "Empty Chance", "Ticks", "Runs", "Mean Blocks", "Std Blocks", "Mean Fill", "Mean Moved", "Max Settled At", "Violations"}
	msg := map[string]string{
		"Board":          p.Sprintf("%dx%d", r.Width, r.Height),
		"Empty Chance":   p.Sprintf("%.2f", r.EmptyChance),
		"Ticks":          p.Sprintf("%d", r.Ticks),
		"Runs":           p.Sprintf("%d", s.RunsChecked),
		"Mean Blocks":    p.Sprintf("%.2f", s.MeanBlocks),
		"Std Blocks":     p.Sprintf("%.2f", s.StdBlocks),
		"Mean Fill":      p.Sprintf("%.1f%%", s.MeanFill*100),
		"Mean Moved":     p.Sprintf("%.2f", s.MeanMoved),
		"Max Settled At": p.Sprintf("%d", s.MaxSettled),
		"Violations":     p.Sprintf("%d", s.Violations),
	}
	out := fmtTable("Blockfall Soak", keys, msg)
	for _, res := range r.Results {
		if res.Error == "" {
			continue
		}
		out += p.Sprintf("seed %d: %s\n", res.Seed, res.Error)
	}
	_, err := io.WriteString(w, out)
	return err
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	out := top
	out += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	out += divider
	for _, k := range keys {
		out += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	out += divider
	return out
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
