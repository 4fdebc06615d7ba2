package a2a

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// profileIDPattern matches the store's "<name slug>_<sequence>" identifiers.
var profileIDPattern = regexp.MustCompile(`^[a-z0-9_]+_[0-9]+$`)

var htmlTags = regexp.MustCompile(`<[^>]+>`)

// command is what the agent understood from a free-text message.
type command struct {
	profileID string
	season    models.Season
	calendar  bool
	// days is zero when the message names no day count.
	days int
}

// parseCommand reads a profile id, an optional season word and an optional
// "calendar [days]" request out of text. Word order does not matter.
func parseCommand(text string) command {
	var cmd command
	words := strings.Fields(text)
	for i := 0; i < len(words); i++ {
		word := strings.Trim(words[i], ".,;:!?\"'`()[]")
		lower := strings.ToLower(word)

		if s, ok := models.ParseSeason(lower); ok && s != "" {
			cmd.season = s
			continue
		}
		if lower == "calendar" {
			cmd.calendar = true
			if i+1 < len(words) {
				if n, err := strconv.Atoi(strings.Trim(words[i+1], ".,;:!?")); err == nil {
					cmd.days = n
					i++
				}
			}
			continue
		}
		if cmd.profileID == "" && profileIDPattern.MatchString(lower) {
			cmd.profileID = lower
		}
	}
	return cmd
}

// extractText joins the text parts of msg. Data parts carrying a conversation
// history contribute their most recent non-empty text entry.
func extractText(msg Message) string {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			if t := latestHistoryText(part.Data); t != "" {
				texts = append(texts, t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

func latestHistoryText(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var history []MessagePart
	if err := json.Unmarshal(data, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind != "text" {
			continue
		}
		if t := cleanText(history[i].Text); t != "" {
			return t
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.TrimSpace(htmlTags.ReplaceAllString(s, " "))
}
