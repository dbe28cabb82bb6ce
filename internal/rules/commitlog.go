package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const bugEmoji = "🐛"

var (
	ticketRe     = regexp.MustCompile(`\b[A-Z]+-\d+\b`)
	memeRe       = regexp.MustCompile(`(?i)(yolo|swag|lol|omg|wtf|tl;dr|fomo|yada yada|bazinga|winter is coming|may the force be with you)`)
	fixRe        = regexp.MustCompile(`(?i)\bfix\b`)
	affixRe      = regexp.MustCompile(`(?i)(pre|suf)fix`)
	tsKeywordRe  = regexp.MustCompile(`(?i)\b(type|interface|enum|generic|typing|typescript|ts)\b`)
	bugWordRe    = regexp.MustCompile(`(?i)\bbug\b`)
	featureRe    = regexp.MustCompile(`(?i)\bfeature\b`)
	hexCandidate = regexp.MustCompile(`(?i)#?[0-9a-f]{6}`)
)

// Fixtures is the content fixed once when a session starts. Rules built
// from the same Fixtures always agree on the same input.
type Fixtures struct {
	TargetColor string // "#rrggbb"
	Today       string // YYYY-MM-DD
}

// NewFixtures draws the session's target color and pins today's date.
func NewFixtures(rnd interface{ IntN(n int) int }, now time.Time) Fixtures {
	return Fixtures{
		TargetColor: fmt.Sprintf("#%06x", rnd.IntN(0xffffff)),
		Today:       now.Format(time.DateOnly),
	}
}

// CommitLog returns the shipped commit message rules.
// Lengths are counted in characters, not bytes.
func CommitLog(f Fixtures) []Rule {
	target := strings.ToLower(strings.TrimPrefix(f.TargetColor, "#"))

	return []Rule{
		{
			ID:          1,
			Description: "Use a descriptive commit message",
			Validator:   Check(func(s string) bool { return utf8.RuneCountInString(s) > 10 }),
		},
		{
			ID:          2,
			Description: "Reference a Jira ticket number (e.g., TS-123)",
			Validator:   Check(ticketRe.MatchString),
		},
		{
			ID:          3,
			Description: "Include a meme or pop culture reference",
			Validator:   Check(memeRe.MatchString),
		},
		{
			ID:          4,
			Description: "Keep it under 72 characters (because somehow that's still a thing)",
			Validator:   Check(func(s string) bool { return utf8.RuneCountInString(s) <= 72 }),
		},
		{
			ID:          5,
			Description: "Must include the word 'fix' (but not 'prefix' or 'suffix')",
			Validator: Check(func(s string) bool {
				return fixRe.MatchString(s) && !affixRe.MatchString(s)
			}),
		},
		{
			ID:          6,
			Description: "Include a TypeScript-related keyword (type, interface, enum, etc.)",
			Validator:   Check(tsKeywordRe.MatchString),
		},
		{
			ID:          7,
			Description: "Must not contain the word 'bug' (use 'feature' instead)",
			Validator: Check(func(s string) bool {
				return !bugWordRe.MatchString(s) && featureRe.MatchString(s)
			}),
		},
		{
			ID:          8,
			Description: "Add more bugs to the code " + bugEmoji,
			Validator:   Check(func(s string) bool { return strings.Count(s, bugEmoji) == 4 }),
			ProgressMax: 4,
			Progress:    func(s string) int { return strings.Count(s, bugEmoji) },
		},
		{
			ID:          9,
			Description: "Include the hexadecimal code for this color",
			Color:       f.TargetColor,
			Validator: Check(func(s string) bool {
				for _, hex := range hexCandidate.FindAllString(s, -1) {
					if strings.ToLower(strings.TrimPrefix(hex, "#")) == target {
						return true
					}
				}
				return false
			}),
		},
		{
			ID:          10,
			Description: "Include today's date in ISO format (YYYY-MM-DD)",
			Validator:   Check(func(s string) bool { return strings.Contains(s, f.Today) }),
		},
		{
			ID:          11,
			Description: "Include exactly four spaces (no more, no less)",
			Validator:   Check(func(s string) bool { return strings.Count(s, " ") == 4 }),
		},
	}
}
