package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dot = " · "

var (
	// "Legs · Day 2";"2026-02-19 4:54 h";"1:02 hr"
	sessionLine = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// "1. Hack Squats · Machine · 8 reps[· modifiers]"[;"WU1 · ..."]
	exerciseLine = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// 1;115;8;1
	setLine = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// WU1 · 37,5 kg · 9 reps
	warmupPart = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)

	// 1:02 hr, 58 min
	hoursDuration   = regexp.MustCompile(`^(\d+):(\d{2})\s*hr?$`)
	minutesDuration = regexp.MustCompile(`^(\d+)\s*min$`)
)

const columnHeader = "#;KG;REPS;RIR"

// parser accumulates sessions line by line.
type parser struct {
	loc      *time.Location
	sessions []Session
	session  *Session
	exercise *Exercise
}

// Parse reads an export. Session start times are wall-clock times in loc.
// Unrecognized lines (notes, metadata) are skipped.
func Parse(r io.Reader, loc *time.Location) ([]Session, error) {
	p := &parser{loc: loc}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		if err := p.line(strings.TrimSpace(sc.Text())); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p.endSession()
	return p.sessions, nil
}

func (p *parser) line(line string) error {
	switch {
	case line == "":
		p.endSession()
	case line == columnHeader:
	case sessionLine.MatchString(line):
		return p.startSession(sessionLine.FindStringSubmatch(line))
	case exerciseLine.MatchString(line):
		return p.startExercise(exerciseLine.FindStringSubmatch(line))
	case setLine.MatchString(line):
		return p.addSet(setLine.FindStringSubmatch(line))
	}
	return nil
}

func (p *parser) startSession(m []string) error {
	p.endSession()
	start, err := parseStart(m[2], p.loc)
	if err != nil {
		return err
	}
	p.session = &Session{Name: m[1], Start: start, Duration: parseDuration(m[3])}
	return nil
}

func (p *parser) startExercise(m []string) error {
	if p.session == nil {
		return fmt.Errorf("exercise %q outside a session", m[2])
	}
	p.endExercise()
	num, _ := strconv.Atoi(m[1])
	target, _ := strconv.Atoi(m[4])
	p.exercise = &Exercise{
		Number:     num,
		Name:       strings.TrimSpace(m[2]),
		Equipment:  strings.TrimSpace(m[3]),
		TargetReps: target,
		Sets:       parseWarmups(m[6]),
	}
	return nil
}

func (p *parser) addSet(m []string) error {
	if p.exercise == nil {
		return fmt.Errorf("set %q outside an exercise", m[0])
	}
	num, _ := strconv.Atoi(m[1])
	weight, bw := parseWeight(m[2])
	reps, _ := strconv.Atoi(m[3])
	p.exercise.Sets = append(p.exercise.Sets, Set{
		Number:         num,
		Weight:         weight,
		BodyweightPlus: bw,
		Reps:           reps,
		RIR:            parseDecimal(m[4]),
	})
	return nil
}

func (p *parser) endExercise() {
	if p.exercise != nil {
		p.session.Exercises = append(p.session.Exercises, *p.exercise)
		p.exercise = nil
	}
}

func (p *parser) endSession() {
	if p.session == nil {
		return
	}
	p.endExercise()
	p.sessions = append(p.sessions, *p.session)
	p.session = nil
}

// parseStart accepts "2026-02-19 4:54" and "2026-02-19 16:54".
func parseStart(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse session start %q", s)
}

// parseDuration returns 0 for formats it does not know.
func parseDuration(s string) time.Duration {
	s = strings.TrimSpace(s)
	if m := hoursDuration.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute
	}
	if m := minutesDuration.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		return time.Duration(mins) * time.Minute
	}
	return 0
}

// parseWarmups reads "WU1 · 37,5 kg · 9 reps<br>WU2 · ...".
func parseWarmups(s string) []Set {
	var sets []Set
	for _, part := range strings.Split(s, "<br>") {
		m := warmupPart.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		weight, bw := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		sets = append(sets, Set{Number: num, Weight: weight, BodyweightPlus: bw, Reps: reps, Warmup: true})
	}
	return sets
}

// parseWeight maps "+35" to (35, true) and "102,5" to (102.5, false).
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return parseDecimal(rest), true
	}
	return parseDecimal(s), false
}

// parseDecimal reads comma or dot decimals. Garbage reads as 0.
func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return f
}

func cutDot(s string) (before, after string, found bool) {
	before, after, found = strings.Cut(s, dot)
	return strings.TrimSpace(before), strings.TrimSpace(after), found
}
