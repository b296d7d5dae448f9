package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/blossomdecode/sparseblossom/dem"
)

// loadMechanisms reads a stim-style detector error model and feeds one
// dem.Builder.AddMechanism call per instruction line. Each line has the
// form:
//
//	error(<probability>) D<n> [D<n>] [L<n> ...]
//
// D tokens name the one or two detectors the mechanism triggers; L tokens
// name the observables it flips. Blank lines and lines starting with '#'
// are ignored.
func loadMechanisms(b *dem.Builder, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, detectors, observables, err := parseInstruction(line)
		if err != nil {
			return errors.Wrapf(err, "blossomdecode: line %d", lineNo)
		}
		if err := b.AddMechanism(detectors, p, observables); err != nil {
			return errors.Wrapf(err, "blossomdecode: line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "blossomdecode: reading DEM file")
	}
	return nil
}

func parseInstruction(line string) (float64, []string, dem.ObservableSet, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, nil, nil, fmt.Errorf("expected \"error(p) D... [L...]\", got %q", line)
	}

	head := fields[0]
	if !strings.HasPrefix(head, "error(") || !strings.HasSuffix(head, ")") {
		return 0, nil, nil, fmt.Errorf("expected leading \"error(p)\", got %q", head)
	}
	p, err := strconv.ParseFloat(head[len("error(") : len(head)-1], 64)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "parsing probability")
	}

	var detectors []string
	var observables dem.ObservableSet
	for _, tok := range fields[1:] {
		switch {
		case strings.HasPrefix(tok, "D"):
			detectors = append(detectors, tok)
		case strings.HasPrefix(tok, "L"):
			idx, err := strconv.Atoi(tok[1:])
			if err != nil {
				return 0, nil, nil, errors.Wrapf(err, "parsing observable %q", tok)
			}
			observables = append(observables, idx)
		default:
			return 0, nil, nil, fmt.Errorf("unrecognized token %q", tok)
		}
	}
	return p, detectors, observables, nil
}
