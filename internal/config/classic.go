package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Field-presence bits for an in-progress body record. A record is only
// complete once all four have been seen, at which point it is appended
// and the tracking resets for the next body.
const (
	haveName = 1 << iota
	haveMass
	havePosition
	haveVelocity

	haveAll = haveName | haveMass | havePosition | haveVelocity
)

// LoadClassic reads a classic-format file. A missing file is not an
// error: the defaults come back with zero bodies and the caller falls
// through to the built-in dataset.
func LoadClassic(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	return ParseClassic(f)
}

// ParseClassic parses the classic "key = value" format: one assignment
// per line, '#' comments, all whitespace insignificant. timeStep and
// simulationLength set the run parameters; repeated blocks of name,
// mass, position and velocity define bodies. Any malformed value or
// unrecognized key is fatal.
func ParseClassic(r io.Reader) (*Config, error) {
	cfg := Default()

	var (
		have    int
		pending BodyConfig
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, &ParseError{Text: line, Reason: "expected key = value"}
		}
		key, value := line[:eq], line[eq+1:]

		switch key {
		case "timeStep":
			v, err := parseNumber(value)
			if err != nil {
				return nil, err
			}
			cfg.TimeStep = v
		case "simulationLength":
			v, err := parseNumber(value)
			if err != nil {
				return nil, err
			}
			cfg.Duration = v
		case "name":
			pending.Name = value
			have |= haveName
		case "mass":
			v, err := parseNumber(value)
			if err != nil {
				return nil, err
			}
			pending.Mass = v
			have |= haveMass
		case "position":
			v, err := parseVector(value)
			if err != nil {
				return nil, err
			}
			pending.Position = v
			have |= havePosition
		case "velocity":
			v, err := parseVector(value)
			if err != nil {
				return nil, err
			}
			pending.Velocity = v
			have |= haveVelocity
		default:
			return nil, &ParseError{Text: key, Reason: "unrecognized key"}
		}

		if have == haveAll {
			cfg.Bodies = append(cfg.Bodies, pending)
			pending = BodyConfig{}
			have = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Text: s, Reason: "value outside double range"}
		}
		return 0, &ParseError{Text: s, Reason: "invalid numeric format"}
	}
	return v, nil
}

// parseVector reads a "(x,y,z)" literal. The parentheses are optional;
// exactly two commas are required.
func parseVector(s string) ([]float64, error) {
	trimmed := strings.TrimPrefix(s, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	if strings.Count(trimmed, ",") != 2 {
		return nil, &ParseError{Text: s, Reason: "expected two commas in a 3D vector literal"}
	}

	parts := strings.SplitN(trimmed, ",", 3)
	out := make([]float64, 3)
	for i, p := range parts {
		v, err := parseNumber(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
