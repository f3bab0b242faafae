package cities

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNoCities = errors.New("city list contains no usable entries")

// fallbackCities is served when the city list file cannot be used.
var fallbackCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
	"Fort Worth", "Columbus", "San Francisco", "Charlotte", "Indianapolis",
	"Seattle", "Denver", "Washington", "Boston", "El Paso", "Nashville",
	"Detroit", "Oklahoma City", "Portland", "Las Vegas", "Memphis", "Louisville",
	"London", "Berlin", "Madrid", "Rome", "Paris", "Tokyo", "Delhi", "Shanghai",
	"São Paulo", "Mumbai", "Beijing", "Cairo", "Bangkok", "Toronto", "Sydney",
}

// Fallback returns a sorted copy of the built-in city list.
func Fallback() []string {
	return normalize(fallbackCities)
}

// LoadFile reads a city list from path. YAML is used for .yaml/.yml files, JSON otherwise.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return Parse(doc)
}

// Parse extracts display names from a decoded document: either a sequence of entries or a
// mapping whose values are entries. An entry is a string or an object with a "name" and an
// optional "country".
func Parse(doc any) ([]string, error) {
	var names []string
	switch v := doc.(type) {
	case []any:
		for _, entry := range v {
			if name, ok := entryName(entry); ok {
				names = append(names, name)
			}
		}
	case map[string]any:
		for _, entry := range v {
			if name, ok := entryName(entry); ok {
				names = append(names, name)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported city list of type %T", doc)
	}

	names = normalize(names)
	if len(names) == 0 {
		return nil, errNoCities
	}
	return names, nil
}

func entryName(entry any) (string, bool) {
	switch e := entry.(type) {
	case string:
		return e, strings.TrimSpace(e) != ""
	case map[string]any:
		name, _ := e["name"].(string)
		if strings.TrimSpace(name) == "" {
			return "", false
		}
		if country, _ := e["country"].(string); country != "" {
			name = name + ", " + country
		}
		return name, true
	default:
		return "", false
	}
}

// normalize returns a sorted copy of names without duplicates.
func normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
