// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/seeding"
	"seedkit/cli/internal/seeds"
)

// parseCounts layers name=n overrides from the command line over the
// configured counts. Names are matched case-insensitively against the catalog.
func parseCounts(base map[string]int, entries []string) (map[string]int, error) {
	known := make(map[string]string, len(seeds.Names()))
	for _, n := range seeds.Names() {
		known[strings.ToLower(n)] = n
	}

	out := make(map[string]int, len(base)+len(entries))
	var problems []string
	for k, v := range base {
		name, ok := known[strings.ToLower(k)]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown seed %q in config counts", k))
			continue
		}
		out[name] = v
	}
	for _, e := range entries {
		k, raw, ok := strings.Cut(e, "=")
		if !ok {
			problems = append(problems, fmt.Sprintf("--count %q: want name=n", e))
			continue
		}
		name, found := known[strings.ToLower(strings.TrimSpace(k))]
		if !found {
			problems = append(problems, fmt.Sprintf("--count %q: unknown seed", e))
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			problems = append(problems, fmt.Sprintf("--count %q: count must be a non-negative integer", e))
			continue
		}
		out[name] = n
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, serrors.New(serrors.ConfigInvalid, strings.Join(problems, "; "))
	}
	return out, nil
}

// catalogFor builds the selected descriptors for the current config.
func catalogFor(only, countEntries []string, users int) ([]seeding.Descriptor, error) {
	counts, err := parseCounts(app.cfg.Counts, countEntries)
	if err != nil {
		return nil, err
	}
	if users >= 0 {
		counts[seeds.UsersSeed] = users
	}
	opts := seeds.Options{
		Counts:        counts,
		AdminEmail:    app.cfg.Admin.Email,
		AdminPassword: app.cfg.Admin.Password,
	}
	return seeds.Select(seeds.Catalog(opts), splitNames(only))
}

// splitNames accepts both repeated flags and comma separated lists.
func splitNames(values []string) []string {
	var out []string
	for _, v := range values {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}
