// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeding

import (
	"fmt"
	"strings"

	serrors "seedkit/cli/internal/errors"
)

// Plan is the linearized seed order plus the dependency names that were not
// part of the descriptor set.
type Plan struct {
	Order []Descriptor
	// Unresolved maps a seed name to the dependencies it declared that are not
	// in the set. They are treated as satisfied externally.
	Unresolved map[string][]string
}

// Names returns the seed names in execution order.
func (p Plan) Names() []string {
	names := make([]string, len(p.Order))
	for i, d := range p.Order {
		names[i] = d.Name
	}
	return names
}

// Schedule orders descriptors so every dependency present in the set runs
// before its dependents. Independent descriptors keep their input order.
// A cycle or a duplicated name fails the whole call with no partial plan.
func Schedule(descs []Descriptor) (Plan, error) {
	byName := make(map[string]Descriptor, len(descs))
	for _, d := range descs {
		if _, dup := byName[d.Name]; dup {
			return Plan{}, serrors.New(serrors.DuplicateSeed, fmt.Sprintf("seed %q is declared more than once", d.Name))
		}
		byName[d.Name] = d
	}

	var (
		order      = make([]Descriptor, 0, len(descs))
		visiting   = make(map[string]bool)
		visited    = make(map[string]bool)
		path       []string
		unresolved = make(map[string][]string)
	)

	var visit func(d Descriptor) error
	visit = func(d Descriptor) error {
		if visited[d.Name] {
			return nil
		}
		if visiting[d.Name] {
			return serrors.New(serrors.DependencyCycle, cycleMessage(path, d.Name))
		}
		visiting[d.Name] = true
		path = append(path, d.Name)

		for _, dep := range d.DependsOn {
			next, ok := byName[dep]
			if !ok {
				unresolved[d.Name] = append(unresolved[d.Name], dep)
				continue
			}
			if err := visit(next); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		delete(visiting, d.Name)
		visited[d.Name] = true
		order = append(order, d)
		return nil
	}

	for _, d := range descs {
		if err := visit(d); err != nil {
			return Plan{}, err
		}
	}
	return Plan{Order: order, Unresolved: unresolved}, nil
}

// cycleMessage renders the loop from the first occurrence of name on the path.
func cycleMessage(path []string, name string) string {
	start := 0
	for i, p := range path {
		if p == name {
			start = i
			break
		}
	}
	loop := append(append([]string(nil), path[start:]...), name)
	return fmt.Sprintf("seed %q depends on itself: %s", name, strings.Join(loop, " -> "))
}
